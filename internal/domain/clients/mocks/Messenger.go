package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/central-university-dev/go-hackathon-tracker/internal/domain/clients"
)

type Messenger struct {
	mock.Mock
}

func (m *Messenger) VerifyCredential(ctx context.Context, token string) (clients.BotIdentity, error) {
	ret := m.Called(ctx, token)

	if rf, ok := ret.Get(0).(func(context.Context, string) (clients.BotIdentity, error)); ok {
		return rf(ctx, token)
	}

	return ret.Get(0).(clients.BotIdentity), ret.Error(1)
}

func (m *Messenger) Deliver(ctx context.Context, token, chatID, text string) (clients.DeliveryResult, error) {
	ret := m.Called(ctx, token, chatID, text)

	if rf, ok := ret.Get(0).(func(context.Context, string, string, string) (clients.DeliveryResult, error)); ok {
		return rf(ctx, token, chatID, text)
	}

	return ret.Get(0).(clients.DeliveryResult), ret.Error(1)
}

func NewMessenger(t interface {
	mock.TestingT
	Cleanup(func())
}) *Messenger {
	m := &Messenger{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
