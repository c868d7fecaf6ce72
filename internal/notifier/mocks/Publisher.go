package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/central-university-dev/go-hackathon-tracker/internal/domain/models"
)

type Publisher struct {
	mock.Mock
}

func (m *Publisher) Publish(ctx context.Context, event models.ReportEvent) error {
	return m.Called(ctx, event).Error(0)
}

func NewPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *Publisher {
	m := &Publisher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
