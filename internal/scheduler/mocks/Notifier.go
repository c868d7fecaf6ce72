package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/central-university-dev/go-hackathon-tracker/internal/domain/models"
)

type Notifier struct {
	mock.Mock
}

func (m *Notifier) Notify(ctx context.Context, hackathonID string) (*models.Report, error) {
	ret := m.Called(ctx, hackathonID)

	var report *models.Report
	if r := ret.Get(0); r != nil {
		report = r.(*models.Report)
	}

	return report, ret.Error(1)
}

func NewNotifier(t interface {
	mock.TestingT
	Cleanup(func())
}) *Notifier {
	m := &Notifier{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
