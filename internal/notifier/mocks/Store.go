package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/central-university-dev/go-hackathon-tracker/internal/domain/models"
)

type Store struct {
	mock.Mock
}

func (m *Store) Hackathons(ctx context.Context) ([]models.Hackathon, error) {
	ret := m.Called(ctx)

	var hackathons []models.Hackathon
	if v := ret.Get(0); v != nil {
		hackathons = v.([]models.Hackathon)
	}

	return hackathons, ret.Error(1)
}

func (m *Store) Members(ctx context.Context) ([]models.Member, error) {
	ret := m.Called(ctx)

	var members []models.Member
	if v := ret.Get(0); v != nil {
		members = v.([]models.Member)
	}

	return members, ret.Error(1)
}

func (m *Store) Settings(ctx context.Context) (models.Settings, error) {
	ret := m.Called(ctx)

	return ret.Get(0).(models.Settings), ret.Error(1)
}

func NewStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *Store {
	m := &Store{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
