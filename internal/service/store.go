package service

import (
	"context"
	"time"

	"github.com/central-university-dev/go-hackathon-tracker/internal/domain/models"
)

type Store interface {
	Hackathons(ctx context.Context) ([]models.Hackathon, error)
	Members(ctx context.Context) ([]models.Member, error)
	Settings(ctx context.Context) (models.Settings, error)
	UpdateHackathons(ctx context.Context, fn func([]models.Hackathon) ([]models.Hackathon, error)) error
	UpdateMembers(ctx context.Context, fn func([]models.Member) ([]models.Member, error)) error
	SaveSettings(ctx context.Context, settings models.Settings) error
}

type Clock func() time.Time

func timestamp(now Clock) string {
	return now().UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
