package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/central-university-dev/go-hackathon-tracker/internal/common/dates"
	domainerrors "github.com/central-university-dev/go-hackathon-tracker/internal/domain/errors"
	"github.com/central-university-dev/go-hackathon-tracker/internal/domain/models"
)

// HackathonInput содержит поля запроса; nil означает, что поле не передано.
type HackathonInput struct {
	Name        *string            `json:"name"`
	Link        *string            `json:"link"`
	Description *string            `json:"description"`
	GithubLink  *string            `json:"githubLink"`
	Deadline    *string            `json:"deadline"`
	StartDate   *string            `json:"startDate"`
	EndDate     *string            `json:"endDate"`
	TeamName    *string            `json:"teamName"`
	MemberIDs   *[]string          `json:"memberIds"`
	Resources   *[]models.Resource `json:"resources"`
	Tags        *[]string          `json:"tags"`
	Priority    *models.Priority   `json:"priority"`
	Notes       *string            `json:"notes"`
}

type HackathonService struct {
	store    Store
	logger   *slog.Logger
	now      Clock
	location *time.Location
}

func NewHackathonService(store Store, location *time.Location, now Clock, logger *slog.Logger) *HackathonService {
	if now == nil {
		now = time.Now
	}

	if location == nil {
		location = time.UTC
	}

	return &HackathonService{
		store:    store,
		logger:   logger,
		now:      now,
		location: location,
	}
}

func (s *HackathonService) List(ctx context.Context) ([]models.Hackathon, error) {
	return s.store.Hackathons(ctx)
}

func (s *HackathonService) Get(ctx context.Context, id string) (*models.Hackathon, error) {
	hackathons, err := s.store.Hackathons(ctx)
	if err != nil {
		return nil, err
	}

	for i := range hackathons {
		if hackathons[i].ID == id {
			return &hackathons[i], nil
		}
	}

	return nil, &domainerrors.ErrHackathonNotFound{ID: id}
}

func (s *HackathonService) Create(ctx context.Context, input HackathonInput) (*models.Hackathon, error) {
	now := timestamp(s.now)

	hackathon := models.Hackathon{
		ID:        uuid.NewString(),
		MemberIDs: []string{},
		Resources: []models.Resource{},
		Tags:      []string{},
		Priority:  models.PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.apply(&hackathon, input); err != nil {
		return nil, err
	}

	err := s.store.UpdateHackathons(ctx, func(current []models.Hackathon) ([]models.Hackathon, error) {
		return append(current, hackathon), nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Хакатон создан", "hackathonID", hackathon.ID, "name", hackathon.Name)

	return &hackathon, nil
}

func (s *HackathonService) Update(ctx context.Context, id string, input HackathonInput) (*models.Hackathon, error) {
	var updated models.Hackathon

	err := s.store.UpdateHackathons(ctx, func(current []models.Hackathon) ([]models.Hackathon, error) {
		for i := range current {
			if current[i].ID != id {
				continue
			}

			h := current[i]
			if err := s.apply(&h, input); err != nil {
				return nil, err
			}

			h.UpdatedAt = timestamp(s.now)
			current[i] = h
			updated = h

			return current, nil
		}

		return nil, &domainerrors.ErrHackathonNotFound{ID: id}
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Хакатон обновлён", "hackathonID", id)

	return &updated, nil
}

func (s *HackathonService) Delete(ctx context.Context, id string) error {
	err := s.store.UpdateHackathons(ctx, func(current []models.Hackathon) ([]models.Hackathon, error) {
		kept := make([]models.Hackathon, 0, len(current))

		for _, h := range current {
			if h.ID != id {
				kept = append(kept, h)
			}
		}

		if len(kept) == len(current) {
			return nil, &domainerrors.ErrHackathonNotFound{ID: id}
		}

		return kept, nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Хакатон удалён", "hackathonID", id)

	return nil
}

func (s *HackathonService) apply(h *models.Hackathon, input HackathonInput) error {
	dateFields := []struct {
		name  string
		value *string
	}{
		{"deadline", input.Deadline},
		{"startDate", input.StartDate},
		{"endDate", input.EndDate},
	}

	for _, field := range dateFields {
		if field.value == nil || *field.value == "" {
			continue
		}

		if _, err := dates.Parse(*field.value, s.location); err != nil {
			return &domainerrors.ErrInvalidValue{FieldName: field.name, Value: *field.value}
		}
	}

	if input.Priority != nil && !input.Priority.Valid() {
		return &domainerrors.ErrInvalidValue{FieldName: "priority", Value: string(*input.Priority)}
	}

	setString(&h.Name, input.Name)
	setString(&h.Link, input.Link)
	setString(&h.Description, input.Description)
	setString(&h.GithubLink, input.GithubLink)
	setString(&h.Deadline, input.Deadline)
	setString(&h.StartDate, input.StartDate)
	setString(&h.EndDate, input.EndDate)
	setString(&h.TeamName, input.TeamName)
	setString(&h.Notes, input.Notes)

	if input.Priority != nil {
		h.Priority = *input.Priority
	}

	if input.MemberIDs != nil {
		h.MemberIDs = nonNil(*input.MemberIDs)
	}

	if input.Tags != nil {
		h.Tags = nonNil(*input.Tags)
	}

	if input.Resources != nil {
		h.Resources = s.resources(*input.Resources)
	}

	return nil
}

// resources выдаёт идентификатор и время добавления новым ресурсам.
func (s *HackathonService) resources(resources []models.Resource) []models.Resource {
	result := make([]models.Resource, 0, len(resources))

	for _, r := range resources {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}

		if r.AddedAt == "" {
			r.AddedAt = timestamp(s.now)
		}

		if r.Type == "" {
			r.Type = models.ResourceLink
		}

		result = append(result, r)
	}

	return result
}

func setString(dst *string, value *string) {
	if value != nil {
		*dst = *value
	}
}

func nonNil[T any](values []T) []T {
	if values == nil {
		return []T{}
	}

	return values
}
