package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	domainerrors "github.com/central-university-dev/go-hackathon-tracker/internal/domain/errors"
	"github.com/central-university-dev/go-hackathon-tracker/internal/domain/models"
)

type MemberInput struct {
	Name           *string `json:"name"`
	TelegramChatID *string `json:"telegramChatId"`
	Email          *string `json:"email"`
	Role           *string `json:"role"`
}

type MemberService struct {
	store  Store
	logger *slog.Logger
}

func NewMemberService(store Store, logger *slog.Logger) *MemberService {
	return &MemberService{
		store:  store,
		logger: logger,
	}
}

func (s *MemberService) List(ctx context.Context) ([]models.Member, error) {
	return s.store.Members(ctx)
}

func (s *MemberService) Create(ctx context.Context, input MemberInput) (*models.Member, error) {
	member := models.Member{
		ID:   uuid.NewString(),
		Role: models.DefaultMemberRole,
	}

	applyMember(&member, input)

	if member.Role == "" {
		member.Role = models.DefaultMemberRole
	}

	err := s.store.UpdateMembers(ctx, func(current []models.Member) ([]models.Member, error) {
		return append(current, member), nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Участник добавлен", "memberID", member.ID, "hasChat", member.Reachable())

	return &member, nil
}

func (s *MemberService) Update(ctx context.Context, id string, input MemberInput) (*models.Member, error) {
	var updated models.Member

	err := s.store.UpdateMembers(ctx, func(current []models.Member) ([]models.Member, error) {
		for i := range current {
			if current[i].ID == id {
				applyMember(&current[i], input)
				updated = current[i]

				return current, nil
			}
		}

		return nil, &domainerrors.ErrMemberNotFound{ID: id}
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// Delete не трогает memberIds хакатонов: несуществующие идентификаторы
// просто не совпадут ни с одним участником при рассылке.
func (s *MemberService) Delete(ctx context.Context, id string) error {
	return s.store.UpdateMembers(ctx, func(current []models.Member) ([]models.Member, error) {
		kept := make([]models.Member, 0, len(current))

		for _, m := range current {
			if m.ID != id {
				kept = append(kept, m)
			}
		}

		if len(kept) == len(current) {
			return nil, &domainerrors.ErrMemberNotFound{ID: id}
		}

		return kept, nil
	})
}

func applyMember(m *models.Member, input MemberInput) {
	setString(&m.Name, input.Name)
	setString(&m.TelegramChatID, input.TelegramChatID)
	setString(&m.Email, input.Email)
	setString(&m.Role, input.Role)
}
