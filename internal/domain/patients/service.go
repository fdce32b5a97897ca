package patients

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clinical-sharing/internal/domain/access"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = fmt.Errorf("invalid patient input: %w", access.ErrInvalidArgument)
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	TenantID  string
	FirstName string
	LastName  string
	Sex       string
	BirthDate *time.Time
	Email     string
	Phone     string
	Notes     string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Patient, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Patient{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.FirstName) == "" {
		return Patient{}, ErrInvalidInput
	}
	sex, ok := normalizeSex(strings.ToLower(strings.TrimSpace(in.Sex)))
	if !ok {
		return Patient{}, ErrInvalidInput
	}

	now := s.now()
	if in.BirthDate != nil && in.BirthDate.After(now) {
		return Patient{}, ErrInvalidInput
	}

	p := Patient{
		ID:          uuid.NewString(),
		OwnerUserID: strings.TrimSpace(ownerUserID),
		TenantID:    strings.TrimSpace(in.TenantID),
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		Sex:         sex,
		BirthDate:   in.BirthDate,
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:       strings.TrimSpace(in.Phone),
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Patient{}, err
	}
	return p, nil
}

// GetByID devuelve access.ErrNotFound (envuelto) si no existe.
func (s *Service) GetByID(ctx context.Context, id string) (Patient, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Patient{}, fmt.Errorf("patient: %w", access.ErrNotFound)
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Patient, error) {
	return s.repo.ListByOwner(ctx, strings.TrimSpace(ownerUserID))
}

// ListByIDs devuelve los pacientes existentes en el orden recibido.
// Los ids inexistentes se saltan (un grant puede sobrevivir a su paciente).
func (s *Service) ListByIDs(ctx context.Context, ids []string) ([]Patient, error) {
	out := make([]Patient, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		p, err := s.repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, access.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
