package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"clinical-sharing/internal/domain/access"
	"clinical-sharing/internal/domain/patients"
)

var (
	ErrNotFound = fmt.Errorf("memory: %w", access.ErrNotFound)
)

type patientRepo struct {
	mu   sync.RWMutex
	byID map[string]patients.Patient
}

func NewPatientRepo() patients.Repository {
	return &patientRepo{
		byID: make(map[string]patients.Patient),
	}
}

func (r *patientRepo) Create(ctx context.Context, p patients.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("patient id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("patient already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *patientRepo) GetByID(ctx context.Context, id string) (patients.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return patients.Patient{}, ErrNotFound
	}
	return p, nil
}

func (r *patientRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]patients.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]patients.Patient, 0)
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}

	// Orden estable por created_at asc
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}
