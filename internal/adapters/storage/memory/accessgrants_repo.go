package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"clinical-sharing/internal/domain/access"
	"clinical-sharing/internal/domain/accessgrants"
)

type pairKey struct {
	patientID string
	granteeID string
}

// grantRepo es un arena: byID guarda el historial completo y live apunta,
// por par (patient, grantee), al único grant vivo. Todas las escrituras
// toman el lock exclusivo, así que reemplazar es un compare-and-swap.
type grantRepo struct {
	mu   sync.RWMutex
	byID map[string]accessgrants.Grant
	live map[pairKey]string
}

func NewAccessGrantsRepo() accessgrants.Repository {
	return &grantRepo{
		byID: make(map[string]accessgrants.Grant),
		live: make(map[pairKey]string),
	}
}

func (r *grantRepo) ReplaceActive(ctx context.Context, g accessgrants.Grant) (*accessgrants.Grant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(g.ID) == "" {
		return nil, errors.New("grant id required")
	}
	if _, exists := r.byID[g.ID]; exists {
		return nil, errors.New("grant already exists")
	}

	key := pairKey{patientID: g.PatientID, granteeID: g.GranteeUserID}

	var superseded *accessgrants.Grant
	if prevID, ok := r.live[key]; ok {
		prev := r.byID[prevID]
		at := g.CreatedAt
		prev.Status = accessgrants.StatusSuperseded
		prev.UpdatedAt = at
		prev.RevokedAt = &at
		r.byID[prevID] = prev
		superseded = &prev
	}

	g.Status = accessgrants.StatusActive
	r.byID[g.ID] = g
	r.live[key] = g.ID

	return superseded, nil
}

func (r *grantRepo) UpdateLevel(ctx context.Context, id string, level access.Level, at time.Time) (accessgrants.Grant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.byID[id]
	if !ok || !g.Live() {
		return accessgrants.Grant{}, ErrNotFound
	}
	g.Level = level
	g.UpdatedAt = at
	r.byID[id] = g
	return g, nil
}

func (r *grantRepo) MarkRevoked(ctx context.Context, id string, at time.Time) (accessgrants.Grant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.byID[id]
	if !ok {
		return accessgrants.Grant{}, ErrNotFound
	}
	// Idempotente
	if !g.Live() {
		return g, nil
	}

	g.Status = accessgrants.StatusRevoked
	g.UpdatedAt = at
	g.RevokedAt = &at
	r.byID[id] = g

	key := pairKey{patientID: g.PatientID, granteeID: g.GranteeUserID}
	if r.live[key] == id {
		delete(r.live, key)
	}
	return g, nil
}

func (r *grantRepo) GetByID(ctx context.Context, id string) (accessgrants.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.byID[id]
	if !ok {
		return accessgrants.Grant{}, ErrNotFound
	}
	return g, nil
}

func (r *grantRepo) GetActiveGrant(ctx context.Context, patientID, granteeUserID string) (accessgrants.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.live[pairKey{patientID: patientID, granteeID: granteeUserID}]
	if !ok {
		return accessgrants.Grant{}, ErrNotFound
	}
	return r.byID[id], nil
}

func (r *grantRepo) ListByPatient(ctx context.Context, patientID string) ([]accessgrants.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]accessgrants.Grant, 0)
	for key, id := range r.live {
		if key.patientID == patientID {
			out = append(out, r.byID[id])
		}
	}
	sortGrants(out)
	return out, nil
}

func (r *grantRepo) ListByGrantee(ctx context.Context, granteeUserID string) ([]accessgrants.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]accessgrants.Grant, 0)
	for key, id := range r.live {
		if key.granteeID == granteeUserID {
			out = append(out, r.byID[id])
		}
	}
	sortGrants(out)
	return out, nil
}

func sortGrants(items []accessgrants.Grant) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
}
