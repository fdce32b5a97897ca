package accessgrants

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clinical-sharing/internal/domain/access"
)

// Evaluator lee el estado actual (owner + grant vivo) y delega la decisión
// en access.Evaluate. No cachea nada entre llamadas.
type Evaluator struct {
	repo   Repository
	owners OwnerLookup
}

func NewEvaluator(repo Repository, owners OwnerLookup) *Evaluator {
	return &Evaluator{repo: repo, owners: owners}
}

// Snapshot arma los hechos para (subject, patient). Patient inexistente => access.ErrNotFound.
func (e *Evaluator) Snapshot(ctx context.Context, subjectUserID, patientID string) (access.Snapshot, error) {
	subjectUserID = strings.TrimSpace(subjectUserID)
	patientID = strings.TrimSpace(patientID)
	if patientID == "" {
		return access.Snapshot{}, fmt.Errorf("%w: patient id required", access.ErrInvalidArgument)
	}

	owner, err := e.owners.OwnerOf(ctx, patientID)
	if err != nil {
		if errors.Is(err, access.ErrNotFound) {
			return access.Snapshot{}, fmt.Errorf("patient %s: %w", patientID, access.ErrNotFound)
		}
		return access.Snapshot{}, fmt.Errorf("%w: owner lookup: %v", access.ErrSourceUnavailable, err)
	}

	snap := access.Snapshot{
		SubjectUserID: subjectUserID,
		PatientID:     patientID,
		OwnerUserID:   owner,
	}

	// El owner no necesita grant.
	if subjectUserID == "" || subjectUserID == owner {
		return snap, nil
	}

	g, err := e.repo.GetActiveGrant(ctx, patientID, subjectUserID)
	switch {
	case err == nil:
		st := g.State()
		snap.Grant = &st
	case errors.Is(err, access.ErrNotFound):
		// sin grant
	default:
		return access.Snapshot{}, fmt.Errorf("%w: grant lookup: %v", access.ErrSourceUnavailable, err)
	}
	return snap, nil
}

// Check consulta el estado y evalúa con el now recibido.
func (e *Evaluator) Check(ctx context.Context, subjectUserID, patientID string, action access.Action, now time.Time) (access.Decision, error) {
	snap, err := e.Snapshot(ctx, subjectUserID, patientID)
	if err != nil {
		return access.Decision{}, err
	}
	return access.Evaluate(snap, action, now), nil
}

// Require es Check convertido en error: no concedido => access.ErrPermissionDenied.
func (e *Evaluator) Require(ctx context.Context, subjectUserID, patientID string, action access.Action, now time.Time) (access.Decision, error) {
	d, err := e.Check(ctx, subjectUserID, patientID, action, now)
	if err != nil {
		return access.Decision{}, err
	}
	if !d.Granted {
		return d, fmt.Errorf("%w: %s on patient %s (%s)", access.ErrPermissionDenied, action, patientID, d.Reason)
	}
	return d, nil
}
