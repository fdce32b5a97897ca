package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"clinical-sharing/internal/domain/access"
	"clinical-sharing/internal/domain/accessgrants"
)

const grantColumns = `
	id, patient_id, grantor_user_id, grantee_user_id,
	level, status,
	created_at, updated_at, expires_at, revoked_at`

type AccessGrantsRepo struct {
	db *sql.DB
}

func NewAccessGrantsRepo(db *sql.DB) *AccessGrantsRepo {
	return &AccessGrantsRepo{db: db}
}

// ReplaceActive corre en una transacción: lock del par, superseded del grant
// vivo (si hay) e insert del nuevo. El lock serializa escritores del mismo par;
// el índice único parcial queda como respaldo y su violación se reporta como
// access.ErrConflictRace.
func (r *AccessGrantsRepo) ReplaceActive(ctx context.Context, g accessgrants.Grant) (*accessgrants.Grant, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`,
		g.PatientID+"|"+g.GranteeUserID,
	); err != nil {
		return nil, fmt.Errorf("lock grant pair: %w", err)
	}

	row := tx.QueryRowContext(ctx, `
		UPDATE access_grants
		SET status = 'superseded', updated_at = $3, revoked_at = $3
		WHERE patient_id = $1 AND grantee_user_id = $2 AND status = 'active'
		RETURNING `+grantColumns,
		g.PatientID, g.GranteeUserID, g.CreatedAt,
	)

	var superseded *accessgrants.Grant
	prev, err := scanGrant(row)
	switch {
	case err == nil:
		superseded = &prev
	case errors.Is(err, access.ErrNotFound):
		// no había grant vivo
	default:
		return nil, err
	}

	g.Status = accessgrants.StatusActive
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO access_grants (`+grantColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		g.ID,
		g.PatientID,
		g.GrantorUserID,
		g.GranteeUserID,
		string(g.Level),
		string(g.Status),
		g.CreatedAt,
		g.UpdatedAt,
		toNullTime(g.ExpiresAt),
		toNullTime(g.RevokedAt),
	); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: live grant for patient %s and grantee %s", access.ErrConflictRace, g.PatientID, g.GranteeUserID)
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return superseded, nil
}

func (r *AccessGrantsRepo) UpdateLevel(ctx context.Context, id string, level access.Level, at time.Time) (accessgrants.Grant, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE access_grants
		SET level = $2, updated_at = $3
		WHERE id = $1 AND status = 'active'
		RETURNING `+grantColumns,
		id, string(level), at,
	)
	return scanGrant(row)
}

// MarkRevoked: si el grant ya no está vivo se devuelve tal cual (idempotente).
func (r *AccessGrantsRepo) MarkRevoked(ctx context.Context, id string, at time.Time) (accessgrants.Grant, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE access_grants
		SET status = 'revoked', updated_at = $2, revoked_at = $2
		WHERE id = $1 AND status = 'active'
		RETURNING `+grantColumns,
		id, at,
	)
	g, err := scanGrant(row)
	if errors.Is(err, access.ErrNotFound) {
		return r.GetByID(ctx, id)
	}
	return g, err
}

func (r *AccessGrantsRepo) GetByID(ctx context.Context, id string) (accessgrants.Grant, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return accessgrants.Grant{}, ErrNotFound
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+grantColumns+` FROM access_grants WHERE id = $1`, id)
	return scanGrant(row)
}

func (r *AccessGrantsRepo) GetActiveGrant(ctx context.Context, patientID, granteeUserID string) (accessgrants.Grant, error) {
	patientID = strings.TrimSpace(patientID)
	granteeUserID = strings.TrimSpace(granteeUserID)
	if patientID == "" || granteeUserID == "" {
		return accessgrants.Grant{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+grantColumns+`
		FROM access_grants
		WHERE patient_id = $1
		  AND grantee_user_id = $2
		  AND status = 'active'
	`, patientID, granteeUserID)
	return scanGrant(row)
}

func (r *AccessGrantsRepo) ListByPatient(ctx context.Context, patientID string) ([]accessgrants.Grant, error) {
	patientID = strings.TrimSpace(patientID)
	if patientID == "" {
		return nil, nil
	}
	return r.list(ctx, `
		SELECT `+grantColumns+`
		FROM access_grants
		WHERE patient_id = $1 AND status = 'active'
		ORDER BY created_at ASC, id ASC
	`, patientID)
}

func (r *AccessGrantsRepo) ListByGrantee(ctx context.Context, granteeUserID string) ([]accessgrants.Grant, error) {
	granteeUserID = strings.TrimSpace(granteeUserID)
	if granteeUserID == "" {
		return nil, nil
	}
	return r.list(ctx, `
		SELECT `+grantColumns+`
		FROM access_grants
		WHERE grantee_user_id = $1 AND status = 'active'
		ORDER BY created_at ASC, id ASC
	`, granteeUserID)
}

func (r *AccessGrantsRepo) list(ctx context.Context, query string, args ...any) ([]accessgrants.Grant, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]accessgrants.Grant, 0)
	for rows.Next() {
		g, err := scanGrant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func scanGrant(row rowScanner) (accessgrants.Grant, error) {
	var g accessgrants.Grant
	var level, status string
	var expiresAt, revokedAt sql.NullTime

	if err := row.Scan(
		&g.ID,
		&g.PatientID,
		&g.GrantorUserID,
		&g.GranteeUserID,
		&level,
		&status,
		&g.CreatedAt,
		&g.UpdatedAt,
		&expiresAt,
		&revokedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return accessgrants.Grant{}, ErrNotFound
		}
		return accessgrants.Grant{}, err
	}

	g.Level = access.Level(level)
	g.Status = accessgrants.Status(status)
	g.ExpiresAt = fromNullTime(expiresAt)
	g.RevokedAt = fromNullTime(revokedAt)
	return g, nil
}
