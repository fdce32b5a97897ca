package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"clinical-sharing/internal/domain/patients"
)

const patientColumns = `
	id, owner_user_id, tenant_id,
	first_name, last_name, sex,
	birth_date, email, phone, notes,
	created_at, updated_at`

type PatientsRepo struct {
	db *sql.DB
}

func NewPatientsRepo(db *sql.DB) *PatientsRepo {
	return &PatientsRepo{db: db}
}

func (r *PatientsRepo) Create(ctx context.Context, p patients.Patient) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO patients (`+patientColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		p.ID,
		p.OwnerUserID,
		p.TenantID,
		p.FirstName,
		p.LastName,
		string(p.Sex),
		toNullTime(p.BirthDate), // DATE
		p.Email,
		p.Phone,
		p.Notes,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PatientsRepo) GetByID(ctx context.Context, id string) (patients.Patient, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return patients.Patient{}, ErrNotFound
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+patientColumns+` FROM patients WHERE id = $1`, id)
	return scanPatient(row)
}

func (r *PatientsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]patients.Patient, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+patientColumns+`
		FROM patients
		WHERE owner_user_id = $1
		ORDER BY created_at ASC, id ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]patients.Patient, 0)
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPatient(row rowScanner) (patients.Patient, error) {
	var p patients.Patient
	var sex string
	var bd sql.NullTime
	if err := row.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.TenantID,
		&p.FirstName,
		&p.LastName,
		&sex,
		&bd,
		&p.Email,
		&p.Phone,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return patients.Patient{}, ErrNotFound
		}
		return patients.Patient{}, err
	}
	p.Sex = patients.Sex(sex)
	// birth_date es DATE: pgx lo devuelve a medianoche UTC
	p.BirthDate = fromNullTime(bd)
	return p, nil
}
