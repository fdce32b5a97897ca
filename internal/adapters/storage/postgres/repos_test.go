package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"clinical-sharing/internal/domain/access"
	"clinical-sharing/internal/domain/accessgrants"
	"clinical-sharing/internal/domain/patients"
	"clinical-sharing/internal/domain/records"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)

var grantCols = []string{
	"id", "patient_id", "grantor_user_id", "grantee_user_id",
	"level", "status",
	"created_at", "updated_at", "expires_at", "revoked_at",
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

func newGrant() accessgrants.Grant {
	return accessgrants.Grant{
		ID:            "g-2",
		PatientID:     "p-1",
		GrantorUserID: "user-a",
		GranteeUserID: "user-b",
		Level:         access.LevelWrite,
		CreatedAt:     t0,
		UpdatedAt:     t0,
	}
}

func TestReplaceActive_SupersedesPrevious(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAccessGrantsRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("pg_advisory_xact_lock").
		WithArgs("p-1|user-b").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("UPDATE access_grants").
		WithArgs("p-1", "user-b", t0).
		WillReturnRows(sqlmock.NewRows(grantCols).
			AddRow("g-1", "p-1", "user-a", "user-b", "read", "superseded", t0.Add(-time.Hour), t0, nil, t0))
	mock.ExpectExec("INSERT INTO access_grants").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	prev, err := repo.ReplaceActive(context.Background(), newGrant())
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.Equal(t, "g-1", prev.ID)
	assert.Equal(t, accessgrants.StatusSuperseded, prev.Status)
	assert.Nil(t, prev.ExpiresAt)
	require.NotNil(t, prev.RevokedAt)
}

func TestReplaceActive_FirstGrant(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAccessGrantsRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("pg_advisory_xact_lock").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("UPDATE access_grants").WillReturnRows(sqlmock.NewRows(grantCols))
	mock.ExpectExec("INSERT INTO access_grants").
		WithArgs("g-2", "p-1", "user-a", "user-b", "write", "active", t0, t0, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	prev, err := repo.ReplaceActive(context.Background(), newGrant())
	require.NoError(t, err)
	assert.Nil(t, prev)
}

func TestReplaceActive_UniqueViolationIsConflict(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAccessGrantsRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("pg_advisory_xact_lock").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("UPDATE access_grants").WillReturnRows(sqlmock.NewRows(grantCols))
	mock.ExpectExec("INSERT INTO access_grants").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_access_grants_live_pair"})
	mock.ExpectRollback()

	_, err := repo.ReplaceActive(context.Background(), newGrant())
	require.Error(t, err)
	assert.True(t, errors.Is(err, access.ErrConflictRace))
}

func TestMarkRevoked_AlreadyRevokedReturnsStored(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAccessGrantsRepo(db)

	mock.ExpectQuery("UPDATE access_grants").
		WithArgs("g-1", t0).
		WillReturnRows(sqlmock.NewRows(grantCols))
	mock.ExpectQuery("FROM access_grants WHERE id").
		WithArgs("g-1").
		WillReturnRows(sqlmock.NewRows(grantCols).
			AddRow("g-1", "p-1", "user-a", "user-b", "read", "revoked", t0, t0, nil, t0.Add(-time.Minute)))

	g, err := repo.MarkRevoked(context.Background(), "g-1", t0)
	require.NoError(t, err)
	assert.Equal(t, accessgrants.StatusRevoked, g.Status)
	assert.Equal(t, t0.Add(-time.Minute), *g.RevokedAt)
}

func TestGetActiveGrant_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAccessGrantsRepo(db)

	mock.ExpectQuery("status = 'active'").
		WithArgs("p-1", "user-z").
		WillReturnRows(sqlmock.NewRows(grantCols))

	_, err := repo.GetActiveGrant(context.Background(), "p-1", "user-z")
	assert.True(t, errors.Is(err, access.ErrNotFound))

	// ids vacíos no llegan a la base
	_, err = repo.GetActiveGrant(context.Background(), " ", "user-z")
	assert.True(t, errors.Is(err, access.ErrNotFound))
}

func TestPatientsRepo_GetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPatientsRepo(db)

	bd := time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM patients WHERE id").
		WithArgs("p-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "owner_user_id", "tenant_id", "first_name", "last_name", "sex",
			"birth_date", "email", "phone", "notes", "created_at", "updated_at",
		}).AddRow("p-1", "user-a", "", "Ana", "Paz", "female", bd, "", "", "", t0, t0))

	p, err := repo.GetByID(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, "user-a", p.OwnerUserID)
	assert.Equal(t, patients.SexFemale, p.Sex)
	require.NotNil(t, p.BirthDate)
	assert.True(t, p.BirthDate.Equal(bd))
}

func TestRecordsRepo_ListVitalsKeepsNulls(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRecordsRepo(db)
	rg := records.Range{From: t0.Add(-24 * time.Hour), To: t0}

	mock.ExpectQuery("FROM vitals").
		WithArgs("p-1", rg.From, rg.To).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "patient_id", "recorded_at",
			"systolic_bp", "diastolic_bp", "heart_rate", "respiratory_rate", "oxygen_saturation",
			"temperature_c", "weight_kg", "height_cm",
			"notes", "created_by", "created_at",
		}).AddRow("v-1", "p-1", t0, 120, 80, nil, nil, nil, 36.6, nil, nil, "", "user-a", t0))

	out, err := repo.ListVitals(context.Background(), "p-1", rg)
	require.NoError(t, err)
	require.Len(t, out, 1)

	v := out[0]
	require.NotNil(t, v.SystolicBP)
	assert.Equal(t, 120, *v.SystolicBP)
	assert.Nil(t, v.HeartRate)
	require.NotNil(t, v.TemperatureC)
	assert.InDelta(t, 36.6, *v.TemperatureC, 1e-9)
	assert.Nil(t, v.WeightKg)
}

func TestRecordsRepo_CreatePrescriptionNullEndDate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRecordsRepo(db)

	mock.ExpectExec("INSERT INTO prescriptions").
		WithArgs("rx-1", "p-1", "Amoxicilina", "500 mg", "cada 8h", "", "Dr. X", t0, nil, "user-a", t0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreatePrescription(context.Background(), records.Prescription{
		ID: "rx-1", PatientID: "p-1",
		Medication: "Amoxicilina", Dosage: "500 mg", Frequency: "cada 8h",
		PrescribedBy: "Dr. X", StartDate: t0,
		CreatedBy: "user-a", CreatedAt: t0,
	})
	require.NoError(t, err)
}

func TestMigrate_AppliesPending(t *testing.T) {
	db, mock := newMock(t)

	migs, err := LoadMigrations()
	require.NoError(t, err)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT version FROM schema_migrations").WillReturnRows(sqlmock.NewRows([]string{"version"}))
	for _, m := range migs {
		mock.ExpectBegin()
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS patients").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO schema_migrations").
			WithArgs(m.Version, m.Name).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
	}

	n, err := Migrate(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, len(migs), n)
}

func TestMigrate_SkipsApplied(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT version FROM schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(1))

	n, err := Migrate(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
