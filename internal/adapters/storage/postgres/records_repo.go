package postgres

import (
	"context"
	"database/sql"

	"clinical-sharing/internal/domain/records"
)

// RecordsRepo guarda los cinco tipos de registro clínico, uno por tabla.
// Las lecturas ya vienen filtradas por paciente y rango (inclusivo).
type RecordsRepo struct {
	db *sql.DB
}

func NewRecordsRepo(db *sql.DB) *RecordsRepo {
	return &RecordsRepo{db: db}
}

// queryRows corre la consulta y escanea cada fila con scan.
func queryRows[T any](ctx context.Context, db *sql.DB, scan func(rowScanner) (T, error), query string, args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// --- appointments

func (r *RecordsRepo) CreateAppointment(ctx context.Context, a records.Appointment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO appointments (
			id, patient_id, doctor_name, reason, location, status,
			scheduled_at, duration_minutes, notes, created_by, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		a.ID, a.PatientID, a.DoctorName, a.Reason, a.Location, string(a.Status),
		a.ScheduledAt, a.DurationMinutes, a.Notes, a.CreatedBy, a.CreatedAt,
	)
	return err
}

func (r *RecordsRepo) ListAppointments(ctx context.Context, patientID string, rg records.Range) ([]records.Appointment, error) {
	return queryRows(ctx, r.db, func(row rowScanner) (records.Appointment, error) {
		var a records.Appointment
		var status string
		err := row.Scan(&a.ID, &a.PatientID, &a.DoctorName, &a.Reason, &a.Location, &status,
			&a.ScheduledAt, &a.DurationMinutes, &a.Notes, &a.CreatedBy, &a.CreatedAt)
		a.Status = records.AppointmentStatus(status)
		return a, err
	}, `
		SELECT id, patient_id, doctor_name, reason, location, status,
			scheduled_at, duration_minutes, notes, created_by, created_at
		FROM appointments
		WHERE patient_id = $1 AND scheduled_at BETWEEN $2 AND $3
		ORDER BY scheduled_at DESC, id ASC
	`, patientID, rg.From, rg.To)
}

// --- prescriptions

func (r *RecordsRepo) CreatePrescription(ctx context.Context, p records.Prescription) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO prescriptions (
			id, patient_id, medication, dosage, frequency, instructions,
			prescribed_by, start_date, end_date, created_by, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		p.ID, p.PatientID, p.Medication, p.Dosage, p.Frequency, p.Instructions,
		p.PrescribedBy, p.StartDate, toNullTime(p.EndDate), p.CreatedBy, p.CreatedAt,
	)
	return err
}

func (r *RecordsRepo) ListPrescriptions(ctx context.Context, patientID string, rg records.Range) ([]records.Prescription, error) {
	return queryRows(ctx, r.db, func(row rowScanner) (records.Prescription, error) {
		var p records.Prescription
		var end sql.NullTime
		err := row.Scan(&p.ID, &p.PatientID, &p.Medication, &p.Dosage, &p.Frequency, &p.Instructions,
			&p.PrescribedBy, &p.StartDate, &end, &p.CreatedBy, &p.CreatedAt)
		p.EndDate = fromNullTime(end)
		return p, err
	}, `
		SELECT id, patient_id, medication, dosage, frequency, instructions,
			prescribed_by, start_date, end_date, created_by, created_at
		FROM prescriptions
		WHERE patient_id = $1 AND start_date BETWEEN $2 AND $3
		ORDER BY start_date DESC, id ASC
	`, patientID, rg.From, rg.To)
}

// --- vitals

func (r *RecordsRepo) CreateVitals(ctx context.Context, v records.VitalsReading) error {
	// database/sql manda NULL para punteros nil
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vitals (
			id, patient_id, recorded_at,
			systolic_bp, diastolic_bp, heart_rate, respiratory_rate, oxygen_saturation,
			temperature_c, weight_kg, height_cm,
			notes, created_by, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		v.ID, v.PatientID, v.RecordedAt,
		v.SystolicBP, v.DiastolicBP, v.HeartRate, v.RespiratoryRate, v.OxygenSaturation,
		v.TemperatureC, v.WeightKg, v.HeightCm,
		v.Notes, v.CreatedBy, v.CreatedAt,
	)
	return err
}

func (r *RecordsRepo) ListVitals(ctx context.Context, patientID string, rg records.Range) ([]records.VitalsReading, error) {
	return queryRows(ctx, r.db, func(row rowScanner) (records.VitalsReading, error) {
		var v records.VitalsReading
		err := row.Scan(&v.ID, &v.PatientID, &v.RecordedAt,
			&v.SystolicBP, &v.DiastolicBP, &v.HeartRate, &v.RespiratoryRate, &v.OxygenSaturation,
			&v.TemperatureC, &v.WeightKg, &v.HeightCm,
			&v.Notes, &v.CreatedBy, &v.CreatedAt)
		return v, err
	}, `
		SELECT id, patient_id, recorded_at,
			systolic_bp, diastolic_bp, heart_rate, respiratory_rate, oxygen_saturation,
			temperature_c, weight_kg, height_cm,
			notes, created_by, created_at
		FROM vitals
		WHERE patient_id = $1 AND recorded_at BETWEEN $2 AND $3
		ORDER BY recorded_at DESC, id ASC
	`, patientID, rg.From, rg.To)
}

// --- lab results

func (r *RecordsRepo) CreateLabResult(ctx context.Context, l records.LabResult) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO lab_results (
			id, patient_id, test_name, value, unit, reference_range, status,
			laboratory, collected_at, notes, created_by, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		l.ID, l.PatientID, l.TestName, l.Value, l.Unit, l.ReferenceRange, string(l.Status),
		l.Laboratory, l.CollectedAt, l.Notes, l.CreatedBy, l.CreatedAt,
	)
	return err
}

func (r *RecordsRepo) ListLabResults(ctx context.Context, patientID string, rg records.Range) ([]records.LabResult, error) {
	return queryRows(ctx, r.db, func(row rowScanner) (records.LabResult, error) {
		var l records.LabResult
		var status string
		err := row.Scan(&l.ID, &l.PatientID, &l.TestName, &l.Value, &l.Unit, &l.ReferenceRange, &status,
			&l.Laboratory, &l.CollectedAt, &l.Notes, &l.CreatedBy, &l.CreatedAt)
		l.Status = records.LabStatus(status)
		return l, err
	}, `
		SELECT id, patient_id, test_name, value, unit, reference_range, status,
			laboratory, collected_at, notes, created_by, created_at
		FROM lab_results
		WHERE patient_id = $1 AND collected_at BETWEEN $2 AND $3
		ORDER BY collected_at DESC, id ASC
	`, patientID, rg.From, rg.To)
}

// --- notes

func (r *RecordsRepo) CreateNote(ctx context.Context, n records.Note) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clinical_notes (
			id, patient_id, title, body, category, written_at, created_by, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		n.ID, n.PatientID, n.Title, n.Body, n.Category, n.WrittenAt, n.CreatedBy, n.CreatedAt,
	)
	return err
}

func (r *RecordsRepo) ListNotes(ctx context.Context, patientID string, rg records.Range) ([]records.Note, error) {
	return queryRows(ctx, r.db, func(row rowScanner) (records.Note, error) {
		var n records.Note
		err := row.Scan(&n.ID, &n.PatientID, &n.Title, &n.Body, &n.Category, &n.WrittenAt, &n.CreatedBy, &n.CreatedAt)
		return n, err
	}, `
		SELECT id, patient_id, title, body, category, written_at, created_by, created_at
		FROM clinical_notes
		WHERE patient_id = $1 AND written_at BETWEEN $2 AND $3
		ORDER BY written_at DESC, id ASC
	`, patientID, rg.From, rg.To)
}
