package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caminhar/clinic-api/internal/domain"
)

// PatientRepository encapsulates patient persistence.
type PatientRepository interface {
	Create(ctx context.Context, patient *domain.Patient) error
	Update(ctx context.Context, patient *domain.Patient) error
	GetByID(ctx context.Context, id int64) (*domain.Patient, error)
	List(ctx context.Context) ([]domain.Patient, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type patientRepository struct {
	pool *pgxpool.Pool
}

// NewPatientRepository instantiates the repository.
func NewPatientRepository(pool *pgxpool.Pool) PatientRepository {
	return &patientRepository{pool: pool}
}

func (r *patientRepository) Create(ctx context.Context, patient *domain.Patient) error {
	const query = `
        INSERT INTO patients (name, cpf, birth_date, postal_code, phone, address, notes, deceased)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		patient.Name,
		patient.CPF,
		patient.BirthDate,
		patient.PostalCode,
		patient.Phone,
		patient.Address,
		patient.Notes,
		patient.Deceased,
	).Scan(&patient.ID, &patient.CreatedAt, &patient.UpdatedAt)
}

func (r *patientRepository) Update(ctx context.Context, patient *domain.Patient) error {
	const query = `
        UPDATE patients SET name=$1, cpf=$2, birth_date=$3, postal_code=$4, phone=$5,
            address=$6, notes=$7, deceased=$8, updated_at=NOW()
        WHERE id=$9`
	cmd, err := r.pool.Exec(ctx, query,
		patient.Name,
		patient.CPF,
		patient.BirthDate,
		patient.PostalCode,
		patient.Phone,
		patient.Address,
		patient.Notes,
		patient.Deceased,
		patient.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *patientRepository) GetByID(ctx context.Context, id int64) (*domain.Patient, error) {
	const query = `
        SELECT id, name, cpf, birth_date, postal_code, phone, address, notes, deceased, created_at, updated_at
        FROM patients WHERE id=$1`

	var patient domain.Patient
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&patient.ID,
		&patient.Name,
		&patient.CPF,
		&patient.BirthDate,
		&patient.PostalCode,
		&patient.Phone,
		&patient.Address,
		&patient.Notes,
		&patient.Deceased,
		&patient.CreatedAt,
		&patient.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context) ([]domain.Patient, error) {
	const query = `
        SELECT id, name, cpf, birth_date, postal_code, phone, address, notes, deceased, created_at, updated_at
        FROM patients ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var patients []domain.Patient
	for rows.Next() {
		var patient domain.Patient
		if err := rows.Scan(
			&patient.ID,
			&patient.Name,
			&patient.CPF,
			&patient.BirthDate,
			&patient.PostalCode,
			&patient.Phone,
			&patient.Address,
			&patient.Notes,
			&patient.Deceased,
			&patient.CreatedAt,
			&patient.UpdatedAt,
		); err != nil {
			return nil, err
		}
		patients = append(patients, patient)
	}
	return patients, rows.Err()
}

func (r *patientRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM patients WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *patientRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM patients`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
