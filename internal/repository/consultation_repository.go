package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caminhar/clinic-api/internal/domain"
)

// ConsultationRepository encapsulates consultation record persistence.
type ConsultationRepository interface {
	Create(ctx context.Context, record *domain.ConsultationRecord) error
	Update(ctx context.Context, record *domain.ConsultationRecord) error
	GetByID(ctx context.Context, id int64) (*domain.ConsultationRecord, error)
	List(ctx context.Context) ([]domain.ConsultationRecord, error)
	Delete(ctx context.Context, id int64) error
	CountByDate(ctx context.Context, day time.Time) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

type consultationRepository struct {
	pool *pgxpool.Pool
}

// NewConsultationRepository instantiates the repository.
func NewConsultationRepository(pool *pgxpool.Pool) ConsultationRepository {
	return &consultationRepository{pool: pool}
}

func (r *consultationRepository) Create(ctx context.Context, record *domain.ConsultationRecord) error {
	const query = `
        INSERT INTO consultation_records (consultation, symptoms, diagnosis, exams, recorded_at)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		record.Consultation,
		record.Symptoms,
		record.Diagnosis,
		record.Exams,
		record.RecordedAt,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
}

func (r *consultationRepository) Update(ctx context.Context, record *domain.ConsultationRecord) error {
	const query = `
        UPDATE consultation_records SET consultation=$1, symptoms=$2, diagnosis=$3, exams=$4,
            recorded_at=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		record.Consultation,
		record.Symptoms,
		record.Diagnosis,
		record.Exams,
		record.RecordedAt,
		record.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *consultationRepository) GetByID(ctx context.Context, id int64) (*domain.ConsultationRecord, error) {
	const query = `
        SELECT id, consultation, symptoms, diagnosis, exams, recorded_at, created_at, updated_at
        FROM consultation_records WHERE id=$1`

	var record domain.ConsultationRecord
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&record.ID,
		&record.Consultation,
		&record.Symptoms,
		&record.Diagnosis,
		&record.Exams,
		&record.RecordedAt,
		&record.CreatedAt,
		&record.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *consultationRepository) List(ctx context.Context) ([]domain.ConsultationRecord, error) {
	const query = `
        SELECT id, consultation, symptoms, diagnosis, exams, recorded_at, created_at, updated_at
        FROM consultation_records ORDER BY recorded_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.ConsultationRecord
	for rows.Next() {
		var record domain.ConsultationRecord
		if err := rows.Scan(
			&record.ID,
			&record.Consultation,
			&record.Symptoms,
			&record.Diagnosis,
			&record.Exams,
			&record.RecordedAt,
			&record.CreatedAt,
			&record.UpdatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (r *consultationRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM consultation_records WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *consultationRepository) CountByDate(ctx context.Context, day time.Time) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM consultation_records WHERE recorded_at = $1::date`,
		day,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *consultationRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM consultation_records WHERE recorded_at >= $1::date`,
		since,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
