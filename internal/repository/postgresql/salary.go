package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/staffcore/payroll-backend-go/internal/domain/salary"
	"github.com/staffcore/payroll-backend-go/internal/pkg/database"
)

type salaryRepository struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) salary.SalaryRepository {
	return &salaryRepository{db: db}
}

func (r *salaryRepository) Create(ctx context.Context, record salary.SalaryRecord) (salary.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return salary.SalaryRecord{}, fmt.Errorf("failed to generate salary record id: %w", err)
	}

	query := `
		INSERT INTO salary_records (id, staff_id, monthly_gross, effective_from)
		VALUES ($1, $2, $3, $4)
		RETURNING id, staff_id, monthly_gross, effective_from, created_at
	`

	var rec salary.SalaryRecord
	err = q.QueryRow(ctx, query, id.String(), record.StaffID, record.MonthlyGross, record.EffectiveFrom).Scan(
		&rec.ID, &rec.StaffID, &rec.MonthlyGross, &rec.EffectiveFrom, &rec.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "uk_salary_staff_effective") {
			return salary.SalaryRecord{}, salary.ErrDuplicateEffectiveDate
		}
		return salary.SalaryRecord{}, fmt.Errorf("failed to create salary record: %w", err)
	}

	return rec, nil
}

func (r *salaryRepository) ListByStaffID(ctx context.Context, staffID string) ([]salary.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, staff_id, monthly_gross, effective_from, created_at
		FROM salary_records
		WHERE staff_id = $1
		ORDER BY effective_from DESC
	`

	rows, err := q.Query(ctx, query, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary records: %w", err)
	}
	defer rows.Close()

	var records []salary.SalaryRecord
	for rows.Next() {
		var rec salary.SalaryRecord
		if err := rows.Scan(&rec.ID, &rec.StaffID, &rec.MonthlyGross, &rec.EffectiveFrom, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan salary record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (r *salaryRepository) GetEffective(ctx context.Context, staffID string, asOf time.Time) (salary.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, staff_id, monthly_gross, effective_from, created_at
		FROM salary_records
		WHERE staff_id = $1 AND effective_from <= $2
		ORDER BY effective_from DESC
		LIMIT 1
	`

	var rec salary.SalaryRecord
	err := q.QueryRow(ctx, query, staffID, asOf).Scan(
		&rec.ID, &rec.StaffID, &rec.MonthlyGross, &rec.EffectiveFrom, &rec.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.SalaryRecord{}, salary.ErrSalaryRecordNotFound
		}
		return salary.SalaryRecord{}, fmt.Errorf("failed to resolve effective salary: %w", err)
	}

	return rec, nil
}
