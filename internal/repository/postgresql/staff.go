package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/staffcore/payroll-backend-go/internal/domain/staff"
	"github.com/staffcore/payroll-backend-go/internal/pkg/database"
)

type staffRepository struct {
	db *database.DB
}

func NewStaffRepository(db *database.DB) staff.StaffRepository {
	return &staffRepository{db: db}
}

const staffColumns = `id, full_name, department, position, status, resumption_date, last_active_date, created_at, updated_at`

func scanStaff(row pgx.Row) (staff.Staff, error) {
	var s staff.Staff
	err := row.Scan(
		&s.ID, &s.FullName, &s.Department, &s.Position, &s.Status,
		&s.ResumptionDate, &s.LastActiveDate, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return staff.Staff{}, staff.ErrStaffNotFound
		}
		return staff.Staff{}, fmt.Errorf("failed to scan staff: %w", err)
	}
	return s, nil
}

func (r *staffRepository) Create(ctx context.Context, s staff.Staff) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return staff.Staff{}, fmt.Errorf("failed to generate staff id: %w", err)
	}

	query := `
		INSERT INTO staff (id, full_name, department, position, status, resumption_date, last_active_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + staffColumns

	return scanStaff(q.QueryRow(ctx, query,
		id.String(), s.FullName, s.Department, s.Position, s.Status, s.ResumptionDate, s.LastActiveDate,
	))
}

func (r *staffRepository) GetByID(ctx context.Context, id string) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + staffColumns + ` FROM staff WHERE id = $1`
	return scanStaff(q.QueryRow(ctx, query, id))
}

func (r *staffRepository) List(ctx context.Context, filter staff.ListFilter) ([]staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + staffColumns + ` FROM staff WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Department != nil {
		query += fmt.Sprintf(" AND department = $%d", argIdx)
		args = append(args, *filter.Department)
		argIdx++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	query += " ORDER BY full_name"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	defer rows.Close()

	return collectStaff(rows)
}

func (r *staffRepository) GetActive(ctx context.Context) ([]staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + staffColumns + ` FROM staff WHERE status = $1 ORDER BY full_name`
	rows, err := q.Query(ctx, query, staff.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to get active staff: %w", err)
	}
	defer rows.Close()

	return collectStaff(rows)
}

func (r *staffRepository) UpdateStatus(ctx context.Context, id string, req staff.UpdateStatusRequest) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	var lastActive *time.Time
	if req.Status == string(staff.StatusInactive) && req.LastActiveDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.LastActiveDate)
		if err == nil {
			lastActive = &parsed
		}
	}

	// Reactivation clears the last active date.
	query := `
		UPDATE staff
		SET status = $2, last_active_date = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + staffColumns

	return scanStaff(q.QueryRow(ctx, query, id, req.Status, lastActive))
}

func collectStaff(rows pgx.Rows) ([]staff.Staff, error) {
	var members []staff.Staff
	for rows.Next() {
		var s staff.Staff
		if err := rows.Scan(
			&s.ID, &s.FullName, &s.Department, &s.Position, &s.Status,
			&s.ResumptionDate, &s.LastActiveDate, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan staff: %w", err)
		}
		members = append(members, s)
	}
	return members, rows.Err()
}
