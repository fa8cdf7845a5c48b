package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/staffcore/payroll-backend-go/internal/domain/attendance"
	"github.com/staffcore/payroll-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const eventColumns = `id, staff_id, kind, event_date, absence_type, surcharge_amount, penalty_days, amount, category, reason, note, created_at`

func (r *attendanceRepository) Create(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Event{}, fmt.Errorf("failed to generate event id: %w", err)
	}

	query := `
		INSERT INTO attendance_events (id, staff_id, kind, event_date, absence_type, surcharge_amount, penalty_days, amount, category, reason, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + eventColumns

	var ev attendance.Event
	err = q.QueryRow(ctx, query,
		id.String(), event.StaffID, event.Kind, event.Date, event.AbsenceType,
		event.SurchargeAmount, event.PenaltyDays, event.Amount, event.Category, event.Reason, event.Note,
	).Scan(
		&ev.ID, &ev.StaffID, &ev.Kind, &ev.Date, &ev.AbsenceType,
		&ev.SurchargeAmount, &ev.PenaltyDays, &ev.Amount, &ev.Category, &ev.Reason, &ev.Note, &ev.CreatedAt,
	)
	if err != nil {
		return attendance.Event{}, fmt.Errorf("failed to create attendance event: %w", err)
	}

	return ev, nil
}

func (r *attendanceRepository) ListByStaffPeriod(ctx context.Context, staffID string, month, year int) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM attendance_events
		WHERE staff_id = $1
			AND EXTRACT(MONTH FROM event_date) = $2
			AND EXTRACT(YEAR FROM event_date) = $3
		ORDER BY event_date, created_at
	`

	rows, err := q.Query(ctx, query, staffID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}
	defer rows.Close()

	var events []attendance.Event
	for rows.Next() {
		var ev attendance.Event
		if err := rows.Scan(
			&ev.ID, &ev.StaffID, &ev.Kind, &ev.Date, &ev.AbsenceType,
			&ev.SurchargeAmount, &ev.PenaltyDays, &ev.Amount, &ev.Category, &ev.Reason, &ev.Note, &ev.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, ev)
	}

	return events, rows.Err()
}
