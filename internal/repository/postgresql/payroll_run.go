package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/staffcore/payroll-backend-go/internal/domain/payroll"
	"github.com/staffcore/payroll-backend-go/internal/pkg/database"
)

type runRepository struct {
	db *database.DB
}

func NewRunRepository(db *database.DB) payroll.RunRepository {
	return &runRepository{db: db}
}

const runColumns = `id, period_month, period_year, status, created_by, created_at,
	approved_by, approved_at, locked_by, locked_at,
	total_staff, total_gross, total_deductions, total_net, updated_at`

func scanRun(row pgx.Row) (payroll.PayrollRun, error) {
	var run payroll.PayrollRun
	err := row.Scan(
		&run.ID, &run.PeriodMonth, &run.PeriodYear, &run.Status, &run.CreatedBy, &run.CreatedAt,
		&run.ApprovedBy, &run.ApprovedAt, &run.LockedBy, &run.LockedAt,
		&run.TotalStaff, &run.TotalGross, &run.TotalDeductions, &run.TotalNet, &run.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRun{}, payroll.ErrRunNotFound
		}
		return payroll.PayrollRun{}, fmt.Errorf("failed to scan payroll run: %w", err)
	}
	return run, nil
}

// CreateRun inserts the run and its snapshot lines in one transaction, so a
// cancelled or failed generate leaves nothing visible. The period uniqueness
// precondition is the uk_run_period constraint: the insert either wins it or
// surfaces ErrRunAlreadyExists, with no check-then-create window.
func (r *runRepository) CreateRun(ctx context.Context, run payroll.PayrollRun, lines []payroll.Payslip) (payroll.PayrollRun, error) {
	var created payroll.PayrollRun

	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		runID, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate run id: %w", err)
		}

		query := `
			INSERT INTO payroll_runs (id, period_month, period_year, status, created_by,
				total_staff, total_gross, total_deductions, total_net)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING ` + runColumns

		created, err = scanRun(q.QueryRow(ctx, query,
			runID.String(), run.PeriodMonth, run.PeriodYear, run.Status, run.CreatedBy,
			run.TotalStaff, run.TotalGross, run.TotalDeductions, run.TotalNet,
		))
		if err != nil {
			if isUniqueViolation(err, "uk_run_period") {
				return payroll.ErrRunAlreadyExists
			}
			return err
		}

		for _, slip := range lines {
			if err := insertRunLine(ctx, q, created.ID, slip); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return payroll.PayrollRun{}, err
	}

	return created, nil
}

func insertRunLine(ctx context.Context, q database.Querier, runID string, slip payroll.Payslip) error {
	lineID, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate run line id: %w", err)
	}

	query := `
		INSERT INTO payroll_run_lines (id, run_id, staff_id, staff_name, department, position,
			gross, daily_rate, tenure_months, tenure_bracket,
			permission_absences, no_permission_absences, absence_deduction,
			lateness_count, lateness_penalty_days, lateness_deduction,
			manual_deductions_total, surcharge_total, query_penalty_days, query_penalty_deduction,
			meal_ticket_total, bank_charge, water_rate, established_statutory, new_staff_statutory,
			allowances_total, net)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)
	`

	_, err = q.Exec(ctx, query,
		lineID.String(), runID, slip.StaffID, slip.StaffName, slip.Department, slip.Position,
		slip.Gross, slip.DailyRate, slip.TenureMonths, slip.TenureBracket,
		slip.PermissionAbsences, slip.NoPermissionAbsences, slip.AbsenceDeduction,
		slip.LatenessCount, slip.LatenessPenaltyDays, slip.LatenessDeduction,
		slip.ManualDeductionsTotal, slip.SurchargeTotal, slip.QueryPenaltyDays, slip.QueryPenaltyDeduction,
		slip.MealTicketTotal, slip.BankCharge, slip.WaterRate, slip.EstablishedStatutory, slip.NewStaffStatutory,
		slip.AllowancesTotal, slip.Net,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run line for staff %s: %w", slip.StaffID, err)
	}

	return nil
}

func (r *runRepository) GetRunByID(ctx context.Context, id string) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + runColumns + ` FROM payroll_runs WHERE id = $1`
	return scanRun(q.QueryRow(ctx, query, id))
}

func (r *runRepository) ListRuns(ctx context.Context, filter payroll.RunFilter) ([]payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + runColumns + ` FROM payroll_runs WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.PeriodYear != nil {
		query += fmt.Sprintf(" AND period_year = $%d", argIdx)
		args = append(args, *filter.PeriodYear)
		argIdx++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	query += " ORDER BY period_year DESC, period_month DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll runs: %w", err)
	}
	defer rows.Close()

	var runs []payroll.PayrollRun
	for rows.Next() {
		var run payroll.PayrollRun
		if err := rows.Scan(
			&run.ID, &run.PeriodMonth, &run.PeriodYear, &run.Status, &run.CreatedBy, &run.CreatedAt,
			&run.ApprovedBy, &run.ApprovedAt, &run.LockedBy, &run.LockedAt,
			&run.TotalStaff, &run.TotalGross, &run.TotalDeductions, &run.TotalNet, &run.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func (r *runRepository) ListRunLines(ctx context.Context, runID string) ([]payroll.RunLine, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, l.run_id, l.staff_id, l.staff_name, l.department, l.position,
			r.period_month, r.period_year,
			l.gross, l.daily_rate, l.tenure_months, l.tenure_bracket,
			l.permission_absences, l.no_permission_absences, l.absence_deduction,
			l.lateness_count, l.lateness_penalty_days, l.lateness_deduction,
			l.manual_deductions_total, l.surcharge_total, l.query_penalty_days, l.query_penalty_deduction,
			l.meal_ticket_total, l.bank_charge, l.water_rate, l.established_statutory, l.new_staff_statutory,
			l.allowances_total, l.net, l.created_at
		FROM payroll_run_lines l
		JOIN payroll_runs r ON l.run_id = r.id
		WHERE l.run_id = $1
		ORDER BY l.staff_name
	`

	rows, err := q.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list run lines: %w", err)
	}
	defer rows.Close()

	var lines []payroll.RunLine
	for rows.Next() {
		var line payroll.RunLine
		slip := &line.Payslip
		if err := rows.Scan(
			&line.ID, &line.RunID, &slip.StaffID, &slip.StaffName, &slip.Department, &slip.Position,
			&slip.PeriodMonth, &slip.PeriodYear,
			&slip.Gross, &slip.DailyRate, &slip.TenureMonths, &slip.TenureBracket,
			&slip.PermissionAbsences, &slip.NoPermissionAbsences, &slip.AbsenceDeduction,
			&slip.LatenessCount, &slip.LatenessPenaltyDays, &slip.LatenessDeduction,
			&slip.ManualDeductionsTotal, &slip.SurchargeTotal, &slip.QueryPenaltyDays, &slip.QueryPenaltyDeduction,
			&slip.MealTicketTotal, &slip.BankCharge, &slip.WaterRate, &slip.EstablishedStatutory, &slip.NewStaffStatutory,
			&slip.AllowancesTotal, &slip.Net, &line.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run line: %w", err)
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}

// Transition statements re-verify the source status in the same UPDATE that
// mutates it. Of two concurrent callers racing from the same stale status,
// exactly one matches the row; the other falls through to resolveTransitionErr.

func (r *runRepository) Approve(ctx context.Context, id string, actor string) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_runs
		SET status = $3, approved_by = $2, approved_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = $4
		RETURNING ` + runColumns

	from, _ := payroll.TransitionSource(payroll.RunStatusApproved)
	run, err := scanRun(q.QueryRow(ctx, query, id, actor, payroll.RunStatusApproved, from))
	if err != nil {
		return payroll.PayrollRun{}, r.resolveTransitionErr(ctx, id, err)
	}
	return run, nil
}

func (r *runRepository) Lock(ctx context.Context, id string, actor string) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_runs
		SET status = $3, locked_by = $2, locked_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = $4
		RETURNING ` + runColumns

	from, _ := payroll.TransitionSource(payroll.RunStatusLocked)
	run, err := scanRun(q.QueryRow(ctx, query, id, actor, payroll.RunStatusLocked, from))
	if err != nil {
		return payroll.PayrollRun{}, r.resolveTransitionErr(ctx, id, err)
	}
	return run, nil
}

func (r *runRepository) Reject(ctx context.Context, id string) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_runs
		SET status = $2, approved_by = NULL, approved_at = NULL, updated_at = NOW()
		WHERE id = $1 AND status = $3
		RETURNING ` + runColumns

	from, _ := payroll.TransitionSource(payroll.RunStatusDraft)
	run, err := scanRun(q.QueryRow(ctx, query, id, payroll.RunStatusDraft, from))
	if err != nil {
		return payroll.PayrollRun{}, r.resolveTransitionErr(ctx, id, err)
	}
	return run, nil
}

func (r *runRepository) DeleteRun(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	// Lines cascade via FK.
	query := `DELETE FROM payroll_runs WHERE id = $1 AND status = $2 RETURNING id`

	var deletedID string
	err := q.QueryRow(ctx, query, id, payroll.RunStatusDraft).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return r.resolveTransitionErr(ctx, id, payroll.ErrRunNotFound)
		}
		return fmt.Errorf("failed to delete payroll run: %w", err)
	}

	return nil
}

// resolveTransitionErr distinguishes "run missing" from "run in the wrong
// status" after a guarded statement matched no rows.
func (r *runRepository) resolveTransitionErr(ctx context.Context, id string, cause error) error {
	if !errors.Is(cause, payroll.ErrRunNotFound) {
		return cause
	}
	run, err := r.GetRunByID(ctx, id)
	if err != nil {
		return err
	}
	if run.Status.IsTerminal() {
		return payroll.ErrRunLocked
	}
	return payroll.ErrInvalidTransition
}
