package postgresql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/staffcore/payroll-backend-go/internal/domain/payroll"
)

type stubRow struct {
	scanFn func(dest ...interface{}) error
}

func (s stubRow) Scan(dest ...interface{}) error {
	return s.scanFn(dest...)
}

func TestScanRun_NoRows(t *testing.T) {
	t.Parallel()

	row := stubRow{scanFn: func(dest ...interface{}) error {
		return pgx.ErrNoRows
	}}

	_, err := scanRun(row)
	if !errors.Is(err, payroll.ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "uk_run_period"}
	if !isUniqueViolation(pgErr, "uk_run_period") {
		t.Fatalf("expected unique violation match")
	}
	if isUniqueViolation(pgErr, "uk_salary_staff_effective") {
		t.Fatalf("matched the wrong constraint")
	}
	if isUniqueViolation(errors.New("random"), "uk_run_period") {
		t.Fatalf("matched a non-pg error")
	}
}

var runRowColumns = []string{
	"id", "period_month", "period_year", "status", "created_by", "created_at",
	"approved_by", "approved_at", "locked_by", "locked_at",
	"total_staff", "total_gross", "total_deductions", "total_net", "updated_at",
}

func draftRunRow(id string, status payroll.RunStatus) *pgxmock.Rows {
	now := time.Now().UTC()
	return pgxmock.NewRows(runRowColumns).AddRow(
		id, 5, 2025, status, "hr.manager", now,
		nil, nil, nil, nil,
		2, decimal.NewFromInt(243000), decimal.RequireFromString("3509.68"), decimal.RequireFromString("239490.32"), now,
	)
}

func TestRunRepository_GetRunByID(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewRunRepository(nil)
	ctx := WithQuerier(context.Background(), mock)

	mock.ExpectQuery(`SELECT .+ FROM payroll_runs WHERE id = \$1`).
		WithArgs("run-1").
		WillReturnRows(draftRunRow("run-1", payroll.RunStatusDraft))

	run, err := repo.GetRunByID(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetRunByID returned error: %v", err)
	}
	if run.ID != "run-1" || run.Status != payroll.RunStatusDraft {
		t.Fatalf("unexpected run %+v", run)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRunRepository_Approve(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewRunRepository(nil)
	ctx := WithQuerier(context.Background(), mock)

	mock.ExpectQuery(`UPDATE payroll_runs`).
		WithArgs("run-1", "hr.head", payroll.RunStatusApproved, payroll.RunStatusDraft).
		WillReturnRows(draftRunRow("run-1", payroll.RunStatusApproved))

	run, err := repo.Approve(ctx, "run-1", "hr.head")
	if err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}
	if run.Status != payroll.RunStatusApproved {
		t.Fatalf("expected approved status, got %s", run.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRunRepository_Approve_WrongStatus(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewRunRepository(nil)
	ctx := WithQuerier(context.Background(), mock)

	// The guarded update matches no rows; the follow-up read finds the run in
	// a non-draft status.
	mock.ExpectQuery(`UPDATE payroll_runs`).
		WithArgs("run-1", "hr.head", payroll.RunStatusApproved, payroll.RunStatusDraft).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`SELECT .+ FROM payroll_runs WHERE id = \$1`).
		WithArgs("run-1").
		WillReturnRows(draftRunRow("run-1", payroll.RunStatusApproved))

	_, err = repo.Approve(ctx, "run-1", "hr.head")
	if !errors.Is(err, payroll.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRunRepository_Approve_Locked(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewRunRepository(nil)
	ctx := WithQuerier(context.Background(), mock)

	// A terminal run surfaces ErrRunLocked rather than the generic
	// transition error.
	mock.ExpectQuery(`UPDATE payroll_runs`).
		WithArgs("run-1", "hr.head", payroll.RunStatusApproved, payroll.RunStatusDraft).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`SELECT .+ FROM payroll_runs WHERE id = \$1`).
		WithArgs("run-1").
		WillReturnRows(draftRunRow("run-1", payroll.RunStatusLocked))

	_, err = repo.Approve(ctx, "run-1", "hr.head")
	if !errors.Is(err, payroll.ErrRunLocked) {
		t.Fatalf("expected ErrRunLocked, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRunRepository_Approve_Missing(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewRunRepository(nil)
	ctx := WithQuerier(context.Background(), mock)

	mock.ExpectQuery(`UPDATE payroll_runs`).
		WithArgs("run-1", "hr.head", payroll.RunStatusApproved, payroll.RunStatusDraft).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`SELECT .+ FROM payroll_runs WHERE id = \$1`).
		WithArgs("run-1").
		WillReturnError(pgx.ErrNoRows)

	_, err = repo.Approve(ctx, "run-1", "hr.head")
	if !errors.Is(err, payroll.ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRunRepository_DeleteRun_WrongStatus(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewRunRepository(nil)
	ctx := WithQuerier(context.Background(), mock)

	mock.ExpectQuery(`DELETE FROM payroll_runs WHERE id = \$1 AND status = \$2 RETURNING id`).
		WithArgs("run-1", payroll.RunStatusDraft).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`SELECT .+ FROM payroll_runs WHERE id = \$1`).
		WithArgs("run-1").
		WillReturnRows(draftRunRow("run-1", payroll.RunStatusLocked))

	err = repo.DeleteRun(ctx, "run-1")
	if !errors.Is(err, payroll.ErrRunLocked) {
		t.Fatalf("expected ErrRunLocked, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
