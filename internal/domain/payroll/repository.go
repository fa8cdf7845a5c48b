package payroll

import "context"

// RunRepository persists payroll runs and their snapshot lines.
//
// Transition methods take the expected source status and must re-verify it in
// the same statement that mutates, so two concurrent callers racing from the
// same stale status cannot both succeed: the statement matches zero rows for
// the loser, which the repository reports as ErrInvalidTransition (or
// ErrRunNotFound when the run does not exist at all).
type RunRepository interface {
	// CreateRun inserts the run and all of its lines atomically. A
	// (month, year) uniqueness violation surfaces as ErrRunAlreadyExists.
	CreateRun(ctx context.Context, run PayrollRun, lines []Payslip) (PayrollRun, error)

	GetRunByID(ctx context.Context, id string) (PayrollRun, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]PayrollRun, error)
	ListRunLines(ctx context.Context, runID string) ([]RunLine, error)

	Approve(ctx context.Context, id string, actor string) (PayrollRun, error)
	Lock(ctx context.Context, id string, actor string) (PayrollRun, error)
	Reject(ctx context.Context, id string) (PayrollRun, error)
	// DeleteRun removes a draft run and cascades its lines.
	DeleteRun(ctx context.Context, id string) error
}

type RunFilter struct {
	PeriodYear *int
	Status     *RunStatus
}
