package payroll

import "context"

// RunService orchestrates roster-wide generation and the run lifecycle.
type RunService interface {
	Generate(ctx context.Context, req GenerateRunRequest, actor string) (RunResponse, error)
	GetRun(ctx context.Context, id string) (RunResponse, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]RunResponse, error)
	// ListRunPayslips reads the per-staff snapshot captured at generation.
	ListRunPayslips(ctx context.Context, runID string) ([]PayslipResponse, error)
	Approve(ctx context.Context, id string, actor string) (RunResponse, error)
	Lock(ctx context.Context, id string, actor string) (RunResponse, error)
	Reject(ctx context.Context, id string) (RunResponse, error)
	Delete(ctx context.Context, id string) error
}

// PayslipService computes a single staff member's payslip live from current
// salary and ledger state.
type PayslipService interface {
	ComputePayslip(ctx context.Context, staffID string, month, year int) (PayslipResponse, error)
}
