package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// RunStatus enum
type RunStatus string

const (
	RunStatusDraft    RunStatus = "draft"
	RunStatusApproved RunStatus = "approved"
	RunStatusLocked   RunStatus = "locked"
)

// transitions is the authoritative run state machine. Locked has no outgoing
// edges: a locked run can never be changed, deleted, or regenerated.
var transitions = map[RunStatus][]RunStatus{
	RunStatusDraft:    {RunStatusApproved},
	RunStatusApproved: {RunStatusLocked, RunStatusDraft},
	RunStatusLocked:   {},
}

// CanTransitionTo reports whether the edge from s to target exists.
func (s RunStatus) CanTransitionTo(target RunStatus) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no edge leaves s.
func (s RunStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// TransitionSource returns the status a run must currently hold for the edge
// into target. Every target in the table has exactly one inbound edge, so
// repositories derive their guarded-update preconditions from here instead of
// restating the edges.
func TransitionSource(target RunStatus) (RunStatus, bool) {
	for from, nexts := range transitions {
		for _, next := range nexts {
			if next == target {
				return from, true
			}
		}
	}
	return "", false
}

// PayrollRun is one generated payroll for a (month, year) period. At most one
// run exists per period at any time.
type PayrollRun struct {
	ID          string
	PeriodMonth int
	PeriodYear  int
	Status      RunStatus

	CreatedBy  string
	CreatedAt  time.Time
	ApprovedBy *string
	ApprovedAt *time.Time
	LockedBy   *string
	LockedAt   *time.Time

	TotalStaff      int
	TotalGross      decimal.Decimal
	TotalDeductions decimal.Decimal
	TotalNet        decimal.Decimal

	UpdatedAt time.Time
}

// TenureBracket selects between the two statutory charge regimes.
type TenureBracket string

const (
	// TenureNew covers a staff member's first and second calendar month.
	TenureNew TenureBracket = "new"
	// TenureEstablished covers everyone past their second calendar month.
	TenureEstablished TenureBracket = "established"
)

// Payslip is one staff member's fully itemized computation result for a
// period. It is a pure projection of its inputs: recomputing from identical
// inputs yields identical payslips.
type Payslip struct {
	StaffID     string
	StaffName   string
	Department  string
	Position    string
	PeriodMonth int
	PeriodYear  int

	Gross     decimal.Decimal // after mid-period prorating
	DailyRate decimal.Decimal

	TenureMonths  int
	TenureBracket TenureBracket

	PermissionAbsences    int
	NoPermissionAbsences  int
	AbsenceDeduction      decimal.Decimal
	LatenessCount         int
	LatenessPenaltyDays   int
	LatenessDeduction     decimal.Decimal
	ManualDeductionsTotal decimal.Decimal
	SurchargeTotal        decimal.Decimal
	QueryPenaltyDays      int
	QueryPenaltyDeduction decimal.Decimal
	MealTicketTotal       decimal.Decimal
	BankCharge            decimal.Decimal
	WaterRate             decimal.Decimal
	EstablishedStatutory  decimal.Decimal
	NewStaffStatutory     decimal.Decimal
	AllowancesTotal       decimal.Decimal

	Net decimal.Decimal
}

// TotalDeductions is the payslip's gross-to-net gap.
func (p Payslip) TotalDeductions() decimal.Decimal {
	return p.Gross.Sub(p.Net)
}

// DefaultChargesTotal is the flat charge bundle applied to established staff.
func (p Payslip) DefaultChargesTotal() decimal.Decimal {
	return p.BankCharge.Add(p.WaterRate).Add(p.EstablishedStatutory)
}

// RunLine is a Payslip snapshotted at generation time, owned by a run.
// Run-scoped payslip views read these lines rather than recomputing from
// live ledger data, so they always agree with the run's aggregate totals.
type RunLine struct {
	ID        string
	RunID     string
	Payslip   Payslip
	CreatedAt time.Time
}
