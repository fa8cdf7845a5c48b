package payroll

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/staffcore/payroll-backend-go/internal/pkg/validator"
)

type GenerateRunRequest struct {
	PeriodMonth int `json:"month"`
	PeriodYear  int `json:"year"`
}

func (r *GenerateRunRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(r.PeriodMonth) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if !validator.IsValidYear(r.PeriodYear) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a four-digit year"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RunResponse struct {
	ID          string  `json:"id"`
	PeriodMonth int     `json:"month"`
	PeriodYear  int     `json:"year"`
	Status      string  `json:"status"`
	CreatedBy   string  `json:"created_by"`
	CreatedAt   string  `json:"created_at"`
	ApprovedBy  *string `json:"approved_by,omitempty"`
	ApprovedAt  *string `json:"approved_at,omitempty"`
	LockedBy    *string `json:"locked_by,omitempty"`
	LockedAt    *string `json:"locked_at,omitempty"`

	TotalStaff      int             `json:"total_staff"`
	TotalGross      decimal.Decimal `json:"total_gross"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNet        decimal.Decimal `json:"total_net"`
}

type PayslipResponse struct {
	StaffID     string `json:"staff_id"`
	StaffName   string `json:"staff_name"`
	Department  string `json:"department"`
	Position    string `json:"position"`
	PeriodMonth int    `json:"month"`
	PeriodYear  int    `json:"year"`

	Gross         decimal.Decimal `json:"gross"`
	DailyRate     decimal.Decimal `json:"daily_rate"`
	TenureMonths  int             `json:"tenure_months"`
	TenureBracket string          `json:"tenure_bracket"`

	PermissionAbsences    int             `json:"permission_absences"`
	NoPermissionAbsences  int             `json:"no_permission_absences"`
	AbsenceDeduction      decimal.Decimal `json:"absence_deduction"`
	LatenessCount         int             `json:"lateness_count"`
	LatenessPenaltyDays   int             `json:"lateness_penalty_days"`
	LatenessDeduction     decimal.Decimal `json:"lateness_deduction"`
	ManualDeductionsTotal decimal.Decimal `json:"manual_deductions_total"`
	SurchargeTotal        decimal.Decimal `json:"surcharge_total"`
	QueryPenaltyDays      int             `json:"query_penalty_days"`
	QueryPenaltyDeduction decimal.Decimal `json:"query_penalty_deduction"`
	MealTicketTotal       decimal.Decimal `json:"meal_ticket_total"`
	BankCharge            decimal.Decimal `json:"bank_charge"`
	WaterRate             decimal.Decimal `json:"water_rate"`
	EstablishedStatutory  decimal.Decimal `json:"established_statutory"`
	NewStaffStatutory     decimal.Decimal `json:"new_staff_statutory"`
	AllowancesTotal       decimal.Decimal `json:"allowances_total"`

	TotalDeductions decimal.Decimal `json:"total_deductions"`
	Net             decimal.Decimal `json:"net"`
}

func ToRunResponse(run PayrollRun) RunResponse {
	return RunResponse{
		ID:              run.ID,
		PeriodMonth:     run.PeriodMonth,
		PeriodYear:      run.PeriodYear,
		Status:          string(run.Status),
		CreatedBy:       run.CreatedBy,
		CreatedAt:       run.CreatedAt.Format(time.RFC3339),
		ApprovedBy:      run.ApprovedBy,
		ApprovedAt:      formatTimePtr(run.ApprovedAt),
		LockedBy:        run.LockedBy,
		LockedAt:        formatTimePtr(run.LockedAt),
		TotalStaff:      run.TotalStaff,
		TotalGross:      run.TotalGross,
		TotalDeductions: run.TotalDeductions,
		TotalNet:        run.TotalNet,
	}
}

func ToRunResponses(runs []PayrollRun) []RunResponse {
	result := make([]RunResponse, 0, len(runs))
	for _, run := range runs {
		result = append(result, ToRunResponse(run))
	}
	return result
}

func ToPayslipResponse(p Payslip) PayslipResponse {
	return PayslipResponse{
		StaffID:               p.StaffID,
		StaffName:             p.StaffName,
		Department:            p.Department,
		Position:              p.Position,
		PeriodMonth:           p.PeriodMonth,
		PeriodYear:            p.PeriodYear,
		Gross:                 p.Gross,
		DailyRate:             p.DailyRate,
		TenureMonths:          p.TenureMonths,
		TenureBracket:         string(p.TenureBracket),
		PermissionAbsences:    p.PermissionAbsences,
		NoPermissionAbsences:  p.NoPermissionAbsences,
		AbsenceDeduction:      p.AbsenceDeduction,
		LatenessCount:         p.LatenessCount,
		LatenessPenaltyDays:   p.LatenessPenaltyDays,
		LatenessDeduction:     p.LatenessDeduction,
		ManualDeductionsTotal: p.ManualDeductionsTotal,
		SurchargeTotal:        p.SurchargeTotal,
		QueryPenaltyDays:      p.QueryPenaltyDays,
		QueryPenaltyDeduction: p.QueryPenaltyDeduction,
		MealTicketTotal:       p.MealTicketTotal,
		BankCharge:            p.BankCharge,
		WaterRate:             p.WaterRate,
		EstablishedStatutory:  p.EstablishedStatutory,
		NewStaffStatutory:     p.NewStaffStatutory,
		AllowancesTotal:       p.AllowancesTotal,
		TotalDeductions:       p.TotalDeductions(),
		Net:                   p.Net,
	}
}

func ToPayslipResponses(slips []Payslip) []PayslipResponse {
	result := make([]PayslipResponse, 0, len(slips))
	for _, p := range slips {
		result = append(result, ToPayslipResponse(p))
	}
	return result
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	str := t.Format(time.RFC3339)
	return &str
}
