package salary

import (
	"github.com/shopspring/decimal"
	"github.com/staffcore/payroll-backend-go/internal/pkg/validator"
)

type CreateSalaryRecordRequest struct {
	StaffID       string          `json:"-"`
	MonthlyGross  decimal.Decimal `json:"monthly_gross"`
	EffectiveFrom string          `json:"effective_from"`
}

func (r *CreateSalaryRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.MonthlyGross.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "monthly_gross", Message: "must be non-negative"})
	}
	if _, ok := validator.IsValidDate(r.EffectiveFrom); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_from", Message: "must be a YYYY-MM-DD date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SalaryRecordResponse struct {
	ID            string          `json:"id"`
	StaffID       string          `json:"staff_id"`
	MonthlyGross  decimal.Decimal `json:"monthly_gross"`
	EffectiveFrom string          `json:"effective_from"`
}

func ToResponse(rec SalaryRecord) SalaryRecordResponse {
	return SalaryRecordResponse{
		ID:            rec.ID,
		StaffID:       rec.StaffID,
		MonthlyGross:  rec.MonthlyGross,
		EffectiveFrom: rec.EffectiveFrom.Format("2006-01-02"),
	}
}
