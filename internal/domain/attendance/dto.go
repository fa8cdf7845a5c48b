package attendance

import (
	"github.com/shopspring/decimal"
	"github.com/staffcore/payroll-backend-go/internal/pkg/validator"
)

type RecordEventRequest struct {
	StaffID         string           `json:"-"`
	Kind            string           `json:"kind"`
	Date            string           `json:"date"`
	AbsenceType     *string          `json:"absence_type,omitempty"`
	SurchargeAmount *decimal.Decimal `json:"surcharge_amount,omitempty"`
	PenaltyDays     *int             `json:"penalty_days,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	Category        *string          `json:"category,omitempty"`
	Reason          *string          `json:"reason,omitempty"`
	Note            *string          `json:"note,omitempty"`
}

var validKinds = []string{
	string(KindLateness), string(KindAbsence), string(KindQuery),
	string(KindMealTicket), string(KindManualDeduction), string(KindAllowance),
}

func (r *RecordEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Kind, validKinds) {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "must be a known event kind"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a YYYY-MM-DD date"})
	}

	switch EventKind(r.Kind) {
	case KindAbsence:
		if r.AbsenceType == nil ||
			(*r.AbsenceType != string(AbsencePermission) && *r.AbsenceType != string(AbsenceNoPermission)) {
			errs = append(errs, validator.ValidationError{Field: "absence_type", Message: "must be 'permission' or 'no_permission'"})
		}
	case KindQuery:
		if r.SurchargeAmount == nil && r.PenaltyDays == nil {
			errs = append(errs, validator.ValidationError{Field: "surcharge_amount", Message: "query needs a surcharge amount or penalty days"})
		}
		if r.SurchargeAmount != nil && r.SurchargeAmount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "surcharge_amount", Message: "must be non-negative"})
		}
		if r.PenaltyDays != nil && *r.PenaltyDays < 0 {
			errs = append(errs, validator.ValidationError{Field: "penalty_days", Message: "must be non-negative"})
		}
	case KindMealTicket, KindManualDeduction, KindAllowance:
		if r.Amount == nil {
			errs = append(errs, validator.ValidationError{Field: "amount", Message: "is required"})
		} else if r.Amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative"})
		}
		if EventKind(r.Kind) == KindManualDeduction && (r.Category == nil || validator.IsEmpty(*r.Category)) {
			errs = append(errs, validator.ValidationError{Field: "category", Message: "is required"})
		}
		if EventKind(r.Kind) == KindAllowance && (r.Reason == nil || validator.IsEmpty(*r.Reason)) {
			errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EventResponse struct {
	ID              string           `json:"id"`
	StaffID         string           `json:"staff_id"`
	Kind            string           `json:"kind"`
	Date            string           `json:"date"`
	AbsenceType     *string          `json:"absence_type,omitempty"`
	SurchargeAmount *decimal.Decimal `json:"surcharge_amount,omitempty"`
	PenaltyDays     *int             `json:"penalty_days,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	Category        *string          `json:"category,omitempty"`
	Reason          *string          `json:"reason,omitempty"`
	Note            *string          `json:"note,omitempty"`
}

func ToResponse(ev Event) EventResponse {
	var absenceType *string
	if ev.AbsenceType != nil {
		str := string(*ev.AbsenceType)
		absenceType = &str
	}
	return EventResponse{
		ID:              ev.ID,
		StaffID:         ev.StaffID,
		Kind:            string(ev.Kind),
		Date:            ev.Date.Format("2006-01-02"),
		AbsenceType:     absenceType,
		SurchargeAmount: ev.SurchargeAmount,
		PenaltyDays:     ev.PenaltyDays,
		Amount:          ev.Amount,
		Category:        ev.Category,
		Reason:          ev.Reason,
		Note:            ev.Note,
	}
}
