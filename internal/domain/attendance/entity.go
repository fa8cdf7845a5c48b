package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventKind discriminates the attendance/deduction/allowance event variants.
type EventKind string

const (
	KindLateness        EventKind = "lateness"
	KindAbsence         EventKind = "absence"
	KindQuery           EventKind = "query"
	KindMealTicket      EventKind = "meal_ticket"
	KindManualDeduction EventKind = "manual_deduction"
	KindAllowance       EventKind = "allowance"
)

type AbsenceType string

const (
	AbsencePermission   AbsenceType = "permission"
	AbsenceNoPermission AbsenceType = "no_permission"
)

// Event is an immutable recorded fact scoped to (staff, date). Which payload
// fields are set depends on Kind; the rest stay nil.
type Event struct {
	ID      string
	StaffID string
	Kind    EventKind
	Date    time.Time

	AbsenceType     *AbsenceType     // absence
	SurchargeAmount *decimal.Decimal // query
	PenaltyDays     *int             // query
	Amount          *decimal.Decimal // meal_ticket, manual_deduction, allowance
	Category        *string          // manual_deduction
	Reason          *string          // allowance
	Note            *string

	CreatedAt time.Time
}

// Ledger is the per-period aggregation the payslip calculator consumes.
type Ledger struct {
	LatenessCount        int
	PermissionAbsences   int
	NoPermissionAbsences int
	SurchargeTotal       decimal.Decimal
	QueryPenaltyDays     int
	MealTicketTotal      decimal.Decimal
	ManualDeductionTotal decimal.Decimal
	AllowanceTotal       decimal.Decimal
}

// BuildLedger folds raw period events into the totals the calculator prices.
func BuildLedger(events []Event) Ledger {
	ledger := Ledger{
		SurchargeTotal:       decimal.Zero,
		MealTicketTotal:      decimal.Zero,
		ManualDeductionTotal: decimal.Zero,
		AllowanceTotal:       decimal.Zero,
	}

	for _, ev := range events {
		switch ev.Kind {
		case KindLateness:
			ledger.LatenessCount++
		case KindAbsence:
			if ev.AbsenceType != nil && *ev.AbsenceType == AbsenceNoPermission {
				ledger.NoPermissionAbsences++
			} else {
				ledger.PermissionAbsences++
			}
		case KindQuery:
			if ev.SurchargeAmount != nil {
				ledger.SurchargeTotal = ledger.SurchargeTotal.Add(*ev.SurchargeAmount)
			}
			if ev.PenaltyDays != nil {
				ledger.QueryPenaltyDays += *ev.PenaltyDays
			}
		case KindMealTicket:
			if ev.Amount != nil {
				ledger.MealTicketTotal = ledger.MealTicketTotal.Add(*ev.Amount)
			}
		case KindManualDeduction:
			if ev.Amount != nil {
				ledger.ManualDeductionTotal = ledger.ManualDeductionTotal.Add(*ev.Amount)
			}
		case KindAllowance:
			if ev.Amount != nil {
				ledger.AllowanceTotal = ledger.AllowanceTotal.Add(*ev.Amount)
			}
		}
	}

	return ledger
}
