package payslip

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/staffcore/payroll-backend-go/internal/domain/attendance"
	"github.com/staffcore/payroll-backend-go/internal/domain/payroll"
	"github.com/staffcore/payroll-backend-go/internal/domain/staff"
)

// monthlyDivisor prices one day of salary as gross/31 regardless of the
// actual days in the month. Deliberate policy, not a calendar bug; change
// here if actual days-in-month is ever wanted.
const monthlyDivisor = 31

const noPermissionMultiplier = 2

var (
	bankChargeFlat     = decimal.NewFromInt(50)
	waterRateFlat      = decimal.NewFromInt(150)
	statutoryHigh      = decimal.NewFromInt(1000)
	statutoryLow       = decimal.NewFromInt(500)
	statutoryThreshold = decimal.NewFromInt(60000)
	newStaffRate       = decimal.RequireFromString("0.25")

	divisor = decimal.NewFromInt(monthlyDivisor)
)

// Calculator maps (staff snapshot, resolved gross, period, ledger) to a fully
// itemized payslip. It is pure: no clock, no store, no side effects.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// Compute runs the full payslip algorithm. A zero gross (no resolvable
// salary record) is a valid input and produces a payslip whose deductions
// are all zero-derived; callers decide whether to exclude such staff.
//
// All intermediate arithmetic is carried at the decimal library's division
// precision; each published field is rounded to 2 places exactly once, in
// finalize.
func (c *Calculator) Compute(s staff.Staff, monthlyGross decimal.Decimal, month, year int, ledger attendance.Ledger) payroll.Payslip {
	periodStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, -1)

	// Prorating must precede every percentage-based charge: they are all
	// priced against the prorated gross.
	gross := prorateGross(s, monthlyGross, periodStart, periodEnd)
	daily := gross.Div(divisor)

	tenureMonths := TenureMonths(s.ResumptionDate, periodStart)
	bracket := BracketFor(tenureMonths)

	permission := decimal.NewFromInt(int64(ledger.PermissionAbsences))
	noPermission := decimal.NewFromInt(int64(ledger.NoPermissionAbsences))
	absenceDeduction := permission.Mul(daily).
		Add(noPermission.Mul(daily).Mul(decimal.NewFromInt(noPermissionMultiplier)))

	latenessDays := LatenessPenaltyDays(ledger.LatenessCount)
	latenessDeduction := decimal.NewFromInt(int64(latenessDays)).Mul(daily)

	queryPenaltyDeduction := decimal.NewFromInt(int64(ledger.QueryPenaltyDays)).Mul(daily)

	charges := chargesFor(bracket, gross)

	net := gross.
		Sub(absenceDeduction).
		Sub(latenessDeduction).
		Sub(ledger.ManualDeductionTotal).
		Sub(ledger.SurchargeTotal).
		Sub(queryPenaltyDeduction).
		Sub(ledger.MealTicketTotal).
		Sub(charges.bankCharge).
		Sub(charges.waterRate).
		Sub(charges.establishedStatutory).
		Sub(charges.newStaffStatutory).
		Add(ledger.AllowanceTotal)

	return finalize(payroll.Payslip{
		StaffID:               s.ID,
		StaffName:             s.FullName,
		Department:            s.Department,
		Position:              s.Position,
		PeriodMonth:           month,
		PeriodYear:            year,
		Gross:                 gross,
		DailyRate:             daily,
		TenureMonths:          tenureMonths,
		TenureBracket:         bracket,
		PermissionAbsences:    ledger.PermissionAbsences,
		NoPermissionAbsences:  ledger.NoPermissionAbsences,
		AbsenceDeduction:      absenceDeduction,
		LatenessCount:         ledger.LatenessCount,
		LatenessPenaltyDays:   latenessDays,
		LatenessDeduction:     latenessDeduction,
		ManualDeductionsTotal: ledger.ManualDeductionTotal,
		SurchargeTotal:        ledger.SurchargeTotal,
		QueryPenaltyDays:      ledger.QueryPenaltyDays,
		QueryPenaltyDeduction: queryPenaltyDeduction,
		MealTicketTotal:       ledger.MealTicketTotal,
		BankCharge:            charges.bankCharge,
		WaterRate:             charges.waterRate,
		EstablishedStatutory:  charges.establishedStatutory,
		NewStaffStatutory:     charges.newStaffStatutory,
		AllowancesTotal:       ledger.AllowanceTotal,
		Net:                   net,
	})
}

// prorateGross scales gross by active days when the staff member went
// inactive with a recorded last active date.
func prorateGross(s staff.Staff, gross decimal.Decimal, periodStart, periodEnd time.Time) decimal.Decimal {
	if s.Status != staff.StatusInactive || s.LastActiveDate == nil {
		return gross
	}

	lastActive := *s.LastActiveDate
	var activeDays int
	switch {
	case lastActive.Before(periodStart):
		activeDays = 0
	case !lastActive.Before(periodEnd):
		activeDays = monthlyDivisor
	default:
		activeDays = lastActive.Day()
	}

	return gross.Mul(decimal.NewFromInt(int64(activeDays))).Div(divisor)
}

// TenureMonths counts whole calendar months between the resumption (hire)
// date and the evaluated period. The period start is always the first of the
// month, so the month-index difference is the truncated calendar difference:
// staff hired any day in May have tenure 0 for the May period and 1 for June.
func TenureMonths(resumption, periodStart time.Time) int {
	months := (periodStart.Year()-resumption.Year())*12 + int(periodStart.Month()) - int(resumption.Month())
	if months < 0 {
		return 0
	}
	return months
}

// BracketFor assigns the statutory charge regime: staff in their first or
// second calendar month are new, everyone else is established.
func BracketFor(tenureMonths int) payroll.TenureBracket {
	if tenureMonths <= 1 {
		return payroll.TenureNew
	}
	return payroll.TenureEstablished
}

// LatenessPenaltyDays is the step schedule pricing repeated lateness in
// salary days. Monotonic and non-decreasing in the event count.
func LatenessPenaltyDays(count int) int {
	switch {
	case count <= 2:
		return 0
	case count <= 4:
		return 1
	case count <= 7:
		return 2
	case count <= 10:
		return 3
	case count <= 15:
		return 4
	default:
		return 5
	}
}

type statutoryCharges struct {
	bankCharge           decimal.Decimal
	waterRate            decimal.Decimal
	establishedStatutory decimal.Decimal
	newStaffStatutory    decimal.Decimal
}

// chargesFor selects the charge bundle for a bracket. New staff pay 25% of
// the (prorated) gross and are waived every flat charge; established staff
// pay the flat bundle with the statutory fee stepping up at 60,000 gross.
func chargesFor(bracket payroll.TenureBracket, gross decimal.Decimal) statutoryCharges {
	if bracket == payroll.TenureNew {
		return statutoryCharges{
			bankCharge:           decimal.Zero,
			waterRate:            decimal.Zero,
			establishedStatutory: decimal.Zero,
			newStaffStatutory:    gross.Mul(newStaffRate),
		}
	}

	statutory := statutoryLow
	if gross.GreaterThanOrEqual(statutoryThreshold) {
		statutory = statutoryHigh
	}
	return statutoryCharges{
		bankCharge:           bankChargeFlat,
		waterRate:            waterRateFlat,
		establishedStatutory: statutory,
		newStaffStatutory:    decimal.Zero,
	}
}

// finalize applies the single rounding pass to every published field. Net is
// already derived from the unrounded components by the time it gets here.
func finalize(p payroll.Payslip) payroll.Payslip {
	p.Gross = p.Gross.Round(2)
	p.DailyRate = p.DailyRate.Round(2)
	p.AbsenceDeduction = p.AbsenceDeduction.Round(2)
	p.LatenessDeduction = p.LatenessDeduction.Round(2)
	p.ManualDeductionsTotal = p.ManualDeductionsTotal.Round(2)
	p.SurchargeTotal = p.SurchargeTotal.Round(2)
	p.QueryPenaltyDeduction = p.QueryPenaltyDeduction.Round(2)
	p.MealTicketTotal = p.MealTicketTotal.Round(2)
	p.BankCharge = p.BankCharge.Round(2)
	p.WaterRate = p.WaterRate.Round(2)
	p.EstablishedStatutory = p.EstablishedStatutory.Round(2)
	p.NewStaffStatutory = p.NewStaffStatutory.Round(2)
	p.AllowancesTotal = p.AllowancesTotal.Round(2)
	p.Net = p.Net.Round(2)
	return p
}
