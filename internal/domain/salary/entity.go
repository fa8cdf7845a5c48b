package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryRecord is one entry in a staff member's salary history. The record
// applicable to a period is the one with the latest EffectiveFrom not after
// the period's end boundary.
type SalaryRecord struct {
	ID            string
	StaffID       string
	MonthlyGross  decimal.Decimal
	EffectiveFrom time.Time
	CreatedAt     time.Time
}
