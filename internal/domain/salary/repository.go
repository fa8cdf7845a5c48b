package salary

import (
	"context"
	"time"
)

type SalaryRepository interface {
	Create(ctx context.Context, record SalaryRecord) (SalaryRecord, error)
	ListByStaffID(ctx context.Context, staffID string) ([]SalaryRecord, error)
	// GetEffective resolves the record with the latest effective_from not
	// after asOf. Returns ErrSalaryRecordNotFound when no record applies;
	// callers treat that as a zero gross, not a failure.
	GetEffective(ctx context.Context, staffID string, asOf time.Time) (SalaryRecord, error)
}
