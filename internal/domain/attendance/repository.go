package attendance

import "context"

type AttendanceRepository interface {
	Create(ctx context.Context, event Event) (Event, error)
	// ListByStaffPeriod returns every event recorded for the staff member in
	// the (month, year) period.
	ListByStaffPeriod(ctx context.Context, staffID string, month, year int) ([]Event, error)
}
