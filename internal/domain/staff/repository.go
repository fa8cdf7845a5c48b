package staff

import "context"

type StaffRepository interface {
	Create(ctx context.Context, s Staff) (Staff, error)
	GetByID(ctx context.Context, id string) (Staff, error)
	List(ctx context.Context, filter ListFilter) ([]Staff, error)
	// GetActive returns the roster eligible for payroll-run generation.
	GetActive(ctx context.Context) ([]Staff, error)
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (Staff, error)
}

type ListFilter struct {
	Department *string
	Status     *EmploymentStatus
}
