package staff

import "time"

type Staff struct {
	ID             string
	FullName       string
	Department     string
	Position       string
	Status         EmploymentStatus
	ResumptionDate time.Time
	// LastActiveDate is set only when Status is inactive. It drives mid-period
	// prorating on historical payslip views.
	LastActiveDate *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type EmploymentStatus string

const (
	StatusActive   EmploymentStatus = "active"
	StatusInactive EmploymentStatus = "inactive"
)
