package staff

import (
	"time"

	"github.com/staffcore/payroll-backend-go/internal/pkg/validator"
)

type CreateStaffRequest struct {
	FullName       string `json:"full_name"`
	Department     string `json:"department"`
	Position       string `json:"position"`
	ResumptionDate string `json:"resumption_date"`
}

func (r *CreateStaffRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{Field: "department", Message: "is required"})
	}
	if validator.IsEmpty(r.Position) {
		errs = append(errs, validator.ValidationError{Field: "position", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.ResumptionDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "resumption_date", Message: "must be a YYYY-MM-DD date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateStatusRequest struct {
	Status         string  `json:"status"`
	LastActiveDate *string `json:"last_active_date,omitempty"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != string(StatusActive) && r.Status != string(StatusInactive) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'active' or 'inactive'"})
	}
	if r.Status == string(StatusInactive) {
		if r.LastActiveDate == nil {
			errs = append(errs, validator.ValidationError{Field: "last_active_date", Message: "is required when deactivating"})
		} else if _, ok := validator.IsValidDate(*r.LastActiveDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "last_active_date", Message: "must be a YYYY-MM-DD date"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type StaffResponse struct {
	ID             string  `json:"id"`
	FullName       string  `json:"full_name"`
	Department     string  `json:"department"`
	Position       string  `json:"position"`
	Status         string  `json:"status"`
	ResumptionDate string  `json:"resumption_date"`
	LastActiveDate *string `json:"last_active_date,omitempty"`
}

func ToResponse(s Staff) StaffResponse {
	var lastActive *string
	if s.LastActiveDate != nil {
		str := s.LastActiveDate.Format("2006-01-02")
		lastActive = &str
	}
	return StaffResponse{
		ID:             s.ID,
		FullName:       s.FullName,
		Department:     s.Department,
		Position:       s.Position,
		Status:         string(s.Status),
		ResumptionDate: s.ResumptionDate.Format("2006-01-02"),
		LastActiveDate: lastActive,
	}
}

// parse helpers shared by the service layer
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
