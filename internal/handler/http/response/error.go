package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/staffcore/payroll-backend-go/internal/domain/payroll"
	"github.com/staffcore/payroll-backend-go/internal/domain/salary"
	"github.com/staffcore/payroll-backend-go/internal/domain/staff"
	"github.com/staffcore/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Staff domain errors
	case errors.Is(err, staff.ErrStaffNotFound):
		NotFound(w, "Staff not found")
	case errors.Is(err, staff.ErrAlreadyInactive):
		Conflict(w, "Staff is already inactive")

	// Salary domain errors
	case errors.Is(err, salary.ErrDuplicateEffectiveDate):
		Conflict(w, "Salary record already exists for this effective date")
	case errors.Is(err, salary.ErrSalaryRecordNotFound):
		NotFound(w, "Salary record not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payroll.ErrRunAlreadyExists):
		Conflict(w, err.Error())
	case errors.Is(err, payroll.ErrInvalidTransition), errors.Is(err, payroll.ErrRunLocked):
		InvalidTransition(w, err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

// ConflictForPeriod renders the duplicate-run failure with the period that
// collided, e.g. "payroll run already exists for 5/2025".
func ConflictForPeriod(w http.ResponseWriter, month, year int) {
	Conflict(w, fmt.Sprintf("payroll run already exists for %d/%d", month, year))
}
