package salary

import "errors"

var (
	ErrSalaryRecordNotFound   = errors.New("salary record not found")
	ErrDuplicateEffectiveDate = errors.New("salary record already exists for this effective date")
)
