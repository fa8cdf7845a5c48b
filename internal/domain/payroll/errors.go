package payroll

import "errors"

var (
	ErrRunNotFound       = errors.New("payroll run not found")
	ErrRunAlreadyExists  = errors.New("payroll run already exists for this period")
	ErrInvalidTransition = errors.New("payroll run status does not allow this operation")
	ErrRunLocked         = errors.New("payroll run is locked")
)
