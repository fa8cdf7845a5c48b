package staff

import "errors"

var (
	ErrStaffNotFound   = errors.New("staff not found")
	ErrAlreadyInactive = errors.New("staff is already inactive")
)
