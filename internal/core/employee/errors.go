package employee

import "errors"

var (
	ErrInvalidID        = errors.New("employee: invalid id")
	ErrInvalidFirstName = errors.New("employee: invalid first name")
	ErrInvalidLastName  = errors.New("employee: invalid last name")
	ErrEmployeeNotFound = errors.New("employee: not found")
)
