package transaction

import "errors"

var (
	ErrInvalidPageSize   = errors.New("transaction: invalid page size")
	ErrInvalidPageToken  = errors.New("transaction: invalid page token")
	ErrInvalidEmployeeID = errors.New("transaction: invalid employee id")
	ErrEmployeeNotFound  = errors.New("transaction: employee not found")
)
