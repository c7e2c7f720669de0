package transaction

import "errors"

var (
	ErrInvalidID           = errors.New("transaction: invalid id")
	ErrInvalidEmployeeID   = errors.New("transaction: invalid employee id")
	ErrInvalidPage         = errors.New("transaction: invalid page")
	ErrTransactionNotFound = errors.New("transaction: not found")
)
