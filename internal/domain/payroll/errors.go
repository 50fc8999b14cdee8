package payroll

import "errors"

var (
	ErrPayrollNotFound   = errors.New("payroll record not found")
	ErrLineItemNotFound  = errors.New("payroll line item not found")
	ErrPayrollConflict   = errors.New("payroll record was modified concurrently, retry the operation")
	ErrInvalidPeriod     = errors.New("invalid payroll period")
	ErrNoActiveEmployees = errors.New("company has no active employees")
)
