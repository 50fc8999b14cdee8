package payroll

import "context"

// PayrollRepository defines data access for the current-payroll projection and
// the per-period line items. All methods take companyID to prevent
// cross-company data access.
type PayrollRepository interface {
	// Current projection (one row per employee)
	GetCurrentByEmployee(ctx context.Context, employeeID string, companyID string) (CurrentPayroll, error)
	// UpsertCurrent replaces the employee's current payroll row. When
	// expectedVersion > 0 the update only applies if the stored version
	// matches; a mismatch returns ErrPayrollConflict.
	UpsertCurrent(ctx context.Context, cur CurrentPayroll, expectedVersion int64) (CurrentPayroll, error)

	// Per-period line items
	GetLineItem(ctx context.Context, employeeID string, month, year int, companyID string) (LineItem, error)
	CreateLineItem(ctx context.Context, item LineItem) (LineItem, error)
	// UpdateLineItem writes a merged line item; the stored version must match
	// item.Version or ErrPayrollConflict is returned.
	UpdateLineItem(ctx context.Context, item LineItem) (LineItem, error)
	ListLineItems(ctx context.Context, companyID string, month, year int) ([]LineItem, error)

	// Aggregations
	GetBatchSummary(ctx context.Context, companyID string, month, year int) (SummaryResponse, error)
}
