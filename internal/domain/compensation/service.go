package compensation

import "context"

// ChangeService is the sole mutation entry point for employee compensation.
type ChangeService interface {
	ProposeChange(ctx context.Context, req ProposeChangeRequest) (ProposeChangeResponse, error)
	ListChanges(ctx context.Context, employeeID string) ([]ChangeRecordResponse, error)
	GetChange(ctx context.Context, employeeID string, changeID string) (ChangeRecordResponse, error)
}
