package compensation

import "context"

// ChangeRepository persists the append-only adjustment history.
// There is deliberately no update or delete: the history is the audit trail.
type ChangeRepository interface {
	CreateChangeRecord(ctx context.Context, record ChangeRecord) (ChangeRecord, error)
	ListChangeRecords(ctx context.Context, employeeID string, companyID string) ([]ChangeRecord, error)
	GetChangeRecordByID(ctx context.Context, id string, companyID string) (ChangeRecord, error)
}
