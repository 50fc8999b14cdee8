package employee

import (
	"context"

	"github.com/masarhr/masar-backend-go/internal/domain/compensation"
)

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
	// GetByIDForUpdate locks the employee row for the duration of the
	// surrounding transaction, serializing concurrent compensation changes.
	GetByIDForUpdate(ctx context.Context, id string, companyID string) (Employee, error)
	// GetActiveByCompanyID returns active employees ordered by id. A non-empty
	// afterID acts as a resume cursor: only employees with id > afterID are
	// returned.
	GetActiveByCompanyID(ctx context.Context, companyID string, afterID string) ([]Employee, error)
	UpdateCompensation(ctx context.Context, id string, companyID string, c compensation.Components) error
}
