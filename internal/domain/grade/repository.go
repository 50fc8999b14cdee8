package grade

import "context"

type GradeRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Grade, error)
	GetByCompanyID(ctx context.Context, companyID string) ([]Grade, error)
	Upsert(ctx context.Context, g Grade) (Grade, error)
}
