package grade

import (
	"context"

	"github.com/shopspring/decimal"
)

type GradeService interface {
	// ListGrades returns the company's bands. When basic is non-nil each
	// response carries the compa-ratio of that salary against the band
	// midpoint.
	ListGrades(ctx context.Context, basic *decimal.Decimal) ([]GradeResponse, error)
	UpsertGrade(ctx context.Context, req UpsertGradeRequest) (GradeResponse, error)
}
