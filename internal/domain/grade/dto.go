package grade

import (
	"github.com/masarhr/masar-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type UpsertGradeRequest struct {
	ID             *string         `json:"id,omitempty"`
	Name           string          `json:"name"`
	MinimumSalary  decimal.Decimal `json:"minimum_salary"`
	MidpointSalary decimal.Decimal `json:"midpoint_salary"`
	MaximumSalary  decimal.Decimal `json:"maximum_salary"`
}

func (r *UpsertGradeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not exceed 100 characters"})
	}
	if r.MinimumSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "minimum_salary", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GradeResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	MinimumSalary  decimal.Decimal `json:"minimum_salary"`
	MidpointSalary decimal.Decimal `json:"midpoint_salary"`
	MaximumSalary  decimal.Decimal `json:"maximum_salary"`
	CompaRatio     *string         `json:"compa_ratio,omitempty"`
}
