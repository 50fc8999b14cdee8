package gosi

import (
	"github.com/masarhr/masar-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

type UpsertRateConfigRequest struct {
	ContributorType string          `json:"contributor_type"`
	EmployeeRate    decimal.Decimal `json:"employee_rate"`
	EmployerRate    decimal.Decimal `json:"employer_rate"`
	MaxWageCeiling  decimal.Decimal `json:"max_wage_ceiling"`
	EffectiveFrom   string          `json:"effective_from"`
}

func (r *UpsertRateConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if !ContributorType(r.ContributorType).Valid() {
		errs = append(errs, validator.ValidationError{Field: "contributor_type", Message: "must be saudi, non_saudi or saudi_pr_eligible"})
	}
	if r.EmployeeRate.IsNegative() || r.EmployeeRate.GreaterThan(one) {
		errs = append(errs, validator.ValidationError{Field: "employee_rate", Message: "must be between 0 and 1"})
	}
	if r.EmployerRate.IsNegative() || r.EmployerRate.GreaterThan(one) {
		errs = append(errs, validator.ValidationError{Field: "employer_rate", Message: "must be between 0 and 1"})
	}
	if !r.MaxWageCeiling.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "max_wage_ceiling", Message: "must be positive"})
	}
	if validator.IsEmpty(r.EffectiveFrom) {
		errs = append(errs, validator.ValidationError{Field: "effective_from", Message: "is required"})
	} else if _, ok := validator.IsValidDate(r.EffectiveFrom); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_from", Message: "must be in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SyncRatesRequest carries rate rows pushed from the external rate source.
// Rows applied through this path are marked source=external_api.
type SyncRatesRequest struct {
	Rates []UpsertRateConfigRequest `json:"rates"`
}

func (r *SyncRatesRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Rates) == 0 {
		errs = append(errs, validator.ValidationError{Field: "rates", Message: "at least one rate row is required"})
	}
	for _, rate := range r.Rates {
		if err := rate.Validate(); err != nil {
			if ves, ok := err.(validator.ValidationErrors); ok {
				errs = append(errs, ves...)
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RateConfigResponse struct {
	ID              string          `json:"id"`
	ContributorType string          `json:"contributor_type"`
	EmployeeRate    decimal.Decimal `json:"employee_rate"`
	EmployerRate    decimal.Decimal `json:"employer_rate"`
	MaxWageCeiling  decimal.Decimal `json:"max_wage_ceiling"`
	EffectiveFrom   string          `json:"effective_from"`
	IsActive        bool            `json:"is_active"`
	Source          string          `json:"source"`
}

type RateSetResponse struct {
	ContributorType string          `json:"contributor_type"`
	EmployeeRate    decimal.Decimal `json:"employee_rate"`
	EmployerRate    decimal.Decimal `json:"employer_rate"`
	WageCeiling     decimal.Decimal `json:"wage_ceiling"`
	Statutory       bool            `json:"statutory"`
}
