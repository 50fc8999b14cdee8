package payroll

import (
	"github.com/masarhr/masar-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// CalculateRequest is a standalone pay calculation: components plus a
// contributor type, no persistence.
type CalculateRequest struct {
	BasicSalary             decimal.Decimal  `json:"basic_salary"`
	HousingAllowance        *decimal.Decimal `json:"housing_allowance,omitempty"`
	TransportationAllowance *decimal.Decimal `json:"transportation_allowance,omitempty"`
	FoodAllowance           *decimal.Decimal `json:"food_allowance,omitempty"`
	MobileAllowance         *decimal.Decimal `json:"mobile_allowance,omitempty"`
	OtherAllowances         *decimal.Decimal `json:"other_allowances,omitempty"`
	ContributorType         string           `json:"contributor_type"`
	AsOfDate                string           `json:"as_of_date,omitempty"`
}

func (r *CalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.BasicSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "basic_salary", Message: "must be non-negative"})
	}
	for _, f := range []struct {
		name  string
		value *decimal.Decimal
	}{
		{"housing_allowance", r.HousingAllowance},
		{"transportation_allowance", r.TransportationAllowance},
		{"food_allowance", r.FoodAllowance},
		{"mobile_allowance", r.MobileAllowance},
		{"other_allowances", r.OtherAllowances},
	} {
		if f.value != nil && f.value.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: f.name, Message: "must be non-negative"})
		}
	}
	if validator.IsEmpty(r.ContributorType) {
		errs = append(errs, validator.ValidationError{Field: "contributor_type", Message: "is required"})
	}
	if r.AsOfDate != "" {
		if _, ok := validator.IsValidDate(r.AsOfDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "as_of_date", Message: "must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ResultResponse serializes monetary values as decimal strings rounded to two
// places. Rounding is presentation-only; stored values keep full precision.
type ResultResponse struct {
	GrossSalary  string `json:"gross_salary"`
	GosiWageBase string `json:"gosi_wage_base"`
	GosiEmployee string `json:"gosi_employee"`
	GosiEmployer string `json:"gosi_employer"`
	NetSalary    string `json:"net_salary"`
}

func NewResultResponse(r Result) ResultResponse {
	return ResultResponse{
		GrossSalary:  r.GrossSalary.StringFixed(2),
		GosiWageBase: r.GosiWageBase.StringFixed(2),
		GosiEmployee: r.GosiEmployee.StringFixed(2),
		GosiEmployer: r.GosiEmployer.StringFixed(2),
		NetSalary:    r.NetSalary.StringFixed(2),
	}
}

type RunBatchRequest struct {
	PeriodMonth int `json:"period_month"`
	PeriodYear  int `json:"period_year"`
	// ResumeAfterEmployeeID resumes an interrupted run: employees with an id
	// at or below the checkpoint are skipped.
	ResumeAfterEmployeeID *string `json:"resume_after_employee_id,omitempty"`
}

func (r *RunBatchRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "must be between 1 and 12"})
	}
	if r.PeriodYear < 2020 {
		errs = append(errs, validator.ValidationError{Field: "period_year", Message: "must be 2020 or later"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LineItemResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	EmployeeCode *string `json:"employee_code,omitempty"`
	PeriodMonth  int     `json:"period_month"`
	PeriodYear   int     `json:"period_year"`
	BasicSalary  string  `json:"basic_salary"`
	GrossSalary  string  `json:"gross_salary"`
	GosiWageBase string  `json:"gosi_wage_base"`
	GosiEmployee string  `json:"gosi_employee"`
	GosiEmployer string  `json:"gosi_employer"`
	NetSalary    string  `json:"net_salary"`
	IBAN         *string `json:"iban,omitempty"`
	BankName     *string `json:"bank_name,omitempty"`
}

type BatchFailure struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

type BatchTotalsResponse struct {
	TotalGross        string `json:"total_gross"`
	TotalGosiEmployee string `json:"total_gosi_employee"`
	TotalGosiEmployer string `json:"total_gosi_employer"`
	TotalNet          string `json:"total_net"`
	EmployeeCount     int    `json:"employee_count"`
}

// RunBatchResponse reports per-employee outcomes alongside totals computed
// over successes only. A non-empty Failures list does not fail the batch.
type RunBatchResponse struct {
	PeriodMonth int                 `json:"period_month"`
	PeriodYear  int                 `json:"period_year"`
	LineItems   []LineItemResponse  `json:"line_items"`
	Failures    []BatchFailure      `json:"failures,omitempty"`
	Totals      BatchTotalsResponse `json:"totals"`
	// Checkpoint is the last employee id of the contiguous successful prefix,
	// usable as resume_after_employee_id on a retry.
	Checkpoint *string `json:"checkpoint,omitempty"`
}

// CurrentPayrollResponse is the employee's materialized current payroll.
type CurrentPayrollResponse struct {
	ID              string `json:"id"`
	EmployeeID      string `json:"employee_id"`
	ContributorType string `json:"contributor_type"`
	GrossSalary     string `json:"gross_salary"`
	GosiWageBase    string `json:"gosi_wage_base"`
	GosiEmployee    string `json:"gosi_employee"`
	GosiEmployer    string `json:"gosi_employer"`
	NetSalary       string `json:"net_salary"`
	Version         int64  `json:"version"`
	CalculatedAt    string `json:"calculated_at"`
}

type SummaryResponse struct {
	PeriodMonth       int    `json:"period_month"`
	PeriodYear        int    `json:"period_year"`
	EmployeeCount     int    `json:"employee_count"`
	TotalGross        string `json:"total_gross"`
	TotalGosiEmployee string `json:"total_gosi_employee"`
	TotalGosiEmployer string `json:"total_gosi_employer"`
	TotalNet          string `json:"total_net"`
}
