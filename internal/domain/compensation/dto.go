package compensation

import (
	"github.com/masarhr/masar-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ProposeChangeRequest adjusts an employee's compensation. The basic salary
// can be given either as an absolute amount or as a percentage of the current
// basic salary; the two modes are mutually exclusive.
type ProposeChangeRequest struct {
	EmployeeID              string           `json:"-"`
	NewBasicSalary          *decimal.Decimal `json:"new_basic_salary,omitempty"`
	AdjustmentPercent       *decimal.Decimal `json:"adjustment_percent,omitempty"`
	HousingAllowance        *decimal.Decimal `json:"housing_allowance,omitempty"`
	TransportationAllowance *decimal.Decimal `json:"transportation_allowance,omitempty"`
	FoodAllowance           *decimal.Decimal `json:"food_allowance,omitempty"`
	MobileAllowance         *decimal.Decimal `json:"mobile_allowance,omitempty"`
	OtherAllowances         *decimal.Decimal `json:"other_allowances,omitempty"`
	IBAN                    *string          `json:"iban,omitempty"`
	BankName                *string          `json:"bank_name,omitempty"`
	EffectiveDate           string           `json:"effective_date"`
	ChangeReason            string           `json:"change_reason"`
}

func (r *ProposeChangeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.NewBasicSalary != nil && r.NewBasicSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "new_basic_salary", Message: "must be non-negative"})
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
	if validator.IsEmpty(r.EffectiveDate) {
		errs = append(errs, validator.ValidationError{Field: "effective_date", Message: "is required"})
	} else if _, ok := validator.IsValidDate(r.EffectiveDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_date", Message: "must be in YYYY-MM-DD format"})
	}
	if validator.IsEmpty(r.ChangeReason) {
		errs = append(errs, validator.ValidationError{Field: "change_reason", Message: "is required"})
	}
	if r.IBAN != nil && !validator.IsValidIBAN(*r.IBAN) {
		errs = append(errs, validator.ValidationError{Field: "iban", Message: "must be a valid Saudi IBAN"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ComponentsResponse struct {
	BasicSalary             decimal.Decimal `json:"basic_salary"`
	HousingAllowance        decimal.Decimal `json:"housing_allowance"`
	TransportationAllowance decimal.Decimal `json:"transportation_allowance"`
	FoodAllowance           decimal.Decimal `json:"food_allowance"`
	MobileAllowance         decimal.Decimal `json:"mobile_allowance"`
	OtherAllowances         decimal.Decimal `json:"other_allowances"`
	IBAN                    *string         `json:"iban,omitempty"`
	BankName                *string         `json:"bank_name,omitempty"`
}

type ChangeRecordResponse struct {
	ID             string             `json:"id"`
	EmployeeID     string             `json:"employee_id"`
	OldBasicSalary decimal.Decimal    `json:"old_basic_salary"`
	NewBasicSalary decimal.Decimal    `json:"new_basic_salary"`
	OldComponents  ComponentsResponse `json:"old_components"`
	NewComponents  ComponentsResponse `json:"new_components"`
	OldTotal       decimal.Decimal    `json:"old_total"`
	NewTotal       decimal.Decimal    `json:"new_total"`
	Delta          decimal.Decimal    `json:"delta"`
	DeltaPercent   string             `json:"delta_percent"`
	EffectiveDate  string             `json:"effective_date"`
	ChangeReason   string             `json:"change_reason"`
	ChangedBy      string             `json:"changed_by"`
	CreatedAt      string             `json:"created_at"`
}

// ProposeChangeResponse carries the recorded change, the recalculated payroll
// and any advisory band warning.
type ProposeChangeResponse struct {
	Change      ChangeRecordResponse `json:"change"`
	BandWarning *BandWarning         `json:"band_warning,omitempty"`
	GrossSalary decimal.Decimal      `json:"gross_salary"`
	NetSalary   decimal.Decimal      `json:"net_salary"`
}
