package compensation

import (
	"time"

	"github.com/masarhr/masar-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Components is one employee's pay package at a point in time.
// Missing allowances default to zero; IBAN and bank name are payment routing
// metadata and never enter a calculation.
type Components struct {
	BasicSalary             decimal.Decimal
	HousingAllowance        decimal.Decimal
	TransportationAllowance decimal.Decimal
	FoodAllowance           decimal.Decimal
	MobileAllowance         decimal.Decimal
	OtherAllowances         decimal.Decimal
	IBAN                    *string
	BankName                *string
}

// Gross returns basic salary plus all allowances.
func (c Components) Gross() decimal.Decimal {
	return c.BasicSalary.
		Add(c.HousingAllowance).
		Add(c.TransportationAllowance).
		Add(c.FoodAllowance).
		Add(c.MobileAllowance).
		Add(c.OtherAllowances)
}

// GosiBase returns the portion of pay subject to GOSI contribution.
// Only basic salary and housing allowance count; the other allowances are
// excluded by regulation.
func (c Components) GosiBase() decimal.Decimal {
	return c.BasicSalary.Add(c.HousingAllowance)
}

// Validate rejects negative monetary fields.
func (c Components) Validate() error {
	var errs validator.ValidationErrors

	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"basic_salary", c.BasicSalary},
		{"housing_allowance", c.HousingAllowance},
		{"transportation_allowance", c.TransportationAllowance},
		{"food_allowance", c.FoodAllowance},
		{"mobile_allowance", c.MobileAllowance},
		{"other_allowances", c.OtherAllowances},
	}
	for _, f := range fields {
		if f.value.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: f.name, Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ChangeRecord is one immutable compensation adjustment. Records are only
// ever inserted; corrections are expressed as new records.
type ChangeRecord struct {
	ID             string
	EmployeeID     string
	CompanyID      string
	OldBasicSalary decimal.Decimal
	NewBasicSalary decimal.Decimal
	OldComponents  Components
	NewComponents  Components
	OldTotal       decimal.Decimal
	NewTotal       decimal.Decimal
	Delta          decimal.Decimal
	DeltaPercent   decimal.Decimal
	EffectiveDate  time.Time
	ChangeReason   string
	ChangedBy      string
	CreatedAt      time.Time
}

// BandWarning flags a basic salary outside the assigned band. Advisory only;
// the change it accompanies is still recorded.
type BandWarning struct {
	GradeID       string          `json:"grade_id"`
	GradeName     string          `json:"grade_name"`
	MinimumSalary decimal.Decimal `json:"minimum_salary"`
	MaximumSalary decimal.Decimal `json:"maximum_salary"`
	BasicSalary   decimal.Decimal `json:"basic_salary"`
	Message       string          `json:"message"`
}
