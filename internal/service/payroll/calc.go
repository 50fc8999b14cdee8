package payroll

import (
	"github.com/masarhr/masar-backend-go/internal/domain/compensation"
	"github.com/masarhr/masar-backend-go/internal/domain/gosi"
	"github.com/masarhr/masar-backend-go/internal/domain/payroll"
	"github.com/masarhr/masar-backend-go/internal/pkg/validator"
)

// Calculate turns a compensation snapshot and a resolved rate set into a pay
// result. Pure function: no I/O, no rounding, deterministic for identical
// inputs. The order of operations reproduces the statutory GOSI calculation:
//
//	gross    = basic + all allowances
//	gosiWage = min(basic + housing, ceiling)
//	net      = gross - gosiWage * employeeRate
func Calculate(c compensation.Components, rates gosi.RateSet) (payroll.Result, error) {
	if err := c.Validate(); err != nil {
		return payroll.Result{}, err
	}
	if !rates.WageCeiling.IsPositive() {
		return payroll.Result{}, validator.ValidationErrors{
			{Field: "wage_ceiling", Message: "must be positive"},
		}
	}
	if rates.EmployeeRate.IsNegative() || rates.EmployerRate.IsNegative() {
		return payroll.Result{}, validator.ValidationErrors{
			{Field: "rates", Message: "contribution rates must be non-negative"},
		}
	}

	gross := c.Gross()

	gosiWage := c.GosiBase()
	if gosiWage.GreaterThan(rates.WageCeiling) {
		gosiWage = rates.WageCeiling
	}

	gosiEmployee := gosiWage.Mul(rates.EmployeeRate)
	gosiEmployer := gosiWage.Mul(rates.EmployerRate)

	return payroll.Result{
		GrossSalary:  gross,
		GosiWageBase: gosiWage,
		GosiEmployee: gosiEmployee,
		GosiEmployer: gosiEmployer,
		NetSalary:    gross.Sub(gosiEmployee),
	}, nil
}

// mergeLineItem folds an incoming line item into the stored one.
// Identifiers, period and version always come from the stored row; monetary
// fields follow last-non-zero-wins, routing strings last-non-empty-wins.
func mergeLineItem(stored, incoming payroll.LineItem) payroll.LineItem {
	merged := stored

	if !incoming.BasicSalary.IsZero() {
		merged.BasicSalary = incoming.BasicSalary
	}
	if !incoming.HousingAllowance.IsZero() {
		merged.HousingAllowance = incoming.HousingAllowance
	}
	if !incoming.TransportationAllowance.IsZero() {
		merged.TransportationAllowance = incoming.TransportationAllowance
	}
	if !incoming.FoodAllowance.IsZero() {
		merged.FoodAllowance = incoming.FoodAllowance
	}
	if !incoming.MobileAllowance.IsZero() {
		merged.MobileAllowance = incoming.MobileAllowance
	}
	if !incoming.OtherAllowances.IsZero() {
		merged.OtherAllowances = incoming.OtherAllowances
	}

	// Derived amounts always reflect the latest calculation.
	merged.GrossSalary = incoming.GrossSalary
	merged.GosiWageBase = incoming.GosiWageBase
	merged.GosiEmployee = incoming.GosiEmployee
	merged.GosiEmployer = incoming.GosiEmployer
	merged.NetSalary = incoming.NetSalary

	if incoming.IBAN != nil && *incoming.IBAN != "" {
		merged.IBAN = incoming.IBAN
	}
	if incoming.BankName != nil && *incoming.BankName != "" {
		merged.BankName = incoming.BankName
	}

	return merged
}
