package payroll

import (
	"time"

	"github.com/masarhr/masar-backend-go/internal/domain/gosi"
	"github.com/shopspring/decimal"
)

// Result is the output of one pay calculation. All values carry full decimal
// precision; rounding happens only when a result is presented.
type Result struct {
	GrossSalary  decimal.Decimal
	GosiWageBase decimal.Decimal
	GosiEmployee decimal.Decimal
	GosiEmployer decimal.Decimal
	NetSalary    decimal.Decimal
}

// CurrentPayroll is the materialized "current state" projection: exactly one
// row per employee, replaced on every compensation change. The change ledger
// is the source of truth; this row is derived from it.
type CurrentPayroll struct {
	ID              string
	EmployeeID      string
	CompanyID       string
	ContributorType gosi.ContributorType
	GrossSalary     decimal.Decimal
	GosiWageBase    decimal.Decimal
	GosiEmployee    decimal.Decimal
	GosiEmployer    decimal.Decimal
	NetSalary       decimal.Decimal
	Version         int64
	CalculatedAt    time.Time
	UpdatedAt       time.Time
}

// LineItem is one employee's payroll for one pay period. Superseding runs
// merge into the stored row field by field instead of replacing it.
type LineItem struct {
	ID                      string
	EmployeeID              string
	CompanyID               string
	PeriodMonth             int
	PeriodYear              int
	BasicSalary             decimal.Decimal
	HousingAllowance        decimal.Decimal
	TransportationAllowance decimal.Decimal
	FoodAllowance           decimal.Decimal
	MobileAllowance         decimal.Decimal
	OtherAllowances         decimal.Decimal
	GrossSalary             decimal.Decimal
	GosiWageBase            decimal.Decimal
	GosiEmployee            decimal.Decimal
	GosiEmployer            decimal.Decimal
	NetSalary               decimal.Decimal
	IBAN                    *string
	BankName                *string
	Version                 int64
	CreatedAt               time.Time
	UpdatedAt               time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// BatchTotals aggregates a batch run over its successful line items only.
type BatchTotals struct {
	TotalGross        decimal.Decimal
	TotalGosiEmployee decimal.Decimal
	TotalGosiEmployer decimal.Decimal
	TotalNet          decimal.Decimal
	EmployeeCount     int
}

// BatchItem is the per-employee outcome of a batch run. Exactly one of
// LineItem or Err is set.
type BatchItem struct {
	EmployeeID string
	LineItem   *LineItem
	Err        error
}
