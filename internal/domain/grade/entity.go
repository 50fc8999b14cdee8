package grade

import (
	"time"

	"github.com/shopspring/decimal"
)

// Grade is a job grade with its advisory salary band. Out-of-band salaries
// are flagged, never rejected.
type Grade struct {
	ID             string
	CompanyID      string
	Name           string
	MinimumSalary  decimal.Decimal
	MidpointSalary decimal.Decimal
	MaximumSalary  decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Contains reports whether basic falls inside the band, inclusive.
func (g Grade) Contains(basic decimal.Decimal) bool {
	return basic.GreaterThanOrEqual(g.MinimumSalary) && basic.LessThanOrEqual(g.MaximumSalary)
}

// CompaRatio returns basic as a percentage of the band midpoint.
// Reporting only; returns zero when the midpoint is zero.
func (g Grade) CompaRatio(basic decimal.Decimal) decimal.Decimal {
	if g.MidpointSalary.IsZero() {
		return decimal.Zero
	}
	return basic.Div(g.MidpointSalary).Mul(decimal.NewFromInt(100))
}
