package grade

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func band(min, mid, max string) Grade {
	return Grade{
		MinimumSalary:  decimal.RequireFromString(min),
		MidpointSalary: decimal.RequireFromString(mid),
		MaximumSalary:  decimal.RequireFromString(max),
	}
}

func TestGrade_Contains(t *testing.T) {
	g := band("8000", "10000", "12000")

	assert.True(t, g.Contains(decimal.RequireFromString("8000")))
	assert.True(t, g.Contains(decimal.RequireFromString("12000")))
	assert.False(t, g.Contains(decimal.RequireFromString("7999.99")))
	assert.False(t, g.Contains(decimal.RequireFromString("12000.01")))
}

func TestGrade_CompaRatio(t *testing.T) {
	g := band("8000", "10000", "12000")

	assert.Equal(t, "110.00", g.CompaRatio(decimal.RequireFromString("11000")).StringFixed(2))
	assert.Equal(t, "100.00", g.CompaRatio(decimal.RequireFromString("10000")).StringFixed(2))
}

func TestGrade_CompaRatio_ZeroMidpoint(t *testing.T) {
	g := band("0", "0", "0")

	assert.True(t, g.CompaRatio(decimal.RequireFromString("5000")).IsZero())
}
