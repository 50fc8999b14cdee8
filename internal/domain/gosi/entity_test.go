package gosi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name        string
		nationality string
		isSaudi     bool
		want        ContributorType
	}{
		{"flagged saudi", "Saudi Arabian", true, ContributorSaudi},
		{"nationality string only", "saudi", false, ContributorSaudi},
		{"mixed case nationality", "SAUDI ARABIAN", false, ContributorSaudi},
		{"flag wins over nationality", "Egyptian", true, ContributorSaudi},
		{"expat", "Indian", false, ContributorNonSaudi},
		{"empty nationality", "", false, ContributorNonSaudi},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Classify(c.nationality, c.isSaudi))
		})
	}
}

func TestContributorType_Valid(t *testing.T) {
	assert.True(t, ContributorSaudi.Valid())
	assert.True(t, ContributorNonSaudi.Valid())
	assert.True(t, ContributorSaudiPR.Valid())
	assert.False(t, ContributorType("gcc").Valid())
	assert.False(t, ContributorType("").Valid())
}

func TestDefaultRateSet_Saudi(t *testing.T) {
	rates := DefaultRateSet(ContributorSaudi)

	assert.Equal(t, "0.0975", rates.EmployeeRate.String())
	assert.Equal(t, "0.1175", rates.EmployerRate.String())
	assert.Equal(t, "45000", rates.WageCeiling.String())
}

func TestDefaultRateSet_NonSaudi(t *testing.T) {
	rates := DefaultRateSet(ContributorNonSaudi)

	assert.True(t, rates.EmployeeRate.IsZero())
	assert.Equal(t, "0.02", rates.EmployerRate.String())
	assert.Equal(t, "45000", rates.WageCeiling.String())
}

func TestDefaultRateSet_SaudiPRUsesSaudiRates(t *testing.T) {
	pr := DefaultRateSet(ContributorSaudiPR)
	saudi := DefaultRateSet(ContributorSaudi)

	assert.True(t, pr.EmployeeRate.Equal(saudi.EmployeeRate))
	assert.True(t, pr.EmployerRate.Equal(saudi.EmployerRate))
}
