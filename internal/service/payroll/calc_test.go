package payroll

import (
	"testing"

	"github.com/masarhr/masar-backend-go/internal/domain/compensation"
	"github.com/masarhr/masar-backend-go/internal/domain/gosi"
	"github.com/masarhr/masar-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func saudiRates() gosi.RateSet {
	return gosi.DefaultRateSet(gosi.ContributorSaudi)
}

func nonSaudiRates() gosi.RateSet {
	return gosi.DefaultRateSet(gosi.ContributorNonSaudi)
}

func TestCalculate_SaudiEmployee(t *testing.T) {
	c := compensation.Components{
		BasicSalary:             d("15000"),
		HousingAllowance:        d("3000"),
		TransportationAllowance: d("1000"),
		FoodAllowance:           d("500"),
	}

	result, err := Calculate(c, saudiRates())
	require.NoError(t, err)

	assert.Equal(t, "19500.00", result.GrossSalary.StringFixed(2))
	assert.Equal(t, "18000.00", result.GosiWageBase.StringFixed(2))
	assert.Equal(t, "1755.00", result.GosiEmployee.StringFixed(2))
	assert.Equal(t, "2115.00", result.GosiEmployer.StringFixed(2))
	assert.Equal(t, "17745.00", result.NetSalary.StringFixed(2))
}

func TestCalculate_NonSaudiEmployee(t *testing.T) {
	c := compensation.Components{
		BasicSalary:             d("15000"),
		HousingAllowance:        d("3000"),
		TransportationAllowance: d("1000"),
		FoodAllowance:           d("500"),
	}

	result, err := Calculate(c, nonSaudiRates())
	require.NoError(t, err)

	// Non-Saudi employees contribute nothing; the employer pays 2%.
	assert.Equal(t, "19500.00", result.GrossSalary.StringFixed(2))
	assert.Equal(t, "0.00", result.GosiEmployee.StringFixed(2))
	assert.Equal(t, "360.00", result.GosiEmployer.StringFixed(2))
	assert.Equal(t, "19500.00", result.NetSalary.StringFixed(2))
}

func TestCalculate_WageCeilingCapsContribution(t *testing.T) {
	c := compensation.Components{
		BasicSalary:      d("50000"),
		HousingAllowance: d("10000"),
	}

	result, err := Calculate(c, saudiRates())
	require.NoError(t, err)

	assert.Equal(t, "45000.00", result.GosiWageBase.StringFixed(2))
	assert.Equal(t, "4387.50", result.GosiEmployee.StringFixed(2))
	assert.Equal(t, "5287.50", result.GosiEmployer.StringFixed(2))
	assert.Equal(t, "60000.00", result.GrossSalary.StringFixed(2))
}

func TestCalculate_OnlyBasicAndHousingEnterGosiBase(t *testing.T) {
	c := compensation.Components{
		BasicSalary:             d("10000"),
		HousingAllowance:        d("2000"),
		TransportationAllowance: d("5000"),
		FoodAllowance:           d("5000"),
		MobileAllowance:         d("5000"),
		OtherAllowances:         d("5000"),
	}

	result, err := Calculate(c, saudiRates())
	require.NoError(t, err)

	assert.Equal(t, "12000.00", result.GosiWageBase.StringFixed(2))
	assert.Equal(t, "32000.00", result.GrossSalary.StringFixed(2))
}

func TestCalculate_ZeroComponents(t *testing.T) {
	result, err := Calculate(compensation.Components{}, saudiRates())
	require.NoError(t, err)

	assert.True(t, result.GrossSalary.IsZero())
	assert.True(t, result.GosiEmployee.IsZero())
	assert.True(t, result.NetSalary.IsZero())
}

func TestCalculate_NetNeverExceedsGross(t *testing.T) {
	cases := []compensation.Components{
		{BasicSalary: d("3500")},
		{BasicSalary: d("15000"), HousingAllowance: d("3000")},
		{BasicSalary: d("100000"), HousingAllowance: d("20000"), OtherAllowances: d("5000")},
	}
	for _, c := range cases {
		for _, rates := range []gosi.RateSet{saudiRates(), nonSaudiRates()} {
			result, err := Calculate(c, rates)
			require.NoError(t, err)
			assert.True(t, result.NetSalary.LessThanOrEqual(result.GrossSalary),
				"net %s exceeds gross %s", result.NetSalary, result.GrossSalary)
		}
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	c := compensation.Components{
		BasicSalary:      d("12345.67"),
		HousingAllowance: d("891.01"),
	}

	first, err := Calculate(c, saudiRates())
	require.NoError(t, err)
	second, err := Calculate(c, saudiRates())
	require.NoError(t, err)

	assert.True(t, first.GrossSalary.Equal(second.GrossSalary))
	assert.True(t, first.GosiEmployee.Equal(second.GosiEmployee))
	assert.True(t, first.NetSalary.Equal(second.NetSalary))
}

func TestCalculate_NegativeComponentRejected(t *testing.T) {
	c := compensation.Components{BasicSalary: d("-100")}

	_, err := Calculate(c, saudiRates())
	assert.Error(t, err)
}

func TestCalculate_NonPositiveCeilingRejected(t *testing.T) {
	rates := saudiRates()
	rates.WageCeiling = decimal.Zero

	_, err := Calculate(compensation.Components{BasicSalary: d("1000")}, rates)
	assert.Error(t, err)
}

func TestMergeLineItem_NonZeroIncomingWins(t *testing.T) {
	iban := "SA0380000000608010167519"
	stored := lineItemFixture()
	incoming := lineItemFixture()
	incoming.BasicSalary = d("16000")
	incoming.HousingAllowance = decimal.Zero
	incoming.IBAN = &iban

	merged := mergeLineItem(stored, incoming)

	assert.Equal(t, "16000", merged.BasicSalary.String())
	// Zero incoming keeps the stored value.
	assert.Equal(t, "3000", merged.HousingAllowance.String())
	require.NotNil(t, merged.IBAN)
	assert.Equal(t, iban, *merged.IBAN)
}

func TestMergeLineItem_DerivedAmountsAlwaysReplaced(t *testing.T) {
	stored := lineItemFixture()
	incoming := lineItemFixture()
	incoming.GrossSalary = decimal.Zero
	incoming.NetSalary = decimal.Zero

	merged := mergeLineItem(stored, incoming)

	assert.True(t, merged.GrossSalary.IsZero())
	assert.True(t, merged.NetSalary.IsZero())
}

func TestMergeLineItem_IdentityPreserved(t *testing.T) {
	stored := lineItemFixture()
	incoming := lineItemFixture()
	incoming.ID = "other-id"
	incoming.Version = 99

	merged := mergeLineItem(stored, incoming)

	assert.Equal(t, stored.ID, merged.ID)
	assert.Equal(t, stored.Version, merged.Version)
	assert.Equal(t, stored.PeriodMonth, merged.PeriodMonth)
	assert.Equal(t, stored.PeriodYear, merged.PeriodYear)
}

func lineItemFixture() payroll.LineItem {
	return payroll.LineItem{
		ID:               "li-1",
		EmployeeID:       "emp-1",
		CompanyID:        "co-1",
		PeriodMonth:      3,
		PeriodYear:       2026,
		BasicSalary:      d("15000"),
		HousingAllowance: d("3000"),
		GrossSalary:      d("18000"),
		GosiWageBase:     d("18000"),
		GosiEmployee:     d("1755"),
		GosiEmployer:     d("2115"),
		NetSalary:        d("16245"),
		Version:          1,
	}
}
