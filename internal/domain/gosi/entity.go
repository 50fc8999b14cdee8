package gosi

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ContributorType selects which GOSI rate row applies to an employee.
type ContributorType string

const (
	ContributorSaudi    ContributorType = "saudi"
	ContributorNonSaudi ContributorType = "non_saudi"
	// ContributorSaudiPR is reserved for permanent-residency holders treated
	// as Saudi contributors. No rate rows use it yet.
	ContributorSaudiPR ContributorType = "saudi_pr_eligible"
)

func (c ContributorType) Valid() bool {
	switch c {
	case ContributorSaudi, ContributorNonSaudi, ContributorSaudiPR:
		return true
	}
	return false
}

// Classify derives the contributor type from the employee record.
// The nationality substring match is carried over from the legacy system and
// is known to be coarse for dual nationals and GCC special cases.
func Classify(nationality string, isSaudi bool) ContributorType {
	if isSaudi || strings.Contains(strings.ToLower(nationality), "saudi") {
		return ContributorSaudi
	}
	return ContributorNonSaudi
}

// RateSource records where a rate configuration row came from.
type RateSource string

const (
	RateSourceManual      RateSource = "manual"
	RateSourceExternalAPI RateSource = "external_api"
)

// RateConfig is one versioned GOSI rate row. Historical rows are kept for
// recomputation of past periods; at most one row per
// (company_id, contributor_type) is active at a time.
type RateConfig struct {
	ID              string
	CompanyID       string
	ContributorType ContributorType
	EmployeeRate    decimal.Decimal
	EmployerRate    decimal.Decimal
	MaxWageCeiling  decimal.Decimal
	EffectiveFrom   time.Time
	IsActive        bool
	Source          RateSource
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RateSet is a resolved set of rates ready for calculation.
type RateSet struct {
	ContributorType ContributorType
	EmployeeRate    decimal.Decimal
	EmployerRate    decimal.Decimal
	WageCeiling     decimal.Decimal
}

// Statutory defaults applied when no configuration row matches.
var (
	defaultCeiling       = decimal.NewFromInt(45000)
	saudiEmployeeRate    = decimal.RequireFromString("0.0975")
	saudiEmployerRate    = decimal.RequireFromString("0.1175")
	nonSaudiEmployeeRate = decimal.Zero
	nonSaudiEmployerRate = decimal.RequireFromString("0.02")
)

// DefaultRateSet returns the statutory GOSI rates for a contributor type.
func DefaultRateSet(contributorType ContributorType) RateSet {
	switch contributorType {
	case ContributorSaudi, ContributorSaudiPR:
		return RateSet{
			ContributorType: contributorType,
			EmployeeRate:    saudiEmployeeRate,
			EmployerRate:    saudiEmployerRate,
			WageCeiling:     defaultCeiling,
		}
	default:
		return RateSet{
			ContributorType: ContributorNonSaudi,
			EmployeeRate:    nonSaudiEmployeeRate,
			EmployerRate:    nonSaudiEmployerRate,
			WageCeiling:     defaultCeiling,
		}
	}
}
