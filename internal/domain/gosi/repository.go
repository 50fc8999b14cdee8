package gosi

import (
	"context"
	"time"
)

type RateRepository interface {
	// GetEffectiveRate returns the active row with the latest
	// effective_from <= asOf for (companyID, contributorType).
	GetEffectiveRate(ctx context.Context, companyID string, contributorType ContributorType, asOf time.Time) (RateConfig, error)
	ListRateConfigs(ctx context.Context, companyID string) ([]RateConfig, error)
	// DeactivateActiveRate clears the is_active flag on the current active row,
	// if any. Historical rows are never deleted.
	DeactivateActiveRate(ctx context.Context, companyID string, contributorType ContributorType) error
	CreateRateConfig(ctx context.Context, cfg RateConfig) (RateConfig, error)
}
