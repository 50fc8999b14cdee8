package gosi

import (
	"context"
	"time"
)

type RateService interface {
	// Resolve returns the applicable rates for a contributor type as of a
	// date, falling back to the statutory defaults unless fallback is
	// disabled by configuration.
	Resolve(ctx context.Context, companyID string, contributorType ContributorType, asOf time.Time) (RateSet, error)
	ResolveRates(ctx context.Context, contributorType string, asOf string) (RateSetResponse, error)
	ListRates(ctx context.Context) ([]RateConfigResponse, error)
	UpsertRate(ctx context.Context, req UpsertRateConfigRequest) (RateConfigResponse, error)
	SyncExternalRates(ctx context.Context, req SyncRatesRequest) ([]RateConfigResponse, error)
}
