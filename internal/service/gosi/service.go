package gosi

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/masarhr/masar-backend-go/internal/domain/gosi"
	"github.com/masarhr/masar-backend-go/internal/pkg/database"
	"github.com/masarhr/masar-backend-go/internal/repository/postgresql"
)

type RateServiceImpl struct {
	db               *database.DB
	rateRepo         gosi.RateRepository
	fallbackDisabled bool
}

func NewRateService(db *database.DB, rateRepo gosi.RateRepository, fallbackDisabled bool) gosi.RateService {
	return &RateServiceImpl{
		db:               db,
		rateRepo:         rateRepo,
		fallbackDisabled: fallbackDisabled,
	}
}

// getCompanyID extracts company_id from JWT claims
func getCompanyID(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id not found in claims")
	}
	return companyID, nil
}

func (s *RateServiceImpl) Resolve(ctx context.Context, companyID string, contributorType gosi.ContributorType, asOf time.Time) (gosi.RateSet, error) {
	if !contributorType.Valid() {
		return gosi.RateSet{}, gosi.ErrInvalidContributorType
	}

	cfg, err := s.rateRepo.GetEffectiveRate(ctx, companyID, contributorType, asOf)
	if err != nil {
		if errors.Is(err, gosi.ErrRateConfigNotFound) {
			if s.fallbackDisabled {
				return gosi.RateSet{}, gosi.ErrRateConfigMissing
			}
			return gosi.DefaultRateSet(contributorType), nil
		}
		return gosi.RateSet{}, err
	}

	return gosi.RateSet{
		ContributorType: contributorType,
		EmployeeRate:    cfg.EmployeeRate,
		EmployerRate:    cfg.EmployerRate,
		WageCeiling:     cfg.MaxWageCeiling,
	}, nil
}

func (s *RateServiceImpl) ResolveRates(ctx context.Context, contributorType string, asOf string) (gosi.RateSetResponse, error) {
	companyID, err := getCompanyID(ctx)
	if err != nil {
		return gosi.RateSetResponse{}, err
	}

	ct := gosi.ContributorType(contributorType)
	if !ct.Valid() {
		return gosi.RateSetResponse{}, gosi.ErrInvalidContributorType
	}

	asOfDate := time.Now()
	if asOf != "" {
		parsed, err := time.Parse("2006-01-02", asOf)
		if err == nil {
			asOfDate = parsed
		}
	}

	// Statutory means no configured row matched and defaults were applied.
	statutory := false
	_, err = s.rateRepo.GetEffectiveRate(ctx, companyID, ct, asOfDate)
	if errors.Is(err, gosi.ErrRateConfigNotFound) {
		statutory = true
	}

	rates, err := s.Resolve(ctx, companyID, ct, asOfDate)
	if err != nil {
		return gosi.RateSetResponse{}, err
	}

	return gosi.RateSetResponse{
		ContributorType: string(rates.ContributorType),
		EmployeeRate:    rates.EmployeeRate,
		EmployerRate:    rates.EmployerRate,
		WageCeiling:     rates.WageCeiling,
		Statutory:       statutory,
	}, nil
}

func (s *RateServiceImpl) ListRates(ctx context.Context) ([]gosi.RateConfigResponse, error) {
	companyID, err := getCompanyID(ctx)
	if err != nil {
		return nil, err
	}

	configs, err := s.rateRepo.ListRateConfigs(ctx, companyID)
	if err != nil {
		return nil, err
	}

	result := make([]gosi.RateConfigResponse, 0, len(configs))
	for _, cfg := range configs {
		result = append(result, mapToRateConfigResponse(cfg))
	}
	return result, nil
}

func (s *RateServiceImpl) UpsertRate(ctx context.Context, req gosi.UpsertRateConfigRequest) (gosi.RateConfigResponse, error) {
	return s.applyRate(ctx, req, gosi.RateSourceManual)
}

func (s *RateServiceImpl) SyncExternalRates(ctx context.Context, req gosi.SyncRatesRequest) ([]gosi.RateConfigResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result := make([]gosi.RateConfigResponse, 0, len(req.Rates))
	for _, rate := range req.Rates {
		applied, err := s.applyRate(ctx, rate, gosi.RateSourceExternalAPI)
		if err != nil {
			return nil, fmt.Errorf("failed to apply synced rate for %s: %w", rate.ContributorType, err)
		}
		result = append(result, applied)
	}
	return result, nil
}

// applyRate deactivates the current active row and inserts the new one in a
// single transaction, preserving the one-active-row invariant. Old rows stay
// in place for recomputation of past periods.
func (s *RateServiceImpl) applyRate(ctx context.Context, req gosi.UpsertRateConfigRequest, source gosi.RateSource) (gosi.RateConfigResponse, error) {
	if err := req.Validate(); err != nil {
		return gosi.RateConfigResponse{}, err
	}

	companyID, err := getCompanyID(ctx)
	if err != nil {
		return gosi.RateConfigResponse{}, err
	}

	effectiveFrom, _ := time.Parse("2006-01-02", req.EffectiveFrom)

	var created gosi.RateConfig
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.rateRepo.DeactivateActiveRate(txCtx, companyID, gosi.ContributorType(req.ContributorType)); err != nil {
			return err
		}

		created, err = s.rateRepo.CreateRateConfig(txCtx, gosi.RateConfig{
			CompanyID:       companyID,
			ContributorType: gosi.ContributorType(req.ContributorType),
			EmployeeRate:    req.EmployeeRate,
			EmployerRate:    req.EmployerRate,
			MaxWageCeiling:  req.MaxWageCeiling,
			EffectiveFrom:   effectiveFrom,
			IsActive:        true,
			Source:          source,
		})
		return err
	})
	if err != nil {
		return gosi.RateConfigResponse{}, err
	}

	return mapToRateConfigResponse(created), nil
}

func mapToRateConfigResponse(cfg gosi.RateConfig) gosi.RateConfigResponse {
	return gosi.RateConfigResponse{
		ID:              cfg.ID,
		ContributorType: string(cfg.ContributorType),
		EmployeeRate:    cfg.EmployeeRate,
		EmployerRate:    cfg.EmployerRate,
		MaxWageCeiling:  cfg.MaxWageCeiling,
		EffectiveFrom:   cfg.EffectiveFrom.Format("2006-01-02"),
		IsActive:        cfg.IsActive,
		Source:          string(cfg.Source),
	}
}
