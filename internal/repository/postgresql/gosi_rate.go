package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/masarhr/masar-backend-go/internal/domain/gosi"
	"github.com/masarhr/masar-backend-go/internal/pkg/database"
)

type gosiRateRepositoryImpl struct {
	db *database.DB
}

func NewGosiRateRepository(db *database.DB) gosi.RateRepository {
	return &gosiRateRepositoryImpl{db: db}
}

const rateConfigColumns = `
	id, company_id, contributor_type, employee_rate, employer_rate,
	max_wage_ceiling, effective_from, is_active, source, created_at, updated_at
`

func scanRateConfig(row pgx.Row) (gosi.RateConfig, error) {
	var cfg gosi.RateConfig
	err := row.Scan(
		&cfg.ID, &cfg.CompanyID, &cfg.ContributorType,
		&cfg.EmployeeRate, &cfg.EmployerRate, &cfg.MaxWageCeiling,
		&cfg.EffectiveFrom, &cfg.IsActive, &cfg.Source,
		&cfg.CreatedAt, &cfg.UpdatedAt,
	)
	return cfg, err
}

func (r *gosiRateRepositoryImpl) GetEffectiveRate(ctx context.Context, companyID string, contributorType gosi.ContributorType, asOf time.Time) (gosi.RateConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + rateConfigColumns + `
		FROM gosi_rate_configs
		WHERE company_id = $1 AND contributor_type = $2
			AND is_active = TRUE AND effective_from <= $3
		ORDER BY effective_from DESC
		LIMIT 1
	`

	cfg, err := scanRateConfig(q.QueryRow(ctx, query, companyID, contributorType, asOf))
	if err != nil {
		if err == pgx.ErrNoRows {
			return gosi.RateConfig{}, gosi.ErrRateConfigNotFound
		}
		return gosi.RateConfig{}, fmt.Errorf("failed to get effective rate: %w", err)
	}

	return cfg, nil
}

func (r *gosiRateRepositoryImpl) ListRateConfigs(ctx context.Context, companyID string) ([]gosi.RateConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + rateConfigColumns + `
		FROM gosi_rate_configs
		WHERE company_id = $1
		ORDER BY contributor_type, effective_from DESC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rate configs: %w", err)
	}
	defer rows.Close()

	var configs []gosi.RateConfig
	for rows.Next() {
		cfg, err := scanRateConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rate config: %w", err)
		}
		configs = append(configs, cfg)
	}

	return configs, nil
}

func (r *gosiRateRepositoryImpl) DeactivateActiveRate(ctx context.Context, companyID string, contributorType gosi.ContributorType) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE gosi_rate_configs
		SET is_active = FALSE, updated_at = NOW()
		WHERE company_id = $1 AND contributor_type = $2 AND is_active = TRUE
	`

	if _, err := q.Exec(ctx, query, companyID, contributorType); err != nil {
		return fmt.Errorf("failed to deactivate active rate: %w", err)
	}

	return nil
}

func (r *gosiRateRepositoryImpl) CreateRateConfig(ctx context.Context, cfg gosi.RateConfig) (gosi.RateConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO gosi_rate_configs (
			company_id, contributor_type, employee_rate, employer_rate,
			max_wage_ceiling, effective_from, is_active, source
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + rateConfigColumns

	created, err := scanRateConfig(q.QueryRow(ctx, query,
		cfg.CompanyID, cfg.ContributorType, cfg.EmployeeRate, cfg.EmployerRate,
		cfg.MaxWageCeiling, cfg.EffectiveFrom, cfg.IsActive, cfg.Source,
	))
	if err != nil {
		// Partial unique index allows at most one active row per company and
		// contributor type.
		if strings.Contains(err.Error(), "uk_gosi_rate_active") {
			return gosi.RateConfig{}, gosi.ErrActiveRateExists
		}
		return gosi.RateConfig{}, fmt.Errorf("failed to create rate config: %w", err)
	}

	return created, nil
}
