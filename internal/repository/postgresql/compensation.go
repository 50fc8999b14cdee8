package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/masarhr/masar-backend-go/internal/domain/compensation"
	"github.com/masarhr/masar-backend-go/internal/pkg/database"
)

type compensationChangeRepositoryImpl struct {
	db *database.DB
}

func NewCompensationChangeRepository(db *database.DB) compensation.ChangeRepository {
	return &compensationChangeRepositoryImpl{db: db}
}

const changeRecordColumns = `
	id, employee_id, company_id,
	old_basic_salary, new_basic_salary,
	old_housing_allowance, new_housing_allowance,
	old_transportation_allowance, new_transportation_allowance,
	old_food_allowance, new_food_allowance,
	old_mobile_allowance, new_mobile_allowance,
	old_other_allowances, new_other_allowances,
	old_iban, new_iban, old_bank_name, new_bank_name,
	old_total, new_total, delta, delta_percent,
	effective_date, change_reason, changed_by, created_at
`

func scanChangeRecord(row pgx.Row) (compensation.ChangeRecord, error) {
	var rec compensation.ChangeRecord
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.CompanyID,
		&rec.OldBasicSalary, &rec.NewBasicSalary,
		&rec.OldComponents.HousingAllowance, &rec.NewComponents.HousingAllowance,
		&rec.OldComponents.TransportationAllowance, &rec.NewComponents.TransportationAllowance,
		&rec.OldComponents.FoodAllowance, &rec.NewComponents.FoodAllowance,
		&rec.OldComponents.MobileAllowance, &rec.NewComponents.MobileAllowance,
		&rec.OldComponents.OtherAllowances, &rec.NewComponents.OtherAllowances,
		&rec.OldComponents.IBAN, &rec.NewComponents.IBAN,
		&rec.OldComponents.BankName, &rec.NewComponents.BankName,
		&rec.OldTotal, &rec.NewTotal, &rec.Delta, &rec.DeltaPercent,
		&rec.EffectiveDate, &rec.ChangeReason, &rec.ChangedBy, &rec.CreatedAt,
	)
	if err != nil {
		return compensation.ChangeRecord{}, err
	}
	rec.OldComponents.BasicSalary = rec.OldBasicSalary
	rec.NewComponents.BasicSalary = rec.NewBasicSalary
	return rec, nil
}

func (c *compensationChangeRepositoryImpl) CreateChangeRecord(ctx context.Context, rec compensation.ChangeRecord) (compensation.ChangeRecord, error) {
	q := GetQuerier(ctx, c.db)

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	query := `
		INSERT INTO compensation_changes (
			id, employee_id, company_id,
			old_basic_salary, new_basic_salary,
			old_housing_allowance, new_housing_allowance,
			old_transportation_allowance, new_transportation_allowance,
			old_food_allowance, new_food_allowance,
			old_mobile_allowance, new_mobile_allowance,
			old_other_allowances, new_other_allowances,
			old_iban, new_iban, old_bank_name, new_bank_name,
			old_total, new_total, delta, delta_percent,
			effective_date, change_reason, changed_by
		)
		VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26
		)
		RETURNING ` + changeRecordColumns

	created, err := scanChangeRecord(q.QueryRow(ctx, query,
		rec.ID, rec.EmployeeID, rec.CompanyID,
		rec.OldBasicSalary, rec.NewBasicSalary,
		rec.OldComponents.HousingAllowance, rec.NewComponents.HousingAllowance,
		rec.OldComponents.TransportationAllowance, rec.NewComponents.TransportationAllowance,
		rec.OldComponents.FoodAllowance, rec.NewComponents.FoodAllowance,
		rec.OldComponents.MobileAllowance, rec.NewComponents.MobileAllowance,
		rec.OldComponents.OtherAllowances, rec.NewComponents.OtherAllowances,
		rec.OldComponents.IBAN, rec.NewComponents.IBAN,
		rec.OldComponents.BankName, rec.NewComponents.BankName,
		rec.OldTotal, rec.NewTotal, rec.Delta, rec.DeltaPercent,
		rec.EffectiveDate, rec.ChangeReason, rec.ChangedBy,
	))
	if err != nil {
		return compensation.ChangeRecord{}, fmt.Errorf("failed to create change record: %w", err)
	}

	return created, nil
}

func (c *compensationChangeRepositoryImpl) ListChangeRecords(ctx context.Context, employeeID string, companyID string) ([]compensation.ChangeRecord, error) {
	q := GetQuerier(ctx, c.db)

	query := `SELECT ` + changeRecordColumns + `
		FROM compensation_changes
		WHERE employee_id = $1 AND company_id = $2
		ORDER BY effective_date DESC, created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list change records: %w", err)
	}
	defer rows.Close()

	var records []compensation.ChangeRecord
	for rows.Next() {
		rec, err := scanChangeRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan change record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func (c *compensationChangeRepositoryImpl) GetChangeRecordByID(ctx context.Context, id string, companyID string) (compensation.ChangeRecord, error) {
	q := GetQuerier(ctx, c.db)

	query := `SELECT ` + changeRecordColumns + `
		FROM compensation_changes
		WHERE id = $1 AND company_id = $2
	`

	rec, err := scanChangeRecord(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return compensation.ChangeRecord{}, compensation.ErrChangeRecordNotFound
		}
		return compensation.ChangeRecord{}, fmt.Errorf("failed to get change record: %w", err)
	}

	return rec, nil
}
