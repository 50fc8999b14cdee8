package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/masarhr/masar-backend-go/internal/domain/payroll"
	"github.com/masarhr/masar-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

const currentPayrollColumns = `
	id, employee_id, company_id, contributor_type,
	gross_salary, gosi_wage_base, gosi_employee, gosi_employer, net_salary,
	version, calculated_at, updated_at
`

func scanCurrentPayroll(row pgx.Row) (payroll.CurrentPayroll, error) {
	var cur payroll.CurrentPayroll
	err := row.Scan(
		&cur.ID, &cur.EmployeeID, &cur.CompanyID, &cur.ContributorType,
		&cur.GrossSalary, &cur.GosiWageBase, &cur.GosiEmployee, &cur.GosiEmployer, &cur.NetSalary,
		&cur.Version, &cur.CalculatedAt, &cur.UpdatedAt,
	)
	return cur, err
}

func (p *payrollRepositoryImpl) GetCurrentByEmployee(ctx context.Context, employeeID string, companyID string) (payroll.CurrentPayroll, error) {
	q := GetQuerier(ctx, p.db)

	query := `SELECT ` + currentPayrollColumns + `
		FROM employee_payrolls
		WHERE employee_id = $1 AND company_id = $2
	`

	cur, err := scanCurrentPayroll(q.QueryRow(ctx, query, employeeID, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.CurrentPayroll{}, payroll.ErrPayrollNotFound
		}
		return payroll.CurrentPayroll{}, fmt.Errorf("failed to get current payroll: %w", err)
	}

	return cur, nil
}

// UpsertCurrent replaces the one-row-per-employee projection. The version
// check runs inside the statement: the update only matches when the stored
// version equals expectedVersion, so a lost update surfaces as no row
// returned rather than a silent overwrite.
func (p *payrollRepositoryImpl) UpsertCurrent(ctx context.Context, cur payroll.CurrentPayroll, expectedVersion int64) (payroll.CurrentPayroll, error) {
	q := GetQuerier(ctx, p.db)

	if expectedVersion == 0 {
		query := `
			INSERT INTO employee_payrolls (
				employee_id, company_id, contributor_type,
				gross_salary, gosi_wage_base, gosi_employee, gosi_employer, net_salary,
				version, calculated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1, $9)
			ON CONFLICT (employee_id) DO NOTHING
			RETURNING ` + currentPayrollColumns

		created, err := scanCurrentPayroll(q.QueryRow(ctx, query,
			cur.EmployeeID, cur.CompanyID, cur.ContributorType,
			cur.GrossSalary, cur.GosiWageBase, cur.GosiEmployee, cur.GosiEmployer, cur.NetSalary,
			cur.CalculatedAt,
		))
		if err != nil {
			// DO NOTHING returns no row when another writer inserted first.
			if err == pgx.ErrNoRows {
				return payroll.CurrentPayroll{}, payroll.ErrPayrollConflict
			}
			return payroll.CurrentPayroll{}, fmt.Errorf("failed to insert current payroll: %w", err)
		}
		return created, nil
	}

	query := `
		UPDATE employee_payrolls
		SET contributor_type = $3, gross_salary = $4, gosi_wage_base = $5,
			gosi_employee = $6, gosi_employer = $7, net_salary = $8,
			version = version + 1, calculated_at = $9, updated_at = NOW()
		WHERE employee_id = $1 AND company_id = $2 AND version = $10
		RETURNING ` + currentPayrollColumns

	updated, err := scanCurrentPayroll(q.QueryRow(ctx, query,
		cur.EmployeeID, cur.CompanyID, cur.ContributorType,
		cur.GrossSalary, cur.GosiWageBase, cur.GosiEmployee, cur.GosiEmployer, cur.NetSalary,
		cur.CalculatedAt, expectedVersion,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.CurrentPayroll{}, payroll.ErrPayrollConflict
		}
		return payroll.CurrentPayroll{}, fmt.Errorf("failed to update current payroll: %w", err)
	}

	return updated, nil
}

const lineItemColumns = `
	li.id, li.employee_id, li.company_id, li.period_month, li.period_year,
	li.basic_salary, li.housing_allowance, li.transportation_allowance,
	li.food_allowance, li.mobile_allowance, li.other_allowances,
	li.gross_salary, li.gosi_wage_base, li.gosi_employee, li.gosi_employer, li.net_salary,
	li.iban, li.bank_name, li.version, li.created_at, li.updated_at
`

func scanLineItem(row pgx.Row) (payroll.LineItem, error) {
	var li payroll.LineItem
	err := row.Scan(
		&li.ID, &li.EmployeeID, &li.CompanyID, &li.PeriodMonth, &li.PeriodYear,
		&li.BasicSalary, &li.HousingAllowance, &li.TransportationAllowance,
		&li.FoodAllowance, &li.MobileAllowance, &li.OtherAllowances,
		&li.GrossSalary, &li.GosiWageBase, &li.GosiEmployee, &li.GosiEmployer, &li.NetSalary,
		&li.IBAN, &li.BankName, &li.Version, &li.CreatedAt, &li.UpdatedAt,
	)
	return li, err
}

func (p *payrollRepositoryImpl) GetLineItem(ctx context.Context, employeeID string, month, year int, companyID string) (payroll.LineItem, error) {
	q := GetQuerier(ctx, p.db)

	query := `SELECT ` + lineItemColumns + `
		FROM payroll_line_items li
		WHERE li.employee_id = $1 AND li.period_month = $2 AND li.period_year = $3 AND li.company_id = $4
	`

	li, err := scanLineItem(q.QueryRow(ctx, query, employeeID, month, year, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.LineItem{}, payroll.ErrLineItemNotFound
		}
		return payroll.LineItem{}, fmt.Errorf("failed to get line item: %w", err)
	}

	return li, nil
}

func (p *payrollRepositoryImpl) CreateLineItem(ctx context.Context, item payroll.LineItem) (payroll.LineItem, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		INSERT INTO payroll_line_items (
			employee_id, company_id, period_month, period_year,
			basic_salary, housing_allowance, transportation_allowance,
			food_allowance, mobile_allowance, other_allowances,
			gross_salary, gosi_wage_base, gosi_employee, gosi_employer, net_salary,
			iban, bank_name, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, 1)
		RETURNING id, employee_id, company_id, period_month, period_year,
			basic_salary, housing_allowance, transportation_allowance,
			food_allowance, mobile_allowance, other_allowances,
			gross_salary, gosi_wage_base, gosi_employee, gosi_employer, net_salary,
			iban, bank_name, version, created_at, updated_at
	`

	created, err := scanLineItem(q.QueryRow(ctx, query,
		item.EmployeeID, item.CompanyID, item.PeriodMonth, item.PeriodYear,
		item.BasicSalary, item.HousingAllowance, item.TransportationAllowance,
		item.FoodAllowance, item.MobileAllowance, item.OtherAllowances,
		item.GrossSalary, item.GosiWageBase, item.GosiEmployee, item.GosiEmployer, item.NetSalary,
		item.IBAN, item.BankName,
	))
	if err != nil {
		return payroll.LineItem{}, fmt.Errorf("failed to create line item: %w", err)
	}

	return created, nil
}

func (p *payrollRepositoryImpl) UpdateLineItem(ctx context.Context, item payroll.LineItem) (payroll.LineItem, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		UPDATE payroll_line_items li
		SET basic_salary = $4, housing_allowance = $5, transportation_allowance = $6,
			food_allowance = $7, mobile_allowance = $8, other_allowances = $9,
			gross_salary = $10, gosi_wage_base = $11, gosi_employee = $12,
			gosi_employer = $13, net_salary = $14,
			iban = $15, bank_name = $16,
			version = li.version + 1, updated_at = NOW()
		WHERE li.id = $1 AND li.company_id = $2 AND li.version = $3
		RETURNING ` + lineItemColumns

	updated, err := scanLineItem(q.QueryRow(ctx, query,
		item.ID, item.CompanyID, item.Version,
		item.BasicSalary, item.HousingAllowance, item.TransportationAllowance,
		item.FoodAllowance, item.MobileAllowance, item.OtherAllowances,
		item.GrossSalary, item.GosiWageBase, item.GosiEmployee, item.GosiEmployer, item.NetSalary,
		item.IBAN, item.BankName,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.LineItem{}, payroll.ErrPayrollConflict
		}
		return payroll.LineItem{}, fmt.Errorf("failed to update line item: %w", err)
	}

	return updated, nil
}

func (p *payrollRepositoryImpl) ListLineItems(ctx context.Context, companyID string, month, year int) ([]payroll.LineItem, error) {
	q := GetQuerier(ctx, p.db)

	query := `SELECT ` + lineItemColumns + `, e.full_name, e.employee_code
		FROM payroll_line_items li
		JOIN employees e ON e.id = li.employee_id
		WHERE li.company_id = $1 AND li.period_month = $2 AND li.period_year = $3
		ORDER BY li.employee_id
	`

	rows, err := q.Query(ctx, query, companyID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list line items: %w", err)
	}
	defer rows.Close()

	var items []payroll.LineItem
	for rows.Next() {
		var li payroll.LineItem
		if err := rows.Scan(
			&li.ID, &li.EmployeeID, &li.CompanyID, &li.PeriodMonth, &li.PeriodYear,
			&li.BasicSalary, &li.HousingAllowance, &li.TransportationAllowance,
			&li.FoodAllowance, &li.MobileAllowance, &li.OtherAllowances,
			&li.GrossSalary, &li.GosiWageBase, &li.GosiEmployee, &li.GosiEmployer, &li.NetSalary,
			&li.IBAN, &li.BankName, &li.Version, &li.CreatedAt, &li.UpdatedAt,
			&li.EmployeeName, &li.EmployeeCode,
		); err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}
		items = append(items, li)
	}

	return items, nil
}

func (p *payrollRepositoryImpl) GetBatchSummary(ctx context.Context, companyID string, month, year int) (payroll.SummaryResponse, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT COUNT(*),
			COALESCE(SUM(gross_salary), 0),
			COALESCE(SUM(gosi_employee), 0),
			COALESCE(SUM(gosi_employer), 0),
			COALESCE(SUM(net_salary), 0)
		FROM payroll_line_items
		WHERE company_id = $1 AND period_month = $2 AND period_year = $3
	`

	var count int
	var totalGross, totalEmployee, totalEmployer, totalNet decimal.Decimal
	err := q.QueryRow(ctx, query, companyID, month, year).Scan(
		&count, &totalGross, &totalEmployee, &totalEmployer, &totalNet,
	)
	if err != nil {
		return payroll.SummaryResponse{}, fmt.Errorf("failed to get batch summary: %w", err)
	}

	return payroll.SummaryResponse{
		PeriodMonth:       month,
		PeriodYear:        year,
		EmployeeCount:     count,
		TotalGross:        totalGross.StringFixed(2),
		TotalGosiEmployee: totalEmployee.StringFixed(2),
		TotalGosiEmployer: totalEmployer.StringFixed(2),
		TotalNet:          totalNet.StringFixed(2),
	}, nil
}
