package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/masarhr/masar-backend-go/internal/domain/compensation"
	"github.com/masarhr/masar-backend-go/internal/domain/employee"
	"github.com/masarhr/masar-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, company_id, department_id, manager_id, grade_id, employee_code, full_name,
	nationality, is_saudi, hire_date, employment_status,
	basic_salary, housing_allowance, transportation_allowance, food_allowance,
	mobile_allowance, other_allowances, iban, bank_name,
	created_at, updated_at, deleted_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.CompanyID, &emp.DepartmentID, &emp.ManagerID, &emp.GradeID,
		&emp.EmployeeCode, &emp.FullName, &emp.Nationality, &emp.IsSaudi,
		&emp.HireDate, &emp.EmploymentStatus,
		&emp.Compensation.BasicSalary, &emp.Compensation.HousingAllowance,
		&emp.Compensation.TransportationAllowance, &emp.Compensation.FoodAllowance,
		&emp.Compensation.MobileAllowance, &emp.Compensation.OtherAllowances,
		&emp.Compensation.IBAN, &emp.Compensation.BankName,
		&emp.CreatedAt, &emp.UpdatedAt, &emp.DeletedAt,
	)
	return emp, err
}

func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// GetByIDForUpdate acquires a row lock that is held until the surrounding
// transaction ends. Must be called inside WithTransaction.
func (e *employeeRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
		FOR UPDATE
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to lock employee: %w", err)
	}

	return emp, nil
}

func (e *employeeRepositoryImpl) GetActiveByCompanyID(ctx context.Context, companyID string, afterID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE company_id = $1 AND employment_status = $2 AND deleted_at IS NULL
	`
	args := []interface{}{companyID, employee.EmploymentStatusActive}

	if afterID != "" {
		query += " AND id > $3"
		args = append(args, afterID)
	}
	query += " ORDER BY id"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, nil
}

func (e *employeeRepositoryImpl) UpdateCompensation(ctx context.Context, id string, companyID string, c compensation.Components) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET basic_salary = $3, housing_allowance = $4, transportation_allowance = $5,
			food_allowance = $6, mobile_allowance = $7, other_allowances = $8,
			iban = COALESCE($9, iban), bank_name = COALESCE($10, bank_name),
			updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		id, companyID,
		c.BasicSalary, c.HousingAllowance, c.TransportationAllowance,
		c.FoodAllowance, c.MobileAllowance, c.OtherAllowances,
		c.IBAN, c.BankName,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update employee compensation: %w", err)
	}

	return nil
}
