package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/masarhr/masar-backend-go/internal/domain/grade"
	"github.com/masarhr/masar-backend-go/internal/pkg/database"
)

type gradeRepositoryImpl struct {
	db *database.DB
}

func NewGradeRepository(db *database.DB) grade.GradeRepository {
	return &gradeRepositoryImpl{db: db}
}

func (g *gradeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (grade.Grade, error) {
	q := GetQuerier(ctx, g.db)

	query := `
		SELECT id, company_id, name, minimum_salary, midpoint_salary, maximum_salary, created_at, updated_at
		FROM grades
		WHERE id = $1 AND company_id = $2
	`

	var gr grade.Grade
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&gr.ID, &gr.CompanyID, &gr.Name,
		&gr.MinimumSalary, &gr.MidpointSalary, &gr.MaximumSalary,
		&gr.CreatedAt, &gr.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return grade.Grade{}, grade.ErrGradeNotFound
		}
		return grade.Grade{}, fmt.Errorf("failed to get grade: %w", err)
	}

	return gr, nil
}

func (g *gradeRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string) ([]grade.Grade, error) {
	q := GetQuerier(ctx, g.db)

	query := `
		SELECT id, company_id, name, minimum_salary, midpoint_salary, maximum_salary, created_at, updated_at
		FROM grades
		WHERE company_id = $1
		ORDER BY minimum_salary
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list grades: %w", err)
	}
	defer rows.Close()

	var grades []grade.Grade
	for rows.Next() {
		var gr grade.Grade
		if err := rows.Scan(
			&gr.ID, &gr.CompanyID, &gr.Name,
			&gr.MinimumSalary, &gr.MidpointSalary, &gr.MaximumSalary,
			&gr.CreatedAt, &gr.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan grade: %w", err)
		}
		grades = append(grades, gr)
	}

	return grades, nil
}

func (g *gradeRepositoryImpl) Upsert(ctx context.Context, gr grade.Grade) (grade.Grade, error) {
	q := GetQuerier(ctx, g.db)

	query := `
		INSERT INTO grades (company_id, name, minimum_salary, midpoint_salary, maximum_salary)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (company_id, name) DO UPDATE SET
			minimum_salary = EXCLUDED.minimum_salary,
			midpoint_salary = EXCLUDED.midpoint_salary,
			maximum_salary = EXCLUDED.maximum_salary,
			updated_at = NOW()
		RETURNING id, company_id, name, minimum_salary, midpoint_salary, maximum_salary, created_at, updated_at
	`

	var saved grade.Grade
	err := q.QueryRow(ctx, query,
		gr.CompanyID, gr.Name, gr.MinimumSalary, gr.MidpointSalary, gr.MaximumSalary,
	).Scan(
		&saved.ID, &saved.CompanyID, &saved.Name,
		&saved.MinimumSalary, &saved.MidpointSalary, &saved.MaximumSalary,
		&saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_grades_company_name") {
			return grade.Grade{}, grade.ErrGradeNameExists
		}
		return grade.Grade{}, fmt.Errorf("failed to upsert grade: %w", err)
	}

	return saved, nil
}
