package grade

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/masarhr/masar-backend-go/internal/domain/grade"
	"github.com/shopspring/decimal"
)

type GradeServiceImpl struct {
	gradeRepo grade.GradeRepository
}

func NewGradeService(gradeRepo grade.GradeRepository) grade.GradeService {
	return &GradeServiceImpl{gradeRepo: gradeRepo}
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

func (s *GradeServiceImpl) ListGrades(ctx context.Context, basic *decimal.Decimal) ([]grade.GradeResponse, error) {
	companyID, err := getCompanyID(ctx)
	if err != nil {
		return nil, err
	}

	grades, err := s.gradeRepo.GetByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	result := make([]grade.GradeResponse, 0, len(grades))
	for _, g := range grades {
		resp := mapToGradeResponse(g)
		if basic != nil {
			ratio := g.CompaRatio(*basic).StringFixed(2)
			resp.CompaRatio = &ratio
		}
		result = append(result, resp)
	}
	return result, nil
}

func (s *GradeServiceImpl) UpsertGrade(ctx context.Context, req grade.UpsertGradeRequest) (grade.GradeResponse, error) {
	if err := req.Validate(); err != nil {
		return grade.GradeResponse{}, err
	}
	if req.MaximumSalary.LessThan(req.MinimumSalary) {
		return grade.GradeResponse{}, grade.ErrInvalidBand
	}

	companyID, err := getCompanyID(ctx)
	if err != nil {
		return grade.GradeResponse{}, err
	}

	saved, err := s.gradeRepo.Upsert(ctx, grade.Grade{
		CompanyID:      companyID,
		Name:           req.Name,
		MinimumSalary:  req.MinimumSalary,
		MidpointSalary: req.MidpointSalary,
		MaximumSalary:  req.MaximumSalary,
	})
	if err != nil {
		return grade.GradeResponse{}, err
	}

	return mapToGradeResponse(saved), nil
}

func mapToGradeResponse(g grade.Grade) grade.GradeResponse {
	return grade.GradeResponse{
		ID:             g.ID,
		Name:           g.Name,
		MinimumSalary:  g.MinimumSalary,
		MidpointSalary: g.MidpointSalary,
		MaximumSalary:  g.MaximumSalary,
	}
}
