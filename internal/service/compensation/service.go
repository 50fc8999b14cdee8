package compensation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/masarhr/masar-backend-go/internal/domain/compensation"
	"github.com/masarhr/masar-backend-go/internal/domain/employee"
	"github.com/masarhr/masar-backend-go/internal/domain/gosi"
	"github.com/masarhr/masar-backend-go/internal/domain/grade"
	"github.com/masarhr/masar-backend-go/internal/domain/payroll"
	"github.com/masarhr/masar-backend-go/internal/pkg/database"
	"github.com/masarhr/masar-backend-go/internal/repository/postgresql"
	payrollService "github.com/masarhr/masar-backend-go/internal/service/payroll"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type ChangeServiceImpl struct {
	db           *database.DB
	changeRepo   compensation.ChangeRepository
	employeeRepo employee.EmployeeRepository
	gradeRepo    grade.GradeRepository
	payrollRepo  payroll.PayrollRepository
	rateService  gosi.RateService
}

func NewChangeService(
	db *database.DB,
	changeRepo compensation.ChangeRepository,
	employeeRepo employee.EmployeeRepository,
	gradeRepo grade.GradeRepository,
	payrollRepo payroll.PayrollRepository,
	rateService gosi.RateService,
) compensation.ChangeService {
	return &ChangeServiceImpl{
		db:           db,
		changeRepo:   changeRepo,
		employeeRepo: employeeRepo,
		gradeRepo:    gradeRepo,
		payrollRepo:  payrollRepo,
		rateService:  rateService,
	}
}

// Helper to get company_id and user_id from JWT context
func getClaimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)

	return companyID, userID, nil
}

// ProposeChange records a compensation adjustment and refreshes the
// employee's current payroll row. The history insert and the payroll upsert
// commit together or not at all; the employee row is locked first so
// concurrent adjustments to the same employee serialize.
func (s *ChangeServiceImpl) ProposeChange(ctx context.Context, req compensation.ProposeChangeRequest) (compensation.ProposeChangeResponse, error) {
	if err := req.Validate(); err != nil {
		return compensation.ProposeChangeResponse{}, err
	}
	if req.NewBasicSalary != nil && req.AdjustmentPercent != nil {
		return compensation.ProposeChangeResponse{}, compensation.ErrAmbiguousAdjustment
	}
	if req.NewBasicSalary == nil && req.AdjustmentPercent == nil && req.HousingAllowance == nil &&
		req.TransportationAllowance == nil && req.FoodAllowance == nil && req.MobileAllowance == nil &&
		req.OtherAllowances == nil && req.IBAN == nil && req.BankName == nil {
		return compensation.ProposeChangeResponse{}, compensation.ErrNoAdjustment
	}

	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return compensation.ProposeChangeResponse{}, err
	}

	effectiveDate, _ := time.Parse("2006-01-02", req.EffectiveDate)

	var (
		record      compensation.ChangeRecord
		bandWarning *compensation.BandWarning
		result      payroll.Result
	)

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		emp, err := s.employeeRepo.GetByIDForUpdate(txCtx, req.EmployeeID, companyID)
		if err != nil {
			return err
		}

		old := emp.Compensation
		next := ApplyAdjustment(old, req)
		if err := next.Validate(); err != nil {
			return err
		}

		oldTotal := old.Gross()
		newTotal := next.Gross()
		delta := newTotal.Sub(oldTotal)

		if emp.GradeID != nil {
			g, err := s.gradeRepo.GetByID(txCtx, *emp.GradeID, companyID)
			if err != nil && !errors.Is(err, grade.ErrGradeNotFound) {
				return err
			}
			if err == nil {
				bandWarning = CheckBand(g, next.BasicSalary)
			}
		}

		record, err = s.changeRepo.CreateChangeRecord(txCtx, compensation.ChangeRecord{
			EmployeeID:     emp.ID,
			CompanyID:      companyID,
			OldBasicSalary: old.BasicSalary,
			NewBasicSalary: next.BasicSalary,
			OldComponents:  old,
			NewComponents:  next,
			OldTotal:       oldTotal,
			NewTotal:       newTotal,
			Delta:          delta,
			DeltaPercent:   DeltaPercent(oldTotal, newTotal),
			EffectiveDate:  effectiveDate,
			ChangeReason:   req.ChangeReason,
			ChangedBy:      userID,
		})
		if err != nil {
			return err
		}

		if err := s.employeeRepo.UpdateCompensation(txCtx, emp.ID, companyID, next); err != nil {
			return err
		}

		contributorType := gosi.Classify(emp.Nationality, emp.IsSaudi)
		rates, err := s.rateService.Resolve(txCtx, companyID, contributorType, effectiveDate)
		if err != nil {
			return err
		}

		result, err = payrollService.Calculate(next, rates)
		if err != nil {
			return err
		}

		expectedVersion := int64(0)
		current, err := s.payrollRepo.GetCurrentByEmployee(txCtx, emp.ID, companyID)
		if err != nil && !errors.Is(err, payroll.ErrPayrollNotFound) {
			return err
		}
		if err == nil {
			expectedVersion = current.Version
		}

		_, err = s.payrollRepo.UpsertCurrent(txCtx, payroll.CurrentPayroll{
			EmployeeID:      emp.ID,
			CompanyID:       companyID,
			ContributorType: contributorType,
			GrossSalary:     result.GrossSalary,
			GosiWageBase:    result.GosiWageBase,
			GosiEmployee:    result.GosiEmployee,
			GosiEmployer:    result.GosiEmployer,
			NetSalary:       result.NetSalary,
			CalculatedAt:    time.Now(),
		}, expectedVersion)
		return err
	})
	if err != nil {
		return compensation.ProposeChangeResponse{}, err
	}

	return compensation.ProposeChangeResponse{
		Change:      mapToChangeRecordResponse(record),
		BandWarning: bandWarning,
		GrossSalary: result.GrossSalary,
		NetSalary:   result.NetSalary,
	}, nil
}

// ListChanges returns the employee's adjustment history, newest effective
// date first. A backdated record sorts by when it takes effect, not by when
// it was entered.
func (s *ChangeServiceImpl) ListChanges(ctx context.Context, employeeID string) ([]compensation.ChangeRecordResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, employeeID, companyID); err != nil {
		return nil, err
	}

	records, err := s.changeRepo.ListChangeRecords(ctx, employeeID, companyID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].EffectiveDate.Equal(records[j].EffectiveDate) {
			return records[i].EffectiveDate.After(records[j].EffectiveDate)
		}
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	result := make([]compensation.ChangeRecordResponse, 0, len(records))
	for _, r := range records {
		result = append(result, mapToChangeRecordResponse(r))
	}
	return result, nil
}

func (s *ChangeServiceImpl) GetChange(ctx context.Context, employeeID string, changeID string) (compensation.ChangeRecordResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return compensation.ChangeRecordResponse{}, err
	}

	record, err := s.changeRepo.GetChangeRecordByID(ctx, changeID, companyID)
	if err != nil {
		return compensation.ChangeRecordResponse{}, err
	}
	if record.EmployeeID != employeeID {
		return compensation.ChangeRecordResponse{}, compensation.ErrChangeRecordNotFound
	}

	return mapToChangeRecordResponse(record), nil
}

// ApplyAdjustment builds the new compensation snapshot from the current one.
// Absent fields keep their current values. Percentage mode scales the current
// basic salary; amount mode sets it outright. The two modes are inverse forms
// of the same linear transform.
func ApplyAdjustment(old compensation.Components, req compensation.ProposeChangeRequest) compensation.Components {
	next := old

	switch {
	case req.NewBasicSalary != nil:
		next.BasicSalary = *req.NewBasicSalary
	case req.AdjustmentPercent != nil:
		next.BasicSalary = old.BasicSalary.Mul(hundred.Add(*req.AdjustmentPercent)).Div(hundred)
	}

	if req.HousingAllowance != nil {
		next.HousingAllowance = *req.HousingAllowance
	}
	if req.TransportationAllowance != nil {
		next.TransportationAllowance = *req.TransportationAllowance
	}
	if req.FoodAllowance != nil {
		next.FoodAllowance = *req.FoodAllowance
	}
	if req.MobileAllowance != nil {
		next.MobileAllowance = *req.MobileAllowance
	}
	if req.OtherAllowances != nil {
		next.OtherAllowances = *req.OtherAllowances
	}
	if req.IBAN != nil {
		next.IBAN = req.IBAN
	}
	if req.BankName != nil {
		next.BankName = req.BankName
	}

	return next
}

// DeltaPercent returns the relative change between totals as a percentage.
// A zero old total yields 0% rather than a division error.
func DeltaPercent(oldTotal, newTotal decimal.Decimal) decimal.Decimal {
	if oldTotal.IsZero() {
		return decimal.Zero
	}
	return newTotal.Sub(oldTotal).Div(oldTotal).Mul(hundred)
}

// CheckBand compares a basic salary against the grade's band. Out-of-band is
// advisory: callers surface the warning but never block the change.
func CheckBand(g grade.Grade, basic decimal.Decimal) *compensation.BandWarning {
	if g.Contains(basic) {
		return nil
	}

	message := "basic salary is below the minimum of the assigned salary band"
	if basic.GreaterThan(g.MaximumSalary) {
		message = "basic salary exceeds the maximum of the assigned salary band"
	}

	return &compensation.BandWarning{
		GradeID:       g.ID,
		GradeName:     g.Name,
		MinimumSalary: g.MinimumSalary,
		MaximumSalary: g.MaximumSalary,
		BasicSalary:   basic,
		Message:       message,
	}
}

func mapToChangeRecordResponse(r compensation.ChangeRecord) compensation.ChangeRecordResponse {
	return compensation.ChangeRecordResponse{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		OldBasicSalary: r.OldBasicSalary,
		NewBasicSalary: r.NewBasicSalary,
		OldComponents:  mapToComponentsResponse(r.OldComponents),
		NewComponents:  mapToComponentsResponse(r.NewComponents),
		OldTotal:       r.OldTotal,
		NewTotal:       r.NewTotal,
		Delta:          r.Delta,
		DeltaPercent:   r.DeltaPercent.StringFixed(2),
		EffectiveDate:  r.EffectiveDate.Format("2006-01-02"),
		ChangeReason:   r.ChangeReason,
		ChangedBy:      r.ChangedBy,
		CreatedAt:      r.CreatedAt.Format(time.RFC3339),
	}
}

func mapToComponentsResponse(c compensation.Components) compensation.ComponentsResponse {
	return compensation.ComponentsResponse{
		BasicSalary:             c.BasicSalary,
		HousingAllowance:        c.HousingAllowance,
		TransportationAllowance: c.TransportationAllowance,
		FoodAllowance:           c.FoodAllowance,
		MobileAllowance:         c.MobileAllowance,
		OtherAllowances:         c.OtherAllowances,
		IBAN:                    c.IBAN,
		BankName:                c.BankName,
	}
}
