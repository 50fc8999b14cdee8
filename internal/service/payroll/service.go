package payroll

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/masarhr/masar-backend-go/internal/domain/compensation"
	"github.com/masarhr/masar-backend-go/internal/domain/employee"
	"github.com/masarhr/masar-backend-go/internal/domain/gosi"
	"github.com/masarhr/masar-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type PayrollServiceImpl struct {
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
	rateService  gosi.RateService
	batchWorkers int
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	rateService gosi.RateService,
	batchWorkers int,
) payroll.PayrollService {
	if batchWorkers < 1 {
		batchWorkers = 1
	}
	return &PayrollServiceImpl{
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		rateService:  rateService,
		batchWorkers: batchWorkers,
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

// Calculate runs a standalone pay calculation with the company's resolved
// rates. Nothing is persisted.
func (s *PayrollServiceImpl) Calculate(ctx context.Context, req payroll.CalculateRequest) (payroll.ResultResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ResultResponse{}, err
	}

	companyID, err := getCompanyID(ctx)
	if err != nil {
		return payroll.ResultResponse{}, err
	}

	contributorType := gosi.ContributorType(req.ContributorType)
	if !contributorType.Valid() {
		return payroll.ResultResponse{}, gosi.ErrInvalidContributorType
	}

	asOf := time.Now()
	if req.AsOfDate != "" {
		parsed, err := time.Parse("2006-01-02", req.AsOfDate)
		if err == nil {
			asOf = parsed
		}
	}

	rates, err := s.rateService.Resolve(ctx, companyID, contributorType, asOf)
	if err != nil {
		return payroll.ResultResponse{}, err
	}

	result, err := Calculate(componentsFromRequest(req), rates)
	if err != nil {
		return payroll.ResultResponse{}, err
	}

	return payroll.NewResultResponse(result), nil
}

// RunBatch computes payroll for every active employee of the company.
// Employees are independent, so the work fans out across a bounded worker
// group; one employee's failure is captured as a per-item value and never
// aborts the batch. Totals cover successes only.
func (s *PayrollServiceImpl) RunBatch(ctx context.Context, req payroll.RunBatchRequest) (payroll.RunBatchResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RunBatchResponse{}, err
	}

	companyID, err := getCompanyID(ctx)
	if err != nil {
		return payroll.RunBatchResponse{}, err
	}

	afterID := ""
	if req.ResumeAfterEmployeeID != nil {
		afterID = *req.ResumeAfterEmployeeID
	}

	employees, err := s.employeeRepo.GetActiveByCompanyID(ctx, companyID, afterID)
	if err != nil {
		return payroll.RunBatchResponse{}, fmt.Errorf("failed to get employees: %w", err)
	}
	if len(employees) == 0 {
		return payroll.RunBatchResponse{}, payroll.ErrNoActiveEmployees
	}

	// Period date used for rate resolution: first day of the period.
	periodDate := time.Date(req.PeriodYear, time.Month(req.PeriodMonth), 1, 0, 0, 0, 0, time.UTC)

	// Rates vary by contributor type, not by employee; resolve each type once
	// up front so a rate-config failure surfaces before any write happens.
	rateSets := make(map[gosi.ContributorType]gosi.RateSet)
	for _, ct := range []gosi.ContributorType{gosi.ContributorSaudi, gosi.ContributorNonSaudi} {
		rates, err := s.rateService.Resolve(ctx, companyID, ct, periodDate)
		if err != nil {
			return payroll.RunBatchResponse{}, err
		}
		rateSets[ct] = rates
	}

	items := make([]payroll.BatchItem, len(employees))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchWorkers)
	for i, emp := range employees {
		i, emp := i, emp
		g.Go(func() error {
			items[i] = s.processEmployee(gctx, emp, req.PeriodMonth, req.PeriodYear, rateSets)
			return nil
		})
	}
	// Workers never return errors; failures live in the items themselves.
	_ = g.Wait()

	return buildBatchResponse(req, items), nil
}

func (s *PayrollServiceImpl) processEmployee(
	ctx context.Context,
	emp employee.Employee,
	month, year int,
	rateSets map[gosi.ContributorType]gosi.RateSet,
) payroll.BatchItem {
	rates, ok := rateSets[gosi.Classify(emp.Nationality, emp.IsSaudi)]
	if !ok {
		return payroll.BatchItem{EmployeeID: emp.ID, Err: gosi.ErrInvalidContributorType}
	}

	result, err := Calculate(emp.Compensation, rates)
	if err != nil {
		return payroll.BatchItem{EmployeeID: emp.ID, Err: err}
	}

	incoming := lineItemFromResult(emp, month, year, result)

	stored, err := s.payrollRepo.GetLineItem(ctx, emp.ID, month, year, emp.CompanyID)
	switch {
	case errors.Is(err, payroll.ErrLineItemNotFound):
		created, err := s.payrollRepo.CreateLineItem(ctx, incoming)
		if err != nil {
			return payroll.BatchItem{EmployeeID: emp.ID, Err: err}
		}
		return payroll.BatchItem{EmployeeID: emp.ID, LineItem: &created}
	case err != nil:
		return payroll.BatchItem{EmployeeID: emp.ID, Err: err}
	}

	merged := mergeLineItem(stored, incoming)
	updated, err := s.payrollRepo.UpdateLineItem(ctx, merged)
	if err != nil {
		return payroll.BatchItem{EmployeeID: emp.ID, Err: err}
	}
	return payroll.BatchItem{EmployeeID: emp.ID, LineItem: &updated}
}

func (s *PayrollServiceImpl) GetSummary(ctx context.Context, month, year int) (payroll.SummaryResponse, error) {
	if month < 1 || month > 12 {
		return payroll.SummaryResponse{}, payroll.ErrInvalidPeriod
	}

	companyID, err := getCompanyID(ctx)
	if err != nil {
		return payroll.SummaryResponse{}, err
	}

	return s.payrollRepo.GetBatchSummary(ctx, companyID, month, year)
}

func (s *PayrollServiceImpl) ListLineItems(ctx context.Context, month, year int) ([]payroll.LineItemResponse, error) {
	if month < 1 || month > 12 {
		return nil, payroll.ErrInvalidPeriod
	}

	companyID, err := getCompanyID(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.payrollRepo.ListLineItems(ctx, companyID, month, year)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.LineItemResponse, 0, len(items))
	for _, li := range items {
		result = append(result, mapToLineItemResponse(li))
	}
	return result, nil
}

func (s *PayrollServiceImpl) GetCurrent(ctx context.Context, employeeID string) (payroll.CurrentPayrollResponse, error) {
	companyID, err := getCompanyID(ctx)
	if err != nil {
		return payroll.CurrentPayrollResponse{}, err
	}

	cur, err := s.payrollRepo.GetCurrentByEmployee(ctx, employeeID, companyID)
	if err != nil {
		return payroll.CurrentPayrollResponse{}, err
	}

	return payroll.CurrentPayrollResponse{
		ID:              cur.ID,
		EmployeeID:      cur.EmployeeID,
		ContributorType: string(cur.ContributorType),
		GrossSalary:     cur.GrossSalary.StringFixed(2),
		GosiWageBase:    cur.GosiWageBase.StringFixed(2),
		GosiEmployee:    cur.GosiEmployee.StringFixed(2),
		GosiEmployer:    cur.GosiEmployer.StringFixed(2),
		NetSalary:       cur.NetSalary.StringFixed(2),
		Version:         cur.Version,
		CalculatedAt:    cur.CalculatedAt.Format(time.RFC3339),
	}, nil
}

// ========== HELPERS ==========

func componentsFromRequest(req payroll.CalculateRequest) compensation.Components {
	c := compensation.Components{BasicSalary: req.BasicSalary}
	if req.HousingAllowance != nil {
		c.HousingAllowance = *req.HousingAllowance
	}
	if req.TransportationAllowance != nil {
		c.TransportationAllowance = *req.TransportationAllowance
	}
	if req.FoodAllowance != nil {
		c.FoodAllowance = *req.FoodAllowance
	}
	if req.MobileAllowance != nil {
		c.MobileAllowance = *req.MobileAllowance
	}
	if req.OtherAllowances != nil {
		c.OtherAllowances = *req.OtherAllowances
	}
	return c
}

func lineItemFromResult(emp employee.Employee, month, year int, result payroll.Result) payroll.LineItem {
	return payroll.LineItem{
		EmployeeID:              emp.ID,
		CompanyID:               emp.CompanyID,
		PeriodMonth:             month,
		PeriodYear:              year,
		BasicSalary:             emp.Compensation.BasicSalary,
		HousingAllowance:        emp.Compensation.HousingAllowance,
		TransportationAllowance: emp.Compensation.TransportationAllowance,
		FoodAllowance:           emp.Compensation.FoodAllowance,
		MobileAllowance:         emp.Compensation.MobileAllowance,
		OtherAllowances:         emp.Compensation.OtherAllowances,
		GrossSalary:             result.GrossSalary,
		GosiWageBase:            result.GosiWageBase,
		GosiEmployee:            result.GosiEmployee,
		GosiEmployer:            result.GosiEmployer,
		NetSalary:               result.NetSalary,
		IBAN:                    emp.Compensation.IBAN,
		BankName:                emp.Compensation.BankName,
	}
}

func buildBatchResponse(req payroll.RunBatchRequest, items []payroll.BatchItem) payroll.RunBatchResponse {
	resp := payroll.RunBatchResponse{
		PeriodMonth: req.PeriodMonth,
		PeriodYear:  req.PeriodYear,
		LineItems:   make([]payroll.LineItemResponse, 0, len(items)),
	}

	totals := payroll.BatchTotals{
		TotalGross:        decimal.Zero,
		TotalGosiEmployee: decimal.Zero,
		TotalGosiEmployer: decimal.Zero,
		TotalNet:          decimal.Zero,
	}

	sort.Slice(items, func(i, j int) bool { return items[i].EmployeeID < items[j].EmployeeID })

	checkpointOpen := true
	for _, item := range items {
		if item.Err != nil {
			checkpointOpen = false
			resp.Failures = append(resp.Failures, payroll.BatchFailure{
				EmployeeID: item.EmployeeID,
				Reason:     item.Err.Error(),
			})
			continue
		}

		li := *item.LineItem
		totals.TotalGross = totals.TotalGross.Add(li.GrossSalary)
		totals.TotalGosiEmployee = totals.TotalGosiEmployee.Add(li.GosiEmployee)
		totals.TotalGosiEmployer = totals.TotalGosiEmployer.Add(li.GosiEmployer)
		totals.TotalNet = totals.TotalNet.Add(li.NetSalary)
		totals.EmployeeCount++

		if checkpointOpen {
			id := item.EmployeeID
			resp.Checkpoint = &id
		}

		resp.LineItems = append(resp.LineItems, mapToLineItemResponse(li))
	}

	resp.Totals = payroll.BatchTotalsResponse{
		TotalGross:        totals.TotalGross.StringFixed(2),
		TotalGosiEmployee: totals.TotalGosiEmployee.StringFixed(2),
		TotalGosiEmployer: totals.TotalGosiEmployer.StringFixed(2),
		TotalNet:          totals.TotalNet.StringFixed(2),
		EmployeeCount:     totals.EmployeeCount,
	}

	return resp
}

func mapToLineItemResponse(li payroll.LineItem) payroll.LineItemResponse {
	return payroll.LineItemResponse{
		ID:           li.ID,
		EmployeeID:   li.EmployeeID,
		EmployeeName: li.EmployeeName,
		EmployeeCode: li.EmployeeCode,
		PeriodMonth:  li.PeriodMonth,
		PeriodYear:   li.PeriodYear,
		BasicSalary:  li.BasicSalary.StringFixed(2),
		GrossSalary:  li.GrossSalary.StringFixed(2),
		GosiWageBase: li.GosiWageBase.StringFixed(2),
		GosiEmployee: li.GosiEmployee.StringFixed(2),
		GosiEmployer: li.GosiEmployer.StringFixed(2),
		NetSalary:    li.NetSalary.StringFixed(2),
		IBAN:         li.IBAN,
		BankName:     li.BankName,
	}
}
