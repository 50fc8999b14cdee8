package payroll

import "context"

type PayrollService interface {
	Calculate(ctx context.Context, req CalculateRequest) (ResultResponse, error)
	RunBatch(ctx context.Context, req RunBatchRequest) (RunBatchResponse, error)
	GetSummary(ctx context.Context, month, year int) (SummaryResponse, error)
	ListLineItems(ctx context.Context, month, year int) ([]LineItemResponse, error)
	GetCurrent(ctx context.Context, employeeID string) (CurrentPayrollResponse, error)
}
