package payroll

import (
	"errors"
	"testing"

	"github.com/masarhr/masar-backend-go/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func batchRequest() payroll.RunBatchRequest {
	return payroll.RunBatchRequest{PeriodMonth: 3, PeriodYear: 2026}
}

func successItem(employeeID, net string) payroll.BatchItem {
	li := lineItemFixture()
	li.EmployeeID = employeeID
	li.GrossSalary = d(net)
	li.NetSalary = d(net)
	li.GosiEmployee = d("0")
	li.GosiEmployer = d("0")
	return payroll.BatchItem{EmployeeID: employeeID, LineItem: &li}
}

func failedItem(employeeID string) payroll.BatchItem {
	return payroll.BatchItem{EmployeeID: employeeID, Err: errors.New("boom")}
}

func TestBuildBatchResponse_AllSuccess(t *testing.T) {
	items := []payroll.BatchItem{
		successItem("emp-1", "1000"),
		successItem("emp-2", "2000"),
		successItem("emp-3", "3000"),
	}

	resp := buildBatchResponse(batchRequest(), items)

	assert.Len(t, resp.LineItems, 3)
	assert.Empty(t, resp.Failures)
	assert.Equal(t, 3, resp.Totals.EmployeeCount)
	assert.Equal(t, "6000.00", resp.Totals.TotalNet)
	require.NotNil(t, resp.Checkpoint)
	assert.Equal(t, "emp-3", *resp.Checkpoint)
}

func TestBuildBatchResponse_FailureDoesNotAbort(t *testing.T) {
	items := []payroll.BatchItem{
		successItem("emp-1", "1000"),
		failedItem("emp-2"),
		successItem("emp-3", "3000"),
	}

	resp := buildBatchResponse(batchRequest(), items)

	assert.Len(t, resp.LineItems, 2)
	require.Len(t, resp.Failures, 1)
	assert.Equal(t, "emp-2", resp.Failures[0].EmployeeID)
	assert.Equal(t, "boom", resp.Failures[0].Reason)

	// Totals cover successes only.
	assert.Equal(t, 2, resp.Totals.EmployeeCount)
	assert.Equal(t, "4000.00", resp.Totals.TotalNet)
}

func TestBuildBatchResponse_CheckpointIsContiguousPrefix(t *testing.T) {
	items := []payroll.BatchItem{
		successItem("emp-1", "1000"),
		successItem("emp-2", "2000"),
		failedItem("emp-3"),
		successItem("emp-4", "4000"),
	}

	resp := buildBatchResponse(batchRequest(), items)

	// emp-4 succeeded but sits past the failure, so the checkpoint stops at
	// emp-2; resuming after it retries emp-3 and recomputes emp-4 idempotently.
	require.NotNil(t, resp.Checkpoint)
	assert.Equal(t, "emp-2", *resp.Checkpoint)
}

func TestBuildBatchResponse_NoCheckpointWhenFirstFails(t *testing.T) {
	items := []payroll.BatchItem{
		failedItem("emp-1"),
		successItem("emp-2", "2000"),
	}

	resp := buildBatchResponse(batchRequest(), items)

	assert.Nil(t, resp.Checkpoint)
}

func TestBuildBatchResponse_SortsByEmployeeID(t *testing.T) {
	items := []payroll.BatchItem{
		successItem("emp-3", "3000"),
		successItem("emp-1", "1000"),
		successItem("emp-2", "2000"),
	}

	resp := buildBatchResponse(batchRequest(), items)

	require.Len(t, resp.LineItems, 3)
	assert.Equal(t, "emp-1", resp.LineItems[0].EmployeeID)
	assert.Equal(t, "emp-2", resp.LineItems[1].EmployeeID)
	assert.Equal(t, "emp-3", resp.LineItems[2].EmployeeID)
}

func TestRunBatchRequest_Validate(t *testing.T) {
	cases := []struct {
		name    string
		month   int
		year    int
		wantErr bool
	}{
		{"valid", 3, 2026, false},
		{"month too low", 0, 2026, true},
		{"month too high", 13, 2026, true},
		{"year before 2020", 6, 2019, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := payroll.RunBatchRequest{PeriodMonth: c.month, PeriodYear: c.year}
			err := req.Validate()
			if c.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
