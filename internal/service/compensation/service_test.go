package compensation

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/masarhr/masar-backend-go/internal/domain/compensation"
	"github.com/masarhr/masar-backend-go/internal/domain/employee"
	"github.com/masarhr/masar-backend-go/internal/domain/grade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func baseComponents() compensation.Components {
	return compensation.Components{
		BasicSalary:      d("10000"),
		HousingAllowance: d("2000"),
	}
}

func TestApplyAdjustment_AbsoluteBasic(t *testing.T) {
	req := compensation.ProposeChangeRequest{NewBasicSalary: dp("12000")}

	next := ApplyAdjustment(baseComponents(), req)

	assert.Equal(t, "12000", next.BasicSalary.String())
	// Untouched fields keep their values.
	assert.Equal(t, "2000", next.HousingAllowance.String())
}

func TestApplyAdjustment_PercentMode(t *testing.T) {
	req := compensation.ProposeChangeRequest{AdjustmentPercent: dp("10")}

	next := ApplyAdjustment(baseComponents(), req)

	assert.Equal(t, "11000.00", next.BasicSalary.StringFixed(2))
}

func TestApplyAdjustment_PercentAndAbsoluteEquivalent(t *testing.T) {
	// A 10% raise on 10000 and an absolute 11000 must land on the same value.
	byPercent := ApplyAdjustment(baseComponents(), compensation.ProposeChangeRequest{AdjustmentPercent: dp("10")})
	byAmount := ApplyAdjustment(baseComponents(), compensation.ProposeChangeRequest{NewBasicSalary: dp("11000")})

	assert.True(t, byPercent.BasicSalary.Equal(byAmount.BasicSalary))
}

func TestApplyAdjustment_NegativePercentCutsSalary(t *testing.T) {
	req := compensation.ProposeChangeRequest{AdjustmentPercent: dp("-25")}

	next := ApplyAdjustment(baseComponents(), req)

	assert.Equal(t, "7500.00", next.BasicSalary.StringFixed(2))
}

func TestApplyAdjustment_AllowanceOnly(t *testing.T) {
	req := compensation.ProposeChangeRequest{HousingAllowance: dp("3500")}

	next := ApplyAdjustment(baseComponents(), req)

	assert.Equal(t, "10000", next.BasicSalary.String())
	assert.Equal(t, "3500", next.HousingAllowance.String())
}

func TestApplyAdjustment_BankDetails(t *testing.T) {
	iban := "SA0380000000608010167519"
	bank := "Al Rajhi"
	req := compensation.ProposeChangeRequest{IBAN: &iban, BankName: &bank}

	next := ApplyAdjustment(baseComponents(), req)

	require.NotNil(t, next.IBAN)
	assert.Equal(t, iban, *next.IBAN)
	require.NotNil(t, next.BankName)
	assert.Equal(t, bank, *next.BankName)
}

func TestDeltaPercent(t *testing.T) {
	cases := []struct {
		name     string
		oldTotal string
		newTotal string
		want     string
	}{
		{"raise", "10000", "11000", "10.00"},
		{"cut", "10000", "7500", "-25.00"},
		{"unchanged", "10000", "10000", "0.00"},
		{"zero old total", "0", "5000", "0.00"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := DeltaPercent(d(c.oldTotal), d(c.newTotal))
			assert.Equal(t, c.want, got.StringFixed(2))
		})
	}
}

func TestCheckBand(t *testing.T) {
	g := grade.Grade{
		ID:             "grade-1",
		Name:           "G5",
		MinimumSalary:  d("8000"),
		MidpointSalary: d("10000"),
		MaximumSalary:  d("12000"),
	}

	assert.Nil(t, CheckBand(g, d("8000")))
	assert.Nil(t, CheckBand(g, d("10000")))
	assert.Nil(t, CheckBand(g, d("12000")))

	below := CheckBand(g, d("7999.99"))
	require.NotNil(t, below)
	assert.Equal(t, "grade-1", below.GradeID)
	assert.Contains(t, below.Message, "below the minimum")

	above := CheckBand(g, d("12000.01"))
	require.NotNil(t, above)
	assert.Contains(t, above.Message, "exceeds the maximum")
}

func TestProposeChangeRequest_Validate(t *testing.T) {
	valid := compensation.ProposeChangeRequest{
		NewBasicSalary: dp("12000"),
		EffectiveDate:  "2026-04-01",
		ChangeReason:   "annual review",
	}
	assert.NoError(t, valid.Validate())

	missingReason := valid
	missingReason.ChangeReason = ""
	assert.Error(t, missingReason.Validate())

	badDate := valid
	badDate.EffectiveDate = "01-04-2026"
	assert.Error(t, badDate.Validate())

	negative := valid
	negative.NewBasicSalary = dp("-1")
	assert.Error(t, negative.Validate())

	badIBAN := valid
	iban := "SA123"
	badIBAN.IBAN = &iban
	assert.Error(t, badIBAN.Validate())
}

const testCompanyID = "company-1"

type stubEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (s *stubEmployeeRepo) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	emp, ok := s.employees[id]
	if !ok || emp.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (s *stubEmployeeRepo) GetByIDForUpdate(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	return s.GetByID(ctx, id, companyID)
}

func (s *stubEmployeeRepo) GetActiveByCompanyID(ctx context.Context, companyID string, afterID string) ([]employee.Employee, error) {
	return nil, nil
}

func (s *stubEmployeeRepo) UpdateCompensation(ctx context.Context, id string, companyID string, c compensation.Components) error {
	return nil
}

type stubChangeRepo struct {
	records []compensation.ChangeRecord
}

func (s *stubChangeRepo) CreateChangeRecord(ctx context.Context, record compensation.ChangeRecord) (compensation.ChangeRecord, error) {
	s.records = append(s.records, record)
	return record, nil
}

func (s *stubChangeRepo) ListChangeRecords(ctx context.Context, employeeID string, companyID string) ([]compensation.ChangeRecord, error) {
	var out []compensation.ChangeRecord
	for _, r := range s.records {
		if r.EmployeeID == employeeID && r.CompanyID == companyID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubChangeRepo) GetChangeRecordByID(ctx context.Context, id string, companyID string) (compensation.ChangeRecord, error) {
	for _, r := range s.records {
		if r.ID == id && r.CompanyID == companyID {
			return r, nil
		}
	}
	return compensation.ChangeRecord{}, compensation.ErrChangeRecordNotFound
}

func authContext(t *testing.T) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id":    "user-1",
		"company_id": testCompanyID,
		"role":       "hr_admin",
		"type":       "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func changeRecord(id, employeeID string, effective, created time.Time) compensation.ChangeRecord {
	return compensation.ChangeRecord{
		ID:            id,
		EmployeeID:    employeeID,
		CompanyID:     testCompanyID,
		EffectiveDate: effective,
		CreatedAt:     created,
	}
}

func testEmployees(ids ...string) *stubEmployeeRepo {
	repo := &stubEmployeeRepo{employees: map[string]employee.Employee{}}
	for _, id := range ids {
		repo.employees[id] = employee.Employee{ID: id, CompanyID: testCompanyID}
	}
	return repo
}

func TestListChanges_BackdatedRecordSortsByEffectiveDate(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC) }

	// The backdated adjustment was entered last but takes effect earliest,
	// so it must list after the changes effective later.
	changeRepo := &stubChangeRepo{records: []compensation.ChangeRecord{
		changeRecord("ch-backdated", "emp-1", day(1), day(20)),
		changeRecord("ch-latest", "emp-1", day(15), day(10)),
		changeRecord("ch-middle", "emp-1", day(10), day(5)),
	}}
	svc := NewChangeService(nil, changeRepo, testEmployees("emp-1"), nil, nil, nil)

	result, err := svc.ListChanges(authContext(t), "emp-1")

	require.NoError(t, err)
	require.Len(t, result, 3)
	assert.Equal(t, "ch-latest", result[0].ID)
	assert.Equal(t, "ch-middle", result[1].ID)
	assert.Equal(t, "ch-backdated", result[2].ID)
}

func TestListChanges_SameEffectiveDateNewestEntryFirst(t *testing.T) {
	effective := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	changeRepo := &stubChangeRepo{records: []compensation.ChangeRecord{
		changeRecord("ch-first", "emp-1", effective, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)),
		changeRecord("ch-second", "emp-1", effective, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)),
	}}
	svc := NewChangeService(nil, changeRepo, testEmployees("emp-1"), nil, nil, nil)

	result, err := svc.ListChanges(authContext(t), "emp-1")

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "ch-second", result[0].ID)
	assert.Equal(t, "ch-first", result[1].ID)
}

func TestListChanges_UnknownEmployee(t *testing.T) {
	svc := NewChangeService(nil, &stubChangeRepo{}, testEmployees(), nil, nil, nil)

	_, err := svc.ListChanges(authContext(t), "missing")

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestGetChange_ReturnsRecord(t *testing.T) {
	now := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	changeRepo := &stubChangeRepo{records: []compensation.ChangeRecord{
		changeRecord("ch-1", "emp-1", now, now),
	}}
	svc := NewChangeService(nil, changeRepo, testEmployees("emp-1"), nil, nil, nil)

	result, err := svc.GetChange(authContext(t), "emp-1", "ch-1")

	require.NoError(t, err)
	assert.Equal(t, "ch-1", result.ID)
	assert.Equal(t, "emp-1", result.EmployeeID)
}

func TestGetChange_OtherEmployeesRecordNotFound(t *testing.T) {
	now := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	changeRepo := &stubChangeRepo{records: []compensation.ChangeRecord{
		changeRecord("ch-1", "emp-1", now, now),
	}}
	svc := NewChangeService(nil, changeRepo, testEmployees("emp-1", "emp-2"), nil, nil, nil)

	_, err := svc.GetChange(authContext(t), "emp-2", "ch-1")

	assert.ErrorIs(t, err, compensation.ErrChangeRecordNotFound)
}

func TestGetChange_MissingRecord(t *testing.T) {
	svc := NewChangeService(nil, &stubChangeRepo{}, testEmployees("emp-1"), nil, nil, nil)

	_, err := svc.GetChange(authContext(t), "emp-1", "nope")

	assert.ErrorIs(t, err, compensation.ErrChangeRecordNotFound)
}
