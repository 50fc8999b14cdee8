package response

import (
	"errors"
	"net/http"

	"github.com/masarhr/masar-backend-go/internal/domain/compensation"
	"github.com/masarhr/masar-backend-go/internal/domain/employee"
	"github.com/masarhr/masar-backend-go/internal/domain/gosi"
	"github.com/masarhr/masar-backend-go/internal/domain/grade"
	"github.com/masarhr/masar-backend-go/internal/domain/payroll"
	"github.com/masarhr/masar-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmployeeInactive):
		BadRequest(w, "Employee is not active", nil)
	case errors.Is(err, employee.ErrUnauthorized):
		Forbidden(w, "Unauthorized to access this employee")

	// Compensation domain errors
	case errors.Is(err, compensation.ErrChangeRecordNotFound):
		NotFound(w, "Compensation change record not found")
	case errors.Is(err, compensation.ErrNoAdjustment):
		BadRequest(w, "No compensation adjustment supplied", nil)
	case errors.Is(err, compensation.ErrAmbiguousAdjustment):
		BadRequest(w, "Supply either new_basic_salary or adjustment_percent, not both", nil)
	case errors.Is(err, compensation.ErrEmployeeLocked):
		Conflict(w, "Another compensation change for this employee is in progress")

	// Grade domain errors
	case errors.Is(err, grade.ErrGradeNotFound):
		NotFound(w, "Grade not found")
	case errors.Is(err, grade.ErrGradeNameExists):
		Conflict(w, "Grade name already exists")
	case errors.Is(err, grade.ErrInvalidBand):
		BadRequest(w, "Invalid salary band", nil)

	// GOSI domain errors
	case errors.Is(err, gosi.ErrRateConfigNotFound):
		NotFound(w, "GOSI rate configuration not found")
	case errors.Is(err, gosi.ErrRateConfigMissing):
		BadRequest(w, "No GOSI rate configuration and statutory fallback is disabled", nil)
	case errors.Is(err, gosi.ErrActiveRateExists):
		Conflict(w, "An active GOSI rate row already exists for this contributor type")
	case errors.Is(err, gosi.ErrInvalidContributorType):
		BadRequest(w, "Invalid contributor type", nil)
	case errors.Is(err, gosi.ErrInvalidRate):
		BadRequest(w, "Contribution rates must be between 0 and 1", nil)
	case errors.Is(err, gosi.ErrInvalidCeiling):
		BadRequest(w, "Wage ceiling must be positive", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrLineItemNotFound):
		NotFound(w, "Payroll line item not found")
	case errors.Is(err, payroll.ErrPayrollConflict):
		Conflict(w, "Payroll record was modified concurrently, retry the operation")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)
	case errors.Is(err, payroll.ErrNoActiveEmployees):
		BadRequest(w, "Company has no active employees", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
