package employee

import (
	"time"

	"github.com/masarhr/masar-backend-go/internal/domain/compensation"
)

type Employee struct {
	ID               string
	CompanyID        string
	DepartmentID     *string
	ManagerID        *string
	GradeID          *string
	EmployeeCode     string
	FullName         string
	Nationality      string
	IsSaudi          bool
	HireDate         time.Time
	EmploymentStatus EmploymentStatus
	Compensation     compensation.Components
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)
