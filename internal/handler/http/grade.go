package http

import (
	"encoding/json"
	"net/http"

	"github.com/masarhr/masar-backend-go/internal/domain/grade"
	"github.com/masarhr/masar-backend-go/internal/handler/http/response"
	"github.com/masarhr/masar-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GradeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
}

type gradeHandlerImpl struct {
	gradeService grade.GradeService
}

func NewGradeHandler(gradeService grade.GradeService) GradeHandler {
	return &gradeHandlerImpl{gradeService: gradeService}
}

func (h *gradeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var basic *decimal.Decimal
	if basicStr := r.URL.Query().Get("basic_salary"); basicStr != "" {
		parsed, ok := validator.ParseAmount(basicStr)
		if !ok {
			response.BadRequest(w, "Invalid basic_salary", nil)
			return
		}
		basic = &parsed
	}

	result, err := h.gradeService.ListGrades(r.Context(), basic)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *gradeHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var req grade.UpsertGradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.gradeService.UpsertGrade(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Grade saved", result)
}
