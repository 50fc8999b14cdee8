package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/masarhr/masar-backend-go/internal/domain/compensation"
	"github.com/masarhr/masar-backend-go/internal/handler/http/response"
)

type CompensationHandler interface {
	ProposeChange(w http.ResponseWriter, r *http.Request)
	ListChanges(w http.ResponseWriter, r *http.Request)
	GetChange(w http.ResponseWriter, r *http.Request)
}

type compensationHandlerImpl struct {
	changeService compensation.ChangeService
}

func NewCompensationHandler(changeService compensation.ChangeService) CompensationHandler {
	return &compensationHandlerImpl{changeService: changeService}
}

func (h *compensationHandlerImpl) ProposeChange(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	var req compensation.ProposeChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = employeeID

	result, err := h.changeService.ProposeChange(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Compensation change recorded", result)
}

func (h *compensationHandlerImpl) ListChanges(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	result, err := h.changeService.ListChanges(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *compensationHandlerImpl) GetChange(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	changeID := chi.URLParam(r, "changeId")
	if employeeID == "" || changeID == "" {
		response.BadRequest(w, "Employee ID and change ID are required", nil)
		return
	}

	result, err := h.changeService.GetChange(r.Context(), employeeID, changeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
