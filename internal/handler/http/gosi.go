package http

import (
	"encoding/json"
	"net/http"

	"github.com/masarhr/masar-backend-go/internal/domain/gosi"
	"github.com/masarhr/masar-backend-go/internal/handler/http/response"
)

type GosiHandler interface {
	ResolveRates(w http.ResponseWriter, r *http.Request)
	ListRates(w http.ResponseWriter, r *http.Request)
	UpsertRate(w http.ResponseWriter, r *http.Request)
	SyncRates(w http.ResponseWriter, r *http.Request)
}

type gosiHandlerImpl struct {
	rateService gosi.RateService
}

func NewGosiHandler(rateService gosi.RateService) GosiHandler {
	return &gosiHandlerImpl{rateService: rateService}
}

// ResolveRates returns the rates that would apply to a contributor type as of
// a date, marking whether the statutory defaults were used.
func (h *gosiHandlerImpl) ResolveRates(w http.ResponseWriter, r *http.Request) {
	contributorType := r.URL.Query().Get("contributor_type")
	if contributorType == "" {
		response.BadRequest(w, "contributor_type is required", nil)
		return
	}
	asOf := r.URL.Query().Get("as_of")

	result, err := h.rateService.ResolveRates(r.Context(), contributorType, asOf)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *gosiHandlerImpl) ListRates(w http.ResponseWriter, r *http.Request) {
	result, err := h.rateService.ListRates(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *gosiHandlerImpl) UpsertRate(w http.ResponseWriter, r *http.Request) {
	var req gosi.UpsertRateConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.rateService.UpsertRate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "GOSI rate configuration applied", result)
}

func (h *gosiHandlerImpl) SyncRates(w http.ResponseWriter, r *http.Request) {
	var req gosi.SyncRatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.rateService.SyncExternalRates(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "GOSI rates synced", result)
}
