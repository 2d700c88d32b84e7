package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/leadwise/crm-backend-go/internal/domain/lead"
	"github.com/leadwise/crm-backend-go/internal/handler/http/response"
)

// LeadHandler defines the lead handler interface
type LeadHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListLoginQueue(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Assign(w http.ResponseWriter, r *http.Request)
	Transfer(w http.ResponseWriter, r *http.Request)
	SetReporters(w http.ResponseWriter, r *http.Request)
	MoveToLoginQueue(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Activities(w http.ResponseWriter, r *http.Request)
}

type leadHandlerImpl struct {
	leadService lead.Service
}

func NewLeadHandler(leadService lead.Service) LeadHandler {
	return &leadHandlerImpl{leadService: leadService}
}

func (h *leadHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actorID := getUserIDFromContext(r)
	if actorID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req lead.CreateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.leadService.Create(r.Context(), actorID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Lead created", created)
}

func (h *leadHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actorID := getUserIDFromContext(r)
	if actorID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	result, err := h.leadService.Get(r.Context(), actorID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *leadHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *leadHandlerImpl) ListLoginQueue(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h *leadHandlerImpl) list(w http.ResponseWriter, r *http.Request, loginQueue bool) {
	actorID := getUserIDFromContext(r)
	if actorID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	filter := lead.Filter{
		Status: getStringQueryParam(r, "status"),
		Search: getStringQueryParam(r, "search"),
		Page:   getIntQueryParam(r, "page", 1),
		Limit:  getIntQueryParam(r, "limit", 20),
	}

	var (
		leads []lead.LeadResponse
		total int64
		err   error
	)
	if loginQueue {
		leads, total, err = h.leadService.ListLoginQueue(r.Context(), actorID, filter)
	} else {
		leads, total, err = h.leadService.List(r.Context(), actorID, filter)
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, leads, pageMeta(filter.Page, filter.Limit, total))
}

func (h *leadHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	actorID := getUserIDFromContext(r)
	if actorID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req lead.UpdateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := h.leadService.Update(r.Context(), actorID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Lead updated", nil)
}

func (h *leadHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	actorID := getUserIDFromContext(r)
	if actorID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req lead.AssignLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := h.leadService.Assign(r.Context(), actorID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Lead assigned", nil)
}

func (h *leadHandlerImpl) Transfer(w http.ResponseWriter, r *http.Request) {
	actorID := getUserIDFromContext(r)
	if actorID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req lead.TransferLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := h.leadService.Transfer(r.Context(), actorID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Lead transferred", nil)
}

func (h *leadHandlerImpl) SetReporters(w http.ResponseWriter, r *http.Request) {
	actorID := getUserIDFromContext(r)
	if actorID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req lead.SetReportersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := h.leadService.SetReporters(r.Context(), actorID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Lead reporters updated", nil)
}

func (h *leadHandlerImpl) MoveToLoginQueue(w http.ResponseWriter, r *http.Request) {
	actorID := getUserIDFromContext(r)
	if actorID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	if err := h.leadService.MoveToLoginQueue(r.Context(), actorID, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Lead moved to login queue", nil)
}

func (h *leadHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	actorID := getUserIDFromContext(r)
	if actorID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	if err := h.leadService.Delete(r.Context(), actorID, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Lead deleted", nil)
}

func (h *leadHandlerImpl) Activities(w http.ResponseWriter, r *http.Request) {
	actorID := getUserIDFromContext(r)
	if actorID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	activities, err := h.leadService.Activities(r.Context(), actorID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, activities)
}
