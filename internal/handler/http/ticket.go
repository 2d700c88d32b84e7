package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/leadwise/crm-backend-go/internal/domain/ticket"
	"github.com/leadwise/crm-backend-go/internal/handler/http/response"
)

// TicketHandler defines the ticket handler interface
type TicketHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Assign(w http.ResponseWriter, r *http.Request)
	SetStatus(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type ticketHandlerImpl struct {
	ticketService ticket.Service
}

func NewTicketHandler(ticketService ticket.Service) TicketHandler {
	return &ticketHandlerImpl{ticketService: ticketService}
}

func (h *ticketHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actorID := getUserIDFromContext(r)
	if actorID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req ticket.CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.ticketService.Create(r.Context(), actorID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Ticket created", created)
}

func (h *ticketHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actorID := getUserIDFromContext(r)
	if actorID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	result, err := h.ticketService.Get(r.Context(), actorID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *ticketHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actorID := getUserIDFromContext(r)
	if actorID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	filter := ticket.Filter{
		Status:   getStringQueryParam(r, "status"),
		Priority: getStringQueryParam(r, "priority"),
		Search:   getStringQueryParam(r, "search"),
		Page:     getIntQueryParam(r, "page", 1),
		Limit:    getIntQueryParam(r, "limit", 20),
	}

	tickets, total, err := h.ticketService.List(r.Context(), actorID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, tickets, pageMeta(filter.Page, filter.Limit, total))
}

func (h *ticketHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	actorID := getUserIDFromContext(r)
	if actorID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req ticket.UpdateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := h.ticketService.Update(r.Context(), actorID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Ticket updated", nil)
}

func (h *ticketHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	actorID := getUserIDFromContext(r)
	if actorID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req struct {
		AssignedTo []string `json:"assigned_to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.ticketService.Assign(r.Context(), actorID, chi.URLParam(r, "id"), req.AssignedTo); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Ticket assigned", nil)
}

func (h *ticketHandlerImpl) SetStatus(w http.ResponseWriter, r *http.Request) {
	actorID := getUserIDFromContext(r)
	if actorID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if req.Status == "" {
		response.BadRequest(w, "status is required", nil)
		return
	}

	if err := h.ticketService.SetStatus(r.Context(), actorID, chi.URLParam(r, "id"), req.Status); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Ticket status updated", nil)
}

func (h *ticketHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	actorID := getUserIDFromContext(r)
	if actorID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	if err := h.ticketService.Delete(r.Context(), actorID, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Ticket deleted", nil)
}
