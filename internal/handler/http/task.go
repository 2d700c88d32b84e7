package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/leadwise/crm-backend-go/internal/domain/task"
	"github.com/leadwise/crm-backend-go/internal/handler/http/response"
)

// TaskHandler defines the task handler interface
type TaskHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Assign(w http.ResponseWriter, r *http.Request)
	Complete(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type taskHandlerImpl struct {
	taskService task.Service
}

func NewTaskHandler(taskService task.Service) TaskHandler {
	return &taskHandlerImpl{taskService: taskService}
}

func (h *taskHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actorID := getUserIDFromContext(r)
	if actorID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req task.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.taskService.Create(r.Context(), actorID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Task created", created)
}

func (h *taskHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actorID := getUserIDFromContext(r)
	if actorID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	result, err := h.taskService.Get(r.Context(), actorID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *taskHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actorID := getUserIDFromContext(r)
	if actorID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	filter := task.Filter{
		Status: getStringQueryParam(r, "status"),
		LeadID: getStringQueryParam(r, "lead_id"),
		Search: getStringQueryParam(r, "search"),
		Page:   getIntQueryParam(r, "page", 1),
		Limit:  getIntQueryParam(r, "limit", 20),
	}

	tasks, total, err := h.taskService.List(r.Context(), actorID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, tasks, pageMeta(filter.Page, filter.Limit, total))
}

func (h *taskHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	actorID := getUserIDFromContext(r)
	if actorID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req task.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := h.taskService.Update(r.Context(), actorID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Task updated", nil)
}

func (h *taskHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	actorID := getUserIDFromContext(r)
	if actorID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req task.AssignTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := h.taskService.Assign(r.Context(), actorID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Task assigned", nil)
}

func (h *taskHandlerImpl) Complete(w http.ResponseWriter, r *http.Request) {
	actorID := getUserIDFromContext(r)
	if actorID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	if err := h.taskService.Complete(r.Context(), actorID, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Task completed", nil)
}

func (h *taskHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	actorID := getUserIDFromContext(r)
	if actorID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	if err := h.taskService.Delete(r.Context(), actorID, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Task deleted", nil)
}
