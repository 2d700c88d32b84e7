package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/leadwise/crm-backend-go/internal/domain/user"
	"github.com/leadwise/crm-backend-go/internal/handler/http/response"
)

// OrgHandler covers users, roles and departments.
type OrgHandler interface {
	CreateUser(w http.ResponseWriter, r *http.Request)
	GetUser(w http.ResponseWriter, r *http.Request)
	ListUsers(w http.ResponseWriter, r *http.Request)
	UpdateUser(w http.ResponseWriter, r *http.Request)
	DeactivateUser(w http.ResponseWriter, r *http.Request)
	ActivateUser(w http.ResponseWriter, r *http.Request)

	CreateRole(w http.ResponseWriter, r *http.Request)
	GetRole(w http.ResponseWriter, r *http.Request)
	ListRoles(w http.ResponseWriter, r *http.Request)
	UpdateRole(w http.ResponseWriter, r *http.Request)
	DeleteRole(w http.ResponseWriter, r *http.Request)

	CreateDepartment(w http.ResponseWriter, r *http.Request)
	ListDepartments(w http.ResponseWriter, r *http.Request)
	DeleteDepartment(w http.ResponseWriter, r *http.Request)
}

type orgHandlerImpl struct {
	orgService user.Service
}

func NewOrgHandler(orgService user.Service) OrgHandler {
	return &orgHandlerImpl{orgService: orgService}
}

// ==================== USERS ====================

func (h *orgHandlerImpl) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req user.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.orgService.CreateUser(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "User created", created)
}

func (h *orgHandlerImpl) GetUser(w http.ResponseWriter, r *http.Request) {
	result, err := h.orgService.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *orgHandlerImpl) ListUsers(w http.ResponseWriter, r *http.Request) {
	filter := user.UserFilter{
		RoleID:       getStringQueryParam(r, "role_id"),
		DepartmentID: getStringQueryParam(r, "department_id"),
		Search:       getStringQueryParam(r, "search"),
		Page:         getIntQueryParam(r, "page", 1),
		Limit:        getIntQueryParam(r, "limit", 20),
	}

	users, total, err := h.orgService.ListUsers(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, users, pageMeta(filter.Page, filter.Limit, total))
}

func (h *orgHandlerImpl) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := h.orgService.UpdateUser(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User updated", nil)
}

func (h *orgHandlerImpl) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	if err := h.orgService.SetUserActive(r.Context(), chi.URLParam(r, "id"), false); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User deactivated", nil)
}

func (h *orgHandlerImpl) ActivateUser(w http.ResponseWriter, r *http.Request) {
	if err := h.orgService.SetUserActive(r.Context(), chi.URLParam(r, "id"), true); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User activated", nil)
}

// ==================== ROLES ====================

func (h *orgHandlerImpl) CreateRole(w http.ResponseWriter, r *http.Request) {
	var req user.CreateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.orgService.CreateRole(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Role created", created)
}

func (h *orgHandlerImpl) GetRole(w http.ResponseWriter, r *http.Request) {
	result, err := h.orgService.GetRole(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *orgHandlerImpl) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.orgService.ListRoles(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, roles)
}

func (h *orgHandlerImpl) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := h.orgService.UpdateRole(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Role updated", nil)
}

func (h *orgHandlerImpl) DeleteRole(w http.ResponseWriter, r *http.Request) {
	if err := h.orgService.DeleteRole(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Role deleted", nil)
}

// ==================== DEPARTMENTS ====================

func (h *orgHandlerImpl) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req user.CreateDepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.orgService.CreateDepartment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Department created", created)
}

func (h *orgHandlerImpl) ListDepartments(w http.ResponseWriter, r *http.Request) {
	depts, err := h.orgService.ListDepartments(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, depts)
}

func (h *orgHandlerImpl) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	if err := h.orgService.DeleteDepartment(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Department deleted", nil)
}
