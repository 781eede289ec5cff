package rolepermission

import (
	"encoding/json"
	"net/http"

	"github.com/frahmantamala/restaurant-management/internal"
	"github.com/frahmantamala/restaurant-management/internal/transport"
)

type ServiceAPI interface {
	GetRolePermissions(companyID string) ([]*RolePermission, error)
	GetRolePermission(companyID string, role Role) (*RolePermission, error)
	UpdateRolePermission(companyID string, dto UpdateRolePermissionDTO, updatedBy *string) (*RolePermission, error)
	GetFeaturesForRole(companyID, role string) ([]string, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// GetRolePermissions returns every role's record for the caller's company,
// seeding defaults for a brand-new company.
func (h *Handler) GetRolePermissions(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	permissions, err := h.Service.GetRolePermissions(user.CompanyID)
	if err != nil {
		h.writeServiceError(w, "GetRolePermissions", err)
		return
	}

	responses := make([]RolePermissionResponse, len(permissions))
	for i, permission := range permissions {
		responses[i] = permission.ToResponse()
	}

	h.WriteJSON(w, http.StatusOK, RolePermissionsResponse{RolePermissions: responses})
}

// GetMyPermissions returns the record for the caller's own role.
func (h *Handler) GetMyPermissions(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	role, err := ParseRole(user.Role)
	if err != nil {
		h.Logger.Error("GetMyPermissions: session carries unknown role", "role", user.Role, "user_id", user.UserID)
		h.WriteError(w, http.StatusForbidden, "unknown role")
		return
	}

	permission, err := h.Service.GetRolePermission(user.CompanyID, role)
	if err != nil {
		h.writeServiceError(w, "GetMyPermissions", err)
		return
	}
	if permission == nil {
		h.WriteError(w, http.StatusNotFound, "role permission not found")
		return
	}

	h.WriteJSON(w, http.StatusOK, permission.ToResponse())
}

// UpdateRolePermission overwrites one role's feature list for the caller's
// company. The body's feature list replaces the stored one entirely.
func (h *Handler) UpdateRolePermission(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var dto UpdateRolePermissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	permission, err := h.Service.UpdateRolePermission(user.CompanyID, dto, &user.UserID)
	if err != nil {
		h.writeServiceError(w, "UpdateRolePermission", err)
		return
	}

	h.WriteJSON(w, http.StatusOK, permission.ToResponse())
}

func (h *Handler) writeServiceError(w http.ResponseWriter, op string, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		h.Logger.Warn(op+": request rejected", "error", appErr.Error(), "code", appErr.Code)
		h.WriteJSON(w, appErr.StatusCode, internal.Response{Error: appErr})
		return
	}
	h.Logger.Error(op+": store failure", "error", err)
	h.WriteError(w, http.StatusInternalServerError, "internal server error")
}
