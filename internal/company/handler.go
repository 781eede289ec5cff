package company

import (
	"encoding/json"
	"net/http"

	"github.com/frahmantamala/restaurant-management/internal"
	"github.com/frahmantamala/restaurant-management/internal/transport"
)

type ServiceAPI interface {
	GetCompany(companyID string) (*Company, error)
	UpdateSettings(companyID string, dto UpdateSettingsDTO) (*Company, error)
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

// GetMyCompany handles GET /companies/me
func (h *Handler) GetMyCompany(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	company, err := h.Service.GetCompany(user.CompanyID)
	if err != nil {
		h.writeServiceError(w, "GetMyCompany", err)
		return
	}

	h.WriteJSON(w, http.StatusOK, company.ToResponse())
}

// UpdateMyCompany handles PATCH /companies/me
func (h *Handler) UpdateMyCompany(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var dto UpdateSettingsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	company, err := h.Service.UpdateSettings(user.CompanyID, dto)
	if err != nil {
		h.writeServiceError(w, "UpdateMyCompany", err)
		return
	}

	h.WriteJSON(w, http.StatusOK, company.ToResponse())
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
