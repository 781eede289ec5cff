package rolepermission

import (
	"time"

	errors "github.com/frahmantamala/restaurant-management/internal"
	"github.com/frahmantamala/restaurant-management/internal/core/common/validation"
)

type UpdateRolePermissionDTO struct {
	Role     string   `json:"role"`
	Features []string `json:"features"`
}

func (d UpdateRolePermissionDTO) Validate() *errors.AppError {
	roles := AllRoles()
	allowed := make([]string, len(roles))
	for i, r := range roles {
		allowed[i] = r.String()
	}

	if err := validation.ValidateRoleName(d.Role, allowed); err != nil {
		return err
	}
	return validation.ValidateFeatureList(d.Features)
}

type RolePermissionResponse struct {
	CompanyID string    `json:"company_id"`
	Role      string    `json:"role"`
	Features  []string  `json:"features"`
	UpdatedBy *string   `json:"updated_by,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RolePermissionsResponse struct {
	RolePermissions []RolePermissionResponse `json:"role_permissions"`
}
