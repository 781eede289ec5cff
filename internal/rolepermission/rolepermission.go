package rolepermission

import (
	"fmt"
	"time"

	rolepermissionDatamodel "github.com/frahmantamala/restaurant-management/internal/core/datamodel/rolepermission"
)

// Role is the closed set of staff roles a tenant company can have.
type Role string

const (
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
	RoleChef    Role = "chef"
	RoleWaiter  Role = "waiter"
	RoleCashier Role = "cashier"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleManager, RoleChef, RoleWaiter, RoleCashier:
		return true
	}
	return false
}

// AllRoles returns the five roles in seeding order.
func AllRoles() []Role {
	return []Role{RoleOwner, RoleManager, RoleChef, RoleWaiter, RoleCashier}
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role: %q", s)
	}
	return r, nil
}

// RolePermission is the domain view of one (company, role) feature grant.
type RolePermission struct {
	ID        int64     `json:"id"`
	CompanyID string    `json:"company_id"`
	Role      Role      `json:"role"`
	Features  []string  `json:"features"`
	UpdatedBy *string   `json:"updated_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (rp *RolePermission) HasFeature(feature string) bool {
	for _, f := range rp.Features {
		if f == feature {
			return true
		}
	}
	return false
}

func (rp *RolePermission) ToResponse() RolePermissionResponse {
	return RolePermissionResponse{
		CompanyID: rp.CompanyID,
		Role:      rp.Role.String(),
		Features:  rp.Features,
		UpdatedBy: rp.UpdatedBy,
		UpdatedAt: rp.UpdatedAt,
	}
}

func ToDataModel(rp *RolePermission) *rolepermissionDatamodel.RolePermission {
	return &rolepermissionDatamodel.RolePermission{
		ID:        rp.ID,
		CompanyID: rp.CompanyID,
		Role:      rp.Role.String(),
		Features:  rolepermissionDatamodel.FeatureList(rp.Features),
		UpdatedBy: rp.UpdatedBy,
		CreatedAt: rp.CreatedAt,
		UpdatedAt: rp.UpdatedAt,
	}
}

func FromDataModel(rp *rolepermissionDatamodel.RolePermission) *RolePermission {
	return &RolePermission{
		ID:        rp.ID,
		CompanyID: rp.CompanyID,
		Role:      Role(rp.Role),
		Features:  []string(rp.Features),
		UpdatedBy: rp.UpdatedBy,
		CreatedAt: rp.CreatedAt,
		UpdatedAt: rp.UpdatedAt,
	}
}
