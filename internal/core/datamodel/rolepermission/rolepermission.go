package rolepermission

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// FeatureList is stored as a JSON-encoded text column so the same model
// works against postgres and the in-memory sqlite used by repository tests.
type FeatureList []string

func (f FeatureList) Value() (driver.Value, error) {
	if f == nil {
		f = FeatureList{}
	}
	return json.Marshal(f)
}

func (f *FeatureList) Scan(value interface{}) error {
	if value == nil {
		*f = FeatureList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, f)
	case string:
		return json.Unmarshal([]byte(v), f)
	default:
		return fmt.Errorf("unsupported type %T for FeatureList", value)
	}
}

// RolePermission holds the feature grants for one (company, role) pair.
// The composite unique index is what makes Upsert race-safe.
type RolePermission struct {
	ID        int64       `gorm:"primaryKey"`
	CompanyID string      `gorm:"column:company_id;type:uuid;not null;uniqueIndex:idx_role_permissions_company_role"`
	Role      string      `gorm:"column:role;not null;uniqueIndex:idx_role_permissions_company_role"`
	Features  FeatureList `gorm:"column:features;type:text;not null"`
	UpdatedBy *string     `gorm:"column:updated_by;type:uuid"`
	CreatedAt time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}
