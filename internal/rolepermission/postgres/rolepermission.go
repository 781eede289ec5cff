package postgres

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	rolepermissionDatamodel "github.com/frahmantamala/restaurant-management/internal/core/datamodel/rolepermission"
	"github.com/frahmantamala/restaurant-management/internal/rolepermission"
)

type RolePermissionRepository struct {
	db *gorm.DB
}

func NewRolePermissionRepository(db *gorm.DB) rolepermission.RepositoryAPI {
	return &RolePermissionRepository{db: db}
}

func (r *RolePermissionRepository) FindAll(companyID string) ([]*rolepermissionDatamodel.RolePermission, error) {
	var records []*rolepermissionDatamodel.RolePermission
	err := r.db.Where("company_id = ?", companyID).Order("role ASC").Find(&records).Error
	return records, err
}

func (r *RolePermissionRepository) FindOne(companyID, role string) (*rolepermissionDatamodel.RolePermission, error) {
	var record rolepermissionDatamodel.RolePermission
	err := r.db.Where("company_id = ? AND role = ?", companyID, role).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// Upsert inserts or overwrites the record for the (company_id, role) pair.
// The ON CONFLICT clause targets the compound unique index, so concurrent
// writers for the same pair resolve to last-writer-wins without duplicates.
func (r *RolePermissionRepository) Upsert(record *rolepermissionDatamodel.RolePermission) (*rolepermissionDatamodel.RolePermission, error) {
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "company_id"}, {Name: "role"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"features",
			"updated_by",
			"updated_at",
		}),
	}).Create(record).Error
	if err != nil {
		return nil, err
	}

	// re-read so callers get the canonical row (created_at of the original
	// insert, the id assigned under conflict)
	return r.FindOne(record.CompanyID, record.Role)
}
