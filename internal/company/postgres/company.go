package postgres

import (
	"gorm.io/gorm"

	"github.com/frahmantamala/restaurant-management/internal/company"
	companyDatamodel "github.com/frahmantamala/restaurant-management/internal/core/datamodel/company"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) company.RepositoryAPI {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) GetByID(id string) (*companyDatamodel.Company, error) {
	var record companyDatamodel.Company
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *CompanyRepository) Update(record *companyDatamodel.Company) error {
	return r.db.Save(record).Error
}
