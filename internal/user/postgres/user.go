package postgres

import (
	"gorm.io/gorm"

	userDatamodel "github.com/frahmantamala/restaurant-management/internal/core/datamodel/user"
	"github.com/frahmantamala/restaurant-management/internal/user"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(userID string) (*user.User, error) {
	var record userDatamodel.User
	err := r.db.Where("id = ?", userID).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&record), nil
}
