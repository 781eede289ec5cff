package postgres

import (
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	"github.com/frahmantamala/restaurant-management/internal/auth"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetByEmail(email string) (*auth.UserRecord, error) {
	return r.scanUser(`SELECT id, company_id, email, name, role, password_hash, is_active FROM users WHERE email = ?`, email)
}

func (r *Repository) GetByID(userID string) (*auth.UserRecord, error) {
	return r.scanUser(`SELECT id, company_id, email, name, role, password_hash, is_active FROM users WHERE id = ?`, userID)
}

func (r *Repository) scanUser(query string, arg interface{}) (*auth.UserRecord, error) {
	var user auth.UserRecord

	row := r.db.Raw(query, arg).Row()
	if err := row.Scan(&user.ID, &user.CompanyID, &user.Email, &user.Name, &user.Role, &user.PasswordHash, &user.IsActive); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}
	return &user, nil
}
