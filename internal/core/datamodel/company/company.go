package company

import "time"

type Company struct {
	ID            string    `gorm:"primaryKey;type:uuid"`
	Name          string    `gorm:"column:name;not null"`
	BusinessType  string    `gorm:"column:business_type;default:'restaurant'"`
	Currency      string    `gorm:"column:currency;default:'USD'"`
	Timezone      string    `gorm:"column:timezone;default:'UTC'"`
	Address       string    `gorm:"column:address"`
	Phone         string    `gorm:"column:phone"`
	TaxRate       float64   `gorm:"column:tax_rate;default:0"`
	ServiceCharge float64   `gorm:"column:service_charge;default:0"`
	IsActive      bool      `gorm:"column:is_active;default:true"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Company) TableName() string {
	return "companies"
}
