package company

import (
	"time"

	companyDatamodel "github.com/frahmantamala/restaurant-management/internal/core/datamodel/company"
)

type Company struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	BusinessType  string    `json:"business_type"`
	Currency      string    `json:"currency"`
	Timezone      string    `json:"timezone"`
	Address       string    `json:"address"`
	Phone         string    `json:"phone"`
	TaxRate       float64   `json:"tax_rate"`
	ServiceCharge float64   `json:"service_charge"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (c *Company) IsActiveCompany() bool {
	return c.IsActive
}

func (c *Company) ToResponse() CompanyResponse {
	return CompanyResponse{
		ID:            c.ID,
		Name:          c.Name,
		BusinessType:  c.BusinessType,
		Currency:      c.Currency,
		Timezone:      c.Timezone,
		Address:       c.Address,
		Phone:         c.Phone,
		TaxRate:       c.TaxRate,
		ServiceCharge: c.ServiceCharge,
	}
}

func ToDataModel(c *Company) *companyDatamodel.Company {
	return &companyDatamodel.Company{
		ID:            c.ID,
		Name:          c.Name,
		BusinessType:  c.BusinessType,
		Currency:      c.Currency,
		Timezone:      c.Timezone,
		Address:       c.Address,
		Phone:         c.Phone,
		TaxRate:       c.TaxRate,
		ServiceCharge: c.ServiceCharge,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func FromDataModel(c *companyDatamodel.Company) *Company {
	return &Company{
		ID:            c.ID,
		Name:          c.Name,
		BusinessType:  c.BusinessType,
		Currency:      c.Currency,
		Timezone:      c.Timezone,
		Address:       c.Address,
		Phone:         c.Phone,
		TaxRate:       c.TaxRate,
		ServiceCharge: c.ServiceCharge,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
