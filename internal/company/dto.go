package company

import (
	errors "github.com/frahmantamala/restaurant-management/internal"
	"github.com/frahmantamala/restaurant-management/internal/core/common/validation"
)

type CompanyResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	BusinessType  string  `json:"business_type"`
	Currency      string  `json:"currency"`
	Timezone      string  `json:"timezone"`
	Address       string  `json:"address"`
	Phone         string  `json:"phone"`
	TaxRate       float64 `json:"tax_rate"`
	ServiceCharge float64 `json:"service_charge"`
}

// UpdateSettingsDTO carries a partial settings update; nil fields are left
// untouched.
type UpdateSettingsDTO struct {
	Name          *string  `json:"name,omitempty"`
	BusinessType  *string  `json:"business_type,omitempty"`
	Currency      *string  `json:"currency,omitempty"`
	Timezone      *string  `json:"timezone,omitempty"`
	Address       *string  `json:"address,omitempty"`
	Phone         *string  `json:"phone,omitempty"`
	TaxRate       *float64 `json:"tax_rate,omitempty"`
	ServiceCharge *float64 `json:"service_charge,omitempty"`
}

func (d UpdateSettingsDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if d.Name != nil {
		v.Field("name", *d.Name).Required().MaxLength(200)
	}
	if d.Currency != nil {
		v.Field("currency", *d.Currency).Required().MinLength(3).MaxLength(3)
	}
	if d.Timezone != nil {
		v.Field("timezone", *d.Timezone).Required().MaxLength(64)
	}
	if err := v.Validate(); err != nil {
		return err
	}

	if d.TaxRate != nil && (*d.TaxRate < 0 || *d.TaxRate > 100) {
		return errors.NewValidationFieldError("tax_rate", "tax_rate must be between 0 and 100", errors.ErrCodeValidationFailed)
	}
	if d.ServiceCharge != nil && (*d.ServiceCharge < 0 || *d.ServiceCharge > 100) {
		return errors.NewValidationFieldError("service_charge", "service_charge must be between 0 and 100", errors.ErrCodeValidationFailed)
	}
	return nil
}
