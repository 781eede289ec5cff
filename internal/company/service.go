package company

import (
	"context"
	"log/slog"

	errors "github.com/frahmantamala/restaurant-management/internal"
	"github.com/frahmantamala/restaurant-management/internal/core/common/validation"
	companyDatamodel "github.com/frahmantamala/restaurant-management/internal/core/datamodel/company"
	"github.com/frahmantamala/restaurant-management/internal/core/events"
)

type RepositoryAPI interface {
	GetByID(id string) (*companyDatamodel.Company, error)
	Update(company *companyDatamodel.Company) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo     RepositoryAPI
	eventBus EventPublisher
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, eventBus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

func (s *Service) GetCompany(companyID string) (*Company, error) {
	if err := validation.ValidateCompanyID(companyID); err != nil {
		return nil, err
	}

	record, err := s.repo.GetByID(companyID)
	if err != nil {
		s.logger.Error("failed to get company", "error", err, "company_id", companyID)
		return nil, err
	}
	if record == nil {
		return nil, errors.ErrCompanyNotFound
	}

	return FromDataModel(record), nil
}

// UpdateSettings applies a partial settings update and returns the result.
func (s *Service) UpdateSettings(companyID string, dto UpdateSettingsDTO) (*Company, error) {
	if err := validation.ValidateCompanyID(companyID); err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		s.logger.Error("company settings validation failed", "error", err, "company_id", companyID)
		return nil, err
	}

	record, err := s.repo.GetByID(companyID)
	if err != nil {
		s.logger.Error("failed to get company for update", "error", err, "company_id", companyID)
		return nil, err
	}
	if record == nil {
		return nil, errors.ErrCompanyNotFound
	}

	applySettings(record, dto)

	if err := s.repo.Update(record); err != nil {
		s.logger.Error("failed to update company settings", "error", err, "company_id", companyID)
		return nil, err
	}

	s.logger.Info("company settings updated", "company_id", companyID)

	if s.eventBus != nil {
		if err := s.eventBus.Publish(context.Background(), events.NewCompanyUpdatedEvent(companyID)); err != nil {
			s.logger.Warn("failed to publish company event", "error", err)
		}
	}

	return FromDataModel(record), nil
}

func applySettings(record *companyDatamodel.Company, dto UpdateSettingsDTO) {
	if dto.Name != nil {
		record.Name = *dto.Name
	}
	if dto.BusinessType != nil {
		record.BusinessType = *dto.BusinessType
	}
	if dto.Currency != nil {
		record.Currency = *dto.Currency
	}
	if dto.Timezone != nil {
		record.Timezone = *dto.Timezone
	}
	if dto.Address != nil {
		record.Address = *dto.Address
	}
	if dto.Phone != nil {
		record.Phone = *dto.Phone
	}
	if dto.TaxRate != nil {
		record.TaxRate = *dto.TaxRate
	}
	if dto.ServiceCharge != nil {
		record.ServiceCharge = *dto.ServiceCharge
	}
}
