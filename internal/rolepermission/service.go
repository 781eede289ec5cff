package rolepermission

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	errors "github.com/frahmantamala/restaurant-management/internal"
	rolepermissionDatamodel "github.com/frahmantamala/restaurant-management/internal/core/datamodel/rolepermission"
	"github.com/frahmantamala/restaurant-management/internal/core/events"
)

// RepositoryAPI is the persistence contract for role permission records.
// FindOne returns (nil, nil) when no record exists for the pair.
type RepositoryAPI interface {
	FindAll(companyID string) ([]*rolepermissionDatamodel.RolePermission, error)
	FindOne(companyID, role string) (*rolepermissionDatamodel.RolePermission, error)
	Upsert(record *rolepermissionDatamodel.RolePermission) (*rolepermissionDatamodel.RolePermission, error)
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

// GetRolePermissions returns every record for a company, seeding the five
// role defaults when the company has none. A partial set (fewer than five
// roles) is returned as-is without topping up from defaults.
func (s *Service) GetRolePermissions(companyID string) ([]*RolePermission, error) {
	if err := validateCompanyID(companyID); err != nil {
		return nil, err
	}

	records, err := s.repo.FindAll(companyID)
	if err != nil {
		s.logger.Error("failed to list role permissions", "error", err, "company_id", companyID)
		return nil, err
	}

	if len(records) == 0 {
		return s.seedAll(companyID)
	}

	permissions := make([]*RolePermission, len(records))
	for i, record := range records {
		permissions[i] = FromDataModel(record)
	}
	return permissions, nil
}

// GetRolePermission returns the record for one role. A miss triggers a full
// seed of all five roles, never just the requested one: the existence check
// stays a single query at the cost of over-seeding.
func (s *Service) GetRolePermission(companyID string, role Role) (*RolePermission, error) {
	if err := validateCompanyID(companyID); err != nil {
		return nil, err
	}

	record, err := s.repo.FindOne(companyID, role.String())
	if err != nil {
		s.logger.Error("failed to get role permission", "error", err, "company_id", companyID, "role", role)
		return nil, err
	}
	if record != nil {
		return FromDataModel(record), nil
	}

	seeded, err := s.seedAll(companyID)
	if err != nil {
		return nil, err
	}
	for _, permission := range seeded {
		if permission.Role == role {
			return permission, nil
		}
	}

	// unreachable for the five known roles; unrecognized roles get nil
	s.logger.Warn("role not present after seeding", "company_id", companyID, "role", role)
	return nil, nil
}

// UpdateRolePermission replaces a role's feature list wholesale. There is no
// merge: the stored list becomes exactly what the caller sent.
func (s *Service) UpdateRolePermission(companyID string, dto UpdateRolePermissionDTO, updatedBy *string) (*RolePermission, error) {
	if err := validateCompanyID(companyID); err != nil {
		return nil, err
	}
	if updatedBy != nil {
		if _, err := uuid.Parse(*updatedBy); err != nil {
			return nil, errors.ErrInvalidUserID
		}
	}
	if err := dto.Validate(); err != nil {
		s.logger.Error("role permission update validation failed", "error", err, "company_id", companyID)
		return nil, err
	}

	record := &rolepermissionDatamodel.RolePermission{
		CompanyID: companyID,
		Role:      dto.Role,
		Features:  rolepermissionDatamodel.FeatureList(dto.Features),
		UpdatedBy: updatedBy,
	}

	updated, err := s.repo.Upsert(record)
	if err != nil {
		s.logger.Error("failed to upsert role permission", "error", err, "company_id", companyID, "role", dto.Role)
		return nil, err
	}

	s.logger.Info("role permission updated",
		"company_id", companyID,
		"role", dto.Role,
		"feature_count", len(dto.Features))

	if s.eventBus != nil {
		event := events.NewRolePermissionUpdatedEvent(companyID, dto.Role, len(dto.Features), updatedBy)
		if err := s.eventBus.Publish(context.Background(), event); err != nil {
			s.logger.Warn("failed to publish role permission event", "error", err)
		}
	}

	return FromDataModel(updated), nil
}

// GetFeaturesForRole adapts the resolver for the request-time feature gate.
func (s *Service) GetFeaturesForRole(companyID, role string) ([]string, error) {
	parsed, err := ParseRole(role)
	if err != nil {
		return nil, errors.ErrInvalidRole
	}

	permission, err := s.GetRolePermission(companyID, parsed)
	if err != nil {
		return nil, err
	}
	if permission == nil {
		return nil, errors.ErrRolePermissionNotFound
	}
	return permission.Features, nil
}

// seedAll materializes the default record for every role. Each upsert relies
// on the compound unique index, so two requests racing through an empty
// company converge on one record per role. The five upserts are not wrapped
// in a transaction; a concurrent reader can observe a partially seeded
// company during bootstrap.
func (s *Service) seedAll(companyID string) ([]*RolePermission, error) {
	roles := AllRoles()
	seeded := make([]*RolePermission, 0, len(roles))

	for _, role := range roles {
		record := &rolepermissionDatamodel.RolePermission{
			CompanyID: companyID,
			Role:      role.String(),
			Features:  rolepermissionDatamodel.FeatureList(DefaultFeaturesForRole(role)),
		}

		upserted, err := s.repo.Upsert(record)
		if err != nil {
			s.logger.Error("failed to seed role permission", "error", err, "company_id", companyID, "role", role)
			return nil, err
		}
		seeded = append(seeded, FromDataModel(upserted))
	}

	s.logger.Info("seeded default role permissions", "company_id", companyID, "roles", len(seeded))
	return seeded, nil
}

func validateCompanyID(companyID string) *errors.AppError {
	if _, err := uuid.Parse(companyID); err != nil {
		return errors.ErrInvalidCompanyID
	}
	return nil
}
