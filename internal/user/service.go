package user

import (
	"fmt"
)

type Repository interface {
	GetByID(userID string) (*User, error)
}

// FeatureResolver resolves the feature grants for the user's role, seeding
// company defaults on first touch.
type FeatureResolver interface {
	GetFeaturesForRole(companyID, role string) ([]string, error)
}

type Service struct {
	repo     Repository
	features FeatureResolver
}

func NewService(repo Repository, features FeatureResolver) *Service {
	return &Service{
		repo:     repo,
		features: features,
	}
}

// GetProfile returns the user plus the feature list their role currently
// grants within their company.
func (s *Service) GetProfile(userID string) (*Profile, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	features, err := s.features.GetFeaturesForRole(u.CompanyID, u.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve role features: %w", err)
	}

	return &Profile{
		User:     *u,
		Features: features,
	}, nil
}
