package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/restaurant-management/internal"
)

// FeaturePermissionResolver resolves the feature list granted to a role
// within a company. Backed by the role permission service, which seeds
// defaults for companies that have never been initialized.
type FeaturePermissionResolver interface {
	GetFeaturesForRole(companyID, role string) ([]string, error)
}

// FeatureAccess supplies the request-time guards: feature gating against the
// caller's resolved role permissions, and coarse role checks for the
// administrative endpoints.
type FeatureAccess struct {
	resolver FeaturePermissionResolver
	logger   *slog.Logger
}

func NewFeatureAccess(resolver FeaturePermissionResolver, logger *slog.Logger) *FeatureAccess {
	return &FeatureAccess{
		resolver: resolver,
		logger:   logger,
	}
}

func (fa *FeatureAccess) writeDenied(w http.ResponseWriter, appErr *internal.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)
	json.NewEncoder(w).Encode(internal.Response{Error: appErr})
}

// RequireFeature rejects the request unless the caller's role has the named
// feature enabled for their company.
func (fa *FeatureAccess) RequireFeature(feature string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := internal.UserFromContext(r.Context())
			if !ok {
				fa.logger.Warn("feature gate: user not found in context", "feature", feature)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			features, err := fa.resolver.GetFeaturesForRole(user.CompanyID, user.Role)
			if err != nil {
				if appErr, isApp := internal.IsAppError(err); isApp && appErr.StatusCode < http.StatusInternalServerError {
					fa.logger.Warn("feature gate: resolution rejected", "error", err, "company_id", user.CompanyID, "role", user.Role)
					fa.writeDenied(w, internal.ErrFeatureNotAllowed)
					return
				}
				fa.logger.ErrorContext(r.Context(), "feature gate: resolution failed", "error", err, "company_id", user.CompanyID, "role", user.Role)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			for _, f := range features {
				if f == feature {
					next.ServeHTTP(w, r)
					return
				}
			}

			fa.logger.WarnContext(r.Context(), "access denied: feature not enabled",
				"user_id", user.UserID,
				"role", user.Role,
				"feature", feature)
			fa.writeDenied(w, internal.ErrFeatureNotAllowed)
		})
	}
}

// RequireRoles rejects callers whose role is not in the allow list. Used for
// the owner-only permission management endpoints.
func (fa *FeatureAccess) RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := internal.UserFromContext(r.Context())
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			fa.logger.WarnContext(r.Context(), "access denied: insufficient role",
				"user_id", user.UserID,
				"role", user.Role,
				"required_roles", roles)
			fa.writeDenied(w, internal.ErrInsufficientRole)
		})
	}
}
