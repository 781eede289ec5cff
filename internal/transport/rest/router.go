package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/frahmantamala/restaurant-management/internal/auth"
	"github.com/frahmantamala/restaurant-management/internal/company"
	"github.com/frahmantamala/restaurant-management/internal/rolepermission"
	"github.com/frahmantamala/restaurant-management/internal/transport/middleware"
	"github.com/frahmantamala/restaurant-management/internal/transport/swagger"
	"github.com/frahmantamala/restaurant-management/internal/user"
)

type RouterDeps struct {
	DB                    *sql.DB
	AuthHandler           *auth.Handler
	FeatureAccess         *auth.FeatureAccess
	UserHandler           *user.Handler
	CompanyHandler        *company.Handler
	RolePermissionHandler *rolepermission.Handler
	Logger                *slog.Logger
}

func RegisterAllRoutes(router *chi.Mux, deps RouterDeps) {
	healthHandler := NewHealthHandler(deps.DB)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(deps.Logger))
	router.Use(middleware.RecoveryMiddleware(deps.Logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if deps.AuthHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", deps.AuthHandler.Login)
				sr.Post("/refresh", deps.AuthHandler.RefreshToken)
				sr.Post("/logout", deps.AuthHandler.Logout)
			})

			r.Group(func(pr chi.Router) {
				pr.Use(deps.AuthHandler.AuthMiddleware)

				if deps.UserHandler != nil {
					pr.Get("/users/me", deps.UserHandler.GetCurrentUser)
				}

				if deps.CompanyHandler != nil {
					pr.Get("/companies/me", deps.CompanyHandler.GetMyCompany)

					pr.Group(func(cr chi.Router) {
						cr.Use(deps.FeatureAccess.RequireFeature("settings"))
						cr.Patch("/companies/me", deps.CompanyHandler.UpdateMyCompany)
					})
				}

				if deps.RolePermissionHandler != nil {
					pr.Route("/role-permissions", func(rr chi.Router) {
						// any authenticated member may read their own grants
						rr.Get("/my-permissions", deps.RolePermissionHandler.GetMyPermissions)

						// administration is owner-only
						rr.Group(func(ar chi.Router) {
							ar.Use(deps.FeatureAccess.RequireRoles(rolepermission.RoleOwner.String()))
							ar.Get("/", deps.RolePermissionHandler.GetRolePermissions)
							ar.Patch("/", deps.RolePermissionHandler.UpdateRolePermission)
						})
					})
				}
			})
		}
	})
}
