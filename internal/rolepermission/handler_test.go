package rolepermission_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	internal "github.com/frahmantamala/restaurant-management/internal"
	rolepermissionDatamodel "github.com/frahmantamala/restaurant-management/internal/core/datamodel/rolepermission"
	"github.com/frahmantamala/restaurant-management/internal/core/events"
	"github.com/frahmantamala/restaurant-management/internal/rolepermission"
	rolepermissionPostgres "github.com/frahmantamala/restaurant-management/internal/rolepermission/postgres"
	"github.com/frahmantamala/restaurant-management/internal/transport"
)

// SQLiteRolePermission is a SQLite-compatible model for testing
type SQLiteRolePermission struct {
	ID        int64                               `gorm:"primaryKey"`
	CompanyID string                              `gorm:"column:company_id;not null;uniqueIndex:idx_role_permissions_company_role"`
	Role      string                              `gorm:"column:role;not null;uniqueIndex:idx_role_permissions_company_role"`
	Features  rolepermissionDatamodel.FeatureList `gorm:"column:features;type:text;not null"`
	UpdatedBy *string                             `gorm:"column:updated_by"`
	CreatedAt time.Time                           `gorm:"column:created_at"`
	UpdatedAt time.Time                           `gorm:"column:updated_at"`
}

func (SQLiteRolePermission) TableName() string {
	return "role_permissions"
}

var _ = Describe("RolePermission Handler Integration", func() {
	var (
		handler   *rolepermission.Handler
		companyID string
	)

	requestAs := func(user *internal.CurrentUser, method, target string, body string) (*httptest.ResponseRecorder, *http.Request) {
		var req *http.Request
		if body != "" {
			req = httptest.NewRequest(method, target, strings.NewReader(body))
		} else {
			req = httptest.NewRequest(method, target, nil)
		}
		if user != nil {
			req = req.WithContext(internal.ContextWithUser(req.Context(), user))
		}
		return httptest.NewRecorder(), req
	}

	ownerUser := func() *internal.CurrentUser {
		return &internal.CurrentUser{
			UserID:    uuid.NewString(),
			CompanyID: companyID,
			Email:     "owner@demo-bistro.test",
			Role:      "owner",
		}
	}

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteRolePermission{})
		Expect(err).NotTo(HaveOccurred())

		repo := rolepermissionPostgres.NewRolePermissionRepository(db)
		service := rolepermission.NewService(repo, events.NewEventBus(slogger), slogger)
		handler = rolepermission.NewHandler(&transport.BaseHandler{Logger: slogger}, service)
		companyID = uuid.NewString()
	})

	Describe("GET /role-permissions", func() {
		It("should seed and return all five roles for a new company", func() {
			w, req := requestAs(ownerUser(), http.MethodGet, "/role-permissions", "")

			handler.GetRolePermissions(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

			var response rolepermission.RolePermissionsResponse
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.RolePermissions).To(HaveLen(5))

			roles := make([]string, len(response.RolePermissions))
			for i, p := range response.RolePermissions {
				roles[i] = p.Role
			}
			Expect(roles).To(ConsistOf("owner", "manager", "chef", "waiter", "cashier"))
		})

		It("should require an authenticated user", func() {
			w, req := requestAs(nil, http.MethodGet, "/role-permissions", "")

			handler.GetRolePermissions(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("GET /role-permissions/my-permissions", func() {
		It("should return the caller's own role record", func() {
			waiter := ownerUser()
			waiter.Role = "waiter"

			w, req := requestAs(waiter, http.MethodGet, "/role-permissions/my-permissions", "")

			handler.GetMyPermissions(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var response rolepermission.RolePermissionResponse
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Role).To(Equal("waiter"))
			Expect(response.Features).To(HaveLen(5))
			Expect(response.Features).To(ContainElement("table-management"))
		})

		It("should reject a session carrying an unknown role", func() {
			ghost := ownerUser()
			ghost.Role = "sommelier"

			w, req := requestAs(ghost, http.MethodGet, "/role-permissions/my-permissions", "")

			handler.GetMyPermissions(w, req)

			Expect(w.Code).To(Equal(http.StatusForbidden))
		})
	})

	Describe("PATCH /role-permissions", func() {
		It("should replace the feature list and report who changed it", func() {
			owner := ownerUser()
			body := `{"role":"waiter","features":["dashboard","order-management"]}`

			w, req := requestAs(owner, http.MethodPatch, "/role-permissions", body)

			handler.UpdateRolePermission(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var response rolepermission.RolePermissionResponse
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Role).To(Equal("waiter"))
			Expect(response.Features).To(ConsistOf("dashboard", "order-management"))
			Expect(response.UpdatedBy).NotTo(BeNil())
			Expect(*response.UpdatedBy).To(Equal(owner.UserID))
		})

		It("should leave other roles untouched by an update", func() {
			w, req := requestAs(ownerUser(), http.MethodGet, "/role-permissions", "")
			handler.GetRolePermissions(w, req)
			Expect(w.Code).To(Equal(http.StatusOK))

			w, req = requestAs(ownerUser(), http.MethodPatch, "/role-permissions", `{"role":"chef","features":["kitchen-display"]}`)
			handler.UpdateRolePermission(w, req)
			Expect(w.Code).To(Equal(http.StatusOK))

			w, req = requestAs(ownerUser(), http.MethodGet, "/role-permissions", "")
			handler.GetRolePermissions(w, req)

			var response rolepermission.RolePermissionsResponse
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			for _, p := range response.RolePermissions {
				switch p.Role {
				case "chef":
					Expect(p.Features).To(ConsistOf("kitchen-display"))
				case "owner":
					Expect(p.Features).To(HaveLen(21))
				}
			}
		})

		It("should reject an unknown role with a validation error", func() {
			w, req := requestAs(ownerUser(), http.MethodPatch, "/role-permissions", `{"role":"sommelier","features":["dashboard"]}`)

			handler.UpdateRolePermission(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should reject a malformed body", func() {
			w, req := requestAs(ownerUser(), http.MethodPatch, "/role-permissions", `{"role":`)

			handler.UpdateRolePermission(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
