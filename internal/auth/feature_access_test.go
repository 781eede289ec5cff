package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/frahmantamala/restaurant-management/internal"
)

type mockFeatureResolver struct {
	features map[string][]string
	err      error
}

func (m *mockFeatureResolver) GetFeaturesForRole(companyID, role string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.features[role], nil
}

var _ = ginkgo.Describe("FeatureAccess", func() {
	var (
		resolver *mockFeatureResolver
		access   *FeatureAccess
		next     http.Handler
		called   bool
	)

	asUser := func(role string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		return req.WithContext(internal.ContextWithUser(req.Context(), &internal.CurrentUser{
			UserID:    "5f8a1c2e-0f3b-4d6a-9c1e-555555555555",
			CompanyID: "7d2b9e4a-6c1f-4a8b-b3d5-666666666666",
			Email:     "staff@demo-bistro.test",
			Role:      role,
		}))
	}

	ginkgo.BeforeEach(func() {
		resolver = &mockFeatureResolver{
			features: map[string][]string{
				"manager": {"dashboard", "reports", "settings"},
				"waiter":  {"dashboard", "order-management"},
			},
		}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		access = NewFeatureAccess(resolver, logger)
		called = false
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.WriteHeader(http.StatusOK)
		})
	})

	ginkgo.Describe("RequireFeature", func() {
		ginkgo.It("should pass through when the role has the feature", func() {
			w := httptest.NewRecorder()
			access.RequireFeature("settings")(next).ServeHTTP(w, asUser("manager"))

			gomega.Expect(called).To(gomega.BeTrue())
			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("should forbid a role missing the feature", func() {
			w := httptest.NewRecorder()
			access.RequireFeature("settings")(next).ServeHTTP(w, asUser("waiter"))

			gomega.Expect(called).To(gomega.BeFalse())
			gomega.Expect(w.Code).To(gomega.Equal(http.StatusForbidden))

			var body internal.Response
			gomega.Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(gomega.Succeed())
			gomega.Expect(body.Error.Code).To(gomega.Equal(internal.ErrCodeFeatureNotAllowed))
		})

		ginkgo.It("should reject unauthenticated requests", func() {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			access.RequireFeature("settings")(next).ServeHTTP(w, req)

			gomega.Expect(called).To(gomega.BeFalse())
			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
		})

		ginkgo.It("should surface resolver failures as server errors", func() {
			resolver.err = errors.New("permission store unavailable")

			w := httptest.NewRecorder()
			access.RequireFeature("settings")(next).ServeHTTP(w, asUser("manager"))

			gomega.Expect(called).To(gomega.BeFalse())
			gomega.Expect(w.Code).To(gomega.Equal(http.StatusInternalServerError))
		})
	})

	ginkgo.Describe("RequireRoles", func() {
		ginkgo.It("should allow a listed role", func() {
			w := httptest.NewRecorder()
			access.RequireRoles("owner", "manager")(next).ServeHTTP(w, asUser("manager"))

			gomega.Expect(called).To(gomega.BeTrue())
		})

		ginkgo.It("should forbid an unlisted role", func() {
			w := httptest.NewRecorder()
			access.RequireRoles("owner")(next).ServeHTTP(w, asUser("waiter"))

			gomega.Expect(called).To(gomega.BeFalse())
			gomega.Expect(w.Code).To(gomega.Equal(http.StatusForbidden))

			var body internal.Response
			gomega.Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(gomega.Succeed())
			gomega.Expect(body.Error.Code).To(gomega.Equal(internal.ErrCodeInsufficientRole))
		})

		ginkgo.It("should reject unauthenticated requests", func() {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			access.RequireRoles("owner")(next).ServeHTTP(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
		})
	})
})
