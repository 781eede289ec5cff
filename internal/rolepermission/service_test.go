package rolepermission_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/frahmantamala/restaurant-management/internal"
	rolepermissionDatamodel "github.com/frahmantamala/restaurant-management/internal/core/datamodel/rolepermission"
	"github.com/frahmantamala/restaurant-management/internal/core/events"
	"github.com/frahmantamala/restaurant-management/internal/rolepermission"
)

func TestRolePermissionService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "RolePermission Service Suite")
}

// MockRepository implements rolepermission.RepositoryAPI for testing
type MockRepository struct {
	records    map[string]*rolepermissionDatamodel.RolePermission
	nextID     int64
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		records: make(map[string]*rolepermissionDatamodel.RolePermission),
		nextID:  1,
	}
}

func key(companyID, role string) string {
	return companyID + "/" + role
}

func (m *MockRepository) FindAll(companyID string) ([]*rolepermissionDatamodel.RolePermission, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*rolepermissionDatamodel.RolePermission
	for _, record := range m.records {
		if record.CompanyID == companyID {
			result = append(result, record)
		}
	}
	return result, nil
}

func (m *MockRepository) FindOne(companyID, role string) (*rolepermissionDatamodel.RolePermission, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	record, exists := m.records[key(companyID, role)]
	if !exists {
		return nil, nil
	}
	return record, nil
}

func (m *MockRepository) Upsert(record *rolepermissionDatamodel.RolePermission) (*rolepermissionDatamodel.RolePermission, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	k := key(record.CompanyID, record.Role)
	if existing, exists := m.records[k]; exists {
		existing.Features = record.Features
		existing.UpdatedBy = record.UpdatedBy
		existing.UpdatedAt = time.Now()
		return existing, nil
	}
	stored := &rolepermissionDatamodel.RolePermission{
		ID:        m.nextID,
		CompanyID: record.CompanyID,
		Role:      record.Role,
		Features:  record.Features,
		UpdatedBy: record.UpdatedBy,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	m.nextID++
	m.records[k] = stored
	return stored, nil
}

func (m *MockRepository) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

func (m *MockRepository) AddRecord(companyID string, role rolepermission.Role, features []string) {
	stored := rolepermission.ToDataModel(&rolepermission.RolePermission{
		ID:        m.nextID,
		CompanyID: companyID,
		Role:      role,
		Features:  features,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	})
	m.nextID++
	m.records[key(companyID, role.String())] = stored
}

func (m *MockRepository) Count() int {
	return len(m.records)
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	published []events.Event
}

func (m *MockEventPublisher) Publish(_ context.Context, event events.Event) error {
	m.published = append(m.published, event)
	return nil
}

var _ = Describe("RolePermission Service", func() {
	var (
		mockRepo  *MockRepository
		publisher *MockEventPublisher
		service   *rolepermission.Service
		companyID string
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		publisher = &MockEventPublisher{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = rolepermission.NewService(mockRepo, publisher, logger)
		companyID = uuid.NewString()
	})

	Describe("GetRolePermissions", func() {
		Context("when the company has no records", func() {
			It("should seed all five roles with their defaults", func() {
				permissions, err := service.GetRolePermissions(companyID)
				Expect(err).NotTo(HaveOccurred())
				Expect(permissions).To(HaveLen(5))

				byRole := make(map[rolepermission.Role]*rolepermission.RolePermission)
				for _, p := range permissions {
					byRole[p.Role] = p
				}
				Expect(byRole[rolepermission.RoleOwner].Features).To(HaveLen(21))
				Expect(byRole[rolepermission.RoleManager].Features).To(HaveLen(16))
				Expect(byRole[rolepermission.RoleChef].Features).To(HaveLen(7))
				Expect(byRole[rolepermission.RoleWaiter].Features).To(HaveLen(5))
				Expect(byRole[rolepermission.RoleCashier].Features).To(HaveLen(6))
			})

			It("should grant management features only to elevated roles", func() {
				permissions, err := service.GetRolePermissions(companyID)
				Expect(err).NotTo(HaveOccurred())

				for _, p := range permissions {
					switch p.Role {
					case rolepermission.RoleOwner:
						Expect(p.HasFeature("role-management")).To(BeTrue())
						Expect(p.HasFeature("branches")).To(BeTrue())
					case rolepermission.RoleManager:
						Expect(p.HasFeature("role-management")).To(BeFalse())
						Expect(p.HasFeature("staff-management")).To(BeTrue())
					case rolepermission.RoleWaiter:
						Expect(p.HasFeature("role-management")).To(BeFalse())
						Expect(p.HasFeature("order-management")).To(BeTrue())
					}
					Expect(p.HasFeature("dashboard")).To(BeTrue())
				}
			})

			It("should persist the seeded records", func() {
				_, err := service.GetRolePermissions(companyID)
				Expect(err).NotTo(HaveOccurred())
				Expect(mockRepo.Count()).To(Equal(5))
			})

			It("should be idempotent across repeated reads", func() {
				first, err := service.GetRolePermissions(companyID)
				Expect(err).NotTo(HaveOccurred())

				second, err := service.GetRolePermissions(companyID)
				Expect(err).NotTo(HaveOccurred())
				Expect(second).To(HaveLen(len(first)))
				Expect(mockRepo.Count()).To(Equal(5))
			})
		})

		Context("when the company has a partial set of records", func() {
			BeforeEach(func() {
				mockRepo.AddRecord(companyID, rolepermission.RoleOwner, []string{"dashboard"})
				mockRepo.AddRecord(companyID, rolepermission.RoleChef, []string{"kitchen-display"})
			})

			It("should return the partial set as-is without topping up", func() {
				permissions, err := service.GetRolePermissions(companyID)
				Expect(err).NotTo(HaveOccurred())
				Expect(permissions).To(HaveLen(2))
				Expect(mockRepo.Count()).To(Equal(2))
			})
		})

		Context("when records belong to another company", func() {
			BeforeEach(func() {
				mockRepo.AddRecord(uuid.NewString(), rolepermission.RoleOwner, []string{"dashboard"})
			})

			It("should still seed defaults for the requested company", func() {
				permissions, err := service.GetRolePermissions(companyID)
				Expect(err).NotTo(HaveOccurred())
				Expect(permissions).To(HaveLen(5))
				for _, p := range permissions {
					Expect(p.CompanyID).To(Equal(companyID))
				}
			})
		})

		Context("when the company identifier is not a UUID", func() {
			It("should reject before touching the store", func() {
				mockRepo.SetShouldFail(true, errors.New("store must not be reached"))

				permissions, err := service.GetRolePermissions("not-a-uuid")
				Expect(err).To(Equal(internal.ErrInvalidCompanyID))
				Expect(permissions).To(BeNil())
			})
		})

		Context("when the repository fails", func() {
			BeforeEach(func() {
				mockRepo.SetShouldFail(true, errors.New("connection refused"))
			})

			It("should propagate the error unmodified", func() {
				permissions, err := service.GetRolePermissions(companyID)
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(Equal("connection refused"))
				Expect(permissions).To(BeNil())
			})
		})
	})

	Describe("GetRolePermission", func() {
		Context("when the record exists", func() {
			BeforeEach(func() {
				mockRepo.AddRecord(companyID, rolepermission.RoleWaiter, []string{"dashboard", "order-management"})
			})

			It("should return the stored record", func() {
				permission, err := service.GetRolePermission(companyID, rolepermission.RoleWaiter)
				Expect(err).NotTo(HaveOccurred())
				Expect(permission).NotTo(BeNil())
				Expect(permission.Role).To(Equal(rolepermission.RoleWaiter))
				Expect(permission.Features).To(ConsistOf("dashboard", "order-management"))
			})
		})

		Context("when the company has no records", func() {
			It("should seed all five roles, not just the requested one", func() {
				permission, err := service.GetRolePermission(companyID, rolepermission.RoleCashier)
				Expect(err).NotTo(HaveOccurred())
				Expect(permission).NotTo(BeNil())
				Expect(permission.Role).To(Equal(rolepermission.RoleCashier))
				Expect(permission.Features).To(HaveLen(6))
				Expect(mockRepo.Count()).To(Equal(5))
			})
		})

		Context("when the company identifier is not a UUID", func() {
			It("should return invalid company identifier", func() {
				permission, err := service.GetRolePermission("42", rolepermission.RoleOwner)
				Expect(err).To(Equal(internal.ErrInvalidCompanyID))
				Expect(permission).To(BeNil())
			})
		})
	})

	Describe("UpdateRolePermission", func() {
		var updatedBy string

		BeforeEach(func() {
			updatedBy = uuid.NewString()
		})

		Context("when the role already has a record", func() {
			BeforeEach(func() {
				mockRepo.AddRecord(companyID, rolepermission.RoleChef, []string{"dashboard", "kitchen-display", "inventory"})
			})

			It("should replace the feature list wholesale", func() {
				permission, err := service.UpdateRolePermission(companyID, rolepermission.UpdateRolePermissionDTO{
					Role:     "chef",
					Features: []string{"kitchen-display"},
				}, &updatedBy)
				Expect(err).NotTo(HaveOccurred())
				Expect(permission.Features).To(ConsistOf("kitchen-display"))
				Expect(permission.HasFeature("dashboard")).To(BeFalse())
			})

			It("should record who made the change", func() {
				permission, err := service.UpdateRolePermission(companyID, rolepermission.UpdateRolePermissionDTO{
					Role:     "chef",
					Features: []string{"kitchen-display"},
				}, &updatedBy)
				Expect(err).NotTo(HaveOccurred())
				Expect(permission.UpdatedBy).NotTo(BeNil())
				Expect(*permission.UpdatedBy).To(Equal(updatedBy))
			})

			It("should publish an update event", func() {
				_, err := service.UpdateRolePermission(companyID, rolepermission.UpdateRolePermissionDTO{
					Role:     "chef",
					Features: []string{"kitchen-display"},
				}, &updatedBy)
				Expect(err).NotTo(HaveOccurred())
				Expect(publisher.published).To(HaveLen(1))
				Expect(publisher.published[0].EventType()).To(Equal(events.EventRolePermissionUpdated))
			})
		})

		Context("when the role has no record yet", func() {
			It("should create one without seeding the other roles", func() {
				permission, err := service.UpdateRolePermission(companyID, rolepermission.UpdateRolePermissionDTO{
					Role:     "waiter",
					Features: []string{"dashboard", "order-management", "table-management"},
				}, &updatedBy)
				Expect(err).NotTo(HaveOccurred())
				Expect(permission.Features).To(HaveLen(3))
				Expect(mockRepo.Count()).To(Equal(1))
			})
		})

		Context("when the features list is empty", func() {
			It("should store an empty grant, revoking everything", func() {
				permission, err := service.UpdateRolePermission(companyID, rolepermission.UpdateRolePermissionDTO{
					Role:     "cashier",
					Features: []string{},
				}, &updatedBy)
				Expect(err).NotTo(HaveOccurred())
				Expect(permission.Features).To(BeEmpty())
			})
		})

		Context("when validation fails", func() {
			It("should reject an unknown role", func() {
				_, err := service.UpdateRolePermission(companyID, rolepermission.UpdateRolePermissionDTO{
					Role:     "sommelier",
					Features: []string{"dashboard"},
				}, &updatedBy)
				Expect(err).To(HaveOccurred())
				Expect(mockRepo.Count()).To(Equal(0))
			})

			It("should reject a feature list containing empty entries", func() {
				_, err := service.UpdateRolePermission(companyID, rolepermission.UpdateRolePermissionDTO{
					Role:     "waiter",
					Features: []string{"dashboard", ""},
				}, &updatedBy)
				Expect(err).To(HaveOccurred())
				Expect(mockRepo.Count()).To(Equal(0))
			})

			It("should reject a malformed company identifier", func() {
				_, err := service.UpdateRolePermission("", rolepermission.UpdateRolePermissionDTO{
					Role:     "waiter",
					Features: []string{"dashboard"},
				}, &updatedBy)
				Expect(err).To(Equal(internal.ErrInvalidCompanyID))
			})

			It("should reject a malformed updater identifier", func() {
				badUpdater := "not-a-uuid"
				_, err := service.UpdateRolePermission(companyID, rolepermission.UpdateRolePermissionDTO{
					Role:     "waiter",
					Features: []string{"dashboard"},
				}, &badUpdater)
				Expect(err).To(Equal(internal.ErrInvalidUserID))
			})
		})

		Context("when the repository fails", func() {
			BeforeEach(func() {
				mockRepo.SetShouldFail(true, errors.New("deadlock detected"))
			})

			It("should propagate the error and publish nothing", func() {
				_, err := service.UpdateRolePermission(companyID, rolepermission.UpdateRolePermissionDTO{
					Role:     "owner",
					Features: []string{"dashboard"},
				}, &updatedBy)
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(Equal("deadlock detected"))
				Expect(publisher.published).To(BeEmpty())
			})
		})
	})

	Describe("GetFeaturesForRole", func() {
		Context("when the role has a stored grant", func() {
			BeforeEach(func() {
				mockRepo.AddRecord(companyID, rolepermission.RoleManager, []string{"dashboard", "reports"})
			})

			It("should return the stored feature list", func() {
				features, err := service.GetFeaturesForRole(companyID, "manager")
				Expect(err).NotTo(HaveOccurred())
				Expect(features).To(ConsistOf("dashboard", "reports"))
			})
		})

		Context("when the company is unseeded", func() {
			It("should seed and return the defaults for that role", func() {
				features, err := service.GetFeaturesForRole(companyID, "chef")
				Expect(err).NotTo(HaveOccurred())
				Expect(features).To(HaveLen(7))
				Expect(features).To(ContainElement("kitchen-display"))
			})
		})

		Context("when the role name is unknown", func() {
			It("should return invalid role", func() {
				features, err := service.GetFeaturesForRole(companyID, "sommelier")
				Expect(err).To(Equal(internal.ErrInvalidRole))
				Expect(features).To(BeNil())
			})
		})
	})
})
