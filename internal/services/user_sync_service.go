package services

import (
	"errors"
	"fmt"

	"github.com/detailflowhq/detailflow/internal/dto"
	"github.com/detailflowhq/detailflow/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrUnknownEventType = errors.New("unknown identity event type")

// UserSyncService mirrors identity-provider webhook events into the users
// table. The provider remains the source of truth for externally managed
// accounts; rows here exist so tenant scoping and role checks work
// without a round trip.
type UserSyncService struct {
	db *gorm.DB
}

func NewUserSyncService(db *gorm.DB) *UserSyncService {
	return &UserSyncService{db: db}
}

func (s *UserSyncService) Handle(event *dto.IdentityEvent) error {
	switch event.Type {
	case "user.created", "user.updated":
		return s.upsertUser(&event.Data)
	case "user.deleted":
		return s.deleteUser(event.Data.ID)
	case "organizationMembership.created", "organizationMembership.updated":
		return s.updateMembership(&event.Data)
	case "organizationMembership.deleted":
		return s.removeMembership(&event.Data)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownEventType, event.Type)
	}
}

func (s *UserSyncService) upsertUser(data *dto.IdentityEventData) error {
	if data.ID == "" || data.Email == "" {
		return errors.New("identity event missing id or email")
	}

	var t models.Tenant
	if err := s.db.First(&t, "slug = ?", data.TenantSlug).Error; err != nil {
		return ErrTenantNotFound
	}

	role := data.Role
	if role == "" {
		role = models.RoleCustomer
	}

	var user models.User
	err := s.db.Where("external_id = ?", data.ID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		externalID := data.ID
		user = models.User{
			ID:           uuid.New(),
			TenantID:     t.ID,
			Email:        data.Email,
			Name:         data.Name,
			ImageURL:     data.ImageURL,
			Role:         role,
			ExternalID:   &externalID,
			AuthProvider: "identity",
		}
		return s.db.Create(&user).Error
	}
	if err != nil {
		return err
	}

	return s.db.Model(&user).Updates(map[string]interface{}{
		"email":     data.Email,
		"name":      data.Name,
		"image_url": data.ImageURL,
		"role":      role,
	}).Error
}

func (s *UserSyncService) deleteUser(externalID string) error {
	if externalID == "" {
		return errors.New("identity event missing id")
	}
	// Idempotent: deleting an unknown user is not an error.
	return s.db.Where("external_id = ?", externalID).Delete(&models.User{}).Error
}

func (s *UserSyncService) updateMembership(data *dto.IdentityEventData) error {
	var user models.User
	if err := s.db.Where("external_id = ?", data.ID).First(&user).Error; err != nil {
		return ErrUserNotFound
	}

	var org models.Organization
	if err := s.db.First(&org, "external_org_id = ?", data.ExternalOrgID).Error; err != nil {
		return ErrOrganizationNotFound
	}

	role := data.Role
	if role == "" {
		role = models.RoleDetailer
	}
	return s.db.Model(&user).Updates(map[string]interface{}{
		"tenant_id": org.TenantID,
		"role":      role,
	}).Error
}

func (s *UserSyncService) removeMembership(data *dto.IdentityEventData) error {
	var user models.User
	if err := s.db.Where("external_id = ?", data.ID).First(&user).Error; err != nil {
		return ErrUserNotFound
	}
	// Reset to the default role; the user keeps their tenant.
	return s.db.Model(&user).Update("role", models.RoleCustomer).Error
}
