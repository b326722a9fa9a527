package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/detailflowhq/detailflow/internal/dto"
	"github.com/detailflowhq/detailflow/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrSlugTaken            = errors.New("tenant slug already in use")
	ErrTenantNotFound       = errors.New("tenant not found")
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrLocationNotFound     = errors.New("location not found")
)

// TenantService provisions tenants and their organization/location rows.
type TenantService struct {
	db *gorm.DB
}

func NewTenantService(db *gorm.DB) *TenantService {
	return &TenantService{db: db}
}

func (s *TenantService) Create(req *dto.CreateTenantRequest) (*models.Tenant, error) {
	if req.Name == "" || req.Slug == "" {
		return nil, errors.New("name and slug are required")
	}

	var existing models.Tenant
	if err := s.db.First(&existing, "slug = ?", req.Slug).Error; err == nil {
		return nil, ErrSlugTaken
	}

	t := models.Tenant{
		ID:        uuid.New(),
		Name:      req.Name,
		Slug:      req.Slug,
		Subdomain: req.Subdomain,
	}
	if req.Settings != nil {
		raw, err := json.Marshal(req.Settings)
		if err != nil {
			return nil, fmt.Errorf("failed to encode settings: %w", err)
		}
		t.Settings = datatypes.JSON(raw)
	}

	if err := s.db.Create(&t).Error; err != nil {
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}
	return &t, nil
}

func (s *TenantService) GetBySlug(slug string) (*models.Tenant, error) {
	var t models.Tenant
	if err := s.db.First(&t, "slug = ? OR subdomain = ?", slug, slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (s *TenantService) Update(id uuid.UUID, req *dto.UpdateTenantRequest) (*models.Tenant, error) {
	var t models.Tenant
	if err := s.db.First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Settings != nil {
		raw, err := json.Marshal(req.Settings)
		if err != nil {
			return nil, fmt.Errorf("failed to encode settings: %w", err)
		}
		updates["settings"] = datatypes.JSON(raw)
	}
	if len(updates) == 0 {
		return &t, nil
	}

	if err := s.db.Model(&t).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TenantService) CreateOrganization(req *dto.CreateOrganizationRequest) (*models.Organization, error) {
	if req.Name == "" || req.TenantID == uuid.Nil {
		return nil, errors.New("name and tenant_id are required")
	}

	org := models.Organization{
		ID:            uuid.New(),
		TenantID:      req.TenantID,
		ExternalOrgID: req.ExternalOrgID,
		Slug:          req.Slug,
		Name:          req.Name,
		Address:       req.Address,
		PhoneNumber:   req.PhoneNumber,
	}
	if err := s.db.Create(&org).Error; err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}
	return &org, nil
}

func (s *TenantService) GetOrganizationByExternalID(externalOrgID string) (*models.Organization, error) {
	var org models.Organization
	if err := s.db.First(&org, "external_org_id = ?", externalOrgID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, err
	}
	return &org, nil
}

func (s *TenantService) UpdateOrganizationName(id uuid.UUID, name string) error {
	result := s.db.Model(&models.Organization{}).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrganizationNotFound
	}
	return nil
}

func (s *TenantService) CreateLocation(tenantID uuid.UUID, req *dto.CreateLocationRequest) (*models.Location, error) {
	if req.Name == "" || req.OrganizationID == uuid.Nil {
		return nil, errors.New("name and organization_id are required")
	}

	var org models.Organization
	if err := s.db.First(&org, "id = ? AND tenant_id = ?", req.OrganizationID, tenantID).Error; err != nil {
		return nil, ErrOrganizationNotFound
	}

	loc := models.Location{
		ID:             uuid.New(),
		TenantID:       tenantID,
		OrganizationID: req.OrganizationID,
		Name:           req.Name,
		Address:        req.Address,
	}
	if err := s.db.Create(&loc).Error; err != nil {
		return nil, fmt.Errorf("failed to create location: %w", err)
	}
	return &loc, nil
}

func (s *TenantService) ListLocations(tenantID, organizationID uuid.UUID) ([]models.Location, error) {
	var locations []models.Location
	err := s.db.Where("tenant_id = ? AND organization_id = ?", tenantID, organizationID).
		Order("created_at ASC").Find(&locations).Error
	return locations, err
}

func (s *TenantService) UpdateLocation(tenantID, id uuid.UUID, req *dto.UpdateLocationRequest) (*models.Location, error) {
	var loc models.Location
	if err := s.db.First(&loc, "id = ? AND tenant_id = ?", id, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if len(updates) > 0 {
		if err := s.db.Model(&loc).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &loc, nil
}
