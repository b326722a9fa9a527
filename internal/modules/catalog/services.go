package catalog

import (
	"errors"
	"fmt"

	"github.com/detailflowhq/detailflow/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrServiceNotFound = errors.New("service not found")
	ErrNameRequired    = errors.New("name is required")
	ErrInvalidPrice    = errors.New("price must be zero or positive")
	ErrInvalidDuration = errors.New("duration must be positive")
)

type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) Create(tenantID uuid.UUID, req *CreateServiceRequest) (*Service, error) {
	if err := validateServiceInput(req.Name, req.Price, req.DurationMinutes); err != nil {
		return nil, err
	}

	svc := Service{
		ID:              uuid.New(),
		TenantID:        tenantID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
	}
	if err := s.db.Create(&svc).Error; err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return &svc, nil
}

func (s *CatalogService) List(tenantID uuid.UUID) ([]Service, error) {
	var services []Service
	err := s.db.Scopes(tenant.ForTenant(tenantID)).Order("created_at ASC").Find(&services).Error
	return services, err
}

func (s *CatalogService) Get(tenantID, id uuid.UUID) (*Service, error) {
	var svc Service
	if err := s.db.Scopes(tenant.ForTenant(tenantID)).First(&svc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return &svc, nil
}

func (s *CatalogService) Update(tenantID, id uuid.UUID, req *UpdateServiceRequest) (*Service, error) {
	svc, err := s.Get(tenantID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, ErrNameRequired
		}
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, ErrInvalidPrice
		}
		updates["price"] = *req.Price
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return nil, ErrInvalidDuration
		}
		updates["duration_minutes"] = *req.DurationMinutes
	}

	if len(updates) > 0 {
		if err := s.db.Model(svc).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return svc, nil
}

func (s *CatalogService) Delete(tenantID, id uuid.UUID) error {
	result := s.db.Scopes(tenant.ForTenant(tenantID)).Where("id = ?", id).Delete(&Service{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrServiceNotFound
	}
	return nil
}

// PriceMap returns the tenant's full catalog keyed by service ID, built
// fresh per request for revenue lookups.
func (s *CatalogService) PriceMap(tenantID uuid.UUID) (map[uuid.UUID]Service, error) {
	services, err := s.List(tenantID)
	if err != nil {
		return nil, err
	}
	m := make(map[uuid.UUID]Service, len(services))
	for _, svc := range services {
		m[svc.ID] = svc
	}
	return m, nil
}

func validateServiceInput(name string, price float64, duration int) error {
	if name == "" {
		return ErrNameRequired
	}
	if price < 0 {
		return ErrInvalidPrice
	}
	if duration <= 0 {
		return ErrInvalidDuration
	}
	return nil
}
