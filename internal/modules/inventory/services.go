package inventory

import (
	"errors"
	"fmt"
	"time"

	"github.com/detailflowhq/detailflow/internal/models"
	"github.com/detailflowhq/detailflow/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrItemNotFound     = errors.New("inventory item not found")
	ErrLocationNotFound = errors.New("location not found")
	ErrNameRequired     = errors.New("item name is required")
	ErrNegativeQuantity = errors.New("quantity cannot go negative")
	ErrInvalidExpiry    = errors.New("expiry must be YYYY-MM-DD")
)

type InventoryService struct {
	db *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db}
}

// statusFor derives the stock status from quantity and the low threshold.
func statusFor(quantity, lowThreshold int) string {
	switch {
	case quantity <= 0:
		return StatusOutOfStock
	case quantity <= lowThreshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

func (s *InventoryService) Create(tenantID uuid.UUID, req *CreateItemRequest) (*Item, error) {
	if req.Name == "" {
		return nil, ErrNameRequired
	}
	if req.Expiry != "" {
		if _, err := time.Parse("2006-01-02", req.Expiry); err != nil {
			return nil, ErrInvalidExpiry
		}
	}

	var loc models.Location
	err := s.db.Scopes(tenant.ForTenant(tenantID)).First(&loc, "id = ?", req.LocationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}

	item := Item{
		ID:              uuid.New(),
		TenantID:        tenantID,
		LocationID:      req.LocationID,
		Name:            req.Name,
		Type:            req.Type,
		Description:     req.Description,
		ImageURL:        req.ImageURL,
		Quantity:        req.Quantity,
		Unit:            req.Unit,
		Price:           req.Price,
		Expiry:          req.Expiry,
		UPC:             req.UPC,
		LowThreshold:    req.LowThreshold,
		ReorderPoint:    req.ReorderPoint,
		ReorderQuantity: req.ReorderQuantity,
		Status:          statusFor(req.Quantity, req.LowThreshold),
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}
	return &item, nil
}

func (s *InventoryService) List(tenantID uuid.UUID, locationID *uuid.UUID) ([]Item, error) {
	query := s.db.Scopes(tenant.ForTenant(tenantID))
	if locationID != nil {
		query = query.Where("location_id = ?", *locationID)
	}
	var items []Item
	err := query.Order("name ASC").Find(&items).Error
	return items, err
}

// ListLowStock returns items at or below their low threshold, out of stock
// items included.
func (s *InventoryService) ListLowStock(tenantID uuid.UUID) ([]Item, error) {
	var items []Item
	err := s.db.Scopes(tenant.ForTenant(tenantID)).
		Where("status IN ?", []string{StatusLowStock, StatusOutOfStock}).
		Order("quantity ASC").Find(&items).Error
	return items, err
}

func (s *InventoryService) Get(tenantID, id uuid.UUID) (*Item, error) {
	var item Item
	if err := s.db.Scopes(tenant.ForTenant(tenantID)).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (s *InventoryService) Update(tenantID, id uuid.UUID, req *UpdateItemRequest) (*Item, error) {
	item, err := s.Get(tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, ErrNameRequired
		}
		item.Name = *req.Name
	}
	if req.Type != nil {
		item.Type = *req.Type
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Expiry != nil {
		if *req.Expiry != "" {
			if _, err := time.Parse("2006-01-02", *req.Expiry); err != nil {
				return nil, ErrInvalidExpiry
			}
		}
		item.Expiry = *req.Expiry
	}
	if req.UPC != nil {
		item.UPC = *req.UPC
	}
	if req.LowThreshold != nil {
		item.LowThreshold = *req.LowThreshold
	}
	if req.ReorderPoint != nil {
		item.ReorderPoint = *req.ReorderPoint
	}
	if req.ReorderQuantity != nil {
		item.ReorderQuantity = *req.ReorderQuantity
	}
	item.Status = statusFor(item.Quantity, item.LowThreshold)

	if err := s.db.Save(item).Error; err != nil {
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}
	return item, nil
}

// AdjustQuantity applies a signed delta, restocks positive and usage
// negative, and re-derives the status.
func (s *InventoryService) AdjustQuantity(tenantID, id uuid.UUID, delta int) (*Item, error) {
	item, err := s.Get(tenantID, id)
	if err != nil {
		return nil, err
	}
	next := item.Quantity + delta
	if next < 0 {
		return nil, ErrNegativeQuantity
	}
	item.Quantity = next
	item.Status = statusFor(next, item.LowThreshold)
	if err := s.db.Save(item).Error; err != nil {
		return nil, fmt.Errorf("failed to adjust quantity: %w", err)
	}
	return item, nil
}

func (s *InventoryService) Delete(tenantID, id uuid.UUID) error {
	result := s.db.Scopes(tenant.ForTenant(tenantID)).Where("id = ?", id).Delete(&Item{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}
