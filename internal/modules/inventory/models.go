package inventory

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Stock statuses, derived from quantity against the item's thresholds on
// every write.
const (
	StatusInStock    = "in_stock"
	StatusLowStock   = "low_stock"
	StatusOutOfStock = "out_of_stock"
)

// Item is a stocked product at one location: wax, sealant, towels.
type Item struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"-"`
	LocationID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"location_id"`
	Name            string         `gorm:"not null;size:255" json:"name"`
	Type            string         `gorm:"size:100" json:"type"`
	Description     string         `gorm:"size:1000" json:"description,omitempty"`
	ImageURL        string         `gorm:"size:500" json:"image_url,omitempty"`
	Quantity        int            `gorm:"not null;default:0" json:"quantity"`
	Unit            string         `gorm:"size:50" json:"unit"`
	Price           float64        `gorm:"not null;default:0" json:"price"`
	Expiry          string         `gorm:"size:10" json:"expiry,omitempty"` // YYYY-MM-DD
	UPC             string         `gorm:"size:20" json:"upc,omitempty"`
	LowThreshold    int            `gorm:"not null;default:0" json:"low_threshold"`
	ReorderPoint    int            `gorm:"not null;default:0" json:"reorder_point"`
	ReorderQuantity int            `gorm:"not null;default:0" json:"reorder_quantity"`
	Status          string         `gorm:"size:20;not null;default:'in_stock'" json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Item) TableName() string {
	return "inventory_items"
}

// --- DTOs ---

type CreateItemRequest struct {
	LocationID      uuid.UUID `json:"location_id"`
	Name            string    `json:"name"`
	Type            string    `json:"type"`
	Description     string    `json:"description"`
	ImageURL        string    `json:"image_url"`
	Quantity        int       `json:"quantity"`
	Unit            string    `json:"unit"`
	Price           float64   `json:"price"`
	Expiry          string    `json:"expiry"`
	UPC             string    `json:"upc"`
	LowThreshold    int       `json:"low_threshold"`
	ReorderPoint    int       `json:"reorder_point"`
	ReorderQuantity int       `json:"reorder_quantity"`
}

type UpdateItemRequest struct {
	Name            *string  `json:"name,omitempty"`
	Type            *string  `json:"type,omitempty"`
	Description     *string  `json:"description,omitempty"`
	ImageURL        *string  `json:"image_url,omitempty"`
	Unit            *string  `json:"unit,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	Expiry          *string  `json:"expiry,omitempty"`
	UPC             *string  `json:"upc,omitempty"`
	LowThreshold    *int     `json:"low_threshold,omitempty"`
	ReorderPoint    *int     `json:"reorder_point,omitempty"`
	ReorderQuantity *int     `json:"reorder_quantity,omitempty"`
}

type AdjustQuantityRequest struct {
	Delta int `json:"delta"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}
