package customers

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Customer is a CRM record; it may or may not correspond to a sign-in
// capable user.
type Customer struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_customers_tenant_email" json:"-"`
	Name      string         `gorm:"not null;size:255" json:"name"`
	Email     string         `gorm:"not null;size:255;uniqueIndex:idx_customers_tenant_email" json:"email"`
	Phone     string         `gorm:"size:50" json:"phone"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type Vehicle struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID    uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	CustomerID  uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	Make        string    `gorm:"not null;size:100" json:"make"`
	Model       string    `gorm:"not null;size:100" json:"model"`
	Year        int       `gorm:"not null" json:"year"`
	VIN         string    `gorm:"size:17" json:"vin"`
	LastService *string   `gorm:"size:10" json:"last_service,omitempty"` // YYYY-MM-DD
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Customer    Customer  `gorm:"foreignKey:CustomerID" json:"-"`
}

// ServiceHistory records what was done to a vehicle during one
// appointment, with free-form notes and the recommendations given.
type ServiceHistory struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"-"`
	AppointmentID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"appointment_id"`
	VehicleID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"vehicle_id"`
	CustomerID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"customer_id"`
	Notes           string         `gorm:"size:2000" json:"notes"`
	Recommendations datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"recommendations"`
	CreatedAt       time.Time      `json:"created_at"`
}

func (ServiceHistory) TableName() string {
	return "service_histories"
}

// --- DTOs ---

type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type UpdateCustomerRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

type CreateVehicleRequest struct {
	CustomerID uuid.UUID `json:"customer_id"`
	Make       string    `json:"make"`
	Model      string    `json:"model"`
	Year       int       `json:"year"`
	VIN        string    `json:"vin"`
}

type CreateHistoryRequest struct {
	AppointmentID   uuid.UUID `json:"appointment_id"`
	VehicleID       uuid.UUID `json:"vehicle_id"`
	CustomerID      uuid.UUID `json:"customer_id"`
	Notes           string    `json:"notes"`
	Recommendations []string  `json:"recommendations"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}
