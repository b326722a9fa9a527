package scheduling

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment statuses. Completed and cancelled are terminal; a
// rescheduled appointment returns to scheduled once the new slot is set.
const (
	StatusScheduled   = "scheduled"
	StatusCompleted   = "completed"
	StatusCancelled   = "cancelled"
	StatusRescheduled = "rescheduled"
)

// Appointment is one booked slot. Price is snapshotted from the catalog
// at booking time and never recomputed from current service prices.
type Appointment struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_appts_tenant_date,priority:1" json:"-"`
	CustomerID uuid.UUID      `gorm:"type:uuid;not null;index" json:"customer_id"`
	DetailerID uuid.UUID      `gorm:"type:uuid;not null;index" json:"detailer_id"`
	ServiceID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"service_id"`
	Date       string         `gorm:"size:10;not null;index:idx_appts_tenant_date,priority:2" json:"date"` // YYYY-MM-DD
	Time       string         `gorm:"size:5;not null;index:idx_appts_tenant_date,priority:3" json:"time"`  // HH:MM
	Status     string         `gorm:"size:20;not null;default:'scheduled'" json:"status"`
	Price      float64        `gorm:"not null" json:"price"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// Detailer is a staff member who performs services.
type Detailer struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"-"`
	Name      string         `gorm:"not null;size:255" json:"name"`
	Email     string         `gorm:"size:255" json:"email"`
	Phone     string         `gorm:"size:50" json:"phone"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Notification is a per-user message row written on booking events.
type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Message   string    `gorm:"not null;size:500" json:"message"`
	Type      string    `gorm:"size:50" json:"type"`
	Read      bool      `gorm:"default:false;index" json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// --- DTOs ---

type CreateAppointmentRequest struct {
	CustomerID uuid.UUID `json:"customer_id"`
	DetailerID uuid.UUID `json:"detailer_id"`
	ServiceID  uuid.UUID `json:"service_id"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type CreateDetailerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type SlotsResponse struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}
