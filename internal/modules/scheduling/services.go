package scheduling

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/detailflowhq/detailflow/internal/models"
	"github.com/detailflowhq/detailflow/internal/modules/catalog"
	"github.com/detailflowhq/detailflow/internal/modules/customers"
	"github.com/detailflowhq/detailflow/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrDetailerNotFound    = errors.New("detailer not found")
	ErrInvalidDate         = errors.New("date must be YYYY-MM-DD")
	ErrInvalidTime         = errors.New("time must be HH:MM")
	ErrSlotTaken           = errors.New("slot is already booked")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrClosedDay           = errors.New("business is closed on that day")
)

// allowedTransitions enumerates the legal status changes. A completed
// appointment is otherwise immutable.
var allowedTransitions = map[string][]string{
	StatusScheduled:   {StatusCompleted, StatusCancelled, StatusRescheduled},
	StatusRescheduled: {StatusScheduled, StatusCancelled},
}

type SchedulingService struct {
	db       *gorm.DB
	catalog  *catalog.CatalogService
	customer *customers.CustomerService
	resolver *tenant.Resolver
}

func NewSchedulingService(db *gorm.DB) *SchedulingService {
	return &SchedulingService{
		db:       db,
		catalog:  catalog.NewCatalogService(db),
		customer: customers.NewCustomerService(db),
		resolver: tenant.NewResolver(db),
	}
}

// Create books an appointment. The price snapshot is taken from the
// catalog at this moment; later catalog changes never touch it.
func (s *SchedulingService) Create(tenantID uuid.UUID, req *CreateAppointmentRequest) (*Appointment, error) {
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return nil, ErrInvalidDate
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		return nil, ErrInvalidTime
	}

	svc, err := s.catalog.Get(tenantID, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if _, err := s.customer.Get(tenantID, req.CustomerID); err != nil {
		return nil, err
	}
	if _, err := s.GetDetailer(tenantID, req.DetailerID); err != nil {
		return nil, err
	}

	// Slot exclusivity lives here, not in a DB constraint: cancelled rows
	// keep the slot free for rebooking.
	var clash Appointment
	err = s.db.Scopes(tenant.ForTenant(tenantID)).
		Where("date = ? AND time = ? AND status <> ?", req.Date, req.Time, StatusCancelled).
		First(&clash).Error
	if err == nil {
		return nil, ErrSlotTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check slot availability: %w", err)
	}

	appt := Appointment{
		ID:         uuid.New(),
		TenantID:   tenantID,
		CustomerID: req.CustomerID,
		DetailerID: req.DetailerID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		Time:       req.Time,
		Status:     StatusScheduled,
		Price:      svc.Price,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&appt).Error; err != nil {
			return err
		}
		note := Notification{
			ID:       uuid.New(),
			TenantID: tenantID,
			UserID:   req.CustomerID,
			Message:  fmt.Sprintf("Appointment booked for %s at %s", req.Date, req.Time),
			Type:     "booking",
		}
		return tx.Create(&note).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	return &appt, nil
}

// ListRange returns appointments whose date lies in [startDate, endDate]
// inclusive.
func (s *SchedulingService) ListRange(tenantID uuid.UUID, startDate, endDate string) ([]Appointment, error) {
	var appts []Appointment
	err := s.db.Scopes(tenant.ForTenant(tenantID)).
		Where("date >= ? AND date <= ?", startDate, endDate).
		Order("date ASC, time ASC").Find(&appts).Error
	return appts, err
}

func (s *SchedulingService) Get(tenantID, id uuid.UUID) (*Appointment, error) {
	var appt Appointment
	if err := s.db.Scopes(tenant.ForTenant(tenantID)).First(&appt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return &appt, nil
}

// UpdateStatus applies a status transition. Anything outside
// allowedTransitions is rejected; completed and cancelled are terminal.
func (s *SchedulingService) UpdateStatus(tenantID, id uuid.UUID, status string) (*Appointment, error) {
	appt, err := s.Get(tenantID, id)
	if err != nil {
		return nil, err
	}

	legal := false
	for _, next := range allowedTransitions[appt.Status] {
		if next == status {
			legal = true
			break
		}
	}
	if !legal {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, status)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(appt).Update("status", status).Error; err != nil {
			return err
		}
		note := Notification{
			ID:       uuid.New(),
			TenantID: tenantID,
			UserID:   appt.CustomerID,
			Message:  fmt.Sprintf("Appointment on %s is now %s", appt.Date, status),
			Type:     "status",
		}
		return tx.Create(&note).Error
	})
	if err != nil {
		return nil, err
	}
	appt.Status = status
	return appt, nil
}

// Slots computes free booking slots for a date from the tenant's business
// hours and the day's non-cancelled bookings.
func (s *SchedulingService) Slots(tenantID uuid.UUID, date string) (*SlotsResponse, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	t, err := s.resolver.ByID(tenantID)
	if err != nil {
		return nil, err
	}
	settings := tenant.Settings(t)

	weekday := strings.ToLower(d.Weekday().String())
	var hours *models.BusinessHour
	for i := range settings.BusinessHours {
		if strings.ToLower(settings.BusinessHours[i].Day) == weekday {
			hours = &settings.BusinessHours[i]
			break
		}
	}
	if hours == nil {
		return nil, ErrClosedDay
	}

	var appts []Appointment
	if err := s.db.Scopes(tenant.ForTenant(tenantID)).
		Where("date = ? AND status <> ?", date, StatusCancelled).
		Find(&appts).Error; err != nil {
		return nil, err
	}
	booked := make([]string, len(appts))
	for i, a := range appts {
		booked[i] = a.Time
	}

	step := time.Duration(settings.SlotDurationMinutes) * time.Minute
	return &SlotsResponse{
		Date:  date,
		Slots: AvailableSlots(hours.Start, hours.End, step, booked),
	}, nil
}

// --- Detailers ---

func (s *SchedulingService) CreateDetailer(tenantID uuid.UUID, req *CreateDetailerRequest) (*Detailer, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}
	d := Detailer{
		ID:       uuid.New(),
		TenantID: tenantID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
	}
	if err := s.db.Create(&d).Error; err != nil {
		return nil, fmt.Errorf("failed to create detailer: %w", err)
	}
	return &d, nil
}

func (s *SchedulingService) ListDetailers(tenantID uuid.UUID) ([]Detailer, error) {
	var detailers []Detailer
	err := s.db.Scopes(tenant.ForTenant(tenantID)).Order("created_at ASC").Find(&detailers).Error
	return detailers, err
}

func (s *SchedulingService) GetDetailer(tenantID, id uuid.UUID) (*Detailer, error) {
	var d Detailer
	if err := s.db.Scopes(tenant.ForTenant(tenantID)).First(&d, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDetailerNotFound
		}
		return nil, err
	}
	return &d, nil
}

// --- Notifications ---

func (s *SchedulingService) ListNotifications(tenantID, userID uuid.UUID, unreadOnly bool) ([]Notification, error) {
	query := s.db.Scopes(tenant.ForTenant(tenantID)).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("read = false")
	}
	var notes []Notification
	err := query.Order("created_at DESC").Find(&notes).Error
	return notes, err
}

func (s *SchedulingService) MarkNotificationRead(tenantID, id uuid.UUID) error {
	result := s.db.Model(&Notification{}).
		Scopes(tenant.ForTenant(tenantID)).
		Where("id = ?", id).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
