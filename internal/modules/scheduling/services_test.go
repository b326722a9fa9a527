package scheduling

import (
	"encoding/json"
	"testing"

	"github.com/detailflowhq/detailflow/internal/models"
	"github.com/detailflowhq/detailflow/internal/modules/catalog"
	"github.com/detailflowhq/detailflow/internal/modules/customers"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	svc        *SchedulingService
	db         *gorm.DB
	tenantID   uuid.UUID
	serviceID  uuid.UUID
	customerID uuid.UUID
	detailerID uuid.UUID
}

func setupTest(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Tenant{}, &catalog.Service{}, &customers.Customer{},
		&Appointment{}, &Detailer{}, &Notification{},
	))

	f := &fixture{
		svc:        NewSchedulingService(db),
		db:         db,
		tenantID:   uuid.New(),
		serviceID:  uuid.New(),
		customerID: uuid.New(),
		detailerID: uuid.New(),
	}

	settings, _ := json.Marshal(models.TenantSettings{
		BusinessHours: []models.BusinessHour{
			{Day: "monday", Start: "09:00", End: "11:00"},
		},
		SlotDurationMinutes: 30,
	})
	require.NoError(t, db.Create(&models.Tenant{
		ID: f.tenantID, Name: "Shine Co", Slug: "shine-co", Settings: settings,
	}).Error)
	require.NoError(t, db.Create(&catalog.Service{
		ID: f.serviceID, TenantID: f.tenantID, Name: "Full Detailing", Price: 150, DurationMinutes: 120,
	}).Error)
	require.NoError(t, db.Create(&customers.Customer{
		ID: f.customerID, TenantID: f.tenantID, Name: "Ada", Email: "ada@example.com",
	}).Error)
	require.NoError(t, db.Create(&Detailer{
		ID: f.detailerID, TenantID: f.tenantID, Name: "Marco",
	}).Error)
	return f
}

func (f *fixture) bookingRequest() *CreateAppointmentRequest {
	return &CreateAppointmentRequest{
		CustomerID: f.customerID,
		DetailerID: f.detailerID,
		ServiceID:  f.serviceID,
		Date:       "2025-01-06",
		Time:       "09:00",
	}
}

func TestCreateAppointmentSnapshotsPrice(t *testing.T) {
	f := setupTest(t)

	appt, err := f.svc.Create(f.tenantID, f.bookingRequest())
	require.NoError(t, err)
	assert.Equal(t, 150.0, appt.Price)
	assert.Equal(t, StatusScheduled, appt.Status)

	// Raising the catalog price later must not touch the booking.
	require.NoError(t, f.db.Model(&catalog.Service{}).
		Where("id = ?", f.serviceID).Update("price", 200).Error)

	stored, err := f.svc.Get(f.tenantID, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, 150.0, stored.Price)
}

func TestCreateAppointmentRejectsTakenSlot(t *testing.T) {
	f := setupTest(t)

	_, err := f.svc.Create(f.tenantID, f.bookingRequest())
	require.NoError(t, err)

	_, err = f.svc.Create(f.tenantID, f.bookingRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestCreateAppointmentCancelledSlotReopens(t *testing.T) {
	f := setupTest(t)

	appt, err := f.svc.Create(f.tenantID, f.bookingRequest())
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(f.tenantID, appt.ID, StatusCancelled)
	require.NoError(t, err)

	_, err = f.svc.Create(f.tenantID, f.bookingRequest())
	assert.NoError(t, err)
}

func TestCreateAppointmentValidation(t *testing.T) {
	f := setupTest(t)

	req := f.bookingRequest()
	req.Date = "06-01-2025"
	_, err := f.svc.Create(f.tenantID, req)
	assert.ErrorIs(t, err, ErrInvalidDate)

	req = f.bookingRequest()
	req.Time = "9am"
	_, err = f.svc.Create(f.tenantID, req)
	assert.ErrorIs(t, err, ErrInvalidTime)

	req = f.bookingRequest()
	req.ServiceID = uuid.New()
	_, err = f.svc.Create(f.tenantID, req)
	assert.ErrorIs(t, err, catalog.ErrServiceNotFound)

	req = f.bookingRequest()
	req.CustomerID = uuid.New()
	_, err = f.svc.Create(f.tenantID, req)
	assert.ErrorIs(t, err, customers.ErrCustomerNotFound)

	req = f.bookingRequest()
	req.DetailerID = uuid.New()
	_, err = f.svc.Create(f.tenantID, req)
	assert.ErrorIs(t, err, ErrDetailerNotFound)
}

func TestCreateAppointmentIsolatedByTenant(t *testing.T) {
	f := setupTest(t)

	_, err := f.svc.Create(uuid.New(), f.bookingRequest())
	assert.ErrorIs(t, err, catalog.ErrServiceNotFound)
}

func TestUpdateStatusTransitions(t *testing.T) {
	f := setupTest(t)

	appt, err := f.svc.Create(f.tenantID, f.bookingRequest())
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus(f.tenantID, appt.ID, StatusRescheduled)
	require.NoError(t, err)
	assert.Equal(t, StatusRescheduled, updated.Status)

	updated, err = f.svc.UpdateStatus(f.tenantID, appt.ID, StatusScheduled)
	require.NoError(t, err)
	assert.Equal(t, StatusScheduled, updated.Status)

	updated, err = f.svc.UpdateStatus(f.tenantID, appt.ID, StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, updated.Status)

	// Completed is terminal.
	_, err = f.svc.UpdateStatus(f.tenantID, appt.ID, StatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatusUnknownAppointment(t *testing.T) {
	f := setupTest(t)

	_, err := f.svc.UpdateStatus(f.tenantID, uuid.New(), StatusCompleted)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestListRangeInclusiveBounds(t *testing.T) {
	f := setupTest(t)

	for _, date := range []string{"2025-01-06", "2025-01-07", "2025-01-08"} {
		req := f.bookingRequest()
		req.Date = date
		_, err := f.svc.Create(f.tenantID, req)
		require.NoError(t, err)
	}

	appts, err := f.svc.ListRange(f.tenantID, "2025-01-06", "2025-01-07")
	require.NoError(t, err)
	require.Len(t, appts, 2)
	assert.Equal(t, "2025-01-06", appts[0].Date)
	assert.Equal(t, "2025-01-07", appts[1].Date)
}

func TestSlotsExcludesBookings(t *testing.T) {
	f := setupTest(t)

	req := f.bookingRequest()
	req.Time = "09:30"
	_, err := f.svc.Create(f.tenantID, req)
	require.NoError(t, err)

	// 2025-01-06 is a Monday with 09:00-11:00 hours and 30 minute slots.
	resp, err := f.svc.Slots(f.tenantID, "2025-01-06")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00", "10:30"}, resp.Slots)
}

func TestSlotsCancelledBookingFreesSlot(t *testing.T) {
	f := setupTest(t)

	appt, err := f.svc.Create(f.tenantID, f.bookingRequest())
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(f.tenantID, appt.ID, StatusCancelled)
	require.NoError(t, err)

	resp, err := f.svc.Slots(f.tenantID, "2025-01-06")
	require.NoError(t, err)
	assert.Contains(t, resp.Slots, "09:00")
}

func TestSlotsClosedDay(t *testing.T) {
	f := setupTest(t)

	// 2025-01-05 is a Sunday; no business hours configured.
	_, err := f.svc.Slots(f.tenantID, "2025-01-05")
	assert.ErrorIs(t, err, ErrClosedDay)
}

func TestBookingWritesNotification(t *testing.T) {
	f := setupTest(t)

	_, err := f.svc.Create(f.tenantID, f.bookingRequest())
	require.NoError(t, err)

	notes, err := f.svc.ListNotifications(f.tenantID, f.customerID, true)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "booking", notes[0].Type)
	assert.False(t, notes[0].Read)

	require.NoError(t, f.svc.MarkNotificationRead(f.tenantID, notes[0].ID))

	notes, err = f.svc.ListNotifications(f.tenantID, f.customerID, true)
	require.NoError(t, err)
	assert.Empty(t, notes)
}
