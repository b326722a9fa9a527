package analytics

import (
	"testing"

	"github.com/detailflowhq/detailflow/internal/aggregate"
	"github.com/detailflowhq/detailflow/internal/models"
	"github.com/detailflowhq/detailflow/internal/modules/catalog"
	"github.com/detailflowhq/detailflow/internal/modules/customers"
	"github.com/detailflowhq/detailflow/internal/modules/scheduling"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	adminEmail    = "owner@shine.example"
	customerEmail = "client@shine.example"
	outsiderEmail = "owner@rival.example"
)

type fixture struct {
	svc      *AnalyticsService
	db       *gorm.DB
	tenantID uuid.UUID

	washID   uuid.UUID
	detailID uuid.UUID

	aliceID uuid.UUID
	bobID   uuid.UUID

	marcoID uuid.UUID
	ninaID  uuid.UUID
}

func setupTest(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &catalog.Service{}, &customers.Customer{},
		&scheduling.Appointment{}, &scheduling.Detailer{},
	))

	f := &fixture{
		svc:      NewAnalyticsService(db),
		db:       db,
		tenantID: uuid.New(),
		washID:   uuid.New(),
		detailID: uuid.New(),
		aliceID:  uuid.New(),
		bobID:    uuid.New(),
		marcoID:  uuid.New(),
		ninaID:   uuid.New(),
	}
	otherTenant := uuid.New()

	users := []models.User{
		{ID: uuid.New(), TenantID: f.tenantID, Email: adminEmail, Password: "x", Role: models.RoleAdmin},
		{ID: uuid.New(), TenantID: f.tenantID, Email: customerEmail, Password: "x", Role: models.RoleCustomer},
		{ID: uuid.New(), TenantID: otherTenant, Email: outsiderEmail, Password: "x", Role: models.RoleAdmin},
	}
	require.NoError(t, db.Create(&users).Error)

	services := []catalog.Service{
		{ID: f.washID, TenantID: f.tenantID, Name: "Basic Wash", Price: 30},
		{ID: f.detailID, TenantID: f.tenantID, Name: "Full Detailing", Price: 150},
	}
	require.NoError(t, db.Create(&services).Error)

	custs := []customers.Customer{
		{ID: f.aliceID, TenantID: f.tenantID, Name: "Alice", Email: "alice@example.com"},
		{ID: f.bobID, TenantID: f.tenantID, Name: "Bob", Email: "bob@example.com"},
	}
	require.NoError(t, db.Create(&custs).Error)

	detailers := []scheduling.Detailer{
		{ID: f.marcoID, TenantID: f.tenantID, Name: "Marco"},
		{ID: f.ninaID, TenantID: f.tenantID, Name: "Nina"},
	}
	require.NoError(t, db.Create(&detailers).Error)

	return f
}

func (f *fixture) book(t *testing.T, serviceID, customerID, detailerID uuid.UUID, date string, price float64) {
	t.Helper()
	require.NoError(t, f.db.Create(&scheduling.Appointment{
		ID: uuid.New(), TenantID: f.tenantID,
		CustomerID: customerID, DetailerID: detailerID, ServiceID: serviceID,
		Date: date, Time: "09:00", Status: scheduling.StatusCompleted, Price: price,
	}).Error)
}

func TestDetailedAnalyticsAuthorization(t *testing.T) {
	f := setupTest(t)

	_, err := f.svc.GetDetailedAnalytics(f.tenantID, "", "2024-01-01", "2024-02-29", aggregate.Monthly)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = f.svc.GetDetailedAnalytics(f.tenantID, customerEmail, "2024-01-01", "2024-02-29", aggregate.Monthly)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// Admin of a different tenant is still unauthorized.
	_, err = f.svc.GetDetailedAnalytics(f.tenantID, outsiderEmail, "2024-01-01", "2024-02-29", aggregate.Monthly)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = f.svc.GetDetailedAnalytics(f.tenantID, "nobody@example.com", "2024-01-01", "2024-02-29", aggregate.Monthly)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthorizationSameEmailAcrossTenants(t *testing.T) {
	f := setupTest(t)

	// A non-admin row in another tenant reuses the admin's email. Its
	// primary key sorts first, so an unscoped lookup would resolve to it.
	require.NoError(t, f.db.Create(&models.User{
		ID:       uuid.MustParse("00000000-0000-0000-0000-000000000001"),
		TenantID: uuid.New(),
		Email:    adminEmail,
		Password: "x",
		Role:     models.RoleCustomer,
	}).Error)

	_, err := f.svc.GetDetailedAnalytics(f.tenantID, adminEmail, "2024-01-01", "2024-02-29", aggregate.Monthly)
	assert.NoError(t, err)
}

func TestDetailedAnalyticsInputValidation(t *testing.T) {
	f := setupTest(t)

	_, err := f.svc.GetDetailedAnalytics(f.tenantID, adminEmail, "2024-01-01", "2024-02-29", "yearly")
	assert.ErrorIs(t, err, ErrInvalidGranularity)

	_, err = f.svc.GetDetailedAnalytics(f.tenantID, adminEmail, "not-a-date", "2024-02-29", aggregate.Monthly)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = f.svc.GetDetailedAnalytics(f.tenantID, adminEmail, "2024-03-01", "2024-02-29", aggregate.Monthly)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestDetailedAnalyticsMonthly(t *testing.T) {
	f := setupTest(t)

	f.book(t, f.washID, f.aliceID, f.marcoID, "2024-01-05", 30)
	f.book(t, f.washID, f.bobID, f.marcoID, "2024-01-20", 30)
	f.book(t, f.washID, f.aliceID, f.ninaID, "2024-02-10", 30)

	result, err := f.svc.GetDetailedAnalytics(f.tenantID, adminEmail, "2024-01-01", "2024-02-29", aggregate.Monthly)
	require.NoError(t, err)

	assert.Equal(t, map[string]aggregate.PeriodStats{
		"2024-01": {Appointments: 2, Revenue: 60},
		"2024-02": {Appointments: 1, Revenue: 30},
	}, result.GroupedData)

	assert.Equal(t, 3, result.OverallMetrics.TotalAppointments)
	assert.InDelta(t, 90, result.OverallMetrics.TotalRevenue, 1e-9)
	assert.InDelta(t, 30, result.OverallMetrics.AverageRevenuePerAppointment, 1e-9)

	require.NotNil(t, result.Growth)
	assert.InDelta(t, -0.5, result.Growth.Appointments, 1e-9)
	assert.InDelta(t, -0.5, result.Growth.Revenue, 1e-9)

	require.Len(t, result.TopServices, 1)
	assert.Equal(t, "Basic Wash", result.TopServices[0].Name)
	assert.Equal(t, 3, result.TopServices[0].Count)
}

func TestDetailedAnalyticsRetentionWindow(t *testing.T) {
	f := setupTest(t)

	// Previous window is the requested window shifted back 30 days.
	// Alice appears in both; Bob only previously; a new customer only now.
	carol := uuid.New()
	require.NoError(t, f.db.Create(&customers.Customer{
		ID: carol, TenantID: f.tenantID, Name: "Carol", Email: "carol@example.com",
	}).Error)

	f.book(t, f.washID, f.aliceID, f.marcoID, "2024-01-05", 30)
	f.book(t, f.washID, f.bobID, f.marcoID, "2024-01-10", 30)
	f.book(t, f.washID, f.aliceID, f.marcoID, "2024-02-05", 30)
	f.book(t, f.washID, carol, f.ninaID, "2024-02-10", 30)

	result, err := f.svc.GetDetailedAnalytics(f.tenantID, adminEmail, "2024-02-01", "2024-02-29", aggregate.Monthly)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, result.CustomerRetention.RetentionRate, 1e-9)
	assert.Equal(t, 1, result.CustomerRetention.NewCustomers)
	assert.Equal(t, 1, result.CustomerRetention.LostCustomers)
}

func TestDetailedAnalyticsTenantIsolation(t *testing.T) {
	f := setupTest(t)

	// A foreign tenant's appointment must never leak into the window.
	require.NoError(t, f.db.Create(&scheduling.Appointment{
		ID: uuid.New(), TenantID: uuid.New(),
		CustomerID: uuid.New(), DetailerID: uuid.New(), ServiceID: uuid.New(),
		Date: "2024-01-05", Time: "09:00", Status: scheduling.StatusCompleted, Price: 999,
	}).Error)

	result, err := f.svc.GetDetailedAnalytics(f.tenantID, adminEmail, "2024-01-01", "2024-01-31", aggregate.Daily)
	require.NoError(t, err)
	assert.Equal(t, 0, result.OverallMetrics.TotalAppointments)
	assert.Empty(t, result.GroupedData)
	assert.Nil(t, result.Growth)
}

func TestCustomerLifetimeValue(t *testing.T) {
	f := setupTest(t)

	f.book(t, f.detailID, f.aliceID, f.marcoID, "2024-01-01", 150)
	f.book(t, f.washID, f.aliceID, f.marcoID, "2024-12-31", 30)

	ltv, err := f.svc.GetCustomerLifetimeValue(f.tenantID, adminEmail, f.aliceID)
	require.NoError(t, err)

	assert.Equal(t, 2, ltv.TotalAppointments)
	assert.InDelta(t, 180, ltv.TotalRevenue, 1e-9)
	assert.InDelta(t, 90, ltv.AverageRevenuePerAppointment, 1e-9)
	assert.InDelta(t, 365, ltv.CustomerLifespanDays, 1e-9)
	assert.InDelta(t, 180, ltv.LifetimeValue, 1e-9)
}

func TestCustomerLifetimeValueSingleVisit(t *testing.T) {
	f := setupTest(t)

	f.book(t, f.washID, f.bobID, f.marcoID, "2024-06-01", 30)

	ltv, err := f.svc.GetCustomerLifetimeValue(f.tenantID, adminEmail, f.bobID)
	require.NoError(t, err)

	// A zero-day observed lifespan projects over a one-day span.
	assert.InDelta(t, 30*365, ltv.LifetimeValue, 1e-9)
}

func TestCustomerLifetimeValueUnknownCustomer(t *testing.T) {
	f := setupTest(t)

	_, err := f.svc.GetCustomerLifetimeValue(f.tenantID, adminEmail, uuid.New())
	assert.ErrorIs(t, err, customers.ErrCustomerNotFound)
}

func TestServiceAnalytics(t *testing.T) {
	f := setupTest(t)

	// Snapshots differ from the current price; detailer revenue uses the
	// snapshots while the service total uses the current price.
	f.book(t, f.detailID, f.aliceID, f.marcoID, "2024-01-05", 120)
	f.book(t, f.detailID, f.bobID, f.marcoID, "2024-01-15", 150)
	f.book(t, f.detailID, f.aliceID, f.ninaID, "2024-01-25", 150)
	f.book(t, f.washID, f.aliceID, f.marcoID, "2024-01-10", 30)

	result, err := f.svc.GetServiceAnalytics(f.tenantID, adminEmail, f.detailID, "2024-01-01", "2024-01-31")
	require.NoError(t, err)

	assert.Equal(t, "Full Detailing", result.ServiceName)
	assert.Equal(t, 3, result.TotalAppointments)
	assert.InDelta(t, 450, result.TotalRevenue, 1e-9)
	assert.InDelta(t, 150, result.AverageRevenuePerAppointment, 1e-9)

	require.Len(t, result.DetailerPerformance, 2)
	assert.Equal(t, "Marco", result.DetailerPerformance[0].Name)
	assert.Equal(t, 2, result.DetailerPerformance[0].Appointments)
	assert.InDelta(t, 270, result.DetailerPerformance[0].Revenue, 1e-9)
	assert.Equal(t, "Nina", result.DetailerPerformance[1].Name)
	assert.InDelta(t, 150, result.DetailerPerformance[1].Revenue, 1e-9)

	// Alice visited twice, Bob once.
	assert.Equal(t, 1, result.CustomerSegmentation.NewCustomers)
	assert.Equal(t, 1, result.CustomerSegmentation.ReturningCustomers)
	assert.Equal(t, 0, result.CustomerSegmentation.FrequentCustomers)
}

func TestServiceAnalyticsUnknownService(t *testing.T) {
	f := setupTest(t)

	_, err := f.svc.GetServiceAnalytics(f.tenantID, adminEmail, uuid.New(), "2024-01-01", "2024-01-31")
	assert.ErrorIs(t, err, catalog.ErrServiceNotFound)
}
