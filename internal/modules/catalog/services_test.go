package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTest(t *testing.T) (*CatalogService, uuid.UUID) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Service{}))
	return NewCatalogService(db), uuid.New()
}

func TestCreateServiceValidation(t *testing.T) {
	svc, tenantID := setupTest(t)

	_, err := svc.Create(tenantID, &CreateServiceRequest{Name: "", Price: 30, DurationMinutes: 60})
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.Create(tenantID, &CreateServiceRequest{Name: "Wash", Price: -1, DurationMinutes: 60})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = svc.Create(tenantID, &CreateServiceRequest{Name: "Wash", Price: 30, DurationMinutes: 0})
	assert.ErrorIs(t, err, ErrInvalidDuration)

	created, err := svc.Create(tenantID, &CreateServiceRequest{Name: "Wash", Price: 30, DurationMinutes: 60})
	require.NoError(t, err)
	assert.Equal(t, "Wash", created.Name)
}

func TestGetServiceScopedToTenant(t *testing.T) {
	svc, tenantID := setupTest(t)

	created, err := svc.Create(tenantID, &CreateServiceRequest{Name: "Wash", Price: 30, DurationMinutes: 60})
	require.NoError(t, err)

	got, err := svc.Get(tenantID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.Get(uuid.New(), created.ID)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestUpdateServicePartial(t *testing.T) {
	svc, tenantID := setupTest(t)

	created, err := svc.Create(tenantID, &CreateServiceRequest{Name: "Wash", Price: 30, DurationMinutes: 60})
	require.NoError(t, err)

	price := 45.0
	_, err = svc.Update(tenantID, created.ID, &UpdateServiceRequest{Price: &price})
	require.NoError(t, err)

	got, err := svc.Get(tenantID, created.ID)
	require.NoError(t, err)
	assert.InDelta(t, 45, got.Price, 1e-9)
	assert.Equal(t, "Wash", got.Name)

	bad := -5.0
	_, err = svc.Update(tenantID, created.ID, &UpdateServiceRequest{Price: &bad})
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestDeleteService(t *testing.T) {
	svc, tenantID := setupTest(t)

	created, err := svc.Create(tenantID, &CreateServiceRequest{Name: "Wash", Price: 30, DurationMinutes: 60})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(tenantID, created.ID))
	assert.ErrorIs(t, svc.Delete(tenantID, created.ID), ErrServiceNotFound)
}

func TestPriceMap(t *testing.T) {
	svc, tenantID := setupTest(t)

	wash, err := svc.Create(tenantID, &CreateServiceRequest{Name: "Wash", Price: 30, DurationMinutes: 60})
	require.NoError(t, err)
	detail, err := svc.Create(tenantID, &CreateServiceRequest{Name: "Detail", Price: 150, DurationMinutes: 120})
	require.NoError(t, err)

	m, err := svc.PriceMap(tenantID)
	require.NoError(t, err)
	require.Len(t, m, 2)
	assert.InDelta(t, 30, m[wash.ID].Price, 1e-9)
	assert.Equal(t, "Detail", m[detail.ID].Name)
}
