package inventory

import (
	"testing"

	"github.com/detailflowhq/detailflow/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTest(t *testing.T) (*InventoryService, uuid.UUID, uuid.UUID) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Location{}, &Item{}))

	tenantID := uuid.New()
	locationID := uuid.New()
	require.NoError(t, db.Create(&models.Location{
		ID: locationID, TenantID: tenantID, OrganizationID: uuid.New(), Name: "Downtown",
	}).Error)
	return NewInventoryService(db), tenantID, locationID
}

func itemRequest(locationID uuid.UUID) *CreateItemRequest {
	return &CreateItemRequest{
		LocationID:   locationID,
		Name:         "Carnauba Wax",
		Type:         "consumable",
		Quantity:     10,
		Unit:         "tin",
		Price:        24.99,
		LowThreshold: 3,
		ReorderPoint: 5,
	}
}

func TestCreateItemDerivesStatus(t *testing.T) {
	svc, tenantID, locationID := setupTest(t)

	item, err := svc.Create(tenantID, itemRequest(locationID))
	require.NoError(t, err)
	assert.Equal(t, StatusInStock, item.Status)

	req := itemRequest(locationID)
	req.Name = "Clay Bar"
	req.Quantity = 2
	item, err = svc.Create(tenantID, req)
	require.NoError(t, err)
	assert.Equal(t, StatusLowStock, item.Status)

	req = itemRequest(locationID)
	req.Name = "Sealant"
	req.Quantity = 0
	item, err = svc.Create(tenantID, req)
	require.NoError(t, err)
	assert.Equal(t, StatusOutOfStock, item.Status)
}

func TestCreateItemValidation(t *testing.T) {
	svc, tenantID, locationID := setupTest(t)

	req := itemRequest(locationID)
	req.Name = ""
	_, err := svc.Create(tenantID, req)
	assert.ErrorIs(t, err, ErrNameRequired)

	req = itemRequest(locationID)
	req.Expiry = "next year"
	_, err = svc.Create(tenantID, req)
	assert.ErrorIs(t, err, ErrInvalidExpiry)

	req = itemRequest(uuid.New())
	_, err = svc.Create(tenantID, req)
	assert.ErrorIs(t, err, ErrLocationNotFound)

	// Another tenant's location is invisible.
	_, err = svc.Create(uuid.New(), itemRequest(locationID))
	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestAdjustQuantityCrossesThresholds(t *testing.T) {
	svc, tenantID, locationID := setupTest(t)

	item, err := svc.Create(tenantID, itemRequest(locationID))
	require.NoError(t, err)

	item, err = svc.AdjustQuantity(tenantID, item.ID, -8)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, StatusLowStock, item.Status)

	item, err = svc.AdjustQuantity(tenantID, item.ID, -2)
	require.NoError(t, err)
	assert.Equal(t, 0, item.Quantity)
	assert.Equal(t, StatusOutOfStock, item.Status)

	item, err = svc.AdjustQuantity(tenantID, item.ID, 20)
	require.NoError(t, err)
	assert.Equal(t, StatusInStock, item.Status)

	_, err = svc.AdjustQuantity(tenantID, item.ID, -100)
	assert.ErrorIs(t, err, ErrNegativeQuantity)
}

func TestListLowStock(t *testing.T) {
	svc, tenantID, locationID := setupTest(t)

	healthy := itemRequest(locationID)
	_, err := svc.Create(tenantID, healthy)
	require.NoError(t, err)

	low := itemRequest(locationID)
	low.Name = "Microfiber Towels"
	low.Quantity = 1
	_, err = svc.Create(tenantID, low)
	require.NoError(t, err)

	out := itemRequest(locationID)
	out.Name = "Tire Shine"
	out.Quantity = 0
	_, err = svc.Create(tenantID, out)
	require.NoError(t, err)

	items, err := svc.ListLowStock(tenantID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Tire Shine", items[0].Name)
	assert.Equal(t, "Microfiber Towels", items[1].Name)
}

func TestUpdateItemRederivesStatus(t *testing.T) {
	svc, tenantID, locationID := setupTest(t)

	item, err := svc.Create(tenantID, itemRequest(locationID))
	require.NoError(t, err)
	assert.Equal(t, StatusInStock, item.Status)

	threshold := 10
	item, err = svc.Update(tenantID, item.ID, &UpdateItemRequest{LowThreshold: &threshold})
	require.NoError(t, err)
	assert.Equal(t, StatusLowStock, item.Status)
}

func TestDeleteItem(t *testing.T) {
	svc, tenantID, locationID := setupTest(t)

	item, err := svc.Create(tenantID, itemRequest(locationID))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(tenantID, item.ID))
	_, err = svc.Get(tenantID, item.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)

	assert.ErrorIs(t, svc.Delete(tenantID, item.ID), ErrItemNotFound)
}
