package customers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTest(t *testing.T) (*CustomerService, uuid.UUID) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Customer{}, &Vehicle{}, &ServiceHistory{}))
	return NewCustomerService(db), uuid.New()
}

func TestCreateCustomerDuplicateEmail(t *testing.T) {
	svc, tenantID := setupTest(t)

	_, err := svc.Create(tenantID, &CreateCustomerRequest{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	_, err = svc.Create(tenantID, &CreateCustomerRequest{Name: "Ada Again", Email: "ada@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	// Same email under a different tenant is fine.
	_, err = svc.Create(uuid.New(), &CreateCustomerRequest{Name: "Other Ada", Email: "ada@example.com"})
	assert.NoError(t, err)
}

func TestCreateCustomerValidation(t *testing.T) {
	svc, tenantID := setupTest(t)

	_, err := svc.Create(tenantID, &CreateCustomerRequest{Name: "", Email: "a@example.com"})
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.Create(tenantID, &CreateCustomerRequest{Name: "Ada", Email: ""})
	assert.ErrorIs(t, err, ErrEmailRequired)
}

func TestUpdateCustomerDuplicateEmail(t *testing.T) {
	svc, tenantID := setupTest(t)

	ada, err := svc.Create(tenantID, &CreateCustomerRequest{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	grace, err := svc.Create(tenantID, &CreateCustomerRequest{Name: "Grace", Email: "grace@example.com"})
	require.NoError(t, err)

	taken := "ada@example.com"
	_, err = svc.Update(tenantID, grace.ID, &UpdateCustomerRequest{Email: &taken})
	assert.ErrorIs(t, err, ErrEmailTaken)

	// Re-submitting a customer's own email is not a collision.
	own := "ada@example.com"
	_, err = svc.Update(tenantID, ada.ID, &UpdateCustomerRequest{Email: &own})
	assert.NoError(t, err)
}

func TestAddVehicleRequiresOwnCustomer(t *testing.T) {
	svc, tenantID := setupTest(t)

	cust, err := svc.Create(tenantID, &CreateCustomerRequest{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	v, err := svc.AddVehicle(tenantID, &CreateVehicleRequest{
		CustomerID: cust.ID, Make: "Toyota", Model: "Corolla", Year: 2019,
	})
	require.NoError(t, err)
	assert.Nil(t, v.LastService)

	// Customers of other tenants are invisible.
	_, err = svc.AddVehicle(uuid.New(), &CreateVehicleRequest{
		CustomerID: cust.ID, Make: "Toyota", Model: "Corolla", Year: 2019,
	})
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestAddHistoryUpdatesLastService(t *testing.T) {
	svc, tenantID := setupTest(t)

	cust, err := svc.Create(tenantID, &CreateCustomerRequest{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	v, err := svc.AddVehicle(tenantID, &CreateVehicleRequest{
		CustomerID: cust.ID, Make: "Toyota", Model: "Corolla", Year: 2019,
	})
	require.NoError(t, err)

	h, err := svc.AddHistory(tenantID, &CreateHistoryRequest{
		AppointmentID:   uuid.New(),
		VehicleID:       v.ID,
		CustomerID:      cust.ID,
		Notes:           "full detail, clay bar",
		Recommendations: []string{"Paint Protection"},
	})
	require.NoError(t, err)

	var recs []string
	require.NoError(t, json.Unmarshal(h.Recommendations, &recs))
	assert.Equal(t, []string{"Paint Protection"}, recs)

	got, err := svc.GetVehicle(tenantID, v.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastService)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), *got.LastService)
}

func TestVehicleHistoryNewestFirst(t *testing.T) {
	svc, tenantID := setupTest(t)

	cust, err := svc.Create(tenantID, &CreateCustomerRequest{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	v, err := svc.AddVehicle(tenantID, &CreateVehicleRequest{
		CustomerID: cust.ID, Make: "Toyota", Model: "Corolla", Year: 2019,
	})
	require.NoError(t, err)

	for _, notes := range []string{"first", "second"} {
		_, err := svc.AddHistory(tenantID, &CreateHistoryRequest{
			AppointmentID: uuid.New(), VehicleID: v.ID, CustomerID: cust.ID, Notes: notes,
		})
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}

	history, err := svc.VehicleHistory(tenantID, v.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "second", history[0].Notes)
}
