package customers

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/detailflowhq/detailflow/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrVehicleNotFound  = errors.New("vehicle not found")
	ErrEmailRequired    = errors.New("email is required")
	ErrNameRequired     = errors.New("name is required")
	ErrEmailTaken       = errors.New("a customer with this email already exists")
)

type CustomerService struct {
	db *gorm.DB
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db}
}

func (s *CustomerService) Create(tenantID uuid.UUID, req *CreateCustomerRequest) (*Customer, error) {
	if req.Name == "" {
		return nil, ErrNameRequired
	}
	if req.Email == "" {
		return nil, ErrEmailRequired
	}

	var existing Customer
	if err := s.db.Scopes(tenant.ForTenant(tenantID)).Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	cust := Customer{
		ID:       uuid.New(),
		TenantID: tenantID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
	}
	if err := s.db.Create(&cust).Error; err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return &cust, nil
}

func (s *CustomerService) List(tenantID uuid.UUID) ([]Customer, error) {
	var customers []Customer
	err := s.db.Scopes(tenant.ForTenant(tenantID)).Order("created_at ASC").Find(&customers).Error
	return customers, err
}

func (s *CustomerService) Get(tenantID, id uuid.UUID) (*Customer, error) {
	var cust Customer
	if err := s.db.Scopes(tenant.ForTenant(tenantID)).First(&cust, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &cust, nil
}

func (s *CustomerService) Update(tenantID, id uuid.UUID, req *UpdateCustomerRequest) (*Customer, error) {
	cust, err := s.Get(tenantID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, ErrNameRequired
		}
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		if *req.Email == "" {
			return nil, ErrEmailRequired
		}
		var existing Customer
		err := s.db.Scopes(tenant.ForTenant(tenantID)).
			Where("email = ? AND id <> ?", *req.Email, id).First(&existing).Error
		if err == nil {
			return nil, ErrEmailTaken
		}
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}

	if len(updates) > 0 {
		if err := s.db.Model(cust).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return cust, nil
}

// --- Vehicles ---

func (s *CustomerService) AddVehicle(tenantID uuid.UUID, req *CreateVehicleRequest) (*Vehicle, error) {
	if req.Make == "" || req.Model == "" {
		return nil, errors.New("make and model are required")
	}

	if _, err := s.Get(tenantID, req.CustomerID); err != nil {
		return nil, err
	}

	v := Vehicle{
		ID:         uuid.New(),
		TenantID:   tenantID,
		CustomerID: req.CustomerID,
		Make:       req.Make,
		Model:      req.Model,
		Year:       req.Year,
		VIN:        req.VIN,
	}
	if err := s.db.Create(&v).Error; err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}
	return &v, nil
}

func (s *CustomerService) ListVehicles(tenantID, customerID uuid.UUID) ([]Vehicle, error) {
	var vehicles []Vehicle
	err := s.db.Scopes(tenant.ForTenant(tenantID)).
		Where("customer_id = ?", customerID).
		Order("created_at ASC").Find(&vehicles).Error
	return vehicles, err
}

func (s *CustomerService) GetVehicle(tenantID, id uuid.UUID) (*Vehicle, error) {
	var v Vehicle
	if err := s.db.Scopes(tenant.ForTenant(tenantID)).First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return &v, nil
}

// --- Service history ---

func (s *CustomerService) AddHistory(tenantID uuid.UUID, req *CreateHistoryRequest) (*ServiceHistory, error) {
	vehicle, err := s.GetVehicle(tenantID, req.VehicleID)
	if err != nil {
		return nil, err
	}

	recs, err := json.Marshal(req.Recommendations)
	if err != nil {
		return nil, fmt.Errorf("failed to encode recommendations: %w", err)
	}

	h := ServiceHistory{
		ID:              uuid.New(),
		TenantID:        tenantID,
		AppointmentID:   req.AppointmentID,
		VehicleID:       req.VehicleID,
		CustomerID:      req.CustomerID,
		Notes:           req.Notes,
		Recommendations: datatypes.JSON(recs),
	}

	return &h, s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&h).Error; err != nil {
			return err
		}
		today := time.Now().UTC().Format("2006-01-02")
		return tx.Model(vehicle).Update("last_service", today).Error
	})
}

func (s *CustomerService) VehicleHistory(tenantID, vehicleID uuid.UUID) ([]ServiceHistory, error) {
	var history []ServiceHistory
	err := s.db.Scopes(tenant.ForTenant(tenantID)).
		Where("vehicle_id = ?", vehicleID).
		Order("created_at DESC").Find(&history).Error
	return history, err
}
