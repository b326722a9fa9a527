package analytics

import (
	"errors"
	"time"

	"github.com/detailflowhq/detailflow/internal/aggregate"
	"github.com/detailflowhq/detailflow/internal/models"
	"github.com/detailflowhq/detailflow/internal/modules/catalog"
	"github.com/detailflowhq/detailflow/internal/modules/customers"
	"github.com/detailflowhq/detailflow/internal/modules/scheduling"
	"github.com/detailflowhq/detailflow/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrUnauthorized       = errors.New("user does not have admin access to this tenant")
	ErrInvalidRange       = errors.New("start and end dates must be YYYY-MM-DD with start <= end")
	ErrInvalidGranularity = errors.New("group_by must be daily, weekly or monthly")
)

// retentionShiftDays is how far both window bounds move back to form the
// previous retention window.
const retentionShiftDays = 30

type AnalyticsService struct {
	db       *gorm.DB
	catalog  *catalog.CatalogService
	customer *customers.CustomerService
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{
		db:       db,
		catalog:  catalog.NewCatalogService(db),
		customer: customers.NewCustomerService(db),
	}
}

// DetailedAnalytics is the full dashboard payload for one date window.
type DetailedAnalytics struct {
	GroupedData       map[string]aggregate.PeriodStats `json:"grouped_data"`
	OverallMetrics    aggregate.OverallMetrics         `json:"overall_metrics"`
	Growth            *aggregate.Growth                `json:"growth"`
	TopServices       []aggregate.ServiceRanking       `json:"top_services"`
	CustomerRetention aggregate.Retention              `json:"customer_retention"`
}

// ServiceAnalytics narrows the dashboard to a single catalog service.
type ServiceAnalytics struct {
	ServiceName                  string                         `json:"service_name"`
	TotalAppointments            int                            `json:"total_appointments"`
	TotalRevenue                 float64                        `json:"total_revenue"`
	AverageRevenuePerAppointment float64                        `json:"average_revenue_per_appointment"`
	DetailerPerformance          []aggregate.DetailerPerformance `json:"detailer_performance"`
	CustomerSegmentation         aggregate.Segmentation         `json:"customer_segmentation"`
}

// authorize resolves the caller by email and requires an admin belonging
// to the requested tenant. Every analytics entry point runs this before
// touching any data.
func (s *AnalyticsService) authorize(tenantID uuid.UUID, callerEmail string) error {
	if callerEmail == "" {
		return ErrUnauthenticated
	}
	// Emails are unique per tenant, not globally; the lookup must carry
	// the tenant or a same-email row elsewhere can shadow the caller.
	var user models.User
	err := s.db.Where("tenant_id = ? AND email = ?", tenantID, callerEmail).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnauthorized
		}
		return err
	}
	if user.Role != models.RoleAdmin {
		return ErrUnauthorized
	}
	return nil
}

func validateRange(start, end string) error {
	if _, err := time.Parse("2006-01-02", start); err != nil {
		return ErrInvalidRange
	}
	if _, err := time.Parse("2006-01-02", end); err != nil {
		return ErrInvalidRange
	}
	if start > end {
		return ErrInvalidRange
	}
	return nil
}

// GetDetailedAnalytics aggregates the tenant's appointments in
// [start, end] into the dashboard payload.
func (s *AnalyticsService) GetDetailedAnalytics(tenantID uuid.UUID, callerEmail, start, end string, groupBy aggregate.Granularity) (*DetailedAnalytics, error) {
	if err := s.authorize(tenantID, callerEmail); err != nil {
		return nil, err
	}
	if !groupBy.Valid() {
		return nil, ErrInvalidGranularity
	}
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	appts, err := s.loadWindow(tenantID, start, end)
	if err != nil {
		return nil, err
	}
	services, err := s.serviceMap(tenantID)
	if err != nil {
		return nil, err
	}

	grouped := aggregate.GroupByTimePeriod(appts, groupBy, services)

	retention, err := s.retention(tenantID, appts, start, end)
	if err != nil {
		return nil, err
	}

	return &DetailedAnalytics{
		GroupedData:       grouped,
		OverallMetrics:    aggregate.CalculateOverallMetrics(appts, services),
		Growth:            aggregate.CalculateGrowth(grouped),
		TopServices:       aggregate.CalculateTopServices(appts, services),
		CustomerRetention: retention,
	}, nil
}

// GetCustomerLifetimeValue projects annualized revenue from one
// customer's full appointment history.
func (s *AnalyticsService) GetCustomerLifetimeValue(tenantID uuid.UUID, callerEmail string, customerID uuid.UUID) (*aggregate.LifetimeValue, error) {
	if err := s.authorize(tenantID, callerEmail); err != nil {
		return nil, err
	}
	if _, err := s.customer.Get(tenantID, customerID); err != nil {
		return nil, err
	}

	var rows []scheduling.Appointment
	err := s.db.Scopes(tenant.ForTenant(tenantID)).
		Where("customer_id = ?", customerID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	services, err := s.serviceMap(tenantID)
	if err != nil {
		return nil, err
	}

	ltv := aggregate.CalculateCustomerLifetimeValue(toAggregate(rows), services)
	return &ltv, nil
}

// GetServiceAnalytics reports one service's bookings in [start, end],
// with per-detailer revenue from stored price snapshots.
func (s *AnalyticsService) GetServiceAnalytics(tenantID uuid.UUID, callerEmail string, serviceID uuid.UUID, start, end string) (*ServiceAnalytics, error) {
	if err := s.authorize(tenantID, callerEmail); err != nil {
		return nil, err
	}
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	svc, err := s.catalog.Get(tenantID, serviceID)
	if err != nil {
		return nil, err
	}

	var rows []scheduling.Appointment
	err = s.db.Scopes(tenant.ForTenant(tenantID)).
		Where("service_id = ? AND date >= ? AND date <= ?", serviceID, start, end).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	appts := toAggregate(rows)

	detailers, err := s.detailerNames(tenantID)
	if err != nil {
		return nil, err
	}

	total := len(appts)
	revenue := float64(total) * svc.Price
	result := &ServiceAnalytics{
		ServiceName:          svc.Name,
		TotalAppointments:    total,
		TotalRevenue:         revenue,
		DetailerPerformance:  aggregate.CalculateDetailerPerformance(appts, detailers),
		CustomerSegmentation: aggregate.CalculateCustomerSegmentation(appts),
	}
	if total > 0 {
		result.AverageRevenuePerAppointment = revenue / float64(total)
	}
	return result, nil
}

// retention compares the window's customers with the same window shifted
// back thirty days.
func (s *AnalyticsService) retention(tenantID uuid.UUID, current []aggregate.Appointment, start, end string) (aggregate.Retention, error) {
	prevStart, err := shiftDate(start, -retentionShiftDays)
	if err != nil {
		return aggregate.Retention{}, err
	}
	prevEnd, err := shiftDate(end, -retentionShiftDays)
	if err != nil {
		return aggregate.Retention{}, err
	}

	previous, err := s.loadWindow(tenantID, prevStart, prevEnd)
	if err != nil {
		return aggregate.Retention{}, err
	}
	return aggregate.CalculateCustomerRetention(
		aggregate.UniqueCustomers(current),
		aggregate.UniqueCustomers(previous),
	), nil
}

func shiftDate(date string, days int) (string, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", ErrInvalidRange
	}
	return d.AddDate(0, 0, days).Format("2006-01-02"), nil
}

func (s *AnalyticsService) loadWindow(tenantID uuid.UUID, start, end string) ([]aggregate.Appointment, error) {
	var rows []scheduling.Appointment
	err := s.db.Scopes(tenant.ForTenant(tenantID)).
		Where("date >= ? AND date <= ?", start, end).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toAggregate(rows), nil
}

func (s *AnalyticsService) serviceMap(tenantID uuid.UUID) (aggregate.ServiceMap, error) {
	priced, err := s.catalog.PriceMap(tenantID)
	if err != nil {
		return nil, err
	}
	services := make(aggregate.ServiceMap, len(priced))
	for id, svc := range priced {
		services[id] = aggregate.Service{ID: id, Name: svc.Name, Price: svc.Price}
	}
	return services, nil
}

func (s *AnalyticsService) detailerNames(tenantID uuid.UUID) ([]aggregate.DetailerName, error) {
	var rows []scheduling.Detailer
	err := s.db.Scopes(tenant.ForTenant(tenantID)).Order("created_at ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	names := make([]aggregate.DetailerName, len(rows))
	for i, d := range rows {
		names[i] = aggregate.DetailerName{ID: d.ID, Name: d.Name}
	}
	return names, nil
}

func toAggregate(rows []scheduling.Appointment) []aggregate.Appointment {
	appts := make([]aggregate.Appointment, len(rows))
	for i, r := range rows {
		appts[i] = aggregate.Appointment{
			ID:         r.ID,
			ServiceID:  r.ServiceID,
			CustomerID: r.CustomerID,
			DetailerID: r.DetailerID,
			Date:       r.Date,
			Price:      r.Price,
		}
	}
	return appts
}
