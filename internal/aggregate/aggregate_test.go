package aggregate

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appt(service, customer, detailer uuid.UUID, date string, price float64) Appointment {
	return Appointment{
		ID:         uuid.New(),
		ServiceID:  service,
		CustomerID: customer,
		DetailerID: detailer,
		Date:       date,
		Price:      price,
	}
}

func TestGroupByTimePeriod_Monthly(t *testing.T) {
	service := uuid.New()
	customer := uuid.New()
	detailer := uuid.New()
	services := ServiceMap{service: {ID: service, Name: "Basic Wash", Price: 30}}

	appointments := []Appointment{
		appt(service, customer, detailer, "2024-01-01", 30),
		appt(service, customer, detailer, "2024-01-08", 30),
		appt(service, customer, detailer, "2024-02-01", 30),
	}

	grouped := GroupByTimePeriod(appointments, Monthly, services)
	require.Len(t, grouped, 2)
	assert.Equal(t, PeriodStats{Appointments: 2, Revenue: 60}, grouped["2024-01"])
	assert.Equal(t, PeriodStats{Appointments: 1, Revenue: 30}, grouped["2024-02"])
}

func TestGroupByTimePeriod_DailyUsesDateVerbatim(t *testing.T) {
	service := uuid.New()
	services := ServiceMap{service: {ID: service, Price: 50}}

	grouped := GroupByTimePeriod([]Appointment{
		appt(service, uuid.New(), uuid.New(), "2024-03-15", 50),
	}, Daily, services)

	require.Contains(t, grouped, "2024-03-15")
	assert.Equal(t, PeriodStats{Appointments: 1, Revenue: 50}, grouped["2024-03-15"])
}

func TestGroupByTimePeriod_WeeklyBucketsOnSunday(t *testing.T) {
	service := uuid.New()
	services := ServiceMap{service: {ID: service, Price: 10}}

	// 2024-01-10 is a Wednesday; its week starts Sunday 2024-01-07.
	// 2024-01-07 itself stays in the same bucket.
	grouped := GroupByTimePeriod([]Appointment{
		appt(service, uuid.New(), uuid.New(), "2024-01-10", 10),
		appt(service, uuid.New(), uuid.New(), "2024-01-07", 10),
		appt(service, uuid.New(), uuid.New(), "2024-01-14", 10),
	}, Weekly, services)

	require.Len(t, grouped, 2)
	assert.Equal(t, 2, grouped["2024-01-07"].Appointments)
	assert.Equal(t, 1, grouped["2024-01-14"].Appointments)
}

func TestGroupByTimePeriod_MissingServicePriceContributesZero(t *testing.T) {
	grouped := GroupByTimePeriod([]Appointment{
		appt(uuid.New(), uuid.New(), uuid.New(), "2024-01-01", 99),
	}, Daily, ServiceMap{})

	assert.Equal(t, PeriodStats{Appointments: 1, Revenue: 0}, grouped["2024-01-01"])
}

func TestGroupedRevenueMatchesOverallTotal(t *testing.T) {
	s1, s2 := uuid.New(), uuid.New()
	services := ServiceMap{
		s1: {ID: s1, Price: 30},
		s2: {ID: s2, Price: 80},
	}
	appointments := []Appointment{
		appt(s1, uuid.New(), uuid.New(), "2024-01-01", 30),
		appt(s2, uuid.New(), uuid.New(), "2024-01-15", 80),
		appt(s1, uuid.New(), uuid.New(), "2024-02-03", 30),
		appt(s2, uuid.New(), uuid.New(), "2024-03-20", 80),
		appt(uuid.New(), uuid.New(), uuid.New(), "2024-03-21", 50), // orphaned service ref
	}

	for _, g := range []Granularity{Daily, Weekly, Monthly} {
		grouped := GroupByTimePeriod(appointments, g, services)
		var sum float64
		for _, stats := range grouped {
			sum += stats.Revenue
		}
		overall := CalculateOverallMetrics(appointments, services)
		assert.Equal(t, overall.TotalRevenue, sum, "granularity %s", g)
	}
}

func TestCalculateOverallMetrics_Empty(t *testing.T) {
	m := CalculateOverallMetrics(nil, ServiceMap{})
	assert.Equal(t, OverallMetrics{}, m)
}

func TestCalculateOverallMetrics_Average(t *testing.T) {
	s := uuid.New()
	services := ServiceMap{s: {ID: s, Price: 30}}
	m := CalculateOverallMetrics([]Appointment{
		appt(s, uuid.New(), uuid.New(), "2024-01-01", 30),
		appt(s, uuid.New(), uuid.New(), "2024-01-02", 30),
	}, services)
	assert.Equal(t, 2, m.TotalAppointments)
	assert.Equal(t, 60.0, m.TotalRevenue)
	assert.Equal(t, 30.0, m.AverageRevenuePerAppointment)
}

func TestCalculateGrowth(t *testing.T) {
	grouped := map[string]PeriodStats{
		"2024-01": {Appointments: 10, Revenue: 100},
		"2024-02": {Appointments: 20, Revenue: 300},
	}
	growth := CalculateGrowth(grouped)
	require.NotNil(t, growth)
	assert.Equal(t, 1.0, growth.Appointments)
	assert.Equal(t, 2.0, growth.Revenue)
}

func TestCalculateGrowth_SinglePeriodIsNil(t *testing.T) {
	assert.Nil(t, CalculateGrowth(map[string]PeriodStats{
		"2024-01": {Appointments: 10, Revenue: 100},
	}))
}

func TestCalculateGrowth_ZeroBaselineIsNil(t *testing.T) {
	assert.Nil(t, CalculateGrowth(map[string]PeriodStats{
		"2024-01": {Appointments: 3, Revenue: 0},
		"2024-02": {Appointments: 20, Revenue: 300},
	}))
}

func TestCalculateTopServices(t *testing.T) {
	ids := make([]uuid.UUID, 7)
	services := ServiceMap{}
	var appointments []Appointment
	for i := range ids {
		ids[i] = uuid.New()
		services[ids[i]] = Service{ID: ids[i], Name: "svc", Price: 10}
		// service i gets 7-i appointments, so ids[0] ranks first
		for n := 0; n < len(ids)-i; n++ {
			appointments = append(appointments, appt(ids[i], uuid.New(), uuid.New(), "2024-01-01", 10))
		}
	}

	top := CalculateTopServices(appointments, services)
	require.Len(t, top, 5)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Count, top[i].Count)
	}
	assert.Equal(t, ids[0], top[0].ServiceID)
	assert.Equal(t, 7, top[0].Count)
	assert.Equal(t, 70.0, top[0].Revenue)
}

func TestCalculateTopServices_TieKeepsFirstAppearanceOrder(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	services := ServiceMap{
		a: {ID: a, Name: "A", Price: 1},
		b: {ID: b, Name: "B", Price: 1},
		c: {ID: c, Name: "C", Price: 1},
	}
	appointments := []Appointment{
		appt(b, uuid.New(), uuid.New(), "2024-01-01", 1),
		appt(a, uuid.New(), uuid.New(), "2024-01-02", 1),
		appt(c, uuid.New(), uuid.New(), "2024-01-03", 1),
		appt(a, uuid.New(), uuid.New(), "2024-01-04", 1),
		appt(b, uuid.New(), uuid.New(), "2024-01-05", 1),
		appt(c, uuid.New(), uuid.New(), "2024-01-06", 1),
	}

	top := CalculateTopServices(appointments, services)
	require.Len(t, top, 3)
	assert.Equal(t, []uuid.UUID{b, a, c}, []uuid.UUID{top[0].ServiceID, top[1].ServiceID, top[2].ServiceID})
}

func TestCalculateTopServices_UnknownServiceNamed(t *testing.T) {
	top := CalculateTopServices([]Appointment{
		appt(uuid.New(), uuid.New(), uuid.New(), "2024-01-01", 5),
	}, ServiceMap{})
	require.Len(t, top, 1)
	assert.Equal(t, "Unknown", top[0].Name)
	assert.Equal(t, 0.0, top[0].Revenue)
}

func TestCalculateCustomerRetention_IdenticalSets(t *testing.T) {
	customers := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	r := CalculateCustomerRetention(customers, customers)
	assert.Equal(t, 1.0, r.RetentionRate)
	assert.Equal(t, 0, r.NewCustomers)
	assert.Equal(t, 0, r.LostCustomers)
}

func TestCalculateCustomerRetention_Churn(t *testing.T) {
	kept := uuid.New()
	r := CalculateCustomerRetention(
		[]uuid.UUID{kept, uuid.New(), uuid.New()},
		[]uuid.UUID{kept, uuid.New()},
	)
	assert.Equal(t, 0.5, r.RetentionRate)
	assert.Equal(t, 2, r.NewCustomers)
	assert.Equal(t, 1, r.LostCustomers)
}

func TestCalculateCustomerRetention_EmptyPrevious(t *testing.T) {
	r := CalculateCustomerRetention([]uuid.UUID{uuid.New()}, nil)
	assert.Equal(t, 0.0, r.RetentionRate)
	assert.Equal(t, 1, r.NewCustomers)
	assert.Equal(t, 0, r.LostCustomers)
}

func TestCalculateCustomerLifetimeValue(t *testing.T) {
	s := uuid.New()
	customer := uuid.New()
	services := ServiceMap{s: {ID: s, Price: 100}}

	ltv := CalculateCustomerLifetimeValue([]Appointment{
		appt(s, customer, uuid.New(), "2024-01-01", 100),
		appt(s, customer, uuid.New(), "2024-12-31", 100),
	}, services)

	assert.Equal(t, 2, ltv.TotalAppointments)
	assert.Equal(t, 200.0, ltv.TotalRevenue)
	assert.Equal(t, 100.0, ltv.AverageRevenuePerAppointment)
	assert.Equal(t, 365.0, ltv.CustomerLifespanDays)
	assert.InDelta(t, 200.0, ltv.LifetimeValue, 0.001)
}

func TestCalculateCustomerLifetimeValue_SingleAppointment(t *testing.T) {
	s := uuid.New()
	services := ServiceMap{s: {ID: s, Price: 80}}

	ltv := CalculateCustomerLifetimeValue([]Appointment{
		appt(s, uuid.New(), uuid.New(), "2024-06-01", 80),
	}, services)

	// Zero observed lifespan projects as a one-day span.
	assert.Equal(t, 0.0, ltv.CustomerLifespanDays)
	assert.Equal(t, 80.0*365, ltv.LifetimeValue)
}

func TestCalculateCustomerLifetimeValue_NoAppointments(t *testing.T) {
	assert.Equal(t, LifetimeValue{}, CalculateCustomerLifetimeValue(nil, ServiceMap{}))
}

func TestCalculateCustomerSegmentation_Boundaries(t *testing.T) {
	s := uuid.New()
	one, four, five := uuid.New(), uuid.New(), uuid.New()

	var appointments []Appointment
	appointments = append(appointments, appt(s, one, uuid.New(), "2024-01-01", 1))
	for i := 0; i < 4; i++ {
		appointments = append(appointments, appt(s, four, uuid.New(), "2024-01-01", 1))
	}
	for i := 0; i < 5; i++ {
		appointments = append(appointments, appt(s, five, uuid.New(), "2024-01-01", 1))
	}

	seg := CalculateCustomerSegmentation(appointments)
	assert.Equal(t, Segmentation{NewCustomers: 1, ReturningCustomers: 1, FrequentCustomers: 1}, seg)
}

func TestCalculateDetailerPerformance_UsesPriceSnapshots(t *testing.T) {
	s := uuid.New()
	d1, d2 := uuid.New(), uuid.New()
	appointments := []Appointment{
		appt(s, uuid.New(), d1, "2024-01-01", 30),
		appt(s, uuid.New(), d1, "2024-01-02", 45), // snapshot differs from any catalog price
		appt(s, uuid.New(), d2, "2024-01-03", 30),
	}
	detailers := []DetailerName{
		{ID: d1, Name: "Ana"},
		{ID: d2, Name: "Bram"},
		{ID: uuid.New(), Name: "idle"}, // no appointments, excluded
	}

	perf := CalculateDetailerPerformance(appointments, detailers)
	require.Len(t, perf, 2)
	assert.Equal(t, 2, perf[0].Appointments)
	assert.Equal(t, 75.0, perf[0].Revenue)
	assert.Equal(t, "Bram", perf[1].Name)
	assert.Equal(t, 30.0, perf[1].Revenue)
}

func TestUniqueCustomers(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	s := uuid.New()
	ids := UniqueCustomers([]Appointment{
		appt(s, a, uuid.New(), "2024-01-01", 1),
		appt(s, b, uuid.New(), "2024-01-02", 1),
		appt(s, a, uuid.New(), "2024-01-03", 1),
	})
	assert.Equal(t, []uuid.UUID{a, b}, ids)
}
