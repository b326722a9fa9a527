// Package aggregate computes derived business metrics from appointment
// collections. Every function here is a pure transformation of its inputs:
// no I/O, no shared state, safe for concurrent use.
package aggregate

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Granularity is the time-bucketing unit for grouped metrics.
type Granularity string

const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
)

// Valid reports whether g is a supported granularity.
func (g Granularity) Valid() bool {
	switch g {
	case Daily, Weekly, Monthly:
		return true
	}
	return false
}

const dateLayout = "2006-01-02"

// Appointment is the minimal appointment view the aggregation functions
// operate on. Price is the snapshot taken at booking time.
type Appointment struct {
	ID         uuid.UUID
	ServiceID  uuid.UUID
	CustomerID uuid.UUID
	DetailerID uuid.UUID
	Date       string // YYYY-MM-DD
	Price      float64
}

// Service carries the catalog name and current unit price used for
// revenue lookups.
type Service struct {
	ID    uuid.UUID
	Name  string
	Price float64
}

// ServiceMap indexes services by ID for price/name lookups. A missing
// entry contributes zero revenue rather than failing.
type ServiceMap map[uuid.UUID]Service

type PeriodStats struct {
	Appointments int     `json:"appointments"`
	Revenue      float64 `json:"revenue"`
}

type OverallMetrics struct {
	TotalAppointments            int     `json:"total_appointments"`
	TotalRevenue                 float64 `json:"total_revenue"`
	AverageRevenuePerAppointment float64 `json:"average_revenue_per_appointment"`
}

type Growth struct {
	Appointments float64 `json:"appointments"`
	Revenue      float64 `json:"revenue"`
}

type ServiceRanking struct {
	ServiceID uuid.UUID `json:"service_id"`
	Name      string    `json:"name"`
	Count     int       `json:"count"`
	Revenue   float64   `json:"revenue"`
}

type Retention struct {
	RetentionRate float64 `json:"retention_rate"`
	NewCustomers  int     `json:"new_customers"`
	LostCustomers int     `json:"lost_customers"`
}

type LifetimeValue struct {
	TotalRevenue                 float64 `json:"total_revenue"`
	AverageRevenuePerAppointment float64 `json:"average_revenue_per_appointment"`
	TotalAppointments            int     `json:"total_appointments"`
	CustomerLifespanDays         float64 `json:"customer_lifespan_days"`
	LifetimeValue                float64 `json:"lifetime_value"`
}

type Segmentation struct {
	NewCustomers       int `json:"new_customers"`
	ReturningCustomers int `json:"returning_customers"`
	FrequentCustomers  int `json:"frequent_customers"`
}

type DetailerName struct {
	ID   uuid.UUID
	Name string
}

type DetailerPerformance struct {
	DetailerID   uuid.UUID `json:"detailer_id"`
	Name         string    `json:"name"`
	Appointments int       `json:"appointments"`
	Revenue      float64   `json:"revenue"`
}

// GroupByTimePeriod buckets appointments into period keys. Daily keys are
// the appointment date verbatim, weekly keys are the ISO date of the
// Sunday on or before the appointment date, monthly keys are YYYY-MM.
// Revenue per appointment comes from the service map's unit price; an
// unknown service contributes zero.
func GroupByTimePeriod(appointments []Appointment, granularity Granularity, services ServiceMap) map[string]PeriodStats {
	grouped := make(map[string]PeriodStats)
	for _, appt := range appointments {
		key := periodKey(appt.Date, granularity)
		stats := grouped[key]
		stats.Appointments++
		stats.Revenue += services[appt.ServiceID].Price
		grouped[key] = stats
	}
	return grouped
}

func periodKey(date string, granularity Granularity) string {
	switch granularity {
	case Weekly:
		d, err := time.Parse(dateLayout, date)
		if err != nil {
			return date
		}
		return d.AddDate(0, 0, -int(d.Weekday())).Format(dateLayout)
	case Monthly:
		if len(date) >= 7 {
			return date[:7]
		}
		return date
	default:
		return date
	}
}

// CalculateOverallMetrics totals the collection. The average is zero for
// an empty collection.
func CalculateOverallMetrics(appointments []Appointment, services ServiceMap) OverallMetrics {
	m := OverallMetrics{TotalAppointments: len(appointments)}
	for _, appt := range appointments {
		m.TotalRevenue += services[appt.ServiceID].Price
	}
	if m.TotalAppointments > 0 {
		m.AverageRevenuePerAppointment = m.TotalRevenue / float64(m.TotalAppointments)
	}
	return m
}

// CalculateGrowth compares the first and last period by sorted key.
// Returns nil when fewer than two periods exist, or when either baseline
// value is zero (the ratio is undefined there, so no number is reported).
func CalculateGrowth(grouped map[string]PeriodStats) *Growth {
	if len(grouped) < 2 {
		return nil
	}
	keys := make([]string, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	first := grouped[keys[0]]
	last := grouped[keys[len(keys)-1]]
	if first.Appointments == 0 || first.Revenue == 0 {
		return nil
	}
	return &Growth{
		Appointments: float64(last.Appointments-first.Appointments) / float64(first.Appointments),
		Revenue:      (last.Revenue - first.Revenue) / first.Revenue,
	}
}

// CalculateTopServices ranks services by appointment count, descending,
// truncated to five. Ties keep first-appearance order (stable sort).
// Revenue is count times the current unit price.
func CalculateTopServices(appointments []Appointment, services ServiceMap) []ServiceRanking {
	counts := make(map[uuid.UUID]int)
	var order []uuid.UUID
	for _, appt := range appointments {
		if _, seen := counts[appt.ServiceID]; !seen {
			order = append(order, appt.ServiceID)
		}
		counts[appt.ServiceID]++
	}

	ranked := make([]ServiceRanking, 0, len(order))
	for _, id := range order {
		name := services[id].Name
		if name == "" {
			name = "Unknown"
		}
		ranked = append(ranked, ServiceRanking{
			ServiceID: id,
			Name:      name,
			Count:     counts[id],
			Revenue:   float64(counts[id]) * services[id].Price,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > 5 {
		ranked = ranked[:5]
	}
	return ranked
}

// CalculateCustomerRetention compares the unique customer sets of the
// current and previous windows. Retention is |intersection| / |previous|,
// zero when the previous window had no customers.
func CalculateCustomerRetention(current, previous []uuid.UUID) Retention {
	prevSet := make(map[uuid.UUID]struct{}, len(previous))
	for _, id := range previous {
		prevSet[id] = struct{}{}
	}
	curSet := make(map[uuid.UUID]struct{}, len(current))
	for _, id := range current {
		curSet[id] = struct{}{}
	}

	var retained, newCount int
	for id := range curSet {
		if _, ok := prevSet[id]; ok {
			retained++
		} else {
			newCount++
		}
	}
	var lost int
	for id := range prevSet {
		if _, ok := curSet[id]; !ok {
			lost++
		}
	}

	r := Retention{NewCustomers: newCount, LostCustomers: lost}
	if len(prevSet) > 0 {
		r.RetentionRate = float64(retained) / float64(len(prevSet))
	}
	return r
}

// CalculateCustomerLifetimeValue projects annualized revenue from a
// customer's full appointment history. A single-appointment history has
// a zero-day observed lifespan; the projection treats that as a one-day
// span instead of dividing by zero.
func CalculateCustomerLifetimeValue(appointments []Appointment, services ServiceMap) LifetimeValue {
	ltv := LifetimeValue{TotalAppointments: len(appointments)}
	if len(appointments) == 0 {
		return ltv
	}

	first, last := appointments[0].Date, appointments[0].Date
	for _, appt := range appointments {
		ltv.TotalRevenue += services[appt.ServiceID].Price
		if appt.Date < first {
			first = appt.Date
		}
		if appt.Date > last {
			last = appt.Date
		}
	}
	ltv.AverageRevenuePerAppointment = ltv.TotalRevenue / float64(len(appointments))
	ltv.CustomerLifespanDays = lifespanDays(first, last)

	span := ltv.CustomerLifespanDays
	if span < 1 {
		span = 1
	}
	ltv.LifetimeValue = ltv.TotalRevenue * (365 / span)
	return ltv
}

func lifespanDays(first, last string) float64 {
	a, errA := time.Parse(dateLayout, first)
	b, errB := time.Parse(dateLayout, last)
	if errA != nil || errB != nil {
		return 0
	}
	return b.Sub(a).Hours() / 24
}

// CalculateCustomerSegmentation buckets customers by visit count:
// exactly one appointment is new, two through four is returning, five or
// more is frequent.
func CalculateCustomerSegmentation(appointments []Appointment) Segmentation {
	counts := make(map[uuid.UUID]int)
	for _, appt := range appointments {
		counts[appt.CustomerID]++
	}

	var seg Segmentation
	for _, n := range counts {
		switch {
		case n == 1:
			seg.NewCustomers++
		case n < 5:
			seg.ReturningCustomers++
		default:
			seg.FrequentCustomers++
		}
	}
	return seg
}

// CalculateDetailerPerformance sums appointment counts and stored price
// snapshots per detailer. Revenue deliberately uses the booked price, not
// the current catalog price. Only detailers present in the names list are
// reported, in that list's order.
func CalculateDetailerPerformance(appointments []Appointment, detailers []DetailerName) []DetailerPerformance {
	type stats struct {
		appointments int
		revenue      float64
	}
	byDetailer := make(map[uuid.UUID]stats)
	for _, appt := range appointments {
		s := byDetailer[appt.DetailerID]
		s.appointments++
		s.revenue += appt.Price
		byDetailer[appt.DetailerID] = s
	}

	perf := make([]DetailerPerformance, 0, len(detailers))
	for _, d := range detailers {
		s, ok := byDetailer[d.ID]
		if !ok {
			continue
		}
		perf = append(perf, DetailerPerformance{
			DetailerID:   d.ID,
			Name:         d.Name,
			Appointments: s.appointments,
			Revenue:      s.revenue,
		})
	}
	return perf
}

// UniqueCustomers returns the distinct customer IDs of a collection.
func UniqueCustomers(appointments []Appointment) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(appointments))
	var ids []uuid.UUID
	for _, appt := range appointments {
		if _, ok := seen[appt.CustomerID]; ok {
			continue
		}
		seen[appt.CustomerID] = struct{}{}
		ids = append(ids, appt.CustomerID)
	}
	return ids
}
