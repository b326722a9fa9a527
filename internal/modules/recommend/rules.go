package recommend

import (
	"encoding/json"
	"time"

	"github.com/detailflowhq/detailflow/internal/modules/customers"
)

// fullDetailingAfter is how long a vehicle may go unserviced before a
// basic wash stops being enough.
const fullDetailingAfter = 90 * 24 * time.Hour

const (
	recFullDetailing   = "Full Detailing"
	recBasicWash       = "Basic Wash"
	recPaintProtection = "Paint Protection"
)

// RuleRecommendations derives service suggestions from when the vehicle
// was last serviced and what the latest visit already recommended.
// history must be ordered newest first.
func RuleRecommendations(lastService *string, history []customers.ServiceHistory, now time.Time) []string {
	var recs []string

	overdue := true
	if lastService != nil {
		if last, err := time.Parse("2006-01-02", *lastService); err == nil {
			overdue = now.Sub(last) > fullDetailingAfter
		}
	}
	if overdue {
		recs = append(recs, recFullDetailing)
	} else {
		recs = append(recs, recBasicWash)
	}

	if len(history) > 0 && !includesPaintProtection(history[0]) {
		recs = append(recs, recPaintProtection)
	}
	return recs
}

func includesPaintProtection(h customers.ServiceHistory) bool {
	var given []string
	if err := json.Unmarshal(h.Recommendations, &given); err != nil {
		return false
	}
	for _, r := range given {
		if r == recPaintProtection {
			return true
		}
	}
	return false
}
