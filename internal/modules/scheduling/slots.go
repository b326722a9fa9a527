package scheduling

import "time"

const clockLayout = "15:04"

// AvailableSlots returns the HH:MM start times within [open, close) where
// a booking of length step would fit and no existing booking starts.
// Slots step forward by step from the opening time; a slot whose booking
// would run past close is excluded. Malformed inputs yield no slots.
func AvailableSlots(open, close string, step time.Duration, booked []string) []string {
	if step <= 0 {
		return nil
	}
	start, err := time.Parse(clockLayout, open)
	if err != nil {
		return nil
	}
	end, err := time.Parse(clockLayout, close)
	if err != nil || !end.After(start) {
		return nil
	}

	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		taken[b] = struct{}{}
	}

	var slots []string
	for t := start; !t.Add(step).After(end); t = t.Add(step) {
		slot := t.Format(clockLayout)
		if _, ok := taken[slot]; ok {
			continue
		}
		slots = append(slots, slot)
	}
	return slots
}
