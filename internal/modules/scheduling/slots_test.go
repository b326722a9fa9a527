package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAvailableSlotsFullDay(t *testing.T) {
	slots := AvailableSlots("09:00", "11:00", 30*time.Minute, nil)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, slots)
}

func TestAvailableSlotsSkipsBooked(t *testing.T) {
	slots := AvailableSlots("09:00", "11:00", 30*time.Minute, []string{"09:30", "10:30"})
	assert.Equal(t, []string{"09:00", "10:00"}, slots)
}

func TestAvailableSlotsRespectsClosingTime(t *testing.T) {
	// 10:00 would run until 10:30, past closing.
	slots := AvailableSlots("09:00", "10:15", 30*time.Minute, nil)
	assert.Equal(t, []string{"09:00", "09:30"}, slots)
}

func TestAvailableSlotsStepLongerThanWindow(t *testing.T) {
	slots := AvailableSlots("09:00", "09:30", time.Hour, nil)
	assert.Empty(t, slots)
}

func TestAvailableSlotsMalformedInput(t *testing.T) {
	assert.Nil(t, AvailableSlots("9am", "11:00", 30*time.Minute, nil))
	assert.Nil(t, AvailableSlots("09:00", "late", 30*time.Minute, nil))
	assert.Nil(t, AvailableSlots("11:00", "09:00", 30*time.Minute, nil))
	assert.Nil(t, AvailableSlots("09:00", "11:00", 0, nil))
}
