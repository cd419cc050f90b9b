package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileMergeKeepsUntouchedFields(t *testing.T) {
	base := Profile{"age": 30, "goal": "strength"}
	merged := base.Merge(Profile{"goal": "endurance"})

	assert.Equal(t, "endurance", merged["goal"])
	assert.Equal(t, 30, merged["age"])
	// The original is untouched.
	assert.Equal(t, "strength", base["goal"])
}

func TestProfileCloneNil(t *testing.T) {
	var p Profile
	clone := p.Clone()
	assert.NotNil(t, clone)
	assert.Empty(t, clone)
}

func TestMicroPlanEqual(t *testing.T) {
	a := MicroPlan{"Monday": {Type: WorkoutStrength, Duration: "45 minutes"}}
	b := a.Clone()
	assert.True(t, a.Equal(b))

	b["Monday"] = DailyWorkout{Type: WorkoutCardio, Duration: "30 minutes"}
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(MicroPlan{}))
}

func TestAvailableDaysOrderedMondayFirst(t *testing.T) {
	avail := Availability{
		"Sunday": {Available: true},
		"Monday": {Available: true},
		"Friday": {Available: false},
	}
	assert.Equal(t, []string{"Monday", "Sunday"}, avail.AvailableDays())
}

func TestNormalizeWeekday(t *testing.T) {
	name, ok := NormalizeWeekday(" wednesday ")
	assert.True(t, ok)
	assert.Equal(t, "Wednesday", name)

	_, ok = NormalizeWeekday("Blursday")
	assert.False(t, ok)
}

func TestIsWeekday(t *testing.T) {
	assert.True(t, IsWeekday("Tuesday"))
	assert.False(t, IsWeekday("tuesday"))
}
