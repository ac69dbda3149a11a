package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/zephyr/internal/domain"
)

func TestSimulatedClock_TodayUsesStartZone(t *testing.T) {
	riga, err := time.LoadLocation("Europe/Riga")
	require.NoError(t, err)

	// 23:30 UTC on the 1st is already the 2nd in Riga
	start := time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC).In(riga)
	c := NewSimulatedClock(start)

	assert.Equal(t, domain.NewDay(2024, 3, 2), c.Today())
}

func TestSimulatedClock_Advance(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewSimulatedClock(start)

	c.AdvanceDays(2)
	assert.Equal(t, domain.NewDay(2024, 3, 3), c.Today())

	c.Advance(13 * time.Hour)
	assert.Equal(t, domain.NewDay(2024, 3, 4), c.Today())
	assert.Equal(t, start.Add(61*time.Hour), c.Now())
}

func TestRealClock_DefaultsToUTC(t *testing.T) {
	c := NewRealClock(nil)
	assert.Equal(t, time.UTC, c.Location())
	assert.Equal(t, domain.DayOf(time.Now().UTC()), c.Today())
}

func TestLoadLocation(t *testing.T) {
	loc, err := LoadLocation("")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	_, err = LoadLocation("Not/AZone")
	assert.Error(t, err)
}
