package windows

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desimealsnow/auspicious-time/internal/solar"
)

func fixedSunTimes(t *testing.T) solar.Times {
	t.Helper()
	// Monday with sunrise 06:00 and sunset 18:00 UTC
	return solar.Times{
		Sunrise: time.Date(2025, 6, 2, 6, 0, 0, 0, time.UTC),
		Sunset:  time.Date(2025, 6, 2, 18, 0, 0, 0, time.UTC),
	}
}

func TestDayWindowSegments(t *testing.T) {
	st := fixedSunTimes(t)
	dw := fromSunTimes(st, 0)

	// Monday: rahu segment 2, yamaganda 4, gulika 1; each 90 minutes
	assert.Equal(t, time.Date(2025, 6, 2, 7, 30, 0, 0, time.UTC), dw.RahuKalam.Start)
	assert.Equal(t, time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), dw.RahuKalam.End)

	assert.Equal(t, time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC), dw.Yamaganda.Start)
	assert.Equal(t, time.Date(2025, 6, 2, 6, 0, 0, 0, time.UTC), dw.GulikaKalam.Start)
}

func TestWeekdayFromLocalSolarDate(t *testing.T) {
	// New Zealand longitude: sunrise 2025-06-01 18:00 UTC is already
	// Monday morning local. The Monday row applies, not Sunday's.
	st := solar.Times{
		Sunrise: time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC),
		Sunset:  time.Date(2025, 6, 2, 6, 0, 0, 0, time.UTC),
	}
	dw := fromSunTimes(st, 174.76)

	// Monday rahu segment 2 of a 12h day starts 90 minutes after sunrise
	assert.Equal(t, time.Date(2025, 6, 1, 19, 30, 0, 0, time.UTC), dw.RahuKalam.Start)
	assert.Equal(t, time.Date(2025, 6, 1, 21, 0, 0, 0, time.UTC), dw.RahuKalam.End)
}

func TestAbhijitCenteredOnSolarNoon(t *testing.T) {
	st := fixedSunTimes(t)
	dw := fromSunTimes(st, 0)

	require.NotNil(t, dw.Abhijit)
	// 12h day: muhurta is 48 minutes centered on 12:00
	assert.Equal(t, time.Date(2025, 6, 2, 11, 36, 0, 0, time.UTC), dw.Abhijit.Start)
	assert.Equal(t, time.Date(2025, 6, 2, 12, 24, 0, 0, time.UTC), dw.Abhijit.End)
}

func TestWindowContains(t *testing.T) {
	w := Window{
		Start: time.Date(2025, 6, 2, 7, 30, 0, 0, time.UTC),
		End:   time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
	}
	assert.True(t, w.Contains(time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)))
	assert.True(t, w.Contains(w.Start))
	assert.False(t, w.Contains(w.End))
	assert.False(t, w.Contains(time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)))
}

func TestComputePolarAbsence(t *testing.T) {
	d := time.Date(2025, 12, 21, 12, 0, 0, 0, time.UTC)
	dw, ok := Compute(d, 78.22, 15.65)
	assert.False(t, ok)
	assert.Nil(t, dw)
}

func TestComputeRealLocation(t *testing.T) {
	d := time.Date(2025, 3, 21, 12, 0, 0, 0, time.UTC)
	dw, ok := Compute(d, 28.6139, 77.2090)
	require.True(t, ok)
	assert.True(t, dw.RahuKalam.Start.Before(dw.RahuKalam.End))
	assert.NotNil(t, dw.Abhijit)
}
