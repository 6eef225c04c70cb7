package ephemeris

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDegrees(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"already normalized", 123.4, 123.4},
		{"negative wraps up", -30, 330},
		{"above full circle", 370, 10},
		{"multiple turns", 725, 5},
		{"negative turns", -725, 355},
		{"zero", 0, 0},
		{"exactly 360", 360, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, NormalizeDegrees(tt.input), 1e-9)
		})
	}
}

func TestJulianDay(t *testing.T) {
	// J2000.0 epoch: 2000-01-01 12:00 UT
	epoch := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.InDelta(t, 2451545.0, JulianDay(epoch), 1e-6)

	// Known value: 1987-04-10 00:00 UT = JD 2446895.5
	d := time.Date(1987, 4, 10, 0, 0, 0, 0, time.UTC)
	assert.InDelta(t, 2446895.5, JulianDay(d), 1e-6)
}

func TestJulianDayRoundTrip(t *testing.T) {
	orig := time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)
	jd := JulianDay(orig)
	back := FromJulianDay(jd)
	assert.WithinDuration(t, orig, back, time.Second)
}

func TestAnalyticOracleSunNearEquinox(t *testing.T) {
	oracle, err := NewOracle(Config{}, zerolog.Nop())
	require.NoError(t, err)

	// Tropical solar longitude crosses 0 at the March equinox
	jd := JulianDay(time.Date(2024, 3, 20, 3, 6, 0, 0, time.UTC))
	pos, err := oracle.Calc(jd, Sun)
	require.NoError(t, err)

	// Within half a degree of 0/360
	dist := math.Min(pos.Longitude, 360-pos.Longitude)
	assert.Less(t, dist, 0.5)
	assert.Greater(t, pos.Speed, 0.9)
	assert.Less(t, pos.Speed, 1.1)
}

func TestAnalyticOracleMoonMotion(t *testing.T) {
	oracle, err := NewOracle(Config{}, zerolog.Nop())
	require.NoError(t, err)

	jd := JulianDay(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
	pos, err := oracle.Calc(jd, Moon)
	require.NoError(t, err)

	// Mean lunar motion is ~13.2 deg/day, always direct
	assert.Greater(t, pos.Speed, 11.0)
	assert.Less(t, pos.Speed, 15.5)
	assert.GreaterOrEqual(t, pos.Longitude, 0.0)
	assert.Less(t, pos.Longitude, 360.0)
}

func TestAnalyticOracleAllBodiesFinite(t *testing.T) {
	oracle, err := NewOracle(Config{SiderealMode: "lahiri"}, zerolog.Nop())
	require.NoError(t, err)

	jd := JulianDay(time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC))
	for _, body := range Bodies {
		pos, err := oracle.Calc(jd, body)
		require.NoError(t, err, "body %s", body)
		assert.GreaterOrEqual(t, pos.Longitude, 0.0, "body %s", body)
		assert.Less(t, pos.Longitude, 360.0, "body %s", body)
		assert.False(t, math.IsNaN(pos.Speed), "body %s", body)
	}
}

func TestSiderealOffset(t *testing.T) {
	tropical, err := NewOracle(Config{}, zerolog.Nop())
	require.NoError(t, err)
	sidereal, err := NewOracle(Config{SiderealMode: "lahiri"}, zerolog.Nop())
	require.NoError(t, err)

	jd := JulianDay(time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC))
	tp, err := tropical.Calc(jd, Sun)
	require.NoError(t, err)
	sp, err := sidereal.Calc(jd, Sun)
	require.NoError(t, err)

	diff := NormalizeDegrees(tp.Longitude - sp.Longitude)
	ay := sidereal.Ayanamsha(jd)
	assert.InDelta(t, ay, diff, 0.01)
	assert.InDelta(t, 24.2, ay, 0.5)
}

type failingOracle struct{}

func (f *failingOracle) Calc(jd float64, body Body) (Position, error) {
	if body == Moon {
		return Position{Longitude: math.NaN()}, nil
	}
	return Position{}, errors.New("backend exploded")
}

func (f *failingOracle) Ayanamsha(jd float64) float64 { return 0 }

func TestStrictOracleRejectsBadBackends(t *testing.T) {
	strict := &strictOracle{inner: &failingOracle{}}

	_, err := strict.Calc(2451545.0, Moon)
	require.Error(t, err)
	var ephErr *Error
	assert.True(t, errors.As(err, &ephErr))
	assert.Equal(t, Moon, ephErr.Body)

	_, err = strict.Calc(2451545.0, Sun)
	require.Error(t, err)
	assert.True(t, errors.As(err, &ephErr))
}

func TestRetrogradeFlag(t *testing.T) {
	assert.True(t, Position{Speed: -0.5}.Retrograde())
	assert.False(t, Position{Speed: 0.3}.Retrograde())
	assert.False(t, Position{Speed: 0}.Retrograde())
}
