// Package windows computes the traditional day windows (Rahu Kalam,
// Yamaganda, Gulika Kalam, Abhijit) from sunrise and sunset.
package windows

import (
	"time"

	"github.com/desimealsnow/auspicious-time/internal/solar"
)

// Window is a labeled time range within one civil day.
type Window struct {
	Name  string    `json:"name"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the window, start inclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// DayWindows holds all traditional windows for one date and place.
type DayWindows struct {
	RahuKalam   Window  `json:"rahuKalam"`
	Yamaganda   Window  `json:"yamaganda"`
	GulikaKalam Window  `json:"gulikaKalam"`
	Abhijit     *Window `json:"abhijit,omitempty"` // nil when daytime is degenerate
}

// Daytime segment index (1..8) per weekday, Sunday first.
var (
	rahuSegments      = [7]int{8, 2, 7, 5, 6, 4, 3}
	yamagandaSegments = [7]int{5, 4, 3, 2, 1, 7, 6}
	gulikaSegments    = [7]int{7, 1, 6, 4, 5, 3, 2}
)

// Compute derives the day windows for the civil date of t at the given
// coordinates. Returns false during polar day or night, when the
// segments are undefined.
func Compute(t time.Time, lat, lon float64) (*DayWindows, bool) {
	st, ok := solar.SunriseSunset(t, lat, lon)
	if !ok {
		return nil, false
	}
	return fromSunTimes(st, lon), true
}

// fromSunTimes builds the windows from the sun times. The weekday
// comes from the mean local solar date of the sunrise, not from the
// zone of the query instant: a UTC query made near local midnight far
// east or west would otherwise pick the wrong segment row.
func fromSunTimes(st solar.Times, lon float64) *DayWindows {
	wd := int(localCivilDay(st.Sunrise, lon).Weekday())
	dayLen := st.Sunset.Sub(st.Sunrise)

	segment := func(idx int) Window {
		if idx < 1 {
			idx = 1
		}
		if idx > 8 {
			idx = 8
		}
		start := st.Sunrise.Add(time.Duration(idx-1) * dayLen / 8)
		return Window{Start: start, End: start.Add(dayLen / 8)}
	}

	rahu := segment(rahuSegments[wd])
	rahu.Name = "rahu_kalam"
	yama := segment(yamagandaSegments[wd])
	yama.Name = "yamaganda"
	gulika := segment(gulikaSegments[wd])
	gulika.Name = "gulika_kalam"

	dw := &DayWindows{
		RahuKalam:   rahu,
		Yamaganda:   yama,
		GulikaKalam: gulika,
	}

	if dayLen > 0 {
		// Abhijit muhurta: one fifteenth of daytime centered on solar noon
		muhurta := dayLen / 15
		noon := st.Sunrise.Add(dayLen / 2)
		dw.Abhijit = &Window{
			Name:  "abhijit",
			Start: noon.Add(-muhurta / 2),
			End:   noon.Add(muhurta / 2),
		}
	}

	return dw
}

// localCivilDay shifts t to mean local solar time, four minutes per
// degree of longitude.
func localCivilDay(t time.Time, lon float64) time.Time {
	return t.UTC().Add(time.Duration(lon * 4 * float64(time.Minute)))
}
