package ephemeris

import "time"

// J2000 is the Julian Day of the J2000.0 epoch.
const J2000 = 2451545.0

// JulianDay converts a time to a Julian Day in Universal Time.
func JulianDay(t time.Time) float64 {
	u := t.UTC()
	y := u.Year()
	m := int(u.Month())
	if m <= 2 {
		y--
		m += 12
	}
	a := y / 100
	b := 2 - a + a/4

	day := float64(u.Day()) +
		(float64(u.Hour())+float64(u.Minute())/60+float64(u.Second())/3600+
			float64(u.Nanosecond())/3.6e12)/24

	return float64(int(365.25*float64(y+4716))) +
		float64(int(30.6001*float64(m+1))) +
		day + float64(b) - 1524.5
}

// FromJulianDay converts a Julian Day back to UTC time, truncated to
// the nearest second.
func FromJulianDay(jd float64) time.Time {
	secs := (jd - 2440587.5) * 86400
	return time.Unix(int64(secs+0.5), 0).UTC()
}
