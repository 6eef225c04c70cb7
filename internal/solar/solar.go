// Package solar provides sunrise and sunset arithmetic. The math is
// the standard sunrise-equation approximation with atmospheric
// refraction at -0.833 degrees; good to a minute or two, which is all
// the day-window calculations need.
package solar

import (
	"math"
	"time"
)

const (
	deg   = math.Pi / 180
	j2000 = 2451545.0
	// Altitude of the solar disc center at rise/set, degrees
	riseSetAltitude = -0.833
)

// Times holds the sunrise and sunset instants for one civil date.
type Times struct {
	Sunrise time.Time
	Sunset  time.Time
}

// SunriseSunset computes sunrise and sunset for the civil date of t
// (evaluated in t's location) at the given coordinates. The second
// return is false during polar day or polar night, when the sun never
// crosses the horizon; absence is a valid condition, not an error.
func SunriseSunset(t time.Time, lat, lon float64) (Times, bool) {
	// Midnight UTC of the civil date
	y, m, d := t.Date()
	date0 := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	j := julian(date0)

	// West longitude drives the mean solar time approximation
	lw := -lon
	n := math.Round(j - j2000 - lw/360)

	jStar := j2000 + lw/360 + n
	ma := meanAnomaly(jStar - j2000)
	l := eclipticLongitude(ma)
	jTransit := jStar + 0.0053*math.Sin(ma) - 0.0069*math.Sin(2*l)

	dec := declination(l)
	w0, crosses := hourAngle(lat, dec)
	if !crosses {
		return Times{}, false
	}

	return Times{
		Sunrise: fromJulian(jTransit - w0/(2*math.Pi)),
		Sunset:  fromJulian(jTransit + w0/(2*math.Pi)),
	}, true
}

func julian(t time.Time) float64 {
	return float64(t.Unix())/86400 + 2440587.5
}

func fromJulian(jd float64) time.Time {
	return time.Unix(int64((jd-2440587.5)*86400+0.5), 0).UTC()
}

func meanAnomaly(n float64) float64 {
	return math.Mod(357.5291+0.98560028*n, 360) * deg
}

func eclipticLongitude(ma float64) float64 {
	c := (1.9148*math.Sin(ma) + 0.0200*math.Sin(2*ma) + 0.0003*math.Sin(3*ma)) * deg
	perihelion := 102.9372 * deg
	return math.Mod(ma+c+perihelion+math.Pi, 2*math.Pi)
}

func declination(l float64) float64 {
	obliquity := 23.44 * deg
	return math.Asin(math.Sin(obliquity) * math.Sin(l))
}

// hourAngle returns the half-arc of daylight in radians. crosses is
// false when the sun stays entirely above or below the horizon.
func hourAngle(lat, dec float64) (w float64, crosses bool) {
	h0 := riseSetAltitude * deg
	num := math.Sin(h0) - math.Sin(lat*deg)*math.Sin(dec)
	den := math.Cos(lat*deg) * math.Cos(dec)
	x := num / den
	if x <= -1 || x >= 1 {
		return 0, false
	}
	return math.Acos(x), true
}
