package chart

import (
	"math"

	"github.com/desimealsnow/auspicious-time/internal/ephemeris"
)

// Angles holds the chart angles and equal-house cusps.
type Angles struct {
	Ascendant float64     `json:"ascendant"`
	MC        float64     `json:"mc"`
	Cusps     [12]float64 `json:"cusps"` // equal houses from the ascendant
}

// HouseOf returns the house (1..12) containing a longitude.
func (a *Angles) HouseOf(lon float64) int {
	offset := ephemeris.NormalizeDegrees(lon - a.Ascendant)
	return int(offset/30) + 1
}

// computeAngles derives the ascendant and midheaven from local
// sidereal time and builds equal-house cusps.
func computeAngles(jd, lat, lon float64) *Angles {
	// Obliquity of the ecliptic
	t := jd - ephemeris.J2000
	eps := 23.4393 - 3.563e-7*t

	// Greenwich mean sidereal time, then local (east longitudes positive)
	gmst := ephemeris.NormalizeDegrees(280.46061837 + 360.98564736629*t)
	ramc := ephemeris.NormalizeDegrees(gmst + lon)

	epsRad := radians(eps)
	ramcRad := radians(ramc)
	latRad := radians(lat)

	asc := math.Atan2(
		math.Cos(ramcRad),
		-(math.Sin(ramcRad)*math.Cos(epsRad) + math.Tan(latRad)*math.Sin(epsRad)),
	)
	mc := math.Atan2(math.Sin(ramcRad), math.Cos(ramcRad)*math.Cos(epsRad))

	angles := &Angles{
		Ascendant: ephemeris.NormalizeDegrees(degrees(asc)),
		MC:        ephemeris.NormalizeDegrees(degrees(mc)),
	}
	for i := range angles.Cusps {
		angles.Cusps[i] = ephemeris.NormalizeDegrees(angles.Ascendant + float64(i)*30)
	}
	return angles
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }
