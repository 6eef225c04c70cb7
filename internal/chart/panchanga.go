package chart

import (
	"math"
	"time"

	"github.com/desimealsnow/auspicious-time/internal/ephemeris"
)

// Panchanga holds the five classical calendar elements for an instant,
// each with the fractional progress through its current division.
type Panchanga struct {
	Tithi     int     `json:"tithi"`     // 1..30, lunar day
	Nakshatra int     `json:"nakshatra"` // 1..27, lunar mansion
	Yoga      int     `json:"yoga"`      // 1..27
	Karana    int     `json:"karana"`    // 1..60 half-tithi
	Hora      int     `json:"hora"`      // 1..24, solar division
	Weekday   int     `json:"weekday"`   // 0=Sunday .. 6=Saturday

	TithiFraction     float64 `json:"tithiFraction"`
	NakshatraFraction float64 `json:"nakshatraFraction"`
	YogaFraction      float64 `json:"yogaFraction"`
	KaranaFraction    float64 `json:"karanaFraction"`
	HoraFraction      float64 `json:"horaFraction"`
	WeekdayFraction   float64 `json:"weekdayFraction"`

	NakshatraName string `json:"nakshatraName"`
}

var nakshatraNames = [27]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni",
	"Uttara Phalguni", "Hasta", "Chitra", "Swati", "Vishakha", "Anuradha",
	"Jyeshtha", "Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana",
	"Dhanishta", "Shatabhisha", "Purva Bhadrapada", "Uttara Bhadrapada",
	"Revati",
}

// NakshatraName returns the traditional name for a nakshatra index.
func NakshatraName(n int) string {
	if n < 1 || n > 27 {
		return ""
	}
	return nakshatraNames[n-1]
}

const arcNakshatra = 360.0 / 27

// computePanchanga derives the calendar elements from the solar and
// lunar longitudes.
func computePanchanga(sunLon, moonLon float64, instant time.Time) Panchanga {
	elong := ephemeris.NormalizeDegrees(moonLon - sunLon)

	tithiRaw := elong / 12
	nakshatraRaw := moonLon / arcNakshatra
	yogaRaw := ephemeris.NormalizeDegrees(sunLon+moonLon) / arcNakshatra
	karanaRaw := elong / 6
	horaRaw := sunLon / 15

	nakshatra := int(nakshatraRaw) + 1
	if nakshatra > 27 {
		nakshatra = 27
	}

	u := instant.UTC()
	secondOfDay := float64(u.Hour()*3600 + u.Minute()*60 + u.Second())

	return Panchanga{
		Tithi:     int(tithiRaw) + 1,
		Nakshatra: nakshatra,
		Yoga:      int(yogaRaw) + 1,
		Karana:    int(karanaRaw) + 1,
		Hora:      int(horaRaw) + 1,
		Weekday:   int(u.Weekday()),

		TithiFraction:     frac(tithiRaw),
		NakshatraFraction: frac(nakshatraRaw),
		YogaFraction:      frac(yogaRaw),
		KaranaFraction:    frac(karanaRaw),
		HoraFraction:      frac(horaRaw),
		WeekdayFraction:   secondOfDay / 86400,

		NakshatraName: NakshatraName(nakshatra),
	}
}

func frac(x float64) float64 {
	return x - math.Floor(x)
}
