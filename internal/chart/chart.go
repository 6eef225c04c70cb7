// Package chart builds event and natal charts from ephemeris positions.
package chart

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/desimealsnow/auspicious-time/internal/ephemeris"
)

// Dignity classifies a planet's essential dignity in its sign.
type Dignity string

const (
	DignityOwn        Dignity = "own"
	DignityExaltation Dignity = "exaltation"
	DignityFall       Dignity = "fall"
	DignityDetriment  Dignity = "detriment"
	DignityNeutral    Dignity = "neutral"
)

// PlanetPosition is one body's placement in a chart.
type PlanetPosition struct {
	Body       ephemeris.Body `json:"-"`
	Name       string         `json:"name"`
	Longitude  float64        `json:"longitude"`
	Latitude   float64        `json:"latitude"`
	Speed      float64        `json:"speed"`
	Sign       int            `json:"sign"`      // 1..12
	Nakshatra  int            `json:"nakshatra"` // 1..27
	Dignity    Dignity        `json:"dignity"`
	Retrograde bool           `json:"retrograde"`
	Defaulted  bool           `json:"-"` // true when the body fell back to the neutral position
}

// Chart holds all positions and the panchanga for one instant and place.
type Chart struct {
	Instant   time.Time
	JulianDay float64
	Lat       float64
	Lon       float64
	Planets   map[ephemeris.Body]PlanetPosition
	Panchanga Panchanga
	Angles    *Angles // nil when location is unknown
}

// Position returns the placement of a body. The builder guarantees an
// entry for every supported body.
func (c *Chart) Position(b ephemeris.Body) PlanetPosition {
	return c.Planets[b]
}

// Builder constructs charts from an ephemeris oracle.
type Builder struct {
	oracle ephemeris.Oracle
	log    zerolog.Logger
}

// NewBuilder creates a chart builder.
func NewBuilder(oracle ephemeris.Oracle, log zerolog.Logger) *Builder {
	return &Builder{
		oracle: oracle,
		log:    log.With().Str("component", "chart").Logger(),
	}
}

// Build computes a full chart for an instant and location.
//
// Failures for the Sun or Moon abort the chart: the panchanga and most
// calculators are meaningless without the luminaries. Any other body
// degrades to a neutral placeholder position and is flagged Defaulted.
func (b *Builder) Build(instant time.Time, lat, lon float64) (*Chart, error) {
	jd := ephemeris.JulianDay(instant)

	planets := make(map[ephemeris.Body]PlanetPosition, len(ephemeris.Bodies))
	for _, body := range ephemeris.Bodies {
		pos, err := b.oracle.Calc(jd, body)
		if err != nil {
			if body == ephemeris.Sun || body == ephemeris.Moon {
				return nil, err
			}
			b.log.Warn().
				Err(err).
				Str("body", body.String()).
				Time("instant", instant).
				Msg("Body calculation failed, using neutral position")
			planets[body] = neutralPosition(body)
			continue
		}
		planets[body] = newPlanetPosition(body, pos)
	}

	sunLon := planets[ephemeris.Sun].Longitude
	moonLon := planets[ephemeris.Moon].Longitude

	return &Chart{
		Instant:   instant,
		JulianDay: jd,
		Lat:       lat,
		Lon:       lon,
		Planets:   planets,
		Panchanga: computePanchanga(sunLon, moonLon, instant),
		Angles:    computeAngles(jd, lat, lon),
	}, nil
}

// IsEphemerisError reports whether err came from the ephemeris oracle.
func IsEphemerisError(err error) bool {
	var ephErr *ephemeris.Error
	return errors.As(err, &ephErr)
}

func newPlanetPosition(body ephemeris.Body, pos ephemeris.Position) PlanetPosition {
	sign := int(pos.Longitude/30) + 1
	return PlanetPosition{
		Body:       body,
		Name:       body.String(),
		Longitude:  pos.Longitude,
		Latitude:   pos.Latitude,
		Speed:      pos.Speed,
		Sign:       sign,
		Nakshatra:  NakshatraOf(pos.Longitude),
		Dignity:    dignityOf(body, sign),
		Retrograde: pos.Retrograde(),
	}
}

func neutralPosition(body ephemeris.Body) PlanetPosition {
	return PlanetPosition{
		Body:      body,
		Name:      body.String(),
		Sign:      1,
		Nakshatra: 1,
		Dignity:   DignityNeutral,
		Defaulted: true,
	}
}

// NakshatraOf maps an ecliptic longitude to its nakshatra, 1..27.
func NakshatraOf(lon float64) int {
	n := int(ephemeris.NormalizeDegrees(lon)/(360.0/27)) + 1
	if n > 27 {
		n = 27
	}
	return n
}
