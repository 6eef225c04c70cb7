// Package ephemeris provides planetary position calculation behind a
// single oracle boundary. All consumers receive normalized positions;
// raw backend quirks never leak past this package.
package ephemeris

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"
)

// Body identifies a celestial body.
type Body int

const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
)

// String returns the body name.
func (b Body) String() string {
	switch b {
	case Sun:
		return "Sun"
	case Moon:
		return "Moon"
	case Mercury:
		return "Mercury"
	case Venus:
		return "Venus"
	case Mars:
		return "Mars"
	case Jupiter:
		return "Jupiter"
	case Saturn:
		return "Saturn"
	}
	return fmt.Sprintf("Body(%d)", int(b))
}

// Bodies lists all supported bodies in calculation order.
var Bodies = []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn}

// Position is the normalized output of any oracle backend.
// Longitude is ecliptic longitude in degrees [0, 360), Latitude is
// ecliptic latitude in degrees, Speed is degrees per day (negative
// while retrograde).
type Position struct {
	Longitude float64
	Latitude  float64
	Speed     float64
}

// Retrograde reports whether the body is in apparent retrograde motion.
func (p Position) Retrograde() bool {
	return p.Speed < 0
}

// Oracle computes positions for a Julian Day in Universal Time.
type Oracle interface {
	Calc(jd float64, body Body) (Position, error)
	Ayanamsha(jd float64) float64
}

// Config holds oracle construction parameters. Passed explicitly to
// NewOracle, never read from globals.
type Config struct {
	EphemerisPath string // Reserved for file-backed backends
	SiderealMode  string // "lahiri" or "" for tropical
}

// ErrUnavailable reports that no oracle backend could be constructed.
var ErrUnavailable = errors.New("ephemeris backend unavailable")

// Error reports a failed position calculation for one body.
type Error struct {
	Body Body
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("ephemeris calculation failed for %s: %v", e.Body, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewOracle constructs the configured oracle wrapped in the strict
// normalization adapter.
func NewOracle(cfg Config, log zerolog.Logger) (Oracle, error) {
	inner := newAnalyticOracle(cfg)
	log.Info().
		Str("backend", "analytic").
		Str("sidereal_mode", cfg.SiderealMode).
		Msg("Ephemeris oracle initialized")
	return &strictOracle{inner: inner}, nil
}

// strictOracle normalizes every backend result before it reaches a
// consumer: longitude wrapped to [0, 360), non-finite values rejected.
type strictOracle struct {
	inner Oracle
}

func (s *strictOracle) Calc(jd float64, body Body) (Position, error) {
	pos, err := s.inner.Calc(jd, body)
	if err != nil {
		return Position{}, &Error{Body: body, Err: err}
	}
	if !isFinite(pos.Longitude) || !isFinite(pos.Latitude) || !isFinite(pos.Speed) {
		return Position{}, &Error{Body: body, Err: fmt.Errorf("non-finite position %+v", pos)}
	}
	pos.Longitude = NormalizeDegrees(pos.Longitude)
	return pos, nil
}

func (s *strictOracle) Ayanamsha(jd float64) float64 {
	return s.inner.Ayanamsha(jd)
}

// NormalizeDegrees wraps an angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
