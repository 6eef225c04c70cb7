package ephemeris

import (
	"fmt"
	"math"
)

// analyticOracle computes positions from truncated mean orbital
// elements. Accuracy is on the order of arcminutes for the Sun and a
// few arcminutes for the Moon and planets, which is sufficient for
// sign, nakshatra and aspect work without external data files.
type analyticOracle struct {
	sidereal bool
}

func newAnalyticOracle(cfg Config) *analyticOracle {
	return &analyticOracle{sidereal: cfg.SiderealMode == "lahiri"}
}

// speedStep is the half-width, in days, of the central difference used
// to estimate daily motion.
const speedStep = 0.5 / 24

func (o *analyticOracle) Calc(jd float64, body Body) (Position, error) {
	lon, lat, err := o.eclipticAt(jd, body)
	if err != nil {
		return Position{}, err
	}

	before, _, err := o.eclipticAt(jd-speedStep, body)
	if err != nil {
		return Position{}, err
	}
	after, _, err := o.eclipticAt(jd+speedStep, body)
	if err != nil {
		return Position{}, err
	}

	return Position{
		Longitude: lon,
		Latitude:  lat,
		Speed:     angularDiff(after, before) / (2 * speedStep),
	}, nil
}

// Ayanamsha returns the Lahiri ayanamsha in degrees, from a linear
// approximation anchored at J2000.
func (o *analyticOracle) Ayanamsha(jd float64) float64 {
	years := (jd - J2000) / 365.25
	return 23.85303 + 0.0139691*years
}

func (o *analyticOracle) eclipticAt(jd float64, body Body) (lon, lat float64, err error) {
	// Epoch of the element set below: 2000-01-00.0 TT
	d := jd - 2451543.5

	switch body {
	case Sun:
		lon, lat = sunPosition(d)
	case Moon:
		lon, lat = moonPosition(d)
	case Mercury, Venus, Mars, Jupiter, Saturn:
		lon, lat = planetPosition(d, body)
	default:
		return 0, 0, fmt.Errorf("unsupported body %s", body)
	}

	if o.sidereal {
		lon -= o.Ayanamsha(jd)
	}
	return NormalizeDegrees(lon), lat, nil
}

// elements holds mean orbital elements evaluated at day offset d.
type elements struct {
	n float64 // longitude of ascending node, degrees
	i float64 // inclination, degrees
	w float64 // argument of perihelion, degrees
	a float64 // semi-major axis, AU (Earth radii for the Moon)
	e float64 // eccentricity
	m float64 // mean anomaly, degrees
}

func sunElements(d float64) elements {
	return elements{
		w: 282.9404 + 4.70935e-5*d,
		a: 1.0,
		e: 0.016709 - 1.151e-9*d,
		m: 356.0470 + 0.9856002585*d,
	}
}

func moonElements(d float64) elements {
	return elements{
		n: 125.1228 - 0.0529538083*d,
		i: 5.1454,
		w: 318.0634 + 0.1643573223*d,
		a: 60.2666,
		e: 0.054900,
		m: 115.3654 + 13.0649929509*d,
	}
}

func planetElements(d float64, body Body) elements {
	switch body {
	case Mercury:
		return elements{
			n: 48.3313 + 3.24587e-5*d,
			i: 7.0047 + 5.00e-8*d,
			w: 29.1241 + 1.01444e-5*d,
			a: 0.387098,
			e: 0.205635 + 5.59e-10*d,
			m: 168.6562 + 4.0923344368*d,
		}
	case Venus:
		return elements{
			n: 76.6799 + 2.46590e-5*d,
			i: 3.3946 + 2.75e-8*d,
			w: 54.8910 + 1.38374e-5*d,
			a: 0.723330,
			e: 0.006773 - 1.302e-9*d,
			m: 48.0052 + 1.6021302244*d,
		}
	case Mars:
		return elements{
			n: 49.5574 + 2.11081e-5*d,
			i: 1.8497 - 1.78e-8*d,
			w: 286.5016 + 2.92961e-5*d,
			a: 1.523688,
			e: 0.093405 + 2.516e-9*d,
			m: 18.6021 + 0.5240207766*d,
		}
	case Jupiter:
		return elements{
			n: 100.4542 + 2.76854e-5*d,
			i: 1.3030 - 1.557e-7*d,
			w: 273.8777 + 1.64505e-5*d,
			a: 5.20256,
			e: 0.048498 + 4.469e-9*d,
			m: 19.8950 + 0.0830853001*d,
		}
	default: // Saturn
		return elements{
			n: 113.6634 + 2.38980e-5*d,
			i: 2.4886 - 1.081e-7*d,
			w: 339.3939 + 2.97661e-5*d,
			a: 9.55475,
			e: 0.055546 - 9.499e-9*d,
			m: 316.9670 + 0.0334442282*d,
		}
	}
}

// eccentricAnomaly solves Kepler's equation by Newton iteration.
func eccentricAnomaly(m, e float64) float64 {
	mRad := radians(m)
	ecc := mRad + e*math.Sin(mRad)*(1+e*math.Cos(mRad))
	for i := 0; i < 20; i++ {
		delta := (ecc - e*math.Sin(ecc) - mRad) / (1 - e*math.Cos(ecc))
		ecc -= delta
		if math.Abs(delta) < 1e-8 {
			break
		}
	}
	return ecc
}

// orbitalPlane returns the true anomaly v (degrees) and radius r from
// an element set.
func orbitalPlane(el elements) (v, r float64) {
	ecc := eccentricAnomaly(el.m, el.e)
	x := el.a * (math.Cos(ecc) - el.e)
	y := el.a * math.Sqrt(1-el.e*el.e) * math.Sin(ecc)
	return degrees(math.Atan2(y, x)), math.Sqrt(x*x + y*y)
}

// sunPosition returns the geocentric ecliptic longitude of the Sun.
func sunPosition(d float64) (lon, lat float64) {
	el := sunElements(d)
	v, _ := orbitalPlane(el)
	return NormalizeDegrees(v + el.w), 0
}

// sunRect returns the Sun's geocentric rectangular ecliptic
// coordinates, used to translate heliocentric planet positions.
func sunRect(d float64) (x, y float64) {
	el := sunElements(d)
	v, r := orbitalPlane(el)
	lon := radians(v + el.w)
	return r * math.Cos(lon), r * math.Sin(lon)
}

// moonPosition returns the geocentric ecliptic position of the Moon
// including the principal perturbation terms.
func moonPosition(d float64) (lon, lat float64) {
	el := moonElements(d)
	v, r := orbitalPlane(el)

	xh, yh, zh := heliocentric(el, v, r)
	lon = degrees(math.Atan2(yh, xh))
	lat = degrees(math.Atan2(zh, math.Sqrt(xh*xh+yh*yh)))

	// Fundamental arguments for the perturbation series
	sun := sunElements(d)
	ls := sun.m + sun.w            // Sun mean longitude
	lm := el.m + el.w + el.n       // Moon mean longitude
	ms := sun.m                    // Sun mean anomaly
	mm := el.m                     // Moon mean anomaly
	de := lm - ls                  // mean elongation
	f := lm - el.n                 // argument of latitude

	lon += -1.274*sind(mm-2*de) +
		0.658*sind(2*de) -
		0.186*sind(ms) -
		0.059*sind(2*mm-2*de) -
		0.057*sind(mm-2*de+ms) +
		0.053*sind(mm+2*de) +
		0.046*sind(2*de-ms) +
		0.041*sind(mm-ms) -
		0.035*sind(de) -
		0.031*sind(mm+ms) -
		0.015*sind(2*f-2*de) +
		0.011*sind(mm-4*de)

	lat += -0.173*sind(f-2*de) -
		0.055*sind(mm-f-2*de) -
		0.046*sind(mm+f-2*de) +
		0.033*sind(f+2*de) +
		0.017*sind(2*mm+f)

	return NormalizeDegrees(lon), lat
}

// planetPosition returns the geocentric ecliptic position of a planet.
func planetPosition(d float64, body Body) (lon, lat float64) {
	el := planetElements(d, body)
	v, r := orbitalPlane(el)
	xh, yh, zh := heliocentric(el, v, r)

	// Great Jupiter/Saturn inequality, the dominant mutual terms
	if body == Jupiter || body == Saturn {
		mj := planetElements(d, Jupiter).m
		msat := planetElements(d, Saturn).m
		helioLon := degrees(math.Atan2(yh, xh))
		switch body {
		case Jupiter:
			helioLon += -0.332*sind(2*mj-5*msat-67.6) -
				0.056*sind(2*mj-2*msat+21) +
				0.042*sind(3*mj-5*msat+21) -
				0.036*sind(mj-2*msat) +
				0.022*cosd(mj-msat) +
				0.023*sind(2*mj-3*msat+52) -
				0.016*sind(mj-5*msat-69)
		case Saturn:
			helioLon += 0.812*sind(2*mj-5*msat-67.6) -
				0.229*cosd(2*mj-4*msat-2) +
				0.119*sind(mj-2*msat-3) +
				0.046*sind(2*mj-6*msat-69) +
				0.014*sind(mj-3*msat+32)
		}
		rh := math.Sqrt(xh*xh + yh*yh)
		xh = rh * cosd(helioLon)
		yh = rh * sind(helioLon)
	}

	xs, ys := sunRect(d)
	xg := xh + xs
	yg := yh + ys

	lon = degrees(math.Atan2(yg, xg))
	lat = degrees(math.Atan2(zh, math.Sqrt(xg*xg+yg*yg)))
	return NormalizeDegrees(lon), lat
}

// heliocentric converts in-plane coordinates to ecliptic rectangular
// coordinates (geocentric for the Moon).
func heliocentric(el elements, v, r float64) (x, y, z float64) {
	vw := radians(v + el.w)
	n := radians(el.n)
	i := radians(el.i)

	x = r * (math.Cos(n)*math.Cos(vw) - math.Sin(n)*math.Sin(vw)*math.Cos(i))
	y = r * (math.Sin(n)*math.Cos(vw) + math.Cos(n)*math.Sin(vw)*math.Cos(i))
	z = r * math.Sin(vw) * math.Sin(i)
	return x, y, z
}

// angularDiff returns the signed smallest difference a-b in degrees,
// in (-180, 180].
func angularDiff(a, b float64) float64 {
	d := math.Mod(a-b+540, 360) - 180
	if d == -180 {
		d = 180
	}
	return d
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }
func sind(deg float64) float64    { return math.Sin(radians(deg)) }
func cosd(deg float64) float64    { return math.Cos(radians(deg)) }
