package calculators

import (
	"github.com/desimealsnow/auspicious-time/internal/chart"
	"github.com/desimealsnow/auspicious-time/internal/ephemeris"
)

// BeneficPlacement scores Jupiter and Venus by their 30-degree house
// bucket, angular houses weighted higher, averaged across both bodies.
type BeneficPlacement struct{}

// Per-bucket strengths, bucket 0 = first house.
var (
	jupiterBuckets = [12]float64{0.8, 0.6, 0.4, 0.9, 0.3, 0.2, 0.7, 0.3, 0.5, 0.8, 0.4, 0.2}
	venusBuckets   = [12]float64{0.7, 0.8, 0.3, 0.6, 0.9, 0.2, 0.5, 0.1, 0.4, 0.3, 0.6, 0.2}
)

func (BeneficPlacement) Name() string { return "beneficPlacement" }

func (BeneficPlacement) Calculate(event *chart.Chart, _ *chart.Natal, _ string) float64 {
	jupiter := bucketStrength(event.Position(ephemeris.Jupiter).Longitude, jupiterBuckets)
	venus := bucketStrength(event.Position(ephemeris.Venus).Longitude, venusBuckets)
	return clamp((jupiter+venus)/2, -1, 1)
}

func bucketStrength(lon float64, buckets [12]float64) float64 {
	idx := int(ephemeris.NormalizeDegrees(lon) / 30)
	if idx > 11 {
		idx = 11
	}
	return buckets[idx]
}
