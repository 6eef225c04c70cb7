package scoring

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math"
	"time"
)

// configVersion participates in the score ID so that any change to the
// scoring configuration invalidates previously cached results.
const configVersion = "1"

type canonicalInputs struct {
	UTCMinute     string  `json:"utcMinute"`
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	TZ            string  `json:"tz"`
	Activity      string  `json:"activity"`
	ConfigVersion string  `json:"configVersion"`
}

// ScoreID derives the deterministic reproducibility fingerprint for a
// scoring request: SHA-256 over canonical JSON of the minute-rounded
// UTC instant, coordinates at 6 decimals, timezone and activity,
// truncated to 16 hex characters. A cache key, not a security token.
func ScoreID(instant time.Time, lat, lon float64, tz, activityKey string) string {
	canonical := canonicalInputs{
		UTCMinute:     instant.UTC().Truncate(time.Minute).Format(time.RFC3339),
		Lat:           round6(lat),
		Lon:           round6(lon),
		TZ:            tz,
		Activity:      activityKey,
		ConfigVersion: configVersion,
	}

	// Struct marshaling has a fixed field order, so the JSON is canonical
	raw, _ := json.Marshal(canonical)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])[:16]
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
