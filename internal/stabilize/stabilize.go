// Package stabilize turns a sampled score series into labeled stable
// intervals: maximal contiguous ranges whose score stays within a small
// threshold, each annotated with its local-maximum instant.
package stabilize

import (
	"sort"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/desimealsnow/auspicious-time/internal/scoring"
)

// Interval is one merged stable range of the score series.
type Interval struct {
	Start     time.Time         `json:"start"`
	End       time.Time         `json:"end"`
	Best      time.Time         `json:"best"`
	Score     float64           `json:"score"`
	Breakdown scoring.Breakdown `json:"breakdown"`
	Reasons   []string          `json:"reasons"`
	Stability float64           `json:"stability"`
	ScoreID   string            `json:"scoreId"`
}

// Config tunes the smoothing and merging passes.
type Config struct {
	SmoothingWindow time.Duration // neighbor radius for the smoothing pass
	Threshold       float64       // max score delta inside one interval, in points
	MinStability    float64       // intervals below this are dropped
	MergeGap        time.Duration // max gap between merge candidates
	MaxDuration     time.Duration // duration at which stability bottoms out
}

// DefaultConfig returns the tuning used in production.
func DefaultConfig() Config {
	return Config{
		SmoothingWindow: 2 * time.Minute,
		Threshold:       1.0,
		MinStability:    0.7,
		MergeGap:        30 * time.Minute,
		MaxDuration:     time.Hour,
	}
}

const stabilityFloor = 0.1

// Stabilizer smooths a sampled score series and forms stable intervals.
type Stabilizer struct {
	cfg Config
	log zerolog.Logger
}

// New creates a stabilizer. Zero config fields fall back to defaults.
func New(cfg Config, log zerolog.Logger) *Stabilizer {
	def := DefaultConfig()
	if cfg.SmoothingWindow <= 0 {
		cfg.SmoothingWindow = def.SmoothingWindow
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = def.Threshold
	}
	if cfg.MinStability <= 0 {
		cfg.MinStability = def.MinStability
	}
	if cfg.MergeGap <= 0 {
		cfg.MergeGap = def.MergeGap
	}
	if cfg.MaxDuration <= 0 {
		cfg.MaxDuration = def.MaxDuration
	}
	return &Stabilizer{cfg: cfg, log: log.With().Str("component", "stabilizer").Logger()}
}

// Stabilize runs the smooth, form and merge passes over a score series.
// The series may be partial or unordered; an empty series yields an
// empty result, never an error.
func (s *Stabilizer) Stabilize(series []*scoring.Result) []Interval {
	if len(series) == 0 {
		return []Interval{}
	}

	samples := make([]*scoring.Result, len(series))
	copy(samples, series)
	sort.Slice(samples, func(i, j int) bool { return samples[i].Instant.Before(samples[j].Instant) })

	smoothed := s.smooth(samples)
	intervals := s.form(samples, smoothed)
	return s.merge(intervals)
}

// smooth averages each sample with its neighbors inside the smoothing
// window, weighted by inverse time-distance. Single-sample windows pass
// through unchanged.
func (s *Stabilizer) smooth(samples []*scoring.Result) []float64 {
	out := make([]float64, len(samples))
	for i, center := range samples {
		var values, weights []float64
		for _, other := range samples {
			dist := other.Instant.Sub(center.Instant)
			if dist < 0 {
				dist = -dist
			}
			if dist > s.cfg.SmoothingWindow {
				continue
			}
			values = append(values, other.Score)
			weights = append(weights, 1/(1+dist.Minutes()))
		}
		out[i] = stat.Mean(values, weights)
	}
	return out
}

// form walks the smoothed series in time order, extending the current
// interval while the smoothed score stays within the threshold of the
// interval's representative. The representative tracks the local
// maximum, so the reported best instant is never an averaged-away value.
func (s *Stabilizer) form(samples []*scoring.Result, smoothed []float64) []Interval {
	var intervals []Interval

	cur := s.open(samples[0])
	repScore := smoothed[0]

	for i := 1; i < len(samples); i++ {
		delta := smoothed[i] - repScore
		if delta < 0 {
			delta = -delta
		}
		if delta > s.cfg.Threshold {
			intervals = append(intervals, s.close(cur))
			cur = s.open(samples[i])
			repScore = smoothed[i]
			continue
		}

		cur.End = samples[i].Instant
		if smoothed[i] > repScore {
			repScore = smoothed[i]
			s.represent(&cur, samples[i])
		}
	}
	intervals = append(intervals, s.close(cur))

	kept := intervals[:0]
	for _, iv := range intervals {
		if iv.Stability >= s.cfg.MinStability {
			kept = append(kept, iv)
		}
	}
	return kept
}

func (s *Stabilizer) open(sample *scoring.Result) Interval {
	iv := Interval{Start: sample.Instant, End: sample.Instant}
	s.represent(&iv, sample)
	return iv
}

func (s *Stabilizer) represent(iv *Interval, sample *scoring.Result) {
	iv.Best = sample.Instant
	iv.Score = sample.Score
	iv.Breakdown = sample.Breakdown
	iv.Reasons = sample.Reasons
	iv.ScoreID = sample.ScoreID
}

func (s *Stabilizer) close(iv Interval) Interval {
	iv.Stability = s.stability(iv.End.Sub(iv.Start))
	return iv
}

// stability decreases linearly with interval duration: 1.0 at zero
// duration down to the floor at MaxDuration. Tight windows rank higher.
func (s *Stabilizer) stability(duration time.Duration) float64 {
	v := 1 - duration.Seconds()/s.cfg.MaxDuration.Seconds()
	if v < stabilityFloor {
		return stabilityFloor
	}
	return v
}

// merge joins time-adjacent intervals whose gap and score difference
// both stay small. The merged interval inherits the higher-scoring
// side's representative and the minimum of the two stabilities.
func (s *Stabilizer) merge(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return []Interval{}
	}

	out := []Interval{intervals[0]}
	for _, next := range intervals[1:] {
		last := &out[len(out)-1]

		gap := next.Start.Sub(last.End)
		diff := next.Score - last.Score
		if diff < 0 {
			diff = -diff
		}
		if gap > s.cfg.MergeGap || diff > s.cfg.Threshold {
			out = append(out, next)
			continue
		}

		winner := *last
		if next.Score > last.Score {
			winner = next
		}
		last.End = next.End
		last.Best = winner.Best
		last.Score = winner.Score
		last.Breakdown = winner.Breakdown
		last.Reasons = winner.Reasons
		last.ScoreID = winner.ScoreID
		if next.Stability < last.Stability {
			last.Stability = next.Stability
		}
	}
	return out
}
