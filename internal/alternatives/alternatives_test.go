package alternatives

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desimealsnow/auspicious-time/internal/chart"
	"github.com/desimealsnow/auspicious-time/internal/ephemeris"
	"github.com/desimealsnow/auspicious-time/internal/scoring"
	"github.com/desimealsnow/auspicious-time/internal/scoring/activity"
	"github.com/desimealsnow/auspicious-time/internal/stabilize"
)

// driftOracle makes longitudes drift with the julian day so scores
// vary between samples without real ephemeris math.
type driftOracle struct{}

func (driftOracle) Calc(jd float64, body ephemeris.Body) (ephemeris.Position, error) {
	lon := ephemeris.NormalizeDegrees(jd*97.3 + float64(body)*47)
	return ephemeris.Position{Longitude: lon, Speed: 1}, nil
}

func (driftOracle) Ayanamsha(jd float64) float64 { return 24 }

// brokenOracle fails every luminary call, making chart builds fail.
type brokenOracle struct{}

func (brokenOracle) Calc(jd float64, body ephemeris.Body) (ephemeris.Position, error) {
	return ephemeris.Position{}, errors.New("ephemeris offline")
}

func (brokenOracle) Ayanamsha(jd float64) float64 { return 24 }

func newFinder(oracle ephemeris.Oracle) *Finder {
	builder := chart.NewBuilder(oracle, zerolog.Nop())
	engine := scoring.NewEngine(builder, activity.Defaults(), zerolog.Nop())
	stab := stabilize.New(stabilize.DefaultConfig(), zerolog.Nop())
	return NewFinder(engine, stab, DefaultConfig(), zerolog.Nop())
}

func testRequest() Request {
	return Request{
		Candidate:      time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		CandidateScore: 55,
		Lat:            28.6139,
		Lon:            77.2090,
		Activity:       "travel",
		Timezone:       "Asia/Kolkata",
	}
}

func TestFindRankedAndBounded(t *testing.T) {
	f := newFinder(driftOracle{})
	got := f.Find(context.Background(), testRequest())

	assert.LessOrEqual(t, len(got), f.cfg.TopK)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
	for _, iv := range got {
		assert.False(t, iv.Best.Before(iv.Start))
		assert.False(t, iv.Best.After(iv.End))
		assert.NotEmpty(t, iv.ScoreID)
	}
}

func TestDenseSearchRespectsMinGap(t *testing.T) {
	f := newFinder(driftOracle{})
	req := testRequest()

	for _, iv := range f.denseSearch(context.Background(), req) {
		assert.Greater(t, absDuration(iv.Best.Sub(req.Candidate)), f.cfg.MinGap)
	}
}

func TestSparseSearchFiltersNearBaseScore(t *testing.T) {
	f := newFinder(driftOracle{})
	req := testRequest()

	got := f.sparseSearch(context.Background(), req)
	seen := map[float64]bool{}
	for _, iv := range got {
		assert.Greater(t, math.Abs(iv.Score-req.CandidateScore), f.cfg.ScoreEpsilon)
		assert.True(t, iv.Best.After(req.Candidate))

		rounded := math.Round(iv.Score*10) / 10
		assert.False(t, seen[rounded], "duplicate rounded score %.1f", rounded)
		seen[rounded] = true
	}
}

func TestScoreBatchPreservesOrder(t *testing.T) {
	f := newFinder(driftOracle{})
	req := testRequest()

	instants := make([]time.Time, 5)
	for i := range instants {
		instants[i] = req.Candidate.Add(time.Duration(i) * time.Hour)
	}

	got := f.scoreBatch(context.Background(), instants, req)
	require.Len(t, got, 5)
	for i, res := range got {
		require.NotNil(t, res)
		assert.Equal(t, instants[i], res.Instant)
	}
}

func TestFindSkipsFailedSamples(t *testing.T) {
	f := newFinder(brokenOracle{})
	got := f.Find(context.Background(), testRequest())

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFindCancelledContext(t *testing.T) {
	f := newFinder(driftOracle{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := f.Find(ctx, testRequest())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNewFinderAppliesDefaults(t *testing.T) {
	f := newFinder(driftOracle{})
	assert.Equal(t, DefaultConfig(), f.cfg)
}
