// Package alternatives searches for better-scoring instants around a
// candidate time, combining a dense local sweep with a sparse
// multi-day scan.
package alternatives

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/desimealsnow/auspicious-time/internal/chart"
	"github.com/desimealsnow/auspicious-time/internal/scoring"
	"github.com/desimealsnow/auspicious-time/internal/stabilize"
)

// sparseSlots are the local times of day sampled by the wide search.
var sparseSlots = []int{6, 9, 12, 15, 18}

// Config tunes both search strategies.
type Config struct {
	DenseWindow  time.Duration // half-width of the local sweep around the candidate
	DenseStep    time.Duration // sampling step inside the dense window
	HorizonDays  int           // days covered by the sparse scan
	Workers      int           // concurrent scoring goroutines
	MinGap       time.Duration // dense results this close to the candidate are dropped
	ScoreEpsilon float64       // sparse results this close to the base score are dropped
	TopK         int           // maximum alternatives returned
}

// DefaultConfig returns the production search tuning.
func DefaultConfig() Config {
	return Config{
		DenseWindow:  2 * time.Hour,
		DenseStep:    15 * time.Minute,
		HorizonDays:  7,
		Workers:      4,
		MinGap:       15 * time.Minute,
		ScoreEpsilon: 0.1,
		TopK:         5,
	}
}

// Request describes one alternative search.
type Request struct {
	Candidate      time.Time
	CandidateScore float64
	Lat            float64
	Lon            float64
	Natal          *chart.Natal
	Activity       string
	Timezone       string
}

// Finder runs alternative searches over a scoring engine.
type Finder struct {
	engine *scoring.Engine
	stab   *stabilize.Stabilizer
	cfg    Config
	log    zerolog.Logger
}

// NewFinder creates a finder. Zero config fields fall back to defaults.
func NewFinder(engine *scoring.Engine, stab *stabilize.Stabilizer, cfg Config, log zerolog.Logger) *Finder {
	def := DefaultConfig()
	if cfg.DenseWindow <= 0 {
		cfg.DenseWindow = def.DenseWindow
	}
	if cfg.DenseStep <= 0 {
		cfg.DenseStep = def.DenseStep
	}
	if cfg.HorizonDays <= 0 {
		cfg.HorizonDays = def.HorizonDays
	}
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.MinGap <= 0 {
		cfg.MinGap = def.MinGap
	}
	if cfg.ScoreEpsilon <= 0 {
		cfg.ScoreEpsilon = def.ScoreEpsilon
	}
	if cfg.TopK <= 0 {
		cfg.TopK = def.TopK
	}
	return &Finder{
		engine: engine,
		stab:   stab,
		cfg:    cfg,
		log:    log.With().Str("component", "alternatives").Logger(),
	}
}

// Find returns up to TopK alternative intervals ranked by score,
// highest first. Individual sample failures are skipped, and a
// cancelled context yields whatever completed so far. An empty result
// is a valid outcome.
func (f *Finder) Find(ctx context.Context, req Request) []stabilize.Interval {
	combined := append(f.denseSearch(ctx, req), f.sparseSearch(ctx, req)...)

	sort.SliceStable(combined, func(i, j int) bool { return combined[i].Score > combined[j].Score })
	if len(combined) > f.cfg.TopK {
		combined = combined[:f.cfg.TopK]
	}
	return combined
}

// StableIntervals sweeps the dense window around the candidate and
// returns every surviving stable interval, the candidate's own
// included. Used to report the stable ranges around a scored instant.
func (f *Finder) StableIntervals(ctx context.Context, req Request) []stabilize.Interval {
	series := compact(f.scoreBatch(ctx, f.denseSweep(req.Candidate), req))
	return f.stab.Stabilize(series)
}

func (f *Finder) denseSweep(candidate time.Time) []time.Time {
	var instants []time.Time
	for at := candidate.Add(-f.cfg.DenseWindow); !at.After(candidate.Add(f.cfg.DenseWindow)); at = at.Add(f.cfg.DenseStep) {
		instants = append(instants, at)
	}
	return instants
}

// denseSearch sweeps the dense window around the candidate, stabilizes
// the series, and drops intervals whose best instant sits too close to
// the candidate itself.
func (f *Finder) denseSearch(ctx context.Context, req Request) []stabilize.Interval {
	series := compact(f.scoreBatch(ctx, f.denseSweep(req.Candidate), req))
	intervals := f.stab.Stabilize(series)

	out := []stabilize.Interval{}
	for _, iv := range intervals {
		if absDuration(iv.Best.Sub(req.Candidate)) <= f.cfg.MinGap {
			continue
		}
		out = append(out, iv)
	}
	return out
}

// sparseSearch scores fixed local times of day across the horizon.
// Samples are hours apart, so no stabilization is needed; instead the
// results are deduplicated by rounded score to avoid near-identical
// suggestions.
func (f *Finder) sparseSearch(ctx context.Context, req Request) []stabilize.Interval {
	loc, err := time.LoadLocation(req.Timezone)
	if err != nil {
		loc = time.UTC
	}
	day := req.Candidate.In(loc)

	var instants []time.Time
	for d := 1; d <= f.cfg.HorizonDays; d++ {
		for _, hour := range sparseSlots {
			instants = append(instants, time.Date(day.Year(), day.Month(), day.Day()+d, hour, 0, 0, 0, loc))
		}
	}

	samples := compact(f.scoreBatch(ctx, instants, req))

	candidates := samples[:0]
	for _, res := range samples {
		if math.Abs(res.Score-req.CandidateScore) <= f.cfg.ScoreEpsilon {
			continue
		}
		candidates = append(candidates, res)
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].Score > candidates[j].Score })

	seen := map[float64]bool{}
	out := []stabilize.Interval{}
	for _, res := range candidates {
		rounded := math.Round(res.Score*10) / 10
		if seen[rounded] {
			continue
		}
		seen[rounded] = true
		out = append(out, stabilize.Interval{
			Start:     res.Instant,
			End:       res.Instant,
			Best:      res.Instant,
			Score:     res.Score,
			Breakdown: res.Breakdown,
			Reasons:   res.Reasons,
			Stability: 1.0,
			ScoreID:   res.ScoreID,
		})
		if len(out) == f.cfg.TopK {
			break
		}
	}
	return out
}

type sampleJob struct {
	index int
	at    time.Time
}

type sampleResult struct {
	index int
	res   *scoring.Result
}

// scoreBatch scores instants concurrently, preserving input order.
// Failed or cancelled samples come back nil.
func (f *Finder) scoreBatch(ctx context.Context, instants []time.Time, req Request) []*scoring.Result {
	n := len(instants)
	if n == 0 {
		return nil
	}

	jobs := make(chan sampleJob, n)
	results := make(chan sampleResult, n)

	workers := f.cfg.Workers
	if n < workers {
		workers = n
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.sampleWorker(ctx, jobs, results, req)
		}()
	}

	for idx, at := range instants {
		jobs <- sampleJob{index: idx, at: at}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]*scoring.Result, n)
	for r := range results {
		out[r.index] = r.res
	}
	return out
}

func (f *Finder) sampleWorker(ctx context.Context, jobs <-chan sampleJob, results chan<- sampleResult, req Request) {
	for job := range jobs {
		select {
		case <-ctx.Done():
			results <- sampleResult{index: job.index}
			continue
		default:
		}

		res, err := f.engine.ScoreInstant(job.at, req.Lat, req.Lon, req.Natal, req.Activity, req.Timezone)
		if err != nil {
			f.log.Warn().Err(err).Time("instant", job.at).Msg("Sample scoring failed, skipping")
			results <- sampleResult{index: job.index}
			continue
		}
		results <- sampleResult{index: job.index, res: res}
	}
}

func compact(results []*scoring.Result) []*scoring.Result {
	out := make([]*scoring.Result, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
