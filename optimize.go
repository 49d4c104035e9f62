package siteplan

import (
	"context"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/meridian-civic/siteplan/internal/geom"
	"github.com/meridian-civic/siteplan/internal/optimizer"
)

// defaultSeed picks a fresh seed when WithSeed isn't given.
func defaultSeed() int64 {
	return time.Now().UnixNano() ^ int64(rand.Int63())
}

// defaultMaxIterations is the SA iteration budget used when
// WithMaxIterations isn't given.
const defaultMaxIterations = 200

// Option configures a single Optimize call. Structural, reusable
// config (zoning, design, parking) stays as plain arguments; per-run
// tunables that most callers leave at their default travel as options,
// mirroring citygraph's BuilderConfig/CityConfig split.
type Option func(*optimizeOptions)

type optimizeOptions struct {
	logger   zerolog.Logger
	seed     int64
	maxIter  int
	progress func(iter int, bestScore float64)
}

// WithLogger attaches a zerolog.Logger that Optimize writes its start
// (debug), completion (info) and cancellation (warning) events to.
// Discarded by default.
func WithLogger(l zerolog.Logger) Option {
	return func(o *optimizeOptions) { o.logger = l }
}

// WithSeed fixes the simulated annealing RNG seed for a reproducible
// run. A random seed is used if this option is omitted or seed is 0.
func WithSeed(seed int64) Option {
	return func(o *optimizeOptions) { o.seed = seed }
}

// WithMaxIterations overrides the default SA iteration budget.
func WithMaxIterations(n int) Option {
	return func(o *optimizeOptions) {
		if n > 0 {
			o.maxIter = n
		}
	}
}

// WithProgress registers a callback invoked every 50 SA iterations and
// once more at completion, with the iteration index and the best score
// found so far.
func WithProgress(fn func(iter int, bestScore float64)) Option {
	return func(o *optimizeOptions) { o.progress = fn }
}

// OptimizeResult is the finalized layout plus the alternatives the
// search kept alongside it.
type OptimizeResult struct {
	Buildings    []BuildingSpec
	Metrics      Metrics
	ProForma     ProFormaResult
	Parking      ParkingSolution
	Alternatives []Alternative
}

// Alternative is one of up to four distinct layouts the search
// considered competitive with the winner.
type Alternative struct {
	Buildings []BuildingSpec
	Score     float64
}

// Optimize runs the simulated-annealing search (component C9) over
// env's buildable envelope, producing a finalized layout plus its
// feasibility metrics, pro forma, and parking solution. ctx is polled
// at SA iteration boundaries only, not inside the parking solver; a
// cancelled context returns a non-nil error and a nil *OptimizeResult.
func Optimize(ctx context.Context, env *Envelope, zoning ZoningConfig, design DesignConfig, parking ParkingSpec, opts ...Option) (*OptimizeResult, error) {
	o := optimizeOptions{
		logger:  zerolog.Nop(),
		maxIter: defaultMaxIterations,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.seed == 0 {
		o.seed = defaultSeed()
	}
	design.Parking = parking

	o.logger.Debug().
		Int("numBuildings", design.NumBuildings).
		Int("maxIterations", o.maxIter).
		Int64("seed", o.seed).
		Msg("starting optimize")

	res, err := optimizer.Optimize(ctx, optimizer.Params{
		Envelope:      env.Polygon,
		Design:        design,
		Zoning:        zoning,
		SiteAreaSqFt:  env.AreaM2 * geom.SqMToSqFt,
		Seed:          o.seed,
		MaxIterations: o.maxIter,
		Progress:      o.progress,
	})
	if err != nil {
		o.logger.Warn().Err(err).Msg("optimize cancelled")
		return nil, err
	}

	alts := make([]Alternative, len(res.Alternatives))
	for i, a := range res.Alternatives {
		alts[i] = Alternative{Buildings: a.Buildings, Score: a.Score}
	}

	o.logger.Info().
		Float64("far", res.Metrics.FAR).
		Bool("zoningCompliant", res.Metrics.ZoningCompliant).
		Msg("optimize complete")

	return &OptimizeResult{
		Buildings:    res.Buildings,
		Metrics:      res.Metrics,
		ProForma:     res.ProForma,
		Parking:      res.Parking,
		Alternatives: alts,
	}, nil
}
