package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/looptrace/pkg/cache"
	"github.com/matzehuels/looptrace/pkg/grid"
	"github.com/matzehuels/looptrace/pkg/history"
	snapshot "github.com/matzehuels/looptrace/pkg/io"
	"github.com/matzehuels/looptrace/pkg/loop"
	"github.com/matzehuels/looptrace/pkg/observability"
)

// Runner encapsulates pipeline execution with caching and history.
// Both CLI and API use it so they share one caching policy.
//
// The Runner holds no per-solve state; multiple goroutines can use the same
// Runner concurrently.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	History history.Store
	Logger  *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// means the default keyer and a nil store disables history.
func NewRunner(c cache.Cache, keyer cache.Keyer, store history.Store, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if store == nil {
		store = history.NullStore{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		History: store,
		Logger:  logger,
	}
}

// Solve runs parse → walk → classify → render on input with caching.
//
// Grid errors (MALFORMED_GRID, MALFORMED_TILE, INVALID_START,
// MALFORMED_LOOP) are returned wrapped with the failing stage. Cache
// failures are logged and never fail the solve.
func (r *Runner) Solve(ctx context.Context, input []byte, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger

	hash := cache.Hash(input)
	resultKey := r.Keyer.ResultKey(hash, opts.ResultKeyOpts())

	if !opts.Refresh {
		if res, ok := r.cachedResult(ctx, resultKey, logger); ok {
			logger.Debug("result from cache", "hash", hash[:12])
			if err := r.record(ctx, res, opts); err != nil {
				return nil, err
			}
			return res, nil
		}
	}

	g, l, snapshotHit, stats, err := r.walked(ctx, hash, input, opts)
	if err != nil {
		return nil, err
	}
	return r.finish(ctx, hash, resultKey, g, l, snapshotHit, stats, opts)
}

// SolveWalked runs classify → render on a grid that has already been walked,
// such as one imported from a JSON snapshot. Results share the cache with
// [Runner.Solve] for the same grid text.
func (r *Runner) SolveWalked(ctx context.Context, g *grid.Grid, l *loop.Loop, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	hash := cache.Hash([]byte(strings.Join(g.Rows(), "\n") + "\n"))
	resultKey := r.Keyer.ResultKey(hash, opts.ResultKeyOpts())

	if !opts.Refresh {
		if res, ok := r.cachedResult(ctx, resultKey, opts.Logger); ok {
			opts.Logger.Debug("result from cache", "hash", hash[:12])
			if err := r.record(ctx, res, opts); err != nil {
				return nil, err
			}
			return res, nil
		}
	}
	return r.finish(ctx, hash, resultKey, g, l, true, Stats{}, opts)
}

// finish classifies and renders a walked grid, caches the result and records it.
func (r *Runner) finish(ctx context.Context, hash, resultKey string, g *grid.Grid, l *loop.Loop, snapshotHit bool, stats Stats, opts Options) (*Result, error) {
	logger := opts.Logger

	classifyStart := time.Now()
	count := Classify(ctx, g)
	stats.ClassifyTime = time.Since(classifyStart)

	logger.Info("solved loop",
		"size", fmt.Sprintf("%dx%d", g.Width(), g.Height()),
		"length", l.Length(),
		"farthest", l.HalfLength(),
		"interior", count)

	renderStart := time.Now()
	artifacts, err := Render(ctx, g, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	stats.RenderTime = time.Since(renderStart)
	if len(opts.Formats) > 0 {
		logger.Debug("rendered outputs", "formats", opts.Formats, "duration", stats.RenderTime)
	}

	res := &Result{
		Hash:          hash,
		Width:         g.Width(),
		Height:        g.Height(),
		Start:         l.Start,
		StartKind:     l.StartKind.String(),
		LoopLength:    l.Length(),
		HalfLength:    l.HalfLength(),
		InteriorCount: count,
		Artifacts:     artifacts,
		Stats:         stats,
		CacheInfo:     CacheInfo{SnapshotHit: snapshotHit},
	}

	if data, err := json.Marshal(res); err == nil {
		r.store(ctx, resultKey, "result", data, opts.CacheTTL, logger)
	}

	if err := r.record(ctx, res, opts); err != nil {
		return nil, err
	}
	return res, nil
}

// walked returns the labeled grid for input, from the snapshot cache when possible.
func (r *Runner) walked(ctx context.Context, hash string, input []byte, opts Options) (*grid.Grid, *loop.Loop, bool, Stats, error) {
	var stats Stats
	key := r.Keyer.SnapshotKey(hash)

	if !opts.Refresh {
		if g, l, ok := r.cachedSnapshot(ctx, key, opts.Logger); ok {
			return g, l, true, stats, nil
		}
	}

	parseStart := time.Now()
	g, err := Parse(ctx, input)
	if err != nil {
		return nil, nil, false, stats, fmt.Errorf("parse: %w", err)
	}
	stats.ParseTime = time.Since(parseStart)

	walkStart := time.Now()
	l, err := Walk(ctx, g)
	if err != nil {
		return nil, nil, false, stats, fmt.Errorf("walk: %w", err)
	}
	stats.WalkTime = time.Since(walkStart)

	if data, err := json.Marshal(snapshot.NewSnapshot(g, l.Path)); err == nil {
		r.store(ctx, key, "snapshot", data, opts.CacheTTL, opts.Logger)
	}
	return g, l, false, stats, nil
}

func (r *Runner) cachedResult(ctx context.Context, key string, logger *log.Logger) (*Result, bool) {
	data, ok := r.lookup(ctx, key, "result", logger)
	if !ok {
		return nil, false
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		logger.Warn("discarding corrupt cached result", "err", err)
		return nil, false
	}
	res.CacheInfo = CacheInfo{SnapshotHit: true, ResultHit: true}
	return &res, true
}

func (r *Runner) cachedSnapshot(ctx context.Context, key string, logger *log.Logger) (*grid.Grid, *loop.Loop, bool) {
	data, ok := r.lookup(ctx, key, "snapshot", logger)
	if !ok {
		return nil, nil, false
	}
	var s snapshot.Snapshot
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		logger.Warn("discarding corrupt cached snapshot", "err", err)
		return nil, nil, false
	}
	g, l, err := s.Walk()
	if err != nil {
		logger.Warn("discarding invalid cached snapshot", "err", err)
		return nil, nil, false
	}
	return g, l, true
}

func (r *Runner) lookup(ctx context.Context, key, keyType string, logger *log.Logger) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache get failed", "type", keyType, "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) store(ctx context.Context, key, keyType string, data []byte, ttl time.Duration, logger *log.Logger) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("cache set failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// record saves a history record when opts.Record is set and fills res.RecordID.
func (r *Runner) record(ctx context.Context, res *Result, opts Options) error {
	res.RecordID = ""
	if !opts.Record {
		return nil
	}
	rec := &history.Record{
		InputHash:  res.Hash,
		Source:     opts.Source,
		Width:      res.Width,
		Height:     res.Height,
		LoopLength: res.LoopLength,
		HalfLength: res.HalfLength,
		Interior:   res.InteriorCount,
		Start:      res.Start,
		StartKind:  res.StartKind,
	}
	if err := r.History.Save(ctx, rec); err != nil {
		return fmt.Errorf("record history: %w", err)
	}
	res.RecordID = rec.ID
	opts.Logger.Debug("saved history record", "id", rec.ID)
	return nil
}

// Close releases resources held by the runner.
func (r *Runner) Close() error {
	var firstErr error
	if r.Cache != nil {
		firstErr = r.Cache.Close()
	}
	if r.History != nil {
		if err := r.History.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
