// Package pipeline provides the solve pipeline shared by the CLI and the API.
//
// # Architecture
//
// A solve runs four stages:
//
//  1. Parse: read the grid text into a [grid.Grid]
//  2. Walk: resolve the start tile and label the loop
//  3. Classify: count the tiles enclosed by the loop
//  4. Render: produce the requested artifacts (text views, DOT, SVG, JSON)
//
// The walked grid and the finished result are cached separately, so asking
// for a new format on a known grid skips the walk.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, store, logger)
//	res, err := runner.Solve(ctx, input, pipeline.Options{Formats: []string{"svg"}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := res.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/looptrace/pkg/cache"
	"github.com/matzehuels/looptrace/pkg/errors"
	"github.com/matzehuels/looptrace/pkg/grid"
)

// DefaultCacheTTL is how long solved grids stay cached when Options.CacheTTL is zero.
const DefaultCacheTTL = 7 * 24 * time.Hour

// Format constants for output formats.
const (
	FormatText     = "text"
	FormatClean    = "clean"
	FormatInterior = "interior"
	FormatDOT      = "dot"
	FormatSVG      = "svg"
	FormatJSON     = "json"
)

// AllFormats lists the supported formats in display order.
var AllFormats = []string{FormatText, FormatClean, FormatInterior, FormatDOT, FormatSVG, FormatJSON}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText:     true,
	FormatClean:    true,
	FormatInterior: true,
	FormatDOT:      true,
	FormatSVG:      true,
	FormatJSON:     true,
}

// ContentTypes maps each format to the MIME type the API serves it with.
var ContentTypes = map[string]string{
	FormatText:     "text/plain; charset=utf-8",
	FormatClean:    "text/plain; charset=utf-8",
	FormatInterior: "text/plain; charset=utf-8",
	FormatDOT:      "text/vnd.graphviz; charset=utf-8",
	FormatSVG:      "image/svg+xml",
	FormatJSON:     "application/json",
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(AllFormats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Options configures a solve.
type Options struct {
	// Formats lists the artifacts to render. Empty means none; the
	// answers are always computed.
	Formats []string `json:"formats,omitempty"`

	// Detailed adds step distances to the DOT and SVG node labels.
	Detailed bool `json:"detailed,omitempty"`

	// Refresh bypasses cached results and recomputes everything.
	Refresh bool `json:"refresh,omitempty"`

	// Record saves a history record of the solve.
	Record bool `json:"record,omitempty"`

	// Source names where the input came from (file path, "stdin", "api").
	Source string `json:"source,omitempty"`

	// CacheTTL overrides DefaultCacheTTL.
	CacheTTL time.Duration `json:"-"`

	// Logger overrides the runner's logger for this solve.
	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks the formats, removes duplicates and applies
// defaults. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.Formats = dedupe(o.Formats)
	if o.CacheTTL == 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ResultKeyOpts returns the cache key options for a solve result.
func (o *Options) ResultKeyOpts() cache.ResultKeyOpts {
	formats := slices.Clone(o.Formats)
	slices.Sort(formats)
	return cache.ResultKeyOpts{Formats: formats, Detailed: o.Detailed}
}

func dedupe(formats []string) []string {
	var out []string
	for _, f := range formats {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// Result holds the answers and artifacts of a solve.
type Result struct {
	// Hash is the SHA-256 of the raw input.
	Hash string `json:"hash"`

	Width  int `json:"width"`
	Height int `json:"height"`

	Start     grid.Coordinate `json:"start"`
	StartKind string          `json:"start_kind"`

	// LoopLength is the number of tiles on the loop.
	LoopLength int `json:"loop_length"`

	// HalfLength is the step distance to the farthest loop tile.
	HalfLength int `json:"half_length"`

	// InteriorCount is the number of tiles enclosed by the loop.
	InteriorCount int `json:"interior_count"`

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte `json:"artifacts,omitempty"`

	Stats     Stats     `json:"-"`
	CacheInfo CacheInfo `json:"-"`

	// RecordID is the history record saved for this solve, if any.
	RecordID string `json:"record_id,omitempty"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ParseTime    time.Duration
	WalkTime     time.Duration
	ClassifyTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks which stages hit the cache.
type CacheInfo struct {
	SnapshotHit bool // Whether the walked grid came from cache
	ResultHit   bool // Whether the whole result came from cache
}
