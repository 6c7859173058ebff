package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/looptrace/internal/fixtures"
	"github.com/matzehuels/looptrace/pkg/cache"
	"github.com/matzehuels/looptrace/pkg/errors"
	"github.com/matzehuels/looptrace/pkg/history"
	"github.com/matzehuels/looptrace/pkg/interior"
	snapshot "github.com/matzehuels/looptrace/pkg/io"
)

// memCache is an in-memory cache.Cache for tests.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"text", false},
		{"clean", false},
		{"interior", false},
		{"dot", false},
		{"svg", false},
		{"json", false},
		{"png", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want INVALID_FORMAT", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "text"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	opts := Options{Formats: []string{"text", "svg", "text"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if len(opts.Formats) != 2 {
		t.Errorf("duplicate formats should be removed: %v", opts.Formats)
	}
	if opts.CacheTTL != DefaultCacheTTL {
		t.Errorf("CacheTTL = %v, want %v", opts.CacheTTL, DefaultCacheTTL)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// Second call is a no-op
	opts.Formats = append(opts.Formats, "bogus")
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call should be idempotent: %v", err)
	}
}

func TestResultKeyOptsOrderIndependent(t *testing.T) {
	a := Options{Formats: []string{"svg", "text"}}
	b := Options{Formats: []string{"text", "svg"}}
	k := cache.NewDefaultKeyer()
	if k.ResultKey("h", a.ResultKeyOpts()) != k.ResultKey("h", b.ResultKeyOpts()) {
		t.Error("format order should not change the result key")
	}
	if a.Formats[0] != "svg" {
		t.Error("ResultKeyOpts should not reorder the options")
	}
}

func TestSolve_Fixtures(t *testing.T) {
	runner := NewRunner(nil, nil, nil, nil)
	ctx := context.Background()

	for _, f := range fixtures.All {
		t.Run(f.Name, func(t *testing.T) {
			res, err := runner.Solve(ctx, []byte(f.Input), Options{})
			if err != nil {
				t.Fatalf("Solve() error: %v", err)
			}
			if res.HalfLength != f.HalfLength {
				t.Errorf("HalfLength = %d, want %d", res.HalfLength, f.HalfLength)
			}
			if res.InteriorCount != f.Interior {
				t.Errorf("InteriorCount = %d, want %d", res.InteriorCount, f.Interior)
			}
			if res.LoopLength != 2*res.HalfLength {
				t.Errorf("LoopLength = %d, want %d", res.LoopLength, 2*res.HalfLength)
			}
			if len(res.Artifacts) != 0 {
				t.Errorf("no formats requested, got %d artifacts", len(res.Artifacts))
			}
		})
	}
}

func TestSolve_Artifacts(t *testing.T) {
	runner := NewRunner(nil, nil, nil, nil)
	res, err := runner.Solve(context.Background(), []byte(fixtures.SquareJunk), Options{
		Formats: []string{FormatText, FormatClean, FormatInterior, FormatDOT, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}

	if got := string(res.Artifacts[FormatInterior]); got != ".....\n.S─╮.\n.│I│.\n.╰─╯.\n.....\n" {
		t.Errorf("interior artifact =\n%s", got)
	}
	if got := string(res.Artifacts[FormatClean]); !strings.Contains(got, ".│.│.") {
		t.Errorf("clean artifact =\n%s", got)
	}
	if got := string(res.Artifacts[FormatDOT]); !strings.HasPrefix(got, "graph loop {") {
		t.Errorf("dot artifact =\n%s", got)
	}

	g, err := snapshot.ReadJSON(bytes.NewReader(res.Artifacts[FormatJSON]))
	if err != nil {
		t.Fatalf("json artifact does not import: %v", err)
	}
	if interior.Count(g) != 1 {
		t.Error("json artifact should classify to 1 interior tile")
	}
}

func TestSolve_GridErrors(t *testing.T) {
	runner := NewRunner(nil, nil, nil, nil)
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"empty", "", errors.ErrCodeMalformedGrid},
		{"ragged", "S-7\n|.\n", errors.ErrCodeMalformedGrid},
		{"bad tile", "S-7\n|x|\nL-J\n", errors.ErrCodeMalformedTile},
		{"no start", "F-7\n|.|\nL-J\n", errors.ErrCodeInvalidStart},
		{"forked", fixtures.Forked, errors.ErrCodeInvalidStart},
		{"broken", fixtures.Broken, errors.ErrCodeMalformedLoop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runner.Solve(context.Background(), []byte(tt.input), Options{})
			if !errors.Is(err, tt.code) {
				t.Errorf("Solve() error = %v, want %s", err, tt.code)
			}
			if !errors.IsGridError(err) {
				t.Errorf("IsGridError(%v) = false", err)
			}
		})
	}
}

func TestSolve_InvalidFormat(t *testing.T) {
	runner := NewRunner(nil, nil, nil, nil)
	_, err := runner.Solve(context.Background(), []byte(fixtures.Square), Options{Formats: []string{"png"}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Solve() error = %v, want INVALID_FORMAT", err)
	}
}

func TestSolve_Cache(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	runner := NewRunner(c, nil, nil, nil)
	input := []byte(fixtures.Nested)

	first, err := runner.Solve(ctx, input, Options{Formats: []string{FormatText}})
	if err != nil {
		t.Fatalf("first Solve() error: %v", err)
	}
	if first.CacheInfo.SnapshotHit || first.CacheInfo.ResultHit {
		t.Errorf("first solve should miss: %+v", first.CacheInfo)
	}
	if c.sets != 2 {
		t.Errorf("first solve should store snapshot and result, got %d sets", c.sets)
	}

	second, err := runner.Solve(ctx, input, Options{Formats: []string{FormatText}})
	if err != nil {
		t.Fatalf("second Solve() error: %v", err)
	}
	if !second.CacheInfo.ResultHit {
		t.Error("second solve should hit the result cache")
	}
	if second.InteriorCount != 4 || string(second.Artifacts[FormatText]) != string(first.Artifacts[FormatText]) {
		t.Errorf("cached result differs: %+v", second)
	}

	// A new format reuses the walked grid.
	third, err := runner.Solve(ctx, input, Options{Formats: []string{FormatInterior}})
	if err != nil {
		t.Fatalf("third Solve() error: %v", err)
	}
	if !third.CacheInfo.SnapshotHit || third.CacheInfo.ResultHit {
		t.Errorf("new format should hit only the snapshot: %+v", third.CacheInfo)
	}
	if strings.Count(string(third.Artifacts[FormatInterior]), "I") != 4 {
		t.Errorf("interior artifact from snapshot =\n%s", third.Artifacts[FormatInterior])
	}

	// Refresh recomputes.
	fourth, err := runner.Solve(ctx, input, Options{Formats: []string{FormatText}, Refresh: true})
	if err != nil {
		t.Fatalf("refresh Solve() error: %v", err)
	}
	if fourth.CacheInfo.SnapshotHit || fourth.CacheInfo.ResultHit {
		t.Errorf("refresh should bypass the cache: %+v", fourth.CacheInfo)
	}
}

func TestSolve_CorruptCacheEntry(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	runner := NewRunner(c, nil, nil, nil)
	input := []byte(fixtures.Square)

	hash := cache.Hash(input)
	opts := Options{}
	_ = c.Set(ctx, runner.Keyer.ResultKey(hash, opts.ResultKeyOpts()), []byte("{broken"), 0)
	_ = c.Set(ctx, runner.Keyer.SnapshotKey(hash), []byte(`{"rows":["S"]}`), 0)

	res, err := runner.Solve(ctx, input, opts)
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if res.CacheInfo.SnapshotHit || res.InteriorCount != 1 {
		t.Errorf("corrupt entries should be recomputed: %+v", res)
	}
}

func TestSolve_ForgedSnapshot(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	runner := NewRunner(c, nil, nil, nil)
	input := []byte(fixtures.Square)

	forged := `{"width":5,"height":5,"rows":[".....",".S-7.",".|.|.",".L-J.","....."],` +
		`"start":{"x":1,"y":1},"start_kind":"south-east","loop":[{"x":1,"y":1},{"x":1,"y":0},{"x":2,"y":0}]}`
	_ = c.Set(ctx, runner.Keyer.SnapshotKey(cache.Hash(input)), []byte(forged), 0)

	res, err := runner.Solve(ctx, input, Options{})
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if res.CacheInfo.SnapshotHit {
		t.Error("a snapshot whose loop is not on its rows should be discarded")
	}
	if res.LoopLength != 8 || res.InteriorCount != 1 {
		t.Errorf("LoopLength = %d, InteriorCount = %d; want 8, 1", res.LoopLength, res.InteriorCount)
	}
}

func TestSolveWalked(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	runner := NewRunner(c, nil, nil, nil)

	plain, err := NewRunner(nil, nil, nil, nil).Solve(ctx, []byte(fixtures.Nested), Options{Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	g, l, err := snapshot.ReadWalked(bytes.NewReader(plain.Artifacts[FormatJSON]))
	if err != nil {
		t.Fatalf("ReadWalked() error: %v", err)
	}

	res, err := runner.SolveWalked(ctx, g, l, Options{Formats: []string{FormatInterior}})
	if err != nil {
		t.Fatalf("SolveWalked() error: %v", err)
	}
	if res.HalfLength != 23 || res.InteriorCount != 4 {
		t.Errorf("HalfLength = %d, InteriorCount = %d; want 23, 4", res.HalfLength, res.InteriorCount)
	}
	if res.Hash != cache.Hash([]byte(fixtures.Nested)) {
		t.Error("walked grid should hash like its grid text")
	}

	// The grid text shares the cached result.
	again, err := runner.Solve(ctx, []byte(fixtures.Nested), Options{Formats: []string{FormatInterior}})
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if !again.CacheInfo.ResultHit {
		t.Error("grid text should hit the result cached from the snapshot")
	}
}

func TestSolve_Record(t *testing.T) {
	ctx := context.Background()
	store, err := history.OpenSQLite(ctx, filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error: %v", err)
	}
	runner := NewRunner(newMemCache(), nil, store, nil)
	defer runner.Close()

	input := []byte(fixtures.Squeezed)
	var ids []string
	for i := 0; i < 2; i++ {
		res, err := runner.Solve(ctx, input, Options{Record: true, Source: "squeezed.txt"})
		if err != nil {
			t.Fatalf("Solve() error: %v", err)
		}
		if res.RecordID == "" {
			t.Fatal("Record should set RecordID")
		}
		ids = append(ids, res.RecordID)
	}
	if ids[0] == ids[1] {
		t.Error("a cached solve should still get its own record")
	}

	rec, err := store.Get(ctx, ids[1])
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if rec.HalfLength != 70 || rec.Interior != 8 || rec.Source != "squeezed.txt" {
		t.Errorf("record = %+v", rec)
	}

	res, err := runner.Solve(ctx, input, Options{})
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if res.RecordID != "" {
		t.Error("RecordID should be empty without Record")
	}
}

func TestResultJSON(t *testing.T) {
	runner := NewRunner(nil, nil, nil, nil)
	res, err := runner.Solve(context.Background(), []byte(fixtures.Square), Options{})
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	for _, want := range []string{`"half_length":4`, `"interior_count":1`, `"start_kind":"south-east"`, `"start":{"x":1,"y":1}`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("result JSON missing %s: %s", want, data)
		}
	}
}
