package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level. It implements
// PipelineHooks, CacheHooks and HTTPHooks.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks creates hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

// Register installs h as the pipeline, cache and HTTP hooks.
func (h *LogHooks) Register() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnParseStart(_ context.Context, inputSize int) {
	h.logger.Debug("parse start", "bytes", inputSize)
}

func (h *LogHooks) OnParseComplete(_ context.Context, width, height int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("parse failed", "duration", d, "err", err)
		return
	}
	h.logger.Debug("parse complete", "width", width, "height", height, "duration", d)
}

func (h *LogHooks) OnWalkStart(_ context.Context, width, height int) {
	h.logger.Debug("walk start", "width", width, "height", height)
}

func (h *LogHooks) OnWalkComplete(_ context.Context, loopLength int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("walk failed", "duration", d, "err", err)
		return
	}
	h.logger.Debug("walk complete", "length", loopLength, "duration", d)
}

func (h *LogHooks) OnClassifyComplete(_ context.Context, interior int, d time.Duration) {
	h.logger.Debug("classify complete", "interior", interior, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "formats", formats, "duration", d, "err", err)
		return
	}
	h.logger.Debug("render complete", "formats", formats, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "path", path, "status", status, "duration", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
