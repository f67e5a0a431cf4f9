package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/visigraph/pkg/observability"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with
// the elapsed duration. Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Relaxed 40 vertices (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the attached logger or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability
// =============================================================================

// logHooks reports workbench, cache and store events at debug level.
type logHooks struct {
	logger *log.Logger
}

func installHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetWorkbenchHooks(h)
	observability.SetCacheHooks(h)
	observability.SetStoreHooks(h)
}

func (h logHooks) OnGenerateStart(_ context.Context, generator, params string) {
	h.logger.Debug("Generating", "generator", generator, "params", params)
}

func (h logHooks) OnGenerateComplete(_ context.Context, generator string, vertices, edges int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("Generate failed", "generator", generator, "err", err)
		return
	}
	h.logger.Debug("Generated", "generator", generator, "vertices", vertices, "edges", edges, "took", d.Round(time.Microsecond))
}

func (h logHooks) OnLayoutStart(_ context.Context, algorithm string, vertices int) {
	h.logger.Debug("Layout", "algorithm", algorithm, "vertices", vertices)
}

func (h logHooks) OnLayoutComplete(_ context.Context, algorithm string, d time.Duration, err error) {
	h.logger.Debug("Layout done", "algorithm", algorithm, "took", d.Round(time.Microsecond), "err", err)
}

func (h logHooks) OnExportStart(_ context.Context, format string) {
	h.logger.Debug("Exporting", "format", format)
}

func (h logHooks) OnExportComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	h.logger.Debug("Export done", "format", format, "bytes", size, "took", d.Round(time.Microsecond), "err", err)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("Cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("Cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("Cache set", "type", keyType, "bytes", size)
}

func (h logHooks) OnStoreOperation(_ context.Context, backend, op, id string, d time.Duration, err error) {
	h.logger.Debug("Store", "backend", backend, "op", op, "id", id, "took", d.Round(time.Microsecond), "err", err)
}
