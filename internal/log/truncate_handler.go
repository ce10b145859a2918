package log

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// verboseKeys contains attribute keys that carry raw external tool
// output. These values can be arbitrarily large (a full nmap run, an
// amass enumeration), so they are always truncated to keep log lines
// readable regardless of the configured limit.
var verboseKeys = map[string]bool{
	"output":  true,
	"stdout":  true,
	"stderr":  true,
	"summary": true,
}

const (
	// MaxAttrLen is the longest string attribute value emitted as-is.
	// Longer values are cut and suffixed with TruncationMark.
	MaxAttrLen = 512

	// verboseAttrLen is the tighter limit applied to raw tool output.
	verboseAttrLen = 120

	// TruncationMark is appended to values that were cut.
	TruncationMark = "...(truncated)"
)

// TruncateHandler wraps an slog.Handler and truncates oversized string
// attribute values before passing records on. Pipeline steps attach
// captured tool output to their log records; without this the log
// would drown in enumeration listings.
//
// Design decision: We use a handler wrapper rather than trimming at
// each call site because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Call sites stay honest: they log the full value, the handler
//     decides what is presentable
type TruncateHandler struct {
	// handler is the underlying slog handler that receives trimmed records.
	handler slog.Handler
}

// NewTruncateHandler creates a TruncateHandler wrapping the given handler.
// If handler is nil, the returned TruncateHandler uses slog.Default().Handler().
func NewTruncateHandler(handler slog.Handler) *TruncateHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &TruncateHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *TruncateHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle trims the record's attributes and passes it to the underlying handler.
func (h *TruncateHandler) Handle(ctx context.Context, r slog.Record) error {
	trimmed := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		trimmed.AddAttrs(h.trimAttr(a))
		return true
	})

	return h.handler.Handle(ctx, trimmed)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are trimmed before being added.
func (h *TruncateHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	trimmedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		trimmedAttrs[i] = h.trimAttr(a)
	}
	return &TruncateHandler{handler: h.handler.WithAttrs(trimmedAttrs)}
}

// WithGroup returns a new handler with the given group name.
func (h *TruncateHandler) WithGroup(name string) slog.Handler {
	return &TruncateHandler{handler: h.handler.WithGroup(name)}
}

// trimAttr truncates a single attribute, recursively handling groups.
func (h *TruncateHandler) trimAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		trimmedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			trimmedAttrs[i] = h.trimAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(trimmedAttrs...)}
	}

	if a.Value.Kind() != slog.KindString {
		return a
	}

	limit := MaxAttrLen
	if verboseKeys[strings.ToLower(a.Key)] {
		limit = verboseAttrLen
	}

	val := a.Value.String()
	if len(val) <= limit {
		return a
	}

	// Cut on a rune boundary so multi-byte output stays valid UTF-8.
	cut := limit
	for cut > 0 && !utf8.RuneStart(val[cut]) {
		cut--
	}
	return slog.String(a.Key, val[:cut]+TruncationMark)
}

// NewLogger creates a *slog.Logger suitable for pipeline runs.
// Output goes to w as text records with oversized attributes truncated.
// When verbose is true the level is Debug, otherwise Info.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	textHandler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewTruncateHandler(textHandler))
}
