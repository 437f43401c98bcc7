package log

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// sensitiveKeys are attribute keys whose values are always masked.
// These are the credential-carrying values this tool can encounter: price
// API keys from the environment and any auth headers configured for the
// scraped site.
var sensitiveKeys = map[string]bool{
	"authorization":     true,
	"cookie":            true,
	"set-cookie":        true,
	"x-api-key":         true,
	"x-cg-demo-api-key": true,
	"x-cg-pro-api-key":  true,
	"api_key":           true,
	"apikey":            true,
	"api-key":           true,
	"token":             true,
	"access_token":      true,
	"password":          true,
	"secret":            true,
}

// MaskValue replaces sensitive attribute values.
const MaskValue = "***REDACTED***"

// RedactHandler wraps an slog.Handler and masks sensitive attribute values
// before passing records to the underlying handler. It works with any
// underlying handler (text, JSON) and integrates with the standard slog API.
type RedactHandler struct {
	handler slog.Handler
}

// NewRedactHandler creates a RedactHandler wrapping handler.
// If handler is nil, slog.Default().Handler() is used.
func NewRedactHandler(handler slog.Handler) *RedactHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &RedactHandler{handler: handler}
}

// Enabled delegates to the underlying handler.
func (h *RedactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record's attributes and forwards it.
func (h *RedactHandler) Handle(ctx context.Context, r slog.Record) error {
	masked := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(h.maskAttr(a))
		return true
	})
	return h.handler.Handle(ctx, masked)
}

// WithAttrs returns a new handler with masked attributes added.
func (h *RedactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	maskedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		maskedAttrs[i] = h.maskAttr(a)
	}
	return &RedactHandler{handler: h.handler.WithAttrs(maskedAttrs)}
}

// WithGroup returns a new handler with the given group name.
func (h *RedactHandler) WithGroup(name string) slog.Handler {
	return &RedactHandler{handler: h.handler.WithGroup(name)}
}

// maskAttr masks a single attribute, recursing into groups.
func (h *RedactHandler) maskAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		maskedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			maskedAttrs[i] = h.maskAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(maskedAttrs...)}
	}

	keyLower := strings.ToLower(a.Key)
	if sensitiveKeys[keyLower] || containsSensitiveKeyword(keyLower) {
		return slog.String(a.Key, MaskValue)
	}

	return a
}

// containsSensitiveKeyword matches keys like "price_api_key" that embed a
// credential keyword. The bare "key" keyword is deliberately excluded to
// avoid false positives such as "dedup_key".
func containsSensitiveKeyword(key string) bool {
	for _, keyword := range []string{"password", "secret", "token", "api_key", "apikey"} {
		if strings.Contains(key, keyword) {
			return true
		}
	}
	return false
}

// NewLogger creates a *slog.Logger writing text records to w through the
// redacting handler. Verbose selects debug level; otherwise warnings and up.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	textHandler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewRedactHandler(textHandler))
}
