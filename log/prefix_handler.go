package log

import (
	"context"
	"log/slog"
)

// prefixHandler pulls the value of prefixKey out of the attribute stream and prepends it to
// the message of every record.
type prefixHandler struct {
	next   slog.Handler
	prefix string
}

var _ slog.Handler = (*prefixHandler)(nil)

func newPrefixHandler(next slog.Handler) *prefixHandler {
	return &prefixHandler{next: next}
}

func (h *prefixHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *prefixHandler) Handle(ctx context.Context, record slog.Record) error {
	if h.prefix != "" {
		record.Message = h.prefix + " " + record.Message
	}
	return h.next.Handle(ctx, record)
}

func (h *prefixHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	prefix := h.prefix
	passthrough := make([]slog.Attr, 0, len(attrs))
	for _, attr := range attrs {
		if attr.Key == prefixKey {
			// Later prefixes replace earlier ones, the Logger always sends the full joined chain.
			prefix = attr.Value.String()
			continue
		}
		passthrough = append(passthrough, attr)
	}

	next := h.next
	if len(passthrough) > 0 {
		next = next.WithAttrs(passthrough)
	}
	return &prefixHandler{next: next, prefix: prefix}
}

func (h *prefixHandler) WithGroup(name string) slog.Handler {
	return &prefixHandler{next: h.next.WithGroup(name), prefix: h.prefix}
}
