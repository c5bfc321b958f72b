package logging

import (
	"context"
	"log/slog"
)

// ComponentKey is the attribute that selects a component level.
const ComponentKey = "component"

// FilteringHandler drops records below the level the Spec assigns to the
// handler's component. The component is taken from a "component"
// attribute added with Logger.With.
type FilteringHandler struct {
	inner     slog.Handler
	spec      Spec
	component string
}

// NewFilteringHandler wraps inner with component filtering.
func NewFilteringHandler(inner slog.Handler, spec Spec) *FilteringHandler {
	return &FilteringHandler{inner: inner, spec: spec}
}

func (h *FilteringHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.spec.LevelFor(h.component).ToSlog()
}

func (h *FilteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if !h.Enabled(ctx, r.Level) {
		return nil
	}
	return h.inner.Handle(ctx, r)
}

func (h *FilteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.inner = h.inner.WithAttrs(attrs)
	for _, a := range attrs {
		if a.Key == ComponentKey {
			clone.component = a.Value.String()
		}
	}
	return &clone
}

func (h *FilteringHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.inner = h.inner.WithGroup(name)
	return &clone
}
