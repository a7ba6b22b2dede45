package log

import (
	"context"
	"log/slog"
	"strings"
)

// SlogAdapter mirrors capture events into an operational slog.Logger, one
// record per event. It is what `btmgmt --trace` installs.
type SlogAdapter struct {
	logger *slog.Logger
	level  slog.Level
}

// NewSlogAdapter returns an adapter logging at Debug.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger, level: slog.LevelDebug}
}

// WithLevel returns a copy of the adapter logging at level.
func (a *SlogAdapter) WithLevel(level slog.Level) *SlogAdapter {
	return &SlogAdapter{logger: a.logger, level: level}
}

// Log implements Logger.
func (a *SlogAdapter) Log(event Event) {
	ctx := context.Background()
	if !a.logger.Enabled(ctx, a.level) {
		return
	}

	attrs := make([]slog.Attr, 0, 12)
	attrs = append(attrs,
		slog.String("conn_id", event.ConnectionID),
		slog.String("direction", event.Direction.String()),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	)
	if event.Index != nil {
		attrs = append(attrs, slog.String("index", event.Index.String()))
	}

	switch {
	case event.Frame != nil:
		attrs = event.Frame.appendAttrs(attrs)
	case event.Message != nil:
		attrs = event.Message.appendAttrs(attrs)
	case event.StateChange != nil:
		attrs = event.StateChange.appendAttrs(attrs)
	case event.Error != nil:
		attrs = event.Error.appendAttrs(attrs)
	}

	a.logger.LogAttrs(ctx, a.level, "mgmt "+strings.ToLower(event.Category.String()), attrs...)
}

func (f *FrameEvent) appendAttrs(attrs []slog.Attr) []slog.Attr {
	return append(attrs,
		slog.Int("frame_size", f.Size),
		slog.Any("code", f.Code),
		slog.Bool("truncated", f.Truncated),
	)
}

func (m *MessageEvent) appendAttrs(attrs []slog.Attr) []slog.Attr {
	attrs = append(attrs, slog.String("msg_type", m.Type.String()))
	if m.Opcode != nil {
		attrs = append(attrs, slog.String("opcode", m.Opcode.String()))
	}
	if m.EventCode != nil {
		attrs = append(attrs, slog.String("event", m.EventCode.String()))
	}
	if m.Status != nil {
		attrs = append(attrs, slog.String("status", m.Status.String()))
	}
	if m.Latency != nil {
		attrs = append(attrs, slog.Duration("latency", *m.Latency))
	}
	return attrs
}

func (s *StateChangeEvent) appendAttrs(attrs []slog.Attr) []slog.Attr {
	attrs = append(attrs,
		slog.String("entity", s.Entity.String()),
		slog.String("old_state", s.OldState),
		slog.String("new_state", s.NewState),
	)
	if s.Reason != "" {
		attrs = append(attrs, slog.String("reason", s.Reason))
	}
	return attrs
}

func (e *ErrorEventData) appendAttrs(attrs []slog.Attr) []slog.Attr {
	attrs = append(attrs,
		slog.String("error_layer", e.Layer.String()),
		slog.String("error_msg", e.Message),
	)
	if e.Context != "" {
		attrs = append(attrs, slog.String("error_context", e.Context))
	}
	if e.Code != nil {
		attrs = append(attrs, slog.Int("error_code", *e.Code))
	}
	return attrs
}

var _ Logger = (*SlogAdapter)(nil)
