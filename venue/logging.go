package venue

import (
	"context"
	"log/slog"

	"stadium-bar/venue/domain"
)

// LogSubscriber grava um registro estruturado por evento.
// Negações saem em Warn, o resto em Info.
func LogSubscriber(logger *slog.Logger) domain.Subscriber {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ev domain.Event) {
		level := slog.LevelInfo
		if ev.Kind == domain.EntryDenied {
			level = slog.LevelWarn
		}
		attrs := []slog.Attr{
			slog.String("event", ev.Kind.String()),
			slog.Int("occupancy", ev.Occupancy),
			slog.Int("capacity", ev.Capacity),
			slog.String("affiliation", ev.Affiliation.String()),
		}
		if ev.VisitorID != "" {
			attrs = append(attrs, slog.String("visitor", ev.VisitorID))
		}
		logger.LogAttrs(context.Background(), level, ev.Message, attrs...)
	}
}
