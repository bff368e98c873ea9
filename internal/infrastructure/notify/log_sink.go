// Package notify contiene sinks de eventos que escriben en el log estructurado.
package notify

import (
	"context"

	"github.com/rs/zerolog"

	appnotify "github.com/jhoicas/supply-tracker/internal/application/notify"
)

var (
	_ appnotify.ActivityNotifier = (*LogActivityNotifier)(nil)
	_ appnotify.AlertSink        = (*LogAlertSink)(nil)
)

// LogActivityNotifier registra cada actividad como una línea de log.
type LogActivityNotifier struct {
	log zerolog.Logger
}

// NewLogActivityNotifier construye el notifier.
func NewLogActivityNotifier(log zerolog.Logger) *LogActivityNotifier {
	return &LogActivityNotifier{log: log.With().Str("sink", "activity").Logger()}
}

// Record implementa ActivityNotifier.
func (n *LogActivityNotifier) Record(_ context.Context, action string, meta map[string]any) error {
	n.log.Info().Str("action", action).Fields(meta).Msg("actividad")
	return nil
}

// LogAlertSink registra alertas de stock bajo; danger se registra como error.
type LogAlertSink struct {
	log zerolog.Logger
}

// NewLogAlertSink construye el sink.
func NewLogAlertSink(log zerolog.Logger) *LogAlertSink {
	return &LogAlertSink{log: log.With().Str("sink", "alert").Logger()}
}

// Raise implementa AlertSink.
func (s *LogAlertSink) Raise(_ context.Context, title, message, severity, icon string) error {
	ev := s.log.Warn()
	if severity == "danger" {
		ev = s.log.Error()
	}
	ev.Str("title", title).Str("severity", severity).Str("icon", icon).Msg(message)
	return nil
}
