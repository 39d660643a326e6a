package engine

import "log/slog"

// LoggingObserver is a simple observer that logs all events using
// structured logging.
type LoggingObserver struct {
	logger *slog.Logger
}

// NewLoggingObserver creates a logging observer. A nil logger falls back
// to slog.Default().
func NewLoggingObserver(logger *slog.Logger) *LoggingObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{logger: logger}
}

// OnEvent implements the Observer interface.
// It logs each event with structured fields for easy filtering and analysis.
func (lo *LoggingObserver) OnEvent(event Event) {
	lo.logger.Info("storage_lifecycle",
		"event", event.Type,
		"op_id", event.OpID,
		"table", event.Table,
		"data", event.Data,
	)
}
