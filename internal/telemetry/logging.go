package telemetry

import (
	"io"
	"log/slog"
	"strings"
)

// ParseLevel определяет уровень логирования по строке.
// Возможные значения: DEBUG, INFO, WARN, ERROR
// По умолчанию: INFO
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger создаёт логгер, пишущий в w.
//
// Формат вывода:
//   - "json" — JSON формат для сбора логов
//   - "text" (по умолчанию) — человекочитаемый формат для оператора
func NewLogger(w io.Writer, level, format string) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// Discard возвращает логгер, отбрасывающий все записи.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// WithPipeline возвращает логгер с добавленными pipeline_id и pipeline_name.
func WithPipeline(logger *slog.Logger, pipelineID, pipelineName string) *slog.Logger {
	l := logger.With("pipeline_id", pipelineID)
	if pipelineName != "" {
		l = l.With("pipeline_name", pipelineName)
	}
	return l
}

// WithActivationID возвращает логгер с добавленным activation_id.
func WithActivationID(logger *slog.Logger, activationID string) *slog.Logger {
	return logger.With("activation_id", activationID)
}
