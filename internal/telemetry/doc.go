// Package telemetry обеспечивает наблюдаемость dpctl.
//
// Включает:
//   - logging.go — structured logging через slog
//   - metrics.go — Prometheus метрики
//
// dpctl — короткоживущий процесс, поэтому метрики не отдаются по HTTP,
// а по окончании команды записываются в textfile (формат node_exporter
// textfile collector), если задан DPCTL_METRICS_TEXTFILE.
//
// Логгер создаётся явно и передаётся в компоненты через их Config.
// Глобальный slog.Default не изменяется.
package telemetry
