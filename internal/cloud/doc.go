// Package cloud — вспомогательные операции AWS вокруг pipelines.
//
// Включает:
//   - session.go — создание AWS сессии из config.AWS
//   - lambda.go  — синхронный вызов функции-триггера для окружения
//   - s3.go      — перенос объектов S3 по CSV-манифесту (copy + delete)
package cloud
