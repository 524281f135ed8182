// Package cli реализует команды dpctl.
//
// # Обзор
//
// dpctl активирует pipelines AWS Data Pipeline по имени или id, не
// требуя помнить идентификаторы: список pipelines кэшируется в
// локальном JSON файле (см. пакет cache) и собирается из реестра
// при первом запуске.
//
// # Ключевые компоненты
//
// ## Env
//
// Зависимости команд: конфигурация, логгер, метрики и клиенты AWS.
// Клиенты создаются лениво; в тестах вместо них подставляются фейки
// (поля DataPipeline, Lambda, S3). История (Postgres) и события
// (RabbitMQ) подключаются, только если заданы DB_URL и RABBITMQ_URL.
//
// ## Output
//
// Форматирование вывода. Поддерживает два режима:
//   - Таблицы (text/tabwriter) — по умолчанию
//   - JSON (json.MarshalIndent) — с флагом --json
//
// Данные выводятся в stdout, сообщения (Success/Error) — в stderr.
//
// ## Commands
//
//   - activate: выбор pipeline (--pipeline-name, --pipeline-id или
//     интерактивно) и активация
//   - list, refresh: просмотр и пересборка кэша
//   - history: история активаций
//   - lambda invoke, s3 move: вспомогательные операции
//
// Каждая команда создаётся через фабричную функцию (NewActivateCmd и т.д.),
// принимающую envFn и outputFn — замыкания для ленивого создания
// Env и Output после парсинга PersistentFlags.
package cli
