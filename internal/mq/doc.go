// Package mq публикует события об активации pipeline в RabbitMQ.
//
// Структура:
//   - connection.go — соединение с RabbitMQ
//   - topology.go   — объявление exchange, queue, binding
//   - publisher.go  — публикация сообщений
//
// Типы сообщений:
//   - activation.succeeded — pipeline активирован
//   - activation.failed    — активация завершилась ошибкой
//
// Exchanges:
//   - dpctl.activations (topic) → очередь activations.audit [activation.*]
//
// Публикация опциональна: без RABBITMQ_URL события не отправляются.
package mq
