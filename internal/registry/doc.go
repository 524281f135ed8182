// Package registry — клиент реестра pipelines (AWS Data Pipeline).
//
// Client выполняет два запроса к удалённому реестру:
//   - ListPipelines — все видимые pipeline (id, name)
//   - GetParameters — параметры одного pipeline
//
// Оба запроса best-effort: ошибка удалённого вызова логируется,
// учитывается в метриках и заменяется пустым результатом. Ошибка при
// получении параметров одного pipeline не прерывает обновление реестра.
//
// Client зависит только от узкого интерфейса API, который реализует
// *datapipeline.DataPipeline; в тестах подставляется фейк.
package registry
