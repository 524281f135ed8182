package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActivationStatus — итог запроса на активацию pipeline.
type ActivationStatus string

const (
	// ActivationStatusSucceeded — удалённый сервис принял активацию.
	ActivationStatusSucceeded ActivationStatus = "SUCCEEDED"

	// ActivationStatusFailed — удалённый вызов завершился ошибкой.
	ActivationStatusFailed ActivationStatus = "FAILED"
)

// Activation — одна попытка активации pipeline.
//
// Активация выполняется ровно один раз: повтор неидемпотентного
// удалённого вызова остаётся на усмотрение оператора.
type Activation struct {
	// ID — локальный идентификатор попытки (для логов, истории и событий).
	ID uuid.UUID `json:"id"`

	// PipelineID — активируемый pipeline.
	PipelineID string `json:"pipeline_id"`

	// PipelineName — имя pipeline на момент активации (может быть пустым).
	PipelineName string `json:"pipeline_name,omitempty"`

	// WithParameters — true, если запрос содержал переопределения параметров.
	WithParameters bool `json:"with_parameters"`

	// Parameters — переопределения, отправленные в запросе.
	// Пусто, если WithParameters == false.
	Parameters []Parameter `json:"parameters,omitempty"`

	// Status — итог активации.
	Status ActivationStatus `json:"status"`

	// Error — текст ошибки удалённого вызова.
	Error string `json:"error,omitempty"`

	// CreatedAt — время отправки запроса.
	CreatedAt time.Time `json:"created_at"`
}

// NewActivation создаёт Activation для pipeline с новым ID.
func NewActivation(pipelineID string) *Activation {
	return &Activation{
		ID:         uuid.New(),
		PipelineID: pipelineID,
		CreatedAt:  time.Now(),
	}
}

// MarkSucceeded переводит активацию в статус SUCCEEDED.
func (a *Activation) MarkSucceeded() {
	a.Status = ActivationStatusSucceeded
	a.Error = ""
}

// MarkFailed переводит активацию в статус FAILED с ошибкой.
func (a *Activation) MarkFailed(err string) {
	a.Status = ActivationStatusFailed
	a.Error = err
}

// Succeeded возвращает true, если активация прошла успешно.
func (a *Activation) Succeeded() bool {
	return a.Status == ActivationStatusSucceeded
}
