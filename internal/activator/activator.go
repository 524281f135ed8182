package activator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/datapipeline"

	"github.com/shaiso/dpctl/internal/domain"
	"github.com/shaiso/dpctl/internal/telemetry"
)

// API — операция AWS Data Pipeline, нужная для активации.
type API interface {
	ActivatePipelineWithContext(ctx aws.Context, input *datapipeline.ActivatePipelineInput, opts ...request.Option) (*datapipeline.ActivatePipelineOutput, error)
}

// Recorder сохраняет попытки активации (история).
type Recorder interface {
	Create(ctx context.Context, activation *domain.Activation) error
}

// Notifier публикует событие о попытке активации.
type Notifier interface {
	PublishActivation(ctx context.Context, activation *domain.Activation) error
}

// Config — конфигурация Activator.
type Config struct {
	API      API
	Recorder Recorder // опционально
	Notifier Notifier // опционально
	Logger   *slog.Logger
	Metrics  *telemetry.Metrics
}

// Activator активирует pipeline в удалённом сервисе.
type Activator struct {
	api      API
	recorder Recorder
	notifier Notifier
	logger   *slog.Logger
	metrics  *telemetry.Metrics
}

// New создаёт Activator.
func New(cfg Config) *Activator {
	return &Activator{
		api:      cfg.API,
		recorder: cfg.Recorder,
		notifier: cfg.Notifier,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
	}
}

// Request — запрос на активацию.
type Request struct {
	PipelineID   string
	PipelineName string
	Parameters   []domain.Parameter

	// IgnoreParameters — не передавать переопределения параметров,
	// сервис использует сохранённые значения pipeline.
	IgnoreParameters bool
}

// RequestFor строит Request из выбранного Descriptor.
func RequestFor(d domain.Descriptor, ignoreParameters bool) Request {
	return Request{
		PipelineID:       d.ID,
		PipelineName:     d.Name,
		Parameters:       d.Parameters,
		IgnoreParameters: ignoreParameters,
	}
}

// WithParameters возвращает true, если запрос несёт переопределения.
func (r Request) WithParameters() bool {
	return !r.IgnoreParameters && len(r.Parameters) > 0
}

// Activate выполняет одну попытку активации.
//
// Всегда возвращает Activation. При ошибке удалённого вызова статус
// FAILED, а Error содержит текст ошибки (обёрнутой в ErrActivation).
func (a *Activator) Activate(ctx context.Context, req Request) *domain.Activation {
	activation := domain.NewActivation(req.PipelineID)
	activation.PipelineName = req.PipelineName
	activation.WithParameters = req.WithParameters()

	logger := telemetry.WithActivationID(
		telemetry.WithPipeline(a.logger, req.PipelineID, req.PipelineName),
		activation.ID.String(),
	)

	input := &datapipeline.ActivatePipelineInput{
		PipelineId: aws.String(req.PipelineID),
	}
	if activation.WithParameters {
		activation.Parameters = append([]domain.Parameter(nil), req.Parameters...)
		input.ParameterValues = toParameterValues(req.Parameters)
	}

	if _, err := a.api.ActivatePipelineWithContext(ctx, input); err != nil {
		err = fmt.Errorf("%w: %w", ErrActivation, err)
		activation.MarkFailed(err.Error())
		logger.Error("error activating the pipeline", "error", err)
	} else {
		activation.MarkSucceeded()
		logger.Info("pipeline activated", "with_parameters", activation.WithParameters)
	}

	a.metrics.Activation(string(activation.Status))
	a.report(ctx, logger, activation)

	return activation
}

// report сохраняет и публикует результат активации.
func (a *Activator) report(ctx context.Context, logger *slog.Logger, activation *domain.Activation) {
	if a.recorder != nil {
		if err := a.recorder.Create(ctx, activation); err != nil {
			logger.Warn("failed to record activation", "error", err)
		}
	}
	if a.notifier != nil {
		if err := a.notifier.PublishActivation(ctx, activation); err != nil {
			logger.Warn("failed to publish activation event", "error", err)
		}
	}
}

func toParameterValues(params []domain.Parameter) []*datapipeline.ParameterValue {
	values := make([]*datapipeline.ParameterValue, len(params))
	for i, p := range params {
		values[i] = &datapipeline.ParameterValue{
			Id:          aws.String(p.ID),
			StringValue: aws.String(p.StringValue),
		}
	}
	return values
}
