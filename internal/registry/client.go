package registry

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

// API — операции AWS Data Pipeline, нужные реестру.
type API interface {
	ListPipelinesPagesWithContext(ctx aws.Context, input *datapipeline.ListPipelinesInput, fn func(*datapipeline.ListPipelinesOutput, bool) bool, opts ...request.Option) error
	GetPipelineDefinitionWithContext(ctx aws.Context, input *datapipeline.GetPipelineDefinitionInput, opts ...request.Option) (*datapipeline.GetPipelineDefinitionOutput, error)
}

// Config — конфигурация Client.
type Config struct {
	API     API
	Logger  *slog.Logger
	Metrics *telemetry.Metrics
}

// Client — best-effort клиент реестра.
type Client struct {
	api     API
	logger  *slog.Logger
	metrics *telemetry.Metrics
}

// NewClient создаёт Client.
func NewClient(cfg Config) *Client {
	return &Client{
		api:     cfg.API,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
	}
}

// ListPipelines возвращает все pipeline реестра в порядке, в котором
// их отдал сервис. При ошибке возвращает пустой список.
func (c *Client) ListPipelines(ctx context.Context) []domain.PipelineRef {
	var refs []domain.PipelineRef

	err := c.api.ListPipelinesPagesWithContext(ctx, &datapipeline.ListPipelinesInput{},
		func(page *datapipeline.ListPipelinesOutput, lastPage bool) bool {
			for _, p := range page.PipelineIdList {
				refs = append(refs, domain.PipelineRef{
					ID:   aws.StringValue(p.Id),
					Name: aws.StringValue(p.Name),
				})
			}
			return true
		})
	if err != nil {
		c.metrics.RegistryError("list_pipelines")
		c.logger.Error("error retrieving pipelines",
			"error", fmt.Errorf("%w: list pipelines: %w", ErrRegistryQuery, err),
		)
		return []domain.PipelineRef{}
	}

	if refs == nil {
		refs = []domain.PipelineRef{}
	}
	c.logger.Debug("pipelines listed", "count", len(refs))
	return refs
}

// GetParameters возвращает параметры pipeline id: для каждого parameter
// object — его id и первое строковое значение атрибута ("" если нет).
// При ошибке возвращает пустой список.
func (c *Client) GetParameters(ctx context.Context, id string) []domain.Parameter {
	out, err := c.api.GetPipelineDefinitionWithContext(ctx, &datapipeline.GetPipelineDefinitionInput{
		PipelineId: aws.String(id),
	})
	if err != nil {
		c.metrics.RegistryError("get_parameters")
		c.logger.Error("error retrieving parameters for pipeline",
			"pipeline_id", id,
			"error", fmt.Errorf("%w: get pipeline definition: %w", ErrRegistryQuery, err),
		)
		return []domain.Parameter{}
	}

	params := make([]domain.Parameter, 0, len(out.ParameterObjects))
	for _, obj := range out.ParameterObjects {
		if obj == nil {
			continue
		}
		params = append(params, domain.Parameter{
			ID:          aws.StringValue(obj.Id),
			StringValue: firstStringValue(obj.Attributes),
		})
	}
	return params
}

// firstStringValue возвращает первое заданное строковое значение атрибута.
func firstStringValue(attrs []*datapipeline.ParameterAttribute) string {
	for _, a := range attrs {
		if a != nil && a.StringValue != nil {
			return *a.StringValue
		}
	}
	return ""
}
