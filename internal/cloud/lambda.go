package cloud

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/lambda"
)

// LambdaAPI — операция AWS Lambda, нужная Invoker.
type LambdaAPI interface {
	InvokeWithContext(ctx aws.Context, input *lambda.InvokeInput, opts ...request.Option) (*lambda.InvokeOutput, error)
}

// TriggerPayload — payload функции-триггера pipeline.
type TriggerPayload struct {
	PipelineName string `json:"pipeline_Name"`
	TimeStamp    string `json:"time_stamp"`
}

// InvokeResult — результат синхронного вызова функции.
type InvokeResult struct {
	FunctionName  string
	StatusCode    int64
	FunctionError string
	Payload       json.RawMessage
}

// Invoker вызывает функцию-триггер для окружения.
type Invoker struct {
	api      LambdaAPI
	template string
	logger   *slog.Logger
}

// NewInvoker создаёт Invoker. template — шаблон имени функции,
// например "lambda_test_%s_run".
func NewInvoker(api LambdaAPI, template string, logger *slog.Logger) *Invoker {
	return &Invoker{api: api, template: template, logger: logger}
}

// FunctionName возвращает имя функции для окружения env.
func (i *Invoker) FunctionName(env string) string {
	return fmt.Sprintf(i.template, env)
}

// Invoke синхронно (RequestResponse) вызывает функцию окружения env.
//
// Ошибка удалённого вызова возвращается. Ошибка внутри функции
// (FunctionError) не считается ошибкой вызова: она логируется и
// возвращается в InvokeResult.
func (i *Invoker) Invoke(ctx context.Context, env string, payload TriggerPayload) (*InvokeResult, error) {
	name := i.FunctionName(env)
	logger := i.logger.With("function", name)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	logger.Info("invoking function", "payload", string(body))

	out, err := i.api.InvokeWithContext(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(name),
		InvocationType: aws.String(lambda.InvocationTypeRequestResponse),
		Payload:        body,
	})
	if err != nil {
		logger.Error("error invoking function", "error", err)
		return nil, fmt.Errorf("invoke %s: %w", name, err)
	}

	result := &InvokeResult{
		FunctionName:  name,
		StatusCode:    aws.Int64Value(out.StatusCode),
		FunctionError: aws.StringValue(out.FunctionError),
		Payload:       json.RawMessage(out.Payload),
	}

	logger.Info("function invoked",
		"status_code", result.StatusCode,
		"response", string(out.Payload),
	)
	if result.FunctionError != "" {
		logger.Error("function error", "function_error", result.FunctionError)
	}

	return result, nil
}
