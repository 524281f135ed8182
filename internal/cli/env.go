package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/datapipeline"
	"github.com/aws/aws-sdk-go/service/lambda"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/shaiso/dpctl/internal/activator"
	"github.com/shaiso/dpctl/internal/cache"
	"github.com/shaiso/dpctl/internal/cloud"
	"github.com/shaiso/dpctl/internal/config"
	"github.com/shaiso/dpctl/internal/manager"
	"github.com/shaiso/dpctl/internal/mq"
	"github.com/shaiso/dpctl/internal/registry"
	"github.com/shaiso/dpctl/internal/repo"
	"github.com/shaiso/dpctl/internal/telemetry"
)

// ErrHistoryDisabled — история активаций недоступна без DB_URL.
var ErrHistoryDisabled = errors.New("activation history requires DB_URL")

// DataPipelineAPI — операции AWS Data Pipeline, нужные реестру и активации.
type DataPipelineAPI interface {
	registry.API
	activator.API
}

// Env — зависимости команд.
type Env struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *telemetry.Metrics

	// In — ввод оператора для интерактивного выбора.
	In io.Reader

	// Клиенты AWS. Если nil — создаются из сессии при первом обращении.
	DataPipeline DataPipelineAPI
	Lambda       cloud.LambdaAPI
	S3           cloud.S3API

	sess    *session.Session
	closers []func()
}

// NewEnv создаёт Env для процесса.
func NewEnv(cfg *config.Config, logger *slog.Logger, metrics *telemetry.Metrics) *Env {
	return &Env{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics,
		In:      os.Stdin,
	}
}

func (e *Env) session() (*session.Session, error) {
	if e.sess != nil {
		return e.sess, nil
	}
	sess, err := cloud.NewSession(e.Config.AWS)
	if err != nil {
		return nil, err
	}
	e.sess = sess
	return sess, nil
}

func (e *Env) dataPipeline() (DataPipelineAPI, error) {
	if e.DataPipeline == nil {
		sess, err := e.session()
		if err != nil {
			return nil, err
		}
		e.DataPipeline = datapipeline.New(sess)
	}
	return e.DataPipeline, nil
}

// NewManager создаёт Manager для файла кэша из конфигурации.
func (e *Env) NewManager(ctx context.Context, rebuild bool) (*manager.Manager, error) {
	api, err := e.dataPipeline()
	if err != nil {
		return nil, err
	}

	return manager.New(ctx, manager.Config{
		Path: e.Config.CacheFile,
		Registry: registry.NewClient(registry.Config{
			API:     api,
			Logger:  e.Logger,
			Metrics: e.Metrics,
		}),
		Store:   cache.NewStore(e.Logger),
		Logger:  e.Logger,
		Metrics: e.Metrics,
		Rebuild: rebuild,
	})
}

// NewActivator создаёт Activator. История и события подключаются,
// если заданы DB_URL и RABBITMQ_URL; недоступность любого из них
// только логируется.
func (e *Env) NewActivator(ctx context.Context) (*activator.Activator, error) {
	api, err := e.dataPipeline()
	if err != nil {
		return nil, err
	}

	cfg := activator.Config{
		API:     api,
		Logger:  e.Logger,
		Metrics: e.Metrics,
	}

	if e.Config.DBURL != "" {
		activations, err := e.ActivationRepo(ctx)
		if err != nil {
			e.Logger.Warn("activation history not available", "error", err)
		} else {
			cfg.Recorder = activations
		}
	}

	if e.Config.RabbitMQURL != "" {
		publisher, err := e.publisher(ctx)
		if err != nil {
			e.Logger.Warn("RabbitMQ not available, activation events disabled", "error", err)
		} else {
			cfg.Notifier = publisher
		}
	}

	return activator.New(cfg), nil
}

// ActivationRepo подключается к Postgres и возвращает репозиторий истории.
func (e *Env) ActivationRepo(ctx context.Context) (*repo.ActivationRepo, error) {
	if e.Config.DBURL == "" {
		return nil, ErrHistoryDisabled
	}

	pool, err := repo.NewPool(ctx, e.Config.DBURL)
	if err != nil {
		return nil, err
	}
	e.closers = append(e.closers, pool.Close)

	activations := repo.NewActivationRepo(pool)
	if err := activations.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return activations, nil
}

func (e *Env) publisher(ctx context.Context) (*mq.Publisher, error) {
	conn, err := mq.NewConnection(e.Config.RabbitMQURL, e.Logger)
	if err != nil {
		return nil, err
	}
	e.closers = append(e.closers, func() {
		if err := conn.Close(); err != nil {
			e.Logger.Warn("failed to close RabbitMQ connection", "error", err)
		}
	})

	if err := mq.SetupTopology(ctx, conn); err != nil {
		return nil, fmt.Errorf("setup topology: %w", err)
	}
	return mq.NewPublisher(conn, e.Logger), nil
}

// NewInvoker создаёт Invoker функции-триггера.
func (e *Env) NewInvoker() (*cloud.Invoker, error) {
	if e.Lambda == nil {
		sess, err := e.session()
		if err != nil {
			return nil, err
		}
		e.Lambda = lambda.New(sess)
	}
	return cloud.NewInvoker(e.Lambda, e.Config.Lambda.FunctionTemplate, e.Logger), nil
}

// NewMover создаёт Mover объектов S3.
func (e *Env) NewMover() (*cloud.Mover, error) {
	if e.S3 == nil {
		sess, err := e.session()
		if err != nil {
			return nil, err
		}
		e.S3 = s3.New(sess)
	}
	return cloud.NewMover(e.S3, e.Logger), nil
}

// Close освобождает соединения и записывает метрики.
func (e *Env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
	e.closers = nil

	if err := e.Metrics.WriteTextfile(e.Config.MetricsTextfile); err != nil {
		e.Logger.Warn("failed to write metrics", "error", err)
	}
}
