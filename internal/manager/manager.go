package manager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/shaiso/dpctl/internal/cache"
	"github.com/shaiso/dpctl/internal/domain"
	"github.com/shaiso/dpctl/internal/telemetry"
)

// Registry — источник описаний pipeline при сборке кэша.
//
// Реализации best-effort: вместо ошибки возвращают пустой результат.
type Registry interface {
	ListPipelines(ctx context.Context) []domain.PipelineRef
	GetParameters(ctx context.Context, id string) []domain.Parameter
}

// Config — конфигурация Manager.
type Config struct {
	// Path — путь к файлу кэша.
	Path string

	Registry Registry
	Store    *cache.Store
	Logger   *slog.Logger
	Metrics  *telemetry.Metrics

	// Rebuild — собрать кэш из реестра, даже если файл существует.
	Rebuild bool
}

// Manager — кэш pipelines с поиском и интерактивным выбором.
type Manager struct {
	path      string
	registry  Registry
	store     *cache.Store
	logger    *slog.Logger
	metrics   *telemetry.Metrics
	state     State
	pipelines []domain.Descriptor

	// writeErr — ошибка сохранения кэша при сборке (если была).
	writeErr error
}

// New создаёт Manager и переводит его в READY.
//
// Если файла кэша нет (или cfg.Rebuild), кэш собирается из реестра и
// сохраняется; ошибка сохранения только логируется. Иначе кэш читается
// из файла, и ошибка чтения (в том числе cache.ErrConfigFormat) возвращается.
func New(ctx context.Context, cfg Config) (*Manager, error) {
	m := &Manager{
		path:     cfg.Path,
		registry: cfg.Registry,
		store:    cfg.Store,
		logger:   cfg.Logger.With("path", cfg.Path),
		metrics:  cfg.Metrics,
		state:    StateUninitialized,
	}

	exists, err := fileExists(cfg.Path)
	if err != nil {
		return nil, err
	}

	if exists && !cfg.Rebuild {
		if err := m.load(); err != nil {
			return nil, err
		}
	} else {
		m.build(ctx)
	}

	m.state = StateReady
	m.metrics.SetCached(len(m.pipelines))
	return m, nil
}

func (m *Manager) load() error {
	m.state = StateLoading

	pipelines, err := m.store.Load(m.path)
	if err != nil {
		return fmt.Errorf("load pipeline cache: %w", err)
	}

	m.pipelines = pipelines
	m.metrics.CacheEvent("load")
	m.logger.Debug("pipeline cache loaded", "count", len(pipelines))
	return nil
}

func (m *Manager) build(ctx context.Context) {
	m.state = StateBuilding
	m.logger.Info("building pipeline cache from registry")

	refs := m.registry.ListPipelines(ctx)

	pipelines := make([]domain.Descriptor, 0, len(refs))
	for _, ref := range refs {
		if ref.ID == "" {
			m.logger.Warn("skipping pipeline without id", "pipeline_name", ref.Name)
			continue
		}

		params := m.registry.GetParameters(ctx, ref.ID)
		if params == nil {
			params = []domain.Parameter{}
		}

		pipelines = append(pipelines, domain.Descriptor{
			ID:         ref.ID,
			Name:       ref.Name,
			Parameters: params,
		})
	}

	m.pipelines = pipelines
	m.metrics.CacheEvent("build")

	if err := m.store.Save(m.path, pipelines); err != nil {
		m.writeErr = err
		m.metrics.CacheEvent("write_error")
		m.logger.Warn("pipeline cache not persisted, next run will re-fetch from registry", "error", err)
	}
}

// State возвращает текущее состояние.
func (m *Manager) State() State {
	return m.state
}

// WriteErr возвращает ошибку сохранения кэша при сборке или nil.
func (m *Manager) WriteErr() error {
	return m.writeErr
}

// Len возвращает число pipeline в кэше.
func (m *Manager) Len() int {
	return len(m.pipelines)
}

// Pipelines возвращает копию кэша в исходном порядке.
func (m *Manager) Pipelines() []domain.Descriptor {
	out := make([]domain.Descriptor, len(m.pipelines))
	for i, p := range m.pipelines {
		out[i] = p.Clone()
	}
	return out
}

// FindBy возвращает первый pipeline, у которого field совпадает с value
// без учёта регистра.
func (m *Manager) FindBy(field domain.Field, value string) (domain.Descriptor, bool) {
	for _, p := range m.pipelines {
		if p.Matches(field, value) {
			return p.Clone(), true
		}
	}
	return domain.Descriptor{}, false
}

// Resolve ищет pipeline по имени, а если имя не задано — по id.
func (m *Manager) Resolve(name, id string) (domain.Descriptor, bool) {
	switch {
	case name != "":
		return m.FindBy(domain.FieldName, name)
	case id != "":
		return m.FindBy(domain.FieldID, id)
	default:
		return domain.Descriptor{}, false
	}
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat pipeline cache: %w", err)
}
