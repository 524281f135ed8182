package cache

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/natefinch/atomic"

	"github.com/shaiso/dpctl/internal/domain"
)

// collectionKey — единственный ключ верхнего уровня в файле кэша.
const collectionKey = "pipelines"

// Store читает и пишет файл кэша pipelines.
type Store struct {
	logger *slog.Logger
}

// NewStore создаёт Store.
func NewStore(logger *slog.Logger) *Store {
	return &Store{logger: logger}
}

// Load читает кэш из path.
//
// Возвращает *FormatError (errors.Is(err, ErrConfigFormat)), если
// содержимое не является JSON, нет ключа "pipelines" или у какого-либо
// pipeline пустой pipeline_id.
func (s *Store) Load(path string) ([]domain.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pipeline cache: %w", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, newFormatError(path, "error parsing JSON file", err)
	}

	raw, ok := doc[collectionKey]
	if !ok {
		return nil, newFormatError(path, "missing top-level key "+strconv.Quote(collectionKey), nil)
	}

	var pipelines []domain.Descriptor
	if err := json.Unmarshal(raw, &pipelines); err != nil {
		return nil, newFormatError(path, "invalid "+strconv.Quote(collectionKey)+" collection", err)
	}

	descriptors := make([]domain.Descriptor, len(pipelines))
	for i, p := range pipelines {
		if p.ID == "" {
			return nil, newFormatError(path, fmt.Sprintf("pipeline #%d has empty pipeline_id", i+1), nil)
		}
		if p.Parameters == nil {
			p.Parameters = []domain.Parameter{}
		}
		descriptors[i] = p
	}

	s.logger.Debug("pipeline cache loaded", "path", path, "count", len(descriptors))
	return descriptors, nil
}

// Save записывает весь список descriptors в path, заменяя файл атомарно.
//
// При ошибке возвращает ошибку, обёрнутую в ErrCacheWrite; прежний файл
// (если был) остаётся нетронутым.
func (s *Store) Save(path string, descriptors []domain.Descriptor) error {
	pipelines := make([]domain.Descriptor, len(descriptors))
	for i, d := range descriptors {
		if d.Parameters == nil {
			d.Parameters = []domain.Parameter{}
		}
		pipelines[i] = d
	}

	data, err := json.MarshalIndent(map[string][]domain.Descriptor{collectionKey: pipelines}, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: marshal: %w", ErrCacheWrite, err)
	}
	data = append(data, '\n')

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		s.logger.Error("failed to write pipeline cache", "path", path, "error", err)
		return fmt.Errorf("%w: %w", ErrCacheWrite, err)
	}

	s.logger.Info("pipelines data written", "path", path, "count", len(pipelines))
	return nil
}
