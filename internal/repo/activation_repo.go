package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shaiso/dpctl/internal/domain"
)

const activationsSchema = `
	CREATE TABLE IF NOT EXISTS pipeline_activations (
		id              UUID PRIMARY KEY,
		pipeline_id     TEXT NOT NULL,
		pipeline_name   TEXT,
		with_parameters BOOLEAN NOT NULL DEFAULT FALSE,
		parameters      JSONB,
		status          TEXT NOT NULL,
		error           TEXT,
		created_at      TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS pipeline_activations_pipeline_idx
		ON pipeline_activations (pipeline_id, created_at DESC);
`

// ActivationRepo — репозиторий истории активаций pipeline.
type ActivationRepo struct {
	pool *pgxpool.Pool
}

// NewActivationRepo создаёт новый ActivationRepo.
func NewActivationRepo(pool *pgxpool.Pool) *ActivationRepo {
	return &ActivationRepo{pool: pool}
}

// EnsureSchema создаёт таблицу истории, если её нет.
func (r *ActivationRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, activationsSchema); err != nil {
		return fmt.Errorf("ensure activations schema: %w", err)
	}
	return nil
}

// Create сохраняет попытку активации.
func (r *ActivationRepo) Create(ctx context.Context, a *domain.Activation) error {
	var paramsJSON []byte
	if len(a.Parameters) > 0 {
		var err error
		paramsJSON, err = json.Marshal(a.Parameters)
		if err != nil {
			return fmt.Errorf("marshal parameters: %w", err)
		}
	}

	query := `
		INSERT INTO pipeline_activations
			(id, pipeline_id, pipeline_name, with_parameters, parameters, status, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		a.ID,
		a.PipelineID,
		nullString(a.PipelineName),
		a.WithParameters,
		paramsJSON,
		a.Status,
		nullString(a.Error),
		a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activation: %w", err)
	}
	return nil
}

// GetByID возвращает активацию по ID.
func (r *ActivationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Activation, error) {
	query := `
		SELECT id, pipeline_id, pipeline_name, with_parameters, parameters, status, error, created_at
		FROM pipeline_activations
		WHERE id = $1
	`
	a, err := scanActivation(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get activation by id: %w", err)
	}
	return a, nil
}

// ListRecent возвращает последние активации (новые первыми).
// Если pipelineID не пустой — только для этого pipeline.
func (r *ActivationRepo) ListRecent(ctx context.Context, pipelineID string, limit int) ([]domain.Activation, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, pipeline_id, pipeline_name, with_parameters, parameters, status, error, created_at
		FROM pipeline_activations
		WHERE ($1 = '' OR pipeline_id = $1)
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, pipelineID, limit)
	if err != nil {
		return nil, fmt.Errorf("list activations: %w", err)
	}
	defer rows.Close()

	var activations []domain.Activation
	for rows.Next() {
		a, err := scanActivation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan activation: %w", err)
		}
		activations = append(activations, *a)
	}
	return activations, rows.Err()
}

func scanActivation(row pgx.Row) (*domain.Activation, error) {
	var (
		a          domain.Activation
		name       *string
		errMsg     *string
		paramsJSON []byte
	)
	if err := row.Scan(
		&a.ID,
		&a.PipelineID,
		&name,
		&a.WithParameters,
		&paramsJSON,
		&a.Status,
		&errMsg,
		&a.CreatedAt,
	); err != nil {
		return nil, err
	}

	if name != nil {
		a.PipelineName = *name
	}
	if errMsg != nil {
		a.Error = *errMsg
	}
	if len(paramsJSON) > 0 {
		if err := json.Unmarshal(paramsJSON, &a.Parameters); err != nil {
			return nil, fmt.Errorf("unmarshal parameters: %w", err)
		}
	}
	return &a, nil
}

// nullString возвращает nil для пустой строки (для NULL в БД).
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
