package cloud

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3API — операции S3, нужные Mover.
type S3API interface {
	CopyObjectWithContext(ctx aws.Context, input *s3.CopyObjectInput, opts ...request.Option) (*s3.CopyObjectOutput, error)
	DeleteObjectWithContext(ctx aws.Context, input *s3.DeleteObjectInput, opts ...request.Option) (*s3.DeleteObjectOutput, error)
}

// ObjectMove — одна строка манифеста: откуда и куда перенести объект.
type ObjectMove struct {
	SourceBucket      string
	SourceKey         string
	DestinationBucket string
	DestinationKey    string
}

// ErrManifest — манифест переноса не разбирается.
var ErrManifest = errors.New("invalid move manifest")

// Validate проверяет, что все четыре поля строки заполнены.
func (mv ObjectMove) Validate() error {
	var missing []string
	if mv.SourceBucket == "" {
		missing = append(missing, "source_bucket")
	}
	if mv.SourceKey == "" {
		missing = append(missing, "source_key")
	}
	if mv.DestinationBucket == "" {
		missing = append(missing, "destination_bucket")
	}
	if mv.DestinationKey == "" {
		missing = append(missing, "destination_key")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: empty %s", ErrManifest, strings.Join(missing, ", "))
	}
	return nil
}

// ReadManifest читает CSV манифест. Первая строка — заголовок, далее
// source_bucket, source_key, destination_bucket, destination_key.
// Строки с пустыми полями возвращаются как есть: их пропускает MoveAll.
func ReadManifest(r io.Reader) ([]ObjectMove, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 4
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifest, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: missing header row", ErrManifest)
	}

	moves := make([]ObjectMove, 0, len(records)-1)
	for _, rec := range records[1:] {
		moves = append(moves, ObjectMove{
			SourceBucket:      strings.TrimSpace(rec[0]),
			SourceKey:         strings.TrimSpace(rec[1]),
			DestinationBucket: strings.TrimSpace(rec[2]),
			DestinationKey:    strings.TrimSpace(rec[3]),
		})
	}
	return moves, nil
}

// MoveSummary — итог переноса по манифесту.
type MoveSummary struct {
	Moved        int // скопировано и удалено
	CopyFailed   int // копирование не удалось, источник не тронут
	DeleteFailed int // скопировано, но источник не удалён
	Skipped      int // строка манифеста с пустыми полями
}

// Failed возвращает число строк, которые не удалось перенести.
func (s MoveSummary) Failed() int {
	return s.CopyFailed + s.DeleteFailed + s.Skipped
}

// Mover переносит объекты S3.
type Mover struct {
	api    S3API
	logger *slog.Logger
}

// NewMover создаёт Mover.
func NewMover(api S3API, logger *slog.Logger) *Mover {
	return &Mover{api: api, logger: logger}
}

// Copy копирует объект.
func (m *Mover) Copy(ctx context.Context, mv ObjectMove) error {
	_, err := m.api.CopyObjectWithContext(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(mv.DestinationBucket),
		Key:        aws.String(mv.DestinationKey),
		CopySource: aws.String(url.PathEscape(mv.SourceBucket + "/" + mv.SourceKey)),
	})
	if err != nil {
		return fmt.Errorf("copy s3://%s/%s to s3://%s/%s: %w",
			mv.SourceBucket, mv.SourceKey, mv.DestinationBucket, mv.DestinationKey, err)
	}
	return nil
}

// MoveAll переносит объекты по очереди. Источник удаляется только после
// успешного копирования. Ошибки по отдельным объектам и неполные строки
// логируются и учитываются в MoveSummary, перенос продолжается.
func (m *Mover) MoveAll(ctx context.Context, moves []ObjectMove) MoveSummary {
	var summary MoveSummary

	for i, mv := range moves {
		if err := mv.Validate(); err != nil {
			summary.Skipped++
			m.logger.Error("skipping manifest row", "row", i+1, "error", err)
			continue
		}

		logger := m.logger.With(
			"source", "s3://"+mv.SourceBucket+"/"+mv.SourceKey,
			"destination", "s3://"+mv.DestinationBucket+"/"+mv.DestinationKey,
		)

		if err := m.Copy(ctx, mv); err != nil {
			summary.CopyFailed++
			logger.Error("move failed, original object not deleted", "error", err)
			continue
		}
		logger.Info("object copied")

		_, err := m.api.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(mv.SourceBucket),
			Key:    aws.String(mv.SourceKey),
		})
		if err != nil {
			summary.DeleteFailed++
			logger.Error("error deleting original object", "error", err)
			continue
		}

		summary.Moved++
		logger.Info("object moved, original deleted")
	}

	return summary
}
