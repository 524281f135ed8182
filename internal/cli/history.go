package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/shaiso/dpctl/internal/domain"
	"github.com/shaiso/dpctl/internal/repo"
)

// activationFinder — чтение одной активации из истории.
type activationFinder interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Activation, error)
}

// NewHistoryCmd создаёт команду вывода истории активаций.
func NewHistoryCmd(envFn func() *Env, outputFn func() *Output) *cobra.Command {
	var pipelineID string
	var activationID string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent pipeline activations (requires DB_URL)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			activations, err := envFn().ActivationRepo(cmd.Context())
			if err != nil {
				return err
			}

			if activationID != "" {
				return showActivation(cmd.Context(), activations, outputFn(), activationID)
			}

			list, err := activations.ListRecent(cmd.Context(), pipelineID, limit)
			if err != nil {
				return err
			}
			return printActivations(outputFn(), list)
		},
	}

	cmd.Flags().StringVar(&pipelineID, "pipeline-id", "", "Filter by pipeline ID")
	cmd.Flags().StringVar(&activationID, "id", "", "Show a single activation by its ID")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of results")
	cmd.MarkFlagsMutuallyExclusive("id", "pipeline-id")

	return cmd
}

func showActivation(ctx context.Context, finder activationFinder, out *Output, rawID string) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("invalid activation id %q: %w", rawID, err)
	}

	a, err := finder.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return fmt.Errorf("activation %s not found", id)
	}
	if err != nil {
		return err
	}
	return printActivations(out, []domain.Activation{*a})
}

func printActivations(out *Output, list []domain.Activation) error {
	headers := []string{"ACTIVATION_ID", "PIPELINE_ID", "NAME", "WITH_PARAMETERS", "STATUS", "CREATED", "ERROR"}
	rows := make([][]string, len(list))
	for i := range list {
		a := &list[i]
		rows[i] = append(activationRow(a), a.CreatedAt.Format(time.RFC3339), a.Error)
	}
	return out.Print(headers, rows, list)
}
