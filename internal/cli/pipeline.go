package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shaiso/dpctl/internal/activator"
	"github.com/shaiso/dpctl/internal/domain"
	"github.com/shaiso/dpctl/internal/manager"
)

// NewActivateCmd создаёт команду активации pipeline.
func NewActivateCmd(envFn func() *Env, outputFn func() *Output) *cobra.Command {
	var name string
	var id string
	var ignoreParameters bool

	cmd := &cobra.Command{
		Use:   "activate",
		Short: "Activate a pipeline by name, id or interactive choice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env := envFn()
			out := outputFn()

			m, err := env.NewManager(ctx, false)
			if err != nil {
				return err
			}

			selected, ok := m.Resolve(name, id)
			if !ok {
				if name != "" || id != "" {
					out.Error(fmt.Sprintf("pipeline %q not found in %s", firstNonEmpty(name, id), env.Config.CacheFile))
				}
				selected, ok = m.SelectInteractively(env.In, out.PromptWriter())
			}
			if !ok {
				return manager.ErrNoSelection
			}

			act, err := env.NewActivator(ctx)
			if err != nil {
				return err
			}

			result := act.Activate(ctx, activator.RequestFor(selected, ignoreParameters))
			if !result.Succeeded() {
				return fmt.Errorf("activate pipeline %s: %s", result.PipelineID, result.Error)
			}

			if result.WithParameters {
				out.Success(fmt.Sprintf("Pipeline %s activated with parameters.", result.PipelineID))
			} else {
				out.Success(fmt.Sprintf("Pipeline %s activated without parameters.", result.PipelineID))
			}
			return out.Print(
				[]string{"ACTIVATION_ID", "PIPELINE_ID", "NAME", "WITH_PARAMETERS", "STATUS"},
				[][]string{activationRow(result)},
				result,
			)
		},
	}

	cmd.Flags().StringVar(&name, "pipeline-name", "", "Name of the pipeline to activate (case-insensitive)")
	cmd.Flags().StringVar(&id, "pipeline-id", "", "ID of the pipeline to activate")
	cmd.Flags().BoolVar(&ignoreParameters, "ignore-parameters", false, "Activate without parameter overrides")

	return cmd
}

// NewListCmd создаёт команду вывода кэшированных pipelines.
func NewListCmd(envFn func() *Env, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached pipelines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := envFn().NewManager(cmd.Context(), false)
			if err != nil {
				return err
			}

			return printPipelines(outputFn(), m.Pipelines())
		},
	}
}

// NewRefreshCmd создаёт команду пересборки кэша из реестра.
func NewRefreshCmd(envFn func() *Env, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Rebuild the pipeline cache from the registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFn()
			out := outputFn()

			m, err := env.NewManager(cmd.Context(), true)
			if err != nil {
				return err
			}
			if err := m.WriteErr(); err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Pipeline cache rebuilt: %d pipelines in %s", m.Len(), env.Config.CacheFile))
			return printPipelines(out, m.Pipelines())
		},
	}
}

func printPipelines(out *Output, pipelines []domain.Descriptor) error {
	headers := []string{"#", "ID", "NAME", "PARAMETERS"}
	rows := make([][]string, len(pipelines))
	for i, p := range pipelines {
		rows[i] = []string{strconv.Itoa(i + 1), p.ID, p.Name, strconv.Itoa(len(p.Parameters))}
	}
	return out.Print(headers, rows, pipelines)
}

func activationRow(a *domain.Activation) []string {
	return []string{
		a.ID.String(),
		a.PipelineID,
		a.PipelineName,
		strconv.FormatBool(a.WithParameters),
		string(a.Status),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
