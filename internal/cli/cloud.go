package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shaiso/dpctl/internal/cloud"
)

// NewLambdaCmd создаёт группу команд для функций-триггеров.
func NewLambdaCmd(envFn func() *Env, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lambda",
		Short: "Invoke pipeline trigger functions",
	}

	cmd.AddCommand(newLambdaInvokeCmd(envFn, outputFn))

	return cmd
}

func newLambdaInvokeCmd(envFn func() *Env, outputFn func() *Output) *cobra.Command {
	var env string
	var payload cloud.TriggerPayload

	cmd := &cobra.Command{
		Use:   "invoke",
		Short: "Synchronously invoke the trigger function of an environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputFn()

			invoker, err := envFn().NewInvoker()
			if err != nil {
				return err
			}

			result, err := invoker.Invoke(cmd.Context(), env, payload)
			if err != nil {
				return err
			}

			if err := out.Print(
				[]string{"FUNCTION", "STATUS_CODE", "FUNCTION_ERROR"},
				[][]string{{result.FunctionName, strconv.FormatInt(result.StatusCode, 10), result.FunctionError}},
				result,
			); err != nil {
				return err
			}
			if result.FunctionError != "" {
				return fmt.Errorf("function %s failed: %s", result.FunctionName, result.FunctionError)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&env, "env", "", "Environment name (e.g. dev, prod)")
	cmd.Flags().StringVar(&payload.PipelineName, "pipeline-name", "", "Pipeline name passed to the function")
	cmd.Flags().StringVar(&payload.TimeStamp, "time-stamp", "", "Timestamp passed to the function")
	_ = cmd.MarkFlagRequired("env")
	_ = cmd.MarkFlagRequired("pipeline-name")
	_ = cmd.MarkFlagRequired("time-stamp")

	return cmd
}

// NewS3Cmd создаёт группу команд для объектов S3.
func NewS3Cmd(envFn func() *Env, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "s3",
		Short: "Manage S3 objects around pipelines",
	}

	cmd.AddCommand(newS3MoveCmd(envFn, outputFn))

	return cmd
}

func newS3MoveCmd(envFn func() *Env, outputFn func() *Output) *cobra.Command {
	var manifest string

	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move S3 objects listed in a CSV manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputFn()

			f, err := os.Open(manifest)
			if err != nil {
				return fmt.Errorf("open manifest: %w", err)
			}
			defer f.Close()

			moves, err := cloud.ReadManifest(f)
			if err != nil {
				return err
			}

			mover, err := envFn().NewMover()
			if err != nil {
				return err
			}

			summary := mover.MoveAll(cmd.Context(), moves)

			if err := out.Print(
				[]string{"TOTAL", "MOVED", "COPY_FAILED", "DELETE_FAILED", "SKIPPED"},
				[][]string{{
					strconv.Itoa(len(moves)),
					strconv.Itoa(summary.Moved),
					strconv.Itoa(summary.CopyFailed),
					strconv.Itoa(summary.DeleteFailed),
					strconv.Itoa(summary.Skipped),
				}},
				summary,
			); err != nil {
				return err
			}

			if failed := summary.Failed(); failed > 0 {
				return fmt.Errorf("%d of %d moves failed", failed, len(moves))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&manifest, "manifest", "s3_paths.csv", "CSV manifest: source_bucket,source_key,destination_bucket,destination_key")

	return cmd
}
