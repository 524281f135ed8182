// dpctl — инструмент командной строки для активации pipelines
// AWS Data Pipeline по имени, без запоминания идентификаторов.
//
// Использование:
//
//	dpctl [--config-file PATH] [--json] <command> [flags]
//
// Команды:
//
//	activate  Активация pipeline (по имени, id или интерактивно)
//	list      Список pipelines из кэша
//	refresh   Пересборка кэша из реестра
//	history   История активаций (DB_URL)
//	lambda    Вызов функций-триггеров
//	s3        Перенос объектов S3 по манифесту
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shaiso/dpctl/internal/cli"
	"github.com/shaiso/dpctl/internal/config"
	"github.com/shaiso/dpctl/internal/telemetry"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	logger := telemetry.NewLogger(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	env := cli.NewEnv(cfg, logger, telemetry.NewMetrics())

	var jsonOutput bool

	rootCmd := &cobra.Command{
		Use:           "dpctl",
		Short:         "dpctl — activate AWS Data Pipelines by name",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfg.CacheFile, "config-file", cfg.CacheFile, "Path to the pipeline cache JSON file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	envFn := func() *cli.Env { return env }
	outputFn := func() *cli.Output { return cli.NewOutput(jsonOutput) }

	rootCmd.AddCommand(
		cli.NewActivateCmd(envFn, outputFn),
		cli.NewListCmd(envFn, outputFn),
		cli.NewRefreshCmd(envFn, outputFn),
		cli.NewHistoryCmd(envFn, outputFn),
		cli.NewLambdaCmd(envFn, outputFn),
		cli.NewS3Cmd(envFn, outputFn),
	)

	err = rootCmd.ExecuteContext(ctx)
	env.Close()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
