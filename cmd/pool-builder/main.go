package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mikey/phish-trainer/internal/core"
	"github.com/mikey/phish-trainer/internal/di"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errNoBackends = errors.New("no generation backend has a credential; set DEEPSEEK_API_KEY or configure llm.backends")

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	flags := &di.CLIFlags{}

	cmd := &cobra.Command{
		Use:   "pool-builder [count]",
		Short: "Generate phishing training samples into the persisted pool",
		Long: `pool-builder generates samples from the scenario seed catalog and
appends them to the pool of the selected language. Existing samples are kept.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := resolveCount(args, flags.Count)
			if err != nil {
				return err
			}
			flags.Count = count

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, flags, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVarP(&flags.Count, "count", "n", 10, "Number of samples to generate")
	cmd.Flags().StringVarP(&flags.Lang, "lang", "l", "zh", "Pool language (zh, en)")
	cmd.Flags().StringVarP(&flags.ConfigFile, "config", "c", "", "Path to config file")
	cmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.Flags().BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")

	return cmd
}

// resolveCount prefers the positional count over --count
func resolveCount(args []string, flagCount int) (int, error) {
	count := flagCount
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, fmt.Errorf("invalid count %q: %w", args[0], err)
		}
		count = n
	}
	if count < 1 {
		return 0, fmt.Errorf("count must be at least 1, got %d", count)
	}
	return count, nil
}

func run(ctx context.Context, flags *di.CLIFlags, out io.Writer) error {
	locale, err := core.ParseLocale(flags.Lang)
	if err != nil {
		return err
	}

	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		return fmt.Errorf("failed to build dependency container: %w", err)
	}

	return container.Invoke(func(
		logger *zap.Logger,
		builder *core.PoolBuilder,
		generator *core.SampleGenerator,
		repo core.PoolRepository,
	) error {
		defer logger.Sync()
		if closer, ok := repo.(interface{ Close() error }); ok {
			defer closer.Close()
		}

		if len(generator.Backends()) == 0 {
			logger.Error("Configuration error", zap.Error(errNoBackends))
			return errNoBackends
		}

		logger.Info("Starting pool build",
			zap.String("locale", string(locale)),
			zap.Int("count", flags.Count),
			zap.Strings("backends", generator.Backends()))

		summary, err := builder.Build(ctx, locale, flags.Count)
		if err != nil {
			logger.Error("Pool build failed", zap.Error(err))
			return err
		}

		printSummary(out, summary)
		return nil
	})
}

func printSummary(out io.Writer, s *core.BuildSummary) {
	fmt.Fprintf(out, "Locale:     %s\n", s.Locale)
	fmt.Fprintf(out, "Requested:  %d\n", s.Requested)
	fmt.Fprintf(out, "Succeeded:  %d\n", s.Succeeded)
	fmt.Fprintf(out, "Added:      %d\n", s.Added)
	fmt.Fprintf(out, "Pool total: %d\n", s.Total)
	fmt.Fprintf(out, "Duration:   %s\n", s.Duration.Round(100*time.Millisecond))
}
