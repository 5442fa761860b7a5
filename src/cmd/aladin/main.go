package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "aladin",
	Short:         "Book metadata and cover lookup against the Aladin catalog",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "aladin.yaml", "YAML config file (optional)")
	rootCmd.PersistentFlags().StringVar(&opts.variant, "variant", "", "response format: json or xml (overrides config)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
}

func execute(ctx context.Context) error {
	// Attach subcommands
	rootCmd.ResetCommands()
	rootCmd.AddCommand(newIdentifyCmd())
	rootCmd.AddCommand(newCoverCmd())
	rootCmd.AddCommand(newURLCmd())
	rootCmd.AddCommand(newInfoCmd())
	return rootCmd.ExecuteContext(ctx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := execute(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
