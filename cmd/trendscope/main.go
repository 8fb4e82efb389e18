package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spacesedan/trendscope/config"
	"github.com/spacesedan/trendscope/internal/logging"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
)

var (
	cfg     *config.Config
	profile *config.Profile
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "trendscope",
	Short:         "Score news sentiment and predict keyword trends",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadEnv(config.AppEnv())

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		level, _ := cmd.Flags().GetString("log-level")
		if level == "" {
			level = cfg.LogLevel
		}
		// stdout carries command output.
		slog.SetDefault(slog.New(logging.NewHandler(os.Stderr, level, cfg.LogFormat)))

		profilePath, _ := cmd.Flags().GetString("profile")
		if profilePath == "" {
			profilePath = cfg.ProfilePath
		}
		profile, err = config.LoadProfile(profilePath)
		if err != nil {
			return err
		}
		if locale, _ := cmd.Flags().GetString("locale"); locale != "" {
			profile.Trend.Locale = locale
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	PersistentPreRunE: func(*cobra.Command, []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "trendscope %s (%s)\n", version, commit)
	},
}

func init() {
	rootCmd.PersistentFlags().String("profile", "", "scoring profile file (default: ./trendscope.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("locale", "", "rationale language (en, zh)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(fetchCmd)
}
