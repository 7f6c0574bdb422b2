package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"syndicator/internal/app"
	"syndicator/internal/config"
	"syndicator/internal/logging"
)

var (
	dryRun     bool
	force      bool
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "syndicator <content-dir>",
	Short: "Syndicate Hugo blog posts to Bluesky and Mastodon",
	Long: `Scans a Hugo content tree for posts marked with syndicate_to,
publishes their excerpts to the requested platforms, and writes a
syndicated marker back into each post once every target succeeded.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load(configFile)
		logger := logging.New(cfg.Logging.Level)

		application := app.New(cfg, logger)
		err := application.Run(cmd.Context(), app.RunOptions{
			ContentRoot: args[0],
			DryRun:      dryRun,
			Force:       force,
		})
		if err != nil {
			logger.Error("run failed", "error", err)
		}
		return err
	},
}

func init() {
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Simulate syndication without posting or marking")
	rootCmd.Flags().BoolVar(&force, "force", false, "Skip URL reachability verification")
	rootCmd.Flags().StringVar(&configFile, "config", "", "Path to YAML config file (defaults to $SYNDICATOR_CONFIG)")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
