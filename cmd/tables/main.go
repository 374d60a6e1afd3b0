package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/KhalidAdan/tables/internal/config"
	"github.com/KhalidAdan/tables/internal/debug"
)

var (
	configFile string
	debugMode  bool
)

var rootCmd = &cobra.Command{
	Use:   "tables",
	Short: "Generate database schemas from an entity-relationship model",
	Long: `Tables turns an entity-relationship model (entities, attributes and relations)
into schema definitions for PostgreSQL, MySQL, SQLite or Prisma.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: .tables.yaml in ., $HOME or $HOME/.config/tables)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
}

// loadConfig resolves configuration for cmd and switches on debug logging
// when requested
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(config.Options{
		ConfigFile: configFile,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return nil, err
	}
	debug.InitWriter(cfg.Debug, cmd.ErrOrStderr())
	debug.Debug("config loaded", "model", cfg.ModelPath, "target", cfg.Target)
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
