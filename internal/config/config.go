package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var AppFs = afero.NewOsFs()

// Config holds the CLI configuration
type Config struct {
	ModelPath  string
	Target     string
	OutputPath string
	OutputDir  string
	Debug      bool
	ListenAddr string
}

// Options controls where configuration is read from
type Options struct {
	// ConfigFile overrides the search for .tables.yaml
	ConfigFile string
	// Flags are bound to their keys when set on the command line
	Flags *pflag.FlagSet
}

// flagKeys maps CLI flag names to configuration keys
var flagKeys = map[string]string{
	"model":      "model_path",
	"target":     "target",
	"output":     "output_path",
	"output-dir": "output_dir",
	"debug":      "debug",
	"addr":       "listen_addr",
}

// Load resolves configuration from flags, TABLES_* environment variables,
// the config file and defaults, in that order of precedence
func Load(opts Options) (*Config, error) {
	v := viper.New()
	v.SetFs(AppFs)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return nil, fmt.Errorf("failed to find home directory: %w", err)
		}
		v.SetConfigName(".tables")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(home)
		v.AddConfigPath(filepath.Join(home, ".config", "tables"))
	}

	loadDotEnv()

	v.SetEnvPrefix("TABLES")
	v.AutomaticEnv()

	v.SetDefault("model_path", "model.yaml")
	v.SetDefault("target", "postgres")
	v.SetDefault("output_path", "")
	v.SetDefault("output_dir", "")
	v.SetDefault("debug", false)
	v.SetDefault("listen_addr", ":8080")

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return &Config{
		ModelPath:  v.GetString("model_path"),
		Target:     v.GetString("target"),
		OutputPath: v.GetString("output_path"),
		OutputDir:  v.GetString("output_dir"),
		Debug:      v.GetBool("debug"),
		ListenAddr: v.GetString("listen_addr"),
	}, nil
}

// loadDotEnv loads .env and then .env.local, which wins. Missing or
// unreadable files are ignored.
func loadDotEnv() {
	if _, err := AppFs.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
	if _, err := AppFs.Stat(".env.local"); err == nil {
		_ = godotenv.Overload(".env.local")
	}
}
