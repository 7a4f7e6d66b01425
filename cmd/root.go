package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/learntwin/internal/config"
	"github.com/abhisek/learntwin/internal/logging"
	"github.com/abhisek/learntwin/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "learntwin",
	Short: "Adaptive quiz practice with a learning report",
	Long: "LearnTwin serves quiz questions matched to your recent accuracy, " +
		"records every attempt, and reports where you are weakest.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	f := rootCmd.PersistentFlags()
	f.String("questions", "", "Question bank JSON file (overrides "+config.EnvQuestions+")")
	f.String("store", "", "Attempt store backend: csv or sqlite (overrides "+config.EnvStore+")")
	f.String("log", "", "CSV attempt log (overrides "+config.EnvLog+")")
	f.String("db", "", "SQLite database file (overrides "+config.EnvDB+")")
	f.String("user", "", "Learner ID (overrides "+config.EnvUser+")")
	f.Uint64("seed", 0, "Question selection seed, 0 for random (overrides "+config.EnvSeed+")")
	f.String("log-level", "", "debug, info, warn or error (overrides "+config.EnvLogLevel+")")
	f.String("log-format", "", "text or json (overrides "+config.EnvLogFormat+")")
	f.String("log-file", "", "Diagnostic log file (overrides "+config.EnvLogFile+")")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment and applies any flags that were set on
// the command line, which take precedence.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	str := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	str("questions", &cfg.QuestionsPath)
	str("log", &cfg.LogPath)
	str("db", &cfg.DBPath)
	str("user", &cfg.User)
	cfg.User = strings.TrimSpace(cfg.User)
	str("log-level", &cfg.LogLevel)
	str("log-format", &cfg.LogFormat)
	str("log-file", &cfg.LogFile)
	if flags.Changed("store") {
		b, _ := flags.GetString("store")
		cfg.Store = store.Backend(b)
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openLogger builds the logger described by cfg. When the terminal is
// owned by the UI and no file is configured, logs go to the data dir.
func openLogger(cfg *config.Config, ownsTerminal bool) (*slog.Logger, io.Closer, error) {
	path := cfg.LogFile
	if path == "" && ownsTerminal {
		p, err := config.DefaultLogFile()
		if err != nil {
			return nil, nil, err
		}
		if err := store.EnsureDir(p); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		path = p
	}
	return logging.Open(path, cfg.LogLevel, cfg.LogFormat)
}

// openStore opens the configured attempt store.
func openStore(cfg *config.Config, logger *slog.Logger) (store.AttemptRepo, error) {
	repo, err := store.Open(cfg.Store, cfg.StorePath(), logger)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store, err)
	}
	return repo, nil
}
