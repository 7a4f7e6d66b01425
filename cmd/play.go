package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/learntwin/internal/app"
	"github.com/abhisek/learntwin/internal/questionbank"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a practice session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

// runPlay loads the question bank, opens the store and launches the UI.
func runPlay(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closer, err := openLogger(cfg, true)
	if err != nil {
		return err
	}
	defer closer.Close()

	bank, err := questionbank.Load(cfg.QuestionsPath)
	if err != nil {
		return err
	}
	logger.Info("question bank loaded", "path", cfg.QuestionsPath, "questions", bank.Len())

	repo, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := app.Run(app.Options{
		Bank:   bank,
		Repo:   repo,
		User:   cfg.User,
		Seed:   cfg.Seed,
		Logger: logger,
	}); err != nil {
		return fmt.Errorf("play: %w", err)
	}
	return nil
}
