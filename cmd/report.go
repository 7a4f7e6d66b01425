package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/learntwin/internal/analytics"
	"github.com/abhisek/learntwin/internal/screens/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a learner's performance report",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.User == "" {
			return errors.New("report: a learner ID is required (--user)")
		}

		logger, closer, err := openLogger(cfg, false)
		if err != nil {
			return err
		}
		defer closer.Close()

		repo, err := openStore(cfg, logger)
		if err != nil {
			return err
		}
		defer repo.Close()

		records, err := repo.LoadAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}
		rep := analytics.Analyze(cfg.User, records, nil)

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rep)
		}

		width, _ := cmd.Flags().GetInt("width")
		lipgloss.Fprintln(cmd.OutOrStdout(), report.Render(rep, width))
		return nil
	},
}

func init() {
	reportCmd.Flags().Bool("json", false, "Print the report as JSON")
	reportCmd.Flags().Int("width", 100, "Render width in columns")
}
