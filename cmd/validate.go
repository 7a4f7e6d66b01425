package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/learntwin/internal/questionbank"
)

var validateCmd = &cobra.Command{
	Use:   "validate [questions.json]",
	Short: "Check a question bank file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		path := cfg.QuestionsPath
		if len(args) == 1 {
			path = args[0]
		}

		bank, err := questionbank.Load(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		counts := bank.Counts()
		fmt.Fprintf(out, "%s: %d questions\n", path, bank.Len())
		for _, d := range questionbank.AllDifficulties() {
			fmt.Fprintf(out, "  %-8s %d\n", d.Label(), counts[d])
		}
		return nil
	},
}
