package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/learntwin/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <log.csv>",
	Short: "Copy a CSV attempt log into the SQLite store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		logger, closer, err := openLogger(cfg, false)
		if err != nil {
			return err
		}
		defer closer.Close()

		src := store.OpenCSV(args[0], logger)
		if err := store.EnsureDir(cfg.DBPath); err != nil {
			return fmt.Errorf("create db dir: %w", err)
		}
		dst, err := store.OpenSQLite(cfg.DBPath, logger)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer dst.Close()

		res, err := store.Import(cmd.Context(), src, dst)
		if err != nil {
			return fmt.Errorf("import after %d records: %w", res.Copied, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d attempts into %s (%d already present)\n",
			res.Copied, cfg.DBPath, res.Skipped)
		return nil
	},
}
