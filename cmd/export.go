package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glasspay/paytrack/config"
	"github.com/glasspay/paytrack/export"
	"github.com/glasspay/paytrack/store/sqlite"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:       "export {work|payments}",
	Short:     "Export records to stdout",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"work", "payments"},
	RunE:      runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, html")
}

func runExport(cmd *cobra.Command, args []string) error {
	format := export.Format(exportFormat)
	if !format.Valid() {
		return fmt.Errorf("unknown format %q: want csv or html", exportFormat)
	}

	backend, err := openBackend()
	if err != nil {
		return err
	}
	defer backend.Close()

	ctx := context.Background()
	switch args[0] {
	case "payments":
		ledger, err := backend.LoadLedger(ctx)
		if err != nil {
			return err
		}
		return export.Payments(os.Stdout, ledger, format)
	default: // work
		days, err := backend.LoadDays(ctx)
		if err != nil {
			return err
		}
		return export.WorkData(os.Stdout, days, format)
	}
}

// openBackend opens the configured SQLite database for read-side commands.
func openBackend() (*sqlite.Backend, error) {
	cfg := config.Load()
	backend, err := sqlite.New(cfg.DBPath, cfg.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.DBPath, err)
	}
	return backend, nil
}
