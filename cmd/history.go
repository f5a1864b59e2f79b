package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glasspay/paytrack/engine"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List all recorded weeks, most recent first",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	backend, err := openBackend()
	if err != nil {
		return err
	}
	defer backend.Close()

	ctx := context.Background()
	days, err := backend.LoadDays(ctx)
	if err != nil {
		return err
	}
	ledger, err := backend.LoadLedger(ctx)
	if err != nil {
		return err
	}

	index := engine.BuildIndex(days, ledger)
	if len(index) == 0 {
		fmt.Println("No historical data available")
		return nil
	}

	for _, e := range index {
		fmt.Printf("%s to %s  $%8s for %sh, %d jobs  [%s, paid $%s]\n",
			e.Window.Start.Format(engine.DateLayout),
			e.Window.End.Format(engine.DateLayout),
			e.Summary.TotalPay.StringFixed(2),
			e.Summary.TotalHours.StringFixed(1),
			e.Summary.TotalJobs,
			e.Status,
			e.AmountPaid.StringFixed(2))
	}
	return nil
}
