package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/glasspay/paytrack/engine"
)

var reportDate string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the weekly summary for the week containing a date",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportDate, "date", "", "Any date inside the week (YYYY-MM-DD, default today)")
}

func runReport(cmd *cobra.Command, args []string) error {
	var window engine.WeekWindow
	if reportDate == "" {
		window = engine.WeekOf(time.Now())
	} else {
		var err error
		window, err = engine.WeekOfDate(reportDate)
		if err != nil {
			return err
		}
	}

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

	week := engine.WeekData(days, window)
	summary := engine.Summarize(week)

	entry, ok := ledger[window.ID()]
	if !ok {
		entry = engine.EmptyLedgerEntry(window)
	}
	entry = engine.RefreshLedgerEntry(entry, window, summary)

	fmt.Printf("Week %s to %s\n", entry.WeekStart, entry.WeekEnd)
	fmt.Println("--------------------------------")
	for _, day := range week {
		span := ""
		if day.HasCustomTimes() {
			span = fmt.Sprintf("  (%s - %s)", day.StartTime, day.EndTime)
		}
		fmt.Printf("%s  %-9s %5sh  $%8s  %d jobs%s\n",
			day.Date, day.WorkStatus, day.HoursWorked.StringFixed(1),
			day.PayAmount.StringFixed(2), day.JobsCompleted, span)
	}
	fmt.Println("--------------------------------")
	fmt.Printf("Hours: %s  Pay: $%s  Jobs: %d  Avg rate: $%s/hr\n",
		summary.TotalHours.StringFixed(1), summary.TotalPay.StringFixed(2),
		summary.TotalJobs, summary.AvgHourlyRate.StringFixed(2))
	fmt.Printf("Paid: $%s  Due: $%s  (%s)\n",
		entry.AmountPaid.StringFixed(2), entry.AmountDue.StringFixed(2),
		engine.ClassifyPayment(entry.AmountPaid, entry.TotalAmount))
	return nil
}
