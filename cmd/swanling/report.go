package main

import (
	"fmt"
	"time"

	"github.com/cuemby/swanling/pkg/metrics"
	"github.com/cuemby/swanling/pkg/runstore"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Inspect reports from past runs",
}

var reportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List persisted runs, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		store, err := runstore.Open(dataDir)
		if err != nil {
			return fmt.Errorf("failed to open run store: %w", err)
		}
		defer store.Close()

		recs, err := store.List()
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}
		if len(recs) == 0 {
			fmt.Println("No runs found")
			return nil
		}

		fmt.Printf("%-38s %-22s %-12s %-10s %s\n", "ID", "STARTED", "REQUESTS", "FAILURES", "HOST")
		for _, rec := range recs {
			fmt.Printf("%-38s %-22s %-12d %-10d %s\n",
				rec.ID,
				rec.StartedAt.Format("2006-01-02 15:04:05"),
				rec.Report.Summary.TotalRequests,
				rec.Report.Summary.TotalFailures,
				rec.Host,
			)
		}
		return nil
	},
}

var reportShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Render one persisted run's full report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		store, err := runstore.Open(dataDir)
		if err != nil {
			return fmt.Errorf("failed to open run store: %w", err)
		}
		defer store.Close()

		rec, err := store.Get(args[0])
		if err != nil {
			return fmt.Errorf("failed to load run: %w", err)
		}

		fmt.Printf("Run %s (%s, host %s)\n\n", rec.ID, rec.StartedAt.Format(time.RFC3339), rec.Host)
		fmt.Println(rec.Report.Render())
		return nil
	},
}

var reportDiffCmd = &cobra.Command{
	Use:   "diff BASE_ID OTHER_ID",
	Short: "Compare two runs' aggregated p99 response time",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		store, err := runstore.Open(dataDir)
		if err != nil {
			return fmt.Errorf("failed to open run store: %w", err)
		}
		defer store.Close()

		base, err := store.Get(args[0])
		if err != nil {
			return fmt.Errorf("failed to load base run: %w", err)
		}
		other, err := store.Get(args[1])
		if err != nil {
			return fmt.Errorf("failed to load comparison run: %w", err)
		}

		baseP99 := aggregatedP99(base)
		otherP99 := aggregatedP99(other)
		delta := otherP99 - baseP99

		fmt.Printf("%s p99: %d ms\n", base.ID, baseP99)
		fmt.Printf("%s p99: %d ms\n", other.ID, otherP99)
		fmt.Printf("delta: %+d ms\n", delta)
		return nil
	},
}

func aggregatedP99(rec runstore.Record) int64 {
	rows := rec.Report.AdjustedPercentiles
	if len(rows) == 0 {
		rows = rec.Report.RawPercentiles
	}
	for _, row := range rows {
		if row.Name == metrics.AggregatedName {
			return row.Values["99%"]
		}
	}
	return 0
}

func init() {
	for _, cmd := range []*cobra.Command{reportListCmd, reportShowCmd, reportDiffCmd} {
		cmd.Flags().String("data-dir", "./swanling-data", "Directory holding the persisted run store")
	}
	reportCmd.AddCommand(reportListCmd)
	reportCmd.AddCommand(reportShowCmd)
	reportCmd.AddCommand(reportDiffCmd)
}
