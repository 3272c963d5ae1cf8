package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"megasena-monitor/core/reconcile"

	"github.com/spf13/cobra"
)

var verifyJSON bool

// verifyCmd runs one manual reconciliation pass.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check every bet against the published draws",
	Long: `Runs one manual reconciliation pass: every pending draw of every bet is
resolved once, and new outcomes are stored. Draws that have not happened yet
stay pending for a later run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		rt, err := newRuntime(ctx)
		if err != nil {
			return err
		}
		defer rt.close()
		if err := rt.migrate(); err != nil {
			return err
		}

		report, err := rt.verification.Service().Verify(ctx)
		if err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}

		if verifyJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		printReport(report)
		return nil
	},
}

func printReport(r *reconcile.Report) {
	fmt.Println("\n=== Verification Report ===")
	fmt.Printf("Bets: %d\n", r.Bets)
	fmt.Printf("Latest Draw: %d\n", r.LatestDraw)
	fmt.Printf("Draws Needed: %d\n", r.Needed)
	fmt.Printf("Resolved: %d\n", r.Resolved)
	fmt.Printf("Pending: %d %v\n", r.Pending, r.PendingDraws())
	fmt.Printf("Failed: %d %v\n", r.Failed, r.FailedDraws())
	fmt.Printf("New Outcomes: %d\n", r.OutcomesMerged)
	for _, f := range r.BetFailures {
		fmt.Printf("Bet %d not updated: %s\n", f.BetID, f.Error)
	}
	fmt.Printf("Execution Time: %s\n", r.Duration().String())
}

func init() {
	verifyCmd.Flags().BoolVar(&verifyJSON, "json", false, "Print the report as JSON")
	RootCmd.AddCommand(verifyCmd)
}
