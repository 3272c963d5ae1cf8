package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"megasena-monitor/feature/bets"

	"github.com/spf13/cobra"
)

var (
	betNumbers []int
	betStart   int
	betRepeat  int
)

// betsCmd is the parent command for bet management.
var betsCmd = &cobra.Command{
	Use:   "bets",
	Short: "Manage registered bets",
}

var betsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a bet",
	Long: `Registers 6 to 15 numbers between 1 and 60 for --repeat consecutive draws.

Example:
  bets add --numbers 5,12,23,34,45,58 --start 2650 --repeat 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBets(cmd, func(ctx context.Context, svc *bets.Service) error {
			view, err := svc.Create(ctx, bets.CreateRequest{Numbers: betNumbers, StartDraw: betStart, Repeat: betRepeat})
			if err != nil {
				return err
			}
			fmt.Printf("Registered bet %d: %s draws %d..%d\n", view.ID, joinInts(view.Numbers), view.StartDraw, view.EndDraw)
			return nil
		})
	},
}

var betsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bets and their outcomes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBets(cmd, func(ctx context.Context, svc *bets.Service) error {
			views, err := svc.List(ctx)
			if err != nil {
				return err
			}
			for _, v := range views {
				fmt.Printf("#%d [%s] draws %d..%d\n", v.ID, joinInts(v.Numbers), v.StartDraw, v.EndDraw)
				for _, n := range v.SubscribedDraws() {
					o, ok := v.Outcomes[n]
					if !ok {
						fmt.Printf("  %d: pending\n", n)
						continue
					}
					fmt.Printf("  %d: %d hits (%s)\n", n, o.Hits, o.Tier)
				}
			}
			return nil
		})
	},
}

var betsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a bet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid bet id %q", args[0])
		}
		return withBets(cmd, func(ctx context.Context, svc *bets.Service) error {
			if err := svc.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Deleted bet %d\n", id)
			return nil
		})
	},
}

func withBets(cmd *cobra.Command, fn func(ctx context.Context, svc *bets.Service) error) error {
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
	return fn(ctx, rt.bets.Service())
}

func joinInts(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = fmt.Sprintf("%02d", n)
	}
	return strings.Join(parts, " ")
}

func init() {
	betsAddCmd.Flags().IntSliceVar(&betNumbers, "numbers", nil, "Selected numbers, comma separated")
	betsAddCmd.Flags().IntVar(&betStart, "start", 0, "First draw number")
	betsAddCmd.Flags().IntVar(&betRepeat, "repeat", 1, "Number of consecutive draws")
	_ = betsAddCmd.MarkFlagRequired("numbers")
	_ = betsAddCmd.MarkFlagRequired("start")

	betsCmd.AddCommand(betsAddCmd, betsListCmd, betsDeleteCmd)
	RootCmd.AddCommand(betsCmd)
}
