package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"megasena-monitor/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the database and the draw archive",
	Long:  `Checks the bet and draw tables, the archive bucket structure and that every stored draw is archived.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withIntegrity(cmd, func(ctx context.Context, svc *integrity.Service, logg *zap.Logger) error {
			return printJSON(svc.RunAll(ctx))
		})
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withIntegrity(cmd, func(ctx context.Context, svc *integrity.Service, logg *zap.Logger) error {
			report, err := svc.CheckSchema()
			if err != nil {
				return err
			}
			if !report.Matched {
				logg.Warn("Schema does not match the models")
			}
			return printJSON(report)
		})
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix the archive folder structure",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withIntegrity(cmd, func(ctx context.Context, svc *integrity.Service, logg *zap.Logger) error {
			missing, err := svc.CheckStructure(ctx)
			if err != nil {
				return err
			}
			if len(missing) == 0 {
				logg.Info("Structure check passed")
				return nil
			}
			logg.Warn("Missing folders detected", zap.Strings("missing", missing))
			if !fixFlag {
				return nil
			}
			if err := svc.FixStructure(ctx, missing); err != nil {
				return err
			}
			logg.Info("Structure fixed", zap.Strings("fixed", missing))
			return nil
		})
	},
}

// archiveCmd represents the integrity archive command
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Check that every stored draw is archived",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withIntegrity(cmd, func(ctx context.Context, svc *integrity.Service, logg *zap.Logger) error {
			report, err := svc.CheckArchive(ctx)
			if err != nil {
				return err
			}
			logg.Info("Archive check completed",
				zap.Int("stored", report.Stored),
				zap.Int("archived", report.Archived),
				zap.Int("missing", len(report.Missing)),
			)
			if len(report.Missing) == 0 || !fixFlag {
				return printJSON(report)
			}
			written, err := svc.FixArchive(ctx, report.Missing)
			if err != nil {
				return fmt.Errorf("archived %d of %d draws: %w", written, len(report.Missing), err)
			}
			logg.Info("Archive fixed", zap.Int("written", written))
			return nil
		})
	},
}

func withIntegrity(cmd *cobra.Command, fn func(ctx context.Context, svc *integrity.Service, logg *zap.Logger) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.close()
	return fn(ctx, rt.integrity.Service(), rt.log)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create missing folders")
	archiveCmd.Flags().BoolVar(&fixFlag, "fix", false, "Archive stored draws that are missing")

	integrityCmd.AddCommand(schemaCmd, structureCmd, archiveCmd)
	RootCmd.AddCommand(integrityCmd)
}
