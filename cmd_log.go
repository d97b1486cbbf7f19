package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/blogem/proof-calc/formatter"
	"github.com/blogem/proof-calc/models"
	"github.com/blogem/proof-calc/services"
)

var (
	logAll    bool
	logNewest bool
	logLimit  int
	logOutput string
)

// logCmd manages the calculation log
var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show, export or clear the calculation log",
	Long: `The log is scoped to --operator unless --all is given. Calculations made
without an operator belong to the empty operator.`,
}

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded calculations",
	Args:  cobra.NoArgs,
	RunE:  runLogList,
}

var logClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete recorded calculations",
	Args:  cobra.NoArgs,
	RunE:  runLogClear,
}

var logExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write recorded calculations as a JSON array, oldest first",
	Args:  cobra.NoArgs,
	RunE:  runLogExport,
}

func init() {
	logCmd.PersistentFlags().BoolVar(&logAll, "all", false, "every operator's entries")
	logListCmd.Flags().BoolVar(&logNewest, "newest", false, "newest entries first")
	logListCmd.Flags().IntVar(&logLimit, "limit", models.DefaultLogLimit, "maximum entries to show (0 for all)")
	logExportCmd.Flags().StringVarP(&logOutput, "output", "o", "", "file to write instead of stdout")

	logCmd.AddCommand(logListCmd, logClearCmd, logExportCmd)
}

// withLogService opens the log store for the duration of fn
func withLogService(fn func(ctx context.Context, logs services.LogService) error) error {
	repos, closeRepos, err := openRepositories(cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepos()

	return fn(context.Background(), services.NewLogService(repos.Log))
}

func runLogList(cmd *cobra.Command, args []string) error {
	return withLogService(func(ctx context.Context, logs services.LogService) error {
		entries, err := logs.List(ctx, models.LogQuery{
			OperatorID:  operatorID,
			All:         logAll,
			NewestFirst: logNewest,
			Limit:       logLimit,
		})
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No calculations recorded.")
			return nil
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "TIME\tMODE\tOPERATOR\tFACTOR\tWATER\tNEW WEIGHT")
		for i := range entries {
			e := &entries[i]
			d := formatter.RenderEntry(e)
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				models.FormatTimestamp(e.Timestamp), e.Mode, e.OperatorID,
				d.ConversionFactor, d.WaterToAdd, d.NewWeight)
		}
		return tw.Flush()
	})
}

func runLogClear(cmd *cobra.Command, args []string) error {
	return withLogService(func(ctx context.Context, logs services.LogService) error {
		removed, err := logs.Clear(ctx, operatorID, logAll)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d entries.\n", removed)
		return nil
	})
}

func runLogExport(cmd *cobra.Command, args []string) error {
	return withLogService(func(ctx context.Context, logs services.LogService) error {
		entries, err := logs.List(ctx, models.LogQuery{OperatorID: operatorID, All: logAll})
		if err != nil {
			return err
		}

		if logOutput == "" {
			return printJSON(cmd.OutOrStdout(), entries)
		}

		f, err := os.Create(logOutput)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		if err := printJSON(f, entries); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	})
}
