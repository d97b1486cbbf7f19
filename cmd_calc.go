package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/blogem/proof-calc/engine"
	"github.com/blogem/proof-calc/models"
	"github.com/blogem/proof-calc/services"
)

var (
	calcWeight       string
	calcProof        string
	calcDistWeight   string
	calcDistProof    string
	calcCurrentProof string
	calcTargetProof  string
	calcJSON         bool
)

// calcCmd groups the one-shot calculators
var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Run a calculation against the proof table",
	Long: `Runs one calculation, prints the result and records it in the calculation log.

Proofs are given exactly as read: top and variable current proofs need three
decimal places ("80.620"), bottom distillate proofs need one ("90.5").`,
}

var calcTopCmd = &cobra.Command{
	Use:   "top",
	Short: "Second-round water from weight and a three-place proof",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCalc(cmd, func(ctx context.Context, srvs *services.Services) (*services.Calculation, error) {
			return srvs.Calculation.CalculateTop(ctx, operatorID, &models.TopForm{
				Weight: models.RawValue(calcWeight),
				Proof:  models.RawValue(calcProof),
			})
		})
	},
}

var calcBottomCmd = &cobra.Command{
	Use:   "bottom",
	Short: "First water from distillate weight and a one-place proof",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCalc(cmd, func(ctx context.Context, srvs *services.Services) (*services.Calculation, error) {
			return srvs.Calculation.CalculateBottom(ctx, operatorID, &models.BottomForm{
				DistWeight: models.RawValue(calcDistWeight),
				DistProof:  models.RawValue(calcDistProof),
			})
		})
	},
}

var calcVariableCmd = &cobra.Command{
	Use:   "variable",
	Short: "Water to reach an arbitrary target proof",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCalc(cmd, func(ctx context.Context, srvs *services.Services) (*services.Calculation, error) {
			return srvs.Calculation.CalculateVariable(ctx, operatorID, &models.VariableForm{
				Weight:       models.RawValue(calcWeight),
				CurrentProof: models.RawValue(calcCurrentProof),
				TargetProof:  models.RawValue(calcTargetProof),
			})
		})
	},
}

func init() {
	calcTopCmd.Flags().StringVar(&calcWeight, "weight", "", "weight")
	calcTopCmd.Flags().StringVar(&calcProof, "proof", "", "proof with three decimal places")

	calcBottomCmd.Flags().StringVar(&calcDistWeight, "dist-weight", "", "distillate weight")
	calcBottomCmd.Flags().StringVar(&calcDistProof, "dist-proof", "", "distillate proof with one decimal place")

	calcVariableCmd.Flags().StringVar(&calcWeight, "weight", "", "weight")
	calcVariableCmd.Flags().StringVar(&calcCurrentProof, "current-proof", "", "current proof with three decimal places")
	calcVariableCmd.Flags().StringVar(&calcTargetProof, "target-proof", "", "target proof")

	calcCmd.PersistentFlags().BoolVar(&calcJSON, "json", false, "print the result as JSON")
	calcCmd.AddCommand(calcTopCmd, calcBottomCmd, calcVariableCmd)
}

type calculation func(ctx context.Context, srvs *services.Services) (*services.Calculation, error)

// runCalc loads the table, runs one calculation and prints it
func runCalc(cmd *cobra.Command, calc calculation) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	repos, closeRepos, err := openRepositories(cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepos()

	table, err := loadTable(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to load proof table: %w", err)
	}

	srvs := services.NewServices(repos, engine.New(table), logger)
	result, err := calc(ctx, srvs)
	if err != nil {
		if kind := engine.Kind(err); kind != "internal" {
			return fmt.Errorf("%s: %w", kind, err)
		}
		return err
	}

	if calcJSON {
		return printJSON(cmd.OutOrStdout(), result.Entry)
	}
	printCalculation(cmd.OutOrStdout(), result)
	return nil
}

func printCalculation(out io.Writer, calc *services.Calculation) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	r, d := calc.Result, calc.Display
	fmt.Fprintf(tw, "Mode:\t%s\n", r.Mode)
	fmt.Fprintf(tw, "Proof key:\t%s\n", r.ProofKey)
	fmt.Fprintf(tw, "Conversion factor:\t%s\n", d.ConversionFactor)
	if r.TargetConversionFactor != nil {
		fmt.Fprintf(tw, "Target proof key:\t%s\n", r.TargetProofKey)
		fmt.Fprintf(tw, "Target conversion factor:\t%s\n", d.TargetConversionFactor)
	}
	fmt.Fprintf(tw, "Water to add:\t%s\n", d.WaterToAdd)
	if r.NewWeight != nil {
		fmt.Fprintf(tw, "New weight:\t%s\n", d.NewWeight)
	}
}

func printJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
