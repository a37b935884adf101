package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bobmcallan/xirr/internal/interfaces"
	"github.com/bobmcallan/xirr/internal/models"
)

var (
	calcDayCount string
	calcGuess    float64
	calcFallback bool
	calcHeader   bool
	calcJSON     bool
)

var calcCmd = &cobra.Command{
	Use:   "calc [file.csv]",
	Short: "Compute the XIRR of a CSV schedule",
	Long: `Compute the annualised internal rate of return of a date,amount CSV.
Reads standard input when the file is omitted or "-".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().StringVar(&calcDayCount, "day-count", "", "day count convention: ACT/365F, ACT/360, ACT/365.25")
	calcCmd.Flags().Float64Var(&calcGuess, "guess", 0.1, "starting rate for Newton-Raphson")
	calcCmd.Flags().BoolVar(&calcFallback, "fallback", false, "retry with bisection when Newton-Raphson fails")
	calcCmd.Flags().BoolVar(&calcHeader, "header", false, "skip the first CSV row")
	calcCmd.Flags().BoolVar(&calcJSON, "json", false, "print the result as JSON")
	rootCmd.AddCommand(calcCmd)
}

func runCalc(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	in, err := openInput(firstArg(args))
	if err != nil {
		printError("open input", err)
		return err
	}
	defer in.Close()

	opts := interfaces.CalcOptions{DayCount: calcDayCount}
	if cmd.Flags().Changed("guess") {
		opts.Guess = &calcGuess
	}
	if cmd.Flags().Changed("fallback") {
		opts.BisectionFallback = &calcFallback
	}

	var readErr error
	result, err := svc.Calculate(context.Background(), csvSource(in, calcHeader, &readErr), opts)
	if readErr != nil {
		printError("read input", readErr)
		return readErr
	}
	if err != nil {
		printError("xirr", err)
		return err
	}

	return printXIRR(cmd.OutOrStdout(), result, calcJSON)
}

func printXIRR(w io.Writer, r *models.XIRRResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	fmt.Fprintf(w, "XIRR:      %.6f%%\n", r.Rate*100)
	fmt.Fprintf(w, "Payments:  %d\n", r.Payments)
	fmt.Fprintf(w, "Period:    %s to %s\n", r.Start, r.End)
	fmt.Fprintf(w, "Invested:  %.2f\n", r.Outflow)
	fmt.Fprintf(w, "Returned:  %.2f\n", r.Inflow)
	fmt.Fprintf(w, "Day count: %s\n", r.DayCount)
	return nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
