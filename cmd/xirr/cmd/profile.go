package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bobmcallan/xirr/internal/interfaces"
)

var (
	profileOut    string
	profileLow    float64
	profileHigh   float64
	profileSteps  int
	profileHeader bool
)

var profileCmd = &cobra.Command{
	Use:   "profile [file.csv]",
	Short: "Render the NPV profile of a CSV schedule as PNG",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProfile,
}

func init() {
	profileCmd.Flags().StringVarP(&profileOut, "output", "o", "npv-profile.png", "output PNG path")
	profileCmd.Flags().Float64Var(&profileLow, "low", -0.5, "lowest rate sampled")
	profileCmd.Flags().Float64Var(&profileHigh, "high", 1.0, "highest rate sampled")
	profileCmd.Flags().IntVar(&profileSteps, "steps", 61, "number of sampled rates")
	profileCmd.Flags().BoolVar(&profileHeader, "header", false, "skip the first CSV row")
	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
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

	var readErr error
	png, err := svc.RenderProfile(context.Background(), csvSource(in, profileHeader, &readErr), interfaces.ProfileOptions{
		Low:   profileLow,
		High:  profileHigh,
		Steps: profileSteps,
	})
	if readErr != nil {
		printError("read input", readErr)
		return readErr
	}
	if err != nil {
		printError("profile", err)
		return err
	}

	if err := os.WriteFile(profileOut, png, 0644); err != nil {
		printError("write chart", err)
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", profileOut, len(png))
	return nil
}
