// Command cli runs mean-comparison tests against a local data file.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"gomeans/adapters/excel"
	"gomeans/app"
	"gomeans/domain/means"
	"gomeans/internal/logging"
)

type testFlags struct {
	alpha float64
	iters bool
	order int
	alt   bool
}

func (f testFlags) options() means.Options {
	return means.Options{Alpha: f.alpha, Iters: f.iters, Order: f.order, Alt: f.alt}
}

func registerTestFlags(cmd *cobra.Command, flags *testFlags) {
	defaults := means.DefaultOptions()
	cmd.Flags().Float64Var(&flags.alpha, "alpha", defaults.Alpha, "significance level")
	cmd.Flags().BoolVar(&flags.iters, "iters", defaults.Iters, "approximate the p-value by iteration (james, ozdemir-kurt)")
	cmd.Flags().IntVar(&flags.order, "order", defaults.Order, "james order: 0, 1 or 2")
	cmd.Flags().BoolVar(&flags.alt, "alt", defaults.Alt, "alternative variant (james order 2, hartung-agac-makabi)")
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func main() {
	_ = godotenv.Load()
	var verbose bool

	root := &cobra.Command{
		Use:   "gomeans",
		Short: "One-way comparison of independent group means",
		Long: `gomeans runs one-way mean-comparison tests on grouped observations
read from an .xlsx or .csv file. The first column holds the group label,
the second the score; the first row is a header.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	newService := func() *app.MeansService {
		level := "warn"
		if verbose {
			level = "debug"
		}
		return app.NewMeansService(nil, logging.New(level, true))
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the supported tests",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, kind := range means.AllTests() {
				fmt.Printf("%-22s %s\n", kind, kind.DisplayName())
			}
			return nil
		},
	}

	var runFlags testFlags
	var runTest string
	runCmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Run one test against a data file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := means.ParseTestKind(runTest)
			if err != nil {
				return err
			}
			scores, groups, err := excel.NewObservationReader().Read(args[0])
			if err != nil {
				return err
			}
			run, err := newService().Run(context.Background(), app.RunRequest{
				Scores:  scores,
				Groups:  groups,
				Test:    kind,
				Options: runFlags.options(),
			})
			if err != nil {
				return err
			}
			return printJSON(run.Result)
		},
	}
	runCmd.Flags().StringVarP(&runTest, "test", "t", "", "test selector (see `gomeans list`)")
	_ = runCmd.MarkFlagRequired("test")
	registerTestFlags(runCmd, &runFlags)

	var sweepFlags testFlags
	sweepCmd := &cobra.Command{
		Use:   "sweep <file>",
		Short: "Run every supported test against a data file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scores, groups, err := excel.NewObservationReader().Read(args[0])
			if err != nil {
				return err
			}
			level := "warn"
			if verbose {
				level = "debug"
			}
			log := logging.New(level, true)
			sweep := app.NewSweepService(app.NewMeansService(nil, log), 4, log)
			result, err := sweep.RunAll(context.Background(), scores, groups, sweepFlags.options())
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
	registerTestFlags(sweepCmd, &sweepFlags)

	root.AddCommand(listCmd, runCmd, sweepCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
