package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/maplepay/payroll-engine/internal/calculation"
	"github.com/maplepay/payroll-engine/internal/config"
	"github.com/maplepay/payroll-engine/internal/output"
	"github.com/maplepay/payroll-engine/internal/rates"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "payrollcalc",
	Short: "Canadian payroll deduction calculator",
	Long:  "Per-period CPP, EI, income tax, vacation and statutory holiday pay for all provinces and territories",
}

func loadStore(cmd *cobra.Command) (*rates.Store, error) {
	ratesFile, _ := cmd.Flags().GetString("rates")
	if ratesFile != "" {
		return rates.NewStoreFromFile(ratesFile)
	}
	return rates.NewDefaultStore()
}

func buildEngine(cmd *cobra.Command) (*calculation.Engine, error) {
	store, err := loadStore(cmd)
	if err != nil {
		return nil, err
	}
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		return calculation.NewEngineWithLogger(store, simpleCLILogger{}), nil
	}
	return calculation.NewEngine(store), nil
}

func formatterByName(name string) output.Formatter {
	switch name {
	case "console":
		return output.ConsoleFormatter{}
	case "csv":
		return output.CSVFormatter{}
	}
	return nil
}

func runPayroll(cmd *cobra.Command, inputFile string, workers int) {
	parser := config.NewInputParser()
	run, err := parser.LoadFromFile(inputFile)
	if err != nil {
		log.Fatal(err)
	}

	engine, err := buildEngine(cmd)
	if err != nil {
		log.Fatal(err)
	}

	result := engine.RunBatch(context.Background(), run.ToBatchItems(), run.TaxYear, workers)

	format, _ := cmd.Flags().GetString("format")
	f := formatterByName(format)
	if f == nil {
		log.Fatalf("unknown output format %q (want console or csv)", format)
	}
	data, err := f.Format(&result)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(string(data))

	if len(result.Failed) > 0 {
		os.Exit(1)
	}
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [input-file]",
	Short: "Calculate payroll deductions for the employees in an input file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runPayroll(cmd, args[0], 1)
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch [input-file]",
	Short: "Calculate a payroll run in parallel across workers",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		workers, _ := cmd.Flags().GetInt("workers")
		runPayroll(cmd, args[0], workers)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate an input file without computing anything",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parser := config.NewInputParser()
		if _, err := parser.LoadFromFile(args[0]); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Input file %s is valid\n", args[0])
	},
}

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Inspect and validate rate tables",
}

var ratesValidateCmd = &cobra.Command{
	Use:   "validate [rates-file]",
	Short: "Validate rate tables (compiled-in, or a YAML override file)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var store *rates.Store
		var err error
		if len(args) == 1 {
			store, err = rates.NewStoreFromFile(args[0])
		} else {
			store, err = rates.NewDefaultStore()
		}
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Rate tables valid for years %v\n", store.Years())
	},
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "payrollcalc %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Version)
			}
		},
	}
}

func init() {
	rootCmd.PersistentFlags().String("rates", "", "YAML file with rate table overrides")
	rootCmd.PersistentFlags().String("format", "console", "Output format (console, csv)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	batchCmd.Flags().Int("workers", 4, "Number of parallel workers")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(validateCmd)
	ratesCmd.AddCommand(ratesValidateCmd)
	rootCmd.AddCommand(ratesCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
