package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/joho/godotenv"
	"github.com/rgehrsitz/obbbcalc/internal/calculation"
	"github.com/rgehrsitz/obbbcalc/internal/config"
	"github.com/rgehrsitz/obbbcalc/internal/domain"
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

// rulesEnv names the environment variable holding the default rules file
const rulesEnv = "OBBB_RULES"

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "obbb %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(out, info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "obbb",
		Short: "Qualified overtime deduction estimator",
		Long: `Estimate the qualified overtime and tips deductions for a tax year.

Reported overtime pay (or hours and base rate) is reduced to its premium
portion, summed across tiers and capped by the income phase-out for the
filing status.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(calculateCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(rulesCmd())
	root.AddCommand(extractCmd())
	root.AddCommand(compareCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(wizardCmd())
	root.AddCommand(versionCmd())
	return root
}

// addRulesFlag registers --rules, defaulting to OBBB_RULES
func addRulesFlag(cmd *cobra.Command) {
	cmd.Flags().String("rules", os.Getenv(rulesEnv), "Path to a rules YAML file (default: built-in rules, or $"+rulesEnv+")")
}

func loadRules(cmd *cobra.Command) (*domain.Rules, error) {
	path, _ := cmd.Flags().GetString("rules")
	rules, err := config.ResolveRules(path)
	if err != nil {
		return nil, err
	}
	return rules, nil
}

// newCalculator builds the calculator, attaching the log adapter when --debug is set
func newCalculator(cmd *cobra.Command, rules *domain.Rules) *calculation.DeductionCalculator {
	calc := calculation.NewDeductionCalculator(rules)
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		calc.SetLogger(simpleCLILogger{})
	}
	return calc
}

func newParser(cmd *cobra.Command) *config.InputParser {
	parser := config.NewInputParser()
	if lenient, _ := cmd.Flags().GetBool("lenient"); lenient {
		parser.Mode = domain.MultiplierLenient
	}
	return parser
}

// writeOutput writes data to path, or to the command's stdout when path is empty
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
