package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"record-compactor/feature/validation"
	"record-compactor/feature/validation/checks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	validateFormat string
	validateFix    bool
)

// validateCmd runs the pre-flight checks.
var validateCmd = &cobra.Command{
	Use:       "validate [disk|config|storage|database]...",
	Short:     "Run pre-flight checks",
	Long:      `Checks disk space, compactor configuration, the artifact bucket and the history table. With no arguments every check runs.`,
	ValidArgs: checks.Names,
	Args:      cobra.OnlyValidArgs,
	RunE:      runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateFormat, "format", "detailed", "Output format: detailed, summary or json")
	validateCmd.Flags().BoolVar(&validateFix, "fix", false, "Create the artifact bucket and prefix when missing")
	RootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	switch validateFormat {
	case "detailed", "summary", "json":
	default:
		return fmt.Errorf("unknown output format %q (want detailed, summary or json)", validateFormat)
	}

	ctx := cmd.Context()
	rt, err := loadRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.close()
	svc := rt.validationService()

	report, err := svc.RunAll(ctx, args...)
	if err != nil {
		return err
	}

	if validateFix {
		if res, ok := report.Check(checks.Storage); ok && !res.Passed {
			rt.log.Info("Fixing artifact storage")
			if err := svc.FixStorage(ctx); err != nil {
				return err
			}
			if report, err = svc.RunAll(ctx, args...); err != nil {
				return err
			}
		}
	}

	switch validateFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	case "summary":
		printValidationSummary(report)
	default:
		printValidationDetailed(report)
	}

	if !report.Valid {
		rt.log.Error("Validation failed", zap.Strings("critical", report.CriticalIssues))
		return fmt.Errorf("%d critical issues", len(report.CriticalIssues))
	}
	return nil
}

func printValidationSummary(r *validation.Report) {
	status := "PASS"
	if !r.Valid {
		status = "FAIL"
	}
	fmt.Printf("%s: %d/%d checks passed, %d critical, %d warnings (%dms)\n",
		status, r.Passed(), len(r.Checks), len(r.CriticalIssues), len(r.Warnings), r.DurationMs)
}

func printValidationDetailed(r *validation.Report) {
	for _, c := range r.Checks {
		mark := "✓"
		switch {
		case c.Skipped:
			mark = "-"
		case !c.Passed:
			mark = "✗"
		}
		fmt.Printf("%s %-9s %s (%dms)\n", mark, c.Name, c.Message, c.DurationMs)
		if len(c.Metadata) > 0 {
			keys := make([]string, 0, len(c.Metadata))
			for k := range c.Metadata {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Printf("    %s: %s\n", k, c.Metadata[k])
			}
		}
	}
	if len(r.CriticalIssues) > 0 {
		fmt.Println("\nCritical issues:")
		for _, issue := range r.CriticalIssues {
			fmt.Println("  - " + issue)
		}
	}
	if len(r.Warnings) > 0 {
		fmt.Println("\nWarnings:")
		for _, w := range r.Warnings {
			fmt.Println("  - " + w)
		}
	}
	if len(r.Recommendations) > 0 {
		fmt.Println("\nRecommendations:")
		for _, rec := range r.Recommendations {
			fmt.Printf("  [%s] %s: %s\n", strings.ToUpper(rec.Priority), rec.Category, rec.Action)
		}
	}
	fmt.Println()
	printValidationSummary(r)
}
