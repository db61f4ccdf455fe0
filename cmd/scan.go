package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/khanhnv2901/srcaudit-cli/internal/depcheck"
	"github.com/khanhnv2901/srcaudit-cli/internal/report"
	"github.com/khanhnv2901/srcaudit-cli/internal/scanner"
)

var scanPath string

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a source tree for suspicious patterns",
	Long: `Walk a source tree and flag lines matching the configured regex
categories (hardcoded credentials, insecure function calls by default).

Excluded directories (.git, venv, node_modules, ...) are pruned whole;
only files with allow-listed extensions are inspected. Unreadable files
are skipped with a warning and never abort the scan.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		matcher, err := buildMatcher()
		if err != nil {
			return err
		}

		result, err := newWalker(matcher).Walk(ctx, scanPath)
		if err != nil {
			return err
		}

		if jsonOutput {
			if err := report.RenderJSON(os.Stdout, result, nil); err != nil {
				return err
			}
		} else {
			report.Render(os.Stdout, result, nil)
			printSummary(result, nil)
		}
		return issuesExitError(result, nil)
	},
}

// printSummary writes the colored one-line verdict after the report.
func printSummary(scan *scanner.ScanResult, deps *depcheck.Result) {
	findings := 0
	skipped := 0
	if scan != nil {
		findings = scan.TotalFindings()
		skipped = scan.SkippedFiles
	}
	outdated := 0
	unknown := 0
	if deps != nil {
		outdated = len(deps.Outdated())
		unknown = deps.Unknown
	}

	switch {
	case findings == 0 && outdated == 0:
		fmt.Println(colorSuccess("Audit clean."))
	default:
		fmt.Println(colorError(fmt.Sprintf("Audit flagged %d finding(s), %d outdated librar%s.",
			findings, outdated, pluralY(outdated))))
	}
	if skipped > 0 || unknown > 0 {
		fmt.Println(colorWarn(fmt.Sprintf("Blind spots: %d unreadable file(s), %d unresolved lookup(s).", skipped, unknown)))
	}
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}

func init() {
	scanCmd.Flags().StringVarP(&scanPath, "path", "p", ".", "root directory to scan")
	scanCmd.Flags().IntVar(&cliConfig.Scan.Concurrency, "concurrency", cliConfig.Scan.Concurrency, "maximum files scanned at once")
}
