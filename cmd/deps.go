package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/khanhnv2901/srcaudit-cli/internal/manifest"
	"github.com/khanhnv2901/srcaudit-cli/internal/report"
)

var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "Check manifest pins against the registry for outdated versions",
	Long: `Parse requirements.txt and query the package registry for the latest
published version of every exact name==version pin. Range pins, extras
and environment markers are out of scope and skipped.

Lookups run concurrently under a shared rate limit with a bounded
timeout per request; a failed lookup means "latest unknown" for that one
entry and never aborts the check.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		pins, err := manifest.Parse(cliConfig.Deps.Manifest)
		if err != nil {
			return err
		}

		checker := newDepChecker()
		var progress *progressPrinter
		if cliConfig.Deps.ProgressEnabled && !jsonOutput {
			progress = newProgressPrinter(len(pins), "deps")
			checker.Progress = func(name string, resolved bool) {
				progress.Increment(resolved)
			}
			progress.Start()
		}

		result := checker.CheckPins(ctx, pins)
		if progress != nil {
			progress.Stop()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if jsonOutput {
			if err := report.RenderJSON(os.Stdout, nil, result); err != nil {
				return err
			}
		} else {
			report.Render(os.Stdout, nil, result)
			printSummary(nil, result)
		}
		return issuesExitError(nil, result)
	},
}

func init() {
	depsCmd.Flags().StringVarP(&cliConfig.Deps.Manifest, "manifest", "m", cliConfig.Deps.Manifest, "dependency manifest to check")
	depsCmd.Flags().IntVar(&cliConfig.Deps.Concurrency, "concurrency", cliConfig.Deps.Concurrency, "maximum concurrent registry lookups")
	depsCmd.Flags().IntVar(&cliConfig.Deps.RateLimit, "rate-limit", cliConfig.Deps.RateLimit, "registry lookups per second")
	depsCmd.Flags().IntVar(&cliConfig.Deps.TimeoutSecs, "timeout", cliConfig.Deps.TimeoutSecs, "per-lookup timeout in seconds")
	depsCmd.Flags().BoolVar(&cliConfig.Deps.ProgressEnabled, "progress", false, "show lookup progress")
}
