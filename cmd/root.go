package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/khanhnv2901/srcaudit-cli/internal/depcheck"
	"github.com/khanhnv2901/srcaudit-cli/internal/report"
	"github.com/khanhnv2901/srcaudit-cli/internal/scanner"
	sharederrors "github.com/khanhnv2901/srcaudit-cli/internal/shared/errors"
)

var cfgFile string
var logger *zap.SugaredLogger
var verboseLog bool
var exitZero bool
var jsonOutput bool

var rootCmd = &cobra.Command{
	Use:   "srcaudit",
	Short: "Best-effort textual source audit: suspicious patterns & outdated pins (not an AST analyzer)",
	Long: `srcaudit flags source lines matching suspicious regex patterns
(hardcoded credentials, insecure function calls) and checks requirements.txt
pins against the package registry for outdated versions.

Invoked without a subcommand it audits the current working directory:
the pattern scan and the dependency check run concurrently.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init config
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath("$HOME")
			viper.SetConfigName(".srcaudit-cli")
			viper.SetConfigType("yaml")
		}

		_ = viper.ReadInConfig()

		// init logger
		cfg := zap.NewProductionConfig()
		cfg.Encoding = "console"
		if !verboseLog {
			cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		}
		l, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l.Sugar()

		return applyConfigDefaults(cmd)
	},
	RunE: runAudit,
}

// runAudit is the bare invocation: scan the working directory and check
// the manifest next to it, concurrently. The two phases share no state.
func runAudit(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	matcher, err := buildMatcher()
	if err != nil {
		return err
	}

	var (
		wg      sync.WaitGroup
		scanRes *scanner.ScanResult
		scanErr error
		depsRes *depcheck.Result
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		scanRes, scanErr = newWalker(matcher).Walk(ctx, ".")
	}()

	manifestPath := cliConfig.Deps.Manifest
	if _, statErr := os.Stat(manifestPath); statErr == nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, depsErr := newDepChecker().Check(ctx, manifestPath)
			if depsErr != nil {
				logger.Warnf("dependency check skipped: %v", depsErr)
				return
			}
			depsRes = res
		}()
	} else {
		logger.Infof("no %s found, skipping dependency check", manifestPath)
	}

	wg.Wait()
	if scanErr != nil {
		return scanErr
	}

	if jsonOutput {
		if err := report.RenderJSON(os.Stdout, scanRes, depsRes); err != nil {
			return err
		}
	} else {
		report.Render(os.Stdout, scanRes, depsRes)
		printSummary(scanRes, depsRes)
	}
	return issuesExitError(scanRes, depsRes)
}

// issuesExitError maps findings and outdated pins to the documented
// exit-code contract: ErrIssuesFound becomes exit code 1 in Execute.
func issuesExitError(scan *scanner.ScanResult, deps *depcheck.Result) error {
	if exitZero {
		return nil
	}
	issues := 0
	if scan != nil {
		issues += scan.TotalFindings()
	}
	if deps != nil {
		issues += len(deps.Outdated())
	}
	if issues > 0 {
		return ErrIssuesFound
	}
	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, ErrIssuesFound) {
			os.Exit(1)
		}
		fmt.Println(err)
		if errors.Is(err, sharederrors.ErrInvalidPattern) || errors.Is(err, sharederrors.ErrEmptyCategory) {
			os.Exit(3)
		}
		os.Exit(2)
	}
}

func init() {
	// config file flag
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.srcaudit-cli.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verboseLog, "verbose", "v", false, "enable info-level logging")
	rootCmd.PersistentFlags().BoolVar(&exitZero, "exit-zero", false, "exit 0 even when findings or outdated libraries exist")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit a machine-readable JSON report")

	// add subcommands
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(depsCmd)
	rootCmd.AddCommand(versionCmd)
}
