package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/khanhnv2901/srcaudit-cli/internal/depcheck"
	"github.com/khanhnv2901/srcaudit-cli/internal/registry"
	"github.com/khanhnv2901/srcaudit-cli/internal/scanner"
	"github.com/khanhnv2901/srcaudit-cli/internal/shared/constants"
)

// CLIConfig captures runtime configuration shared across commands.
type CLIConfig struct {
	Scan ScanRuntimeConfig
	Deps DepsRuntimeConfig
}

// ScanRuntimeConfig consolidates settings for the pattern-scan phase.
type ScanRuntimeConfig struct {
	Concurrency int
	Extensions  []string
	ExcludeDirs []string
	Categories  []scanner.CategoryConfig
}

// DepsRuntimeConfig consolidates settings for the dependency check.
type DepsRuntimeConfig struct {
	Manifest        string
	Concurrency     int
	RateLimit       int
	TimeoutSecs     int
	BaseURL         string
	ProgressEnabled bool
}

var cliConfig = newCLIConfig()

func newCLIConfig() *CLIConfig {
	return &CLIConfig{
		Scan: ScanRuntimeConfig{
			Concurrency: constants.DefaultScanConcurrency,
			Extensions:  scanner.DefaultExtensions(),
			ExcludeDirs: scanner.DefaultExcludeMarkers(),
		},
		Deps: DepsRuntimeConfig{
			Manifest:    constants.DefaultManifestName,
			Concurrency: constants.DefaultDepsConcurrency,
			RateLimit:   constants.DefaultRegistryRPS,
			TimeoutSecs: int(constants.DefaultRegistryTimeout / time.Second),
			BaseURL:     constants.DefaultRegistryBaseURL,
		},
	}
}

// applyConfigDefaults merges config file values into the runtime config
// when the user did not explicitly override the corresponding flag.
// Category definitions are validated here so a malformed config file
// fails the run before any scanning starts.
func applyConfigDefaults(cmd *cobra.Command) error {
	if viper.IsSet("extensions") {
		cliConfig.Scan.Extensions = viper.GetStringSlice("extensions")
	}
	if viper.IsSet("exclude_dirs") {
		cliConfig.Scan.ExcludeDirs = viper.GetStringSlice("exclude_dirs")
	}
	if viper.IsSet("categories") {
		var categories []scanner.CategoryConfig
		if err := viper.UnmarshalKey("categories", &categories); err != nil {
			return &ConfigError{Key: "categories", Err: err}
		}
		cliConfig.Scan.Categories = categories
	}

	if viper.IsSet("registry.base_url") {
		cliConfig.Deps.BaseURL = viper.GetString("registry.base_url")
	}
	if viper.IsSet("registry.timeout_secs") {
		applyIntDefault(depsCmd.Flags(), "timeout", viper.GetInt("registry.timeout_secs"), func(v int) {
			cliConfig.Deps.TimeoutSecs = v
		})
	}
	if viper.IsSet("defaults.scan_concurrency") {
		applyIntDefault(scanCmd.Flags(), "concurrency", viper.GetInt("defaults.scan_concurrency"), func(v int) {
			cliConfig.Scan.Concurrency = v
		})
	}
	if viper.IsSet("defaults.deps_concurrency") {
		applyIntDefault(depsCmd.Flags(), "concurrency", viper.GetInt("defaults.deps_concurrency"), func(v int) {
			cliConfig.Deps.Concurrency = v
		})
	}
	if viper.IsSet("defaults.rate_limit") {
		applyIntDefault(depsCmd.Flags(), "rate-limit", viper.GetInt("defaults.rate_limit"), func(v int) {
			cliConfig.Deps.RateLimit = v
		})
	}

	return nil
}

func applyIntDefault(flags *pflag.FlagSet, name string, value int, setter func(int)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}

// buildMatcher compiles the merged category set. A bad pattern here is
// a fatal configuration error.
func buildMatcher() (*scanner.Matcher, error) {
	merged := scanner.MergeCategories(scanner.DefaultCategories(), cliConfig.Scan.Categories)
	categories, err := scanner.Compile(merged)
	if err != nil {
		return nil, err
	}
	return scanner.NewMatcher(categories), nil
}

func newWalker(m *scanner.Matcher) *scanner.Walker {
	return &scanner.Walker{
		Matcher:        m,
		Extensions:     cliConfig.Scan.Extensions,
		ExcludeMarkers: cliConfig.Scan.ExcludeDirs,
		Concurrency:    cliConfig.Scan.Concurrency,
		Logger:         logger,
	}
}

func newDepChecker() *depcheck.Checker {
	client := registry.NewClient(
		cliConfig.Deps.BaseURL,
		time.Duration(cliConfig.Deps.TimeoutSecs)*time.Second,
		cliConfig.Deps.RateLimit,
	)
	return &depcheck.Checker{
		Registry:    client,
		Concurrency: cliConfig.Deps.Concurrency,
		Logger:      logger,
	}
}
