package scanner

import (
	"fmt"
	"regexp"

	sharederrors "github.com/khanhnv2901/srcaudit-cli/internal/shared/errors"
)

// CategoryConfig is the externally loadable form of a pattern category:
// a name plus the raw regular expressions that belong to it. Extending
// the scanner is a data change only; matching logic never changes.
type CategoryConfig struct {
	Name     string   `mapstructure:"name" json:"name"`
	Patterns []string `mapstructure:"patterns" json:"patterns"`
}

// Category is a compiled pattern category. A line matches the category
// if any of its expressions matches anywhere in the line.
type Category struct {
	Name     string
	Patterns []*regexp.Regexp
}

// DefaultCategories returns the built-in pattern set. Matching is
// case-sensitive on purpose: it trades false negatives for predictable,
// literal behavior.
func DefaultCategories() []CategoryConfig {
	return []CategoryConfig{
		{
			Name: "Hardcoded credentials",
			Patterns: []string{
				`password\s*=\s*["'][^"']+["']`,
				`passwd\s*=\s*["'][^"']+["']`,
				`secret\s*=\s*["'][^"']+["']`,
				`api_key\s*=\s*["'][^"']+["']`,
				`apikey\s*=\s*["'][^"']+["']`,
				`token\s*=\s*["'][^"']+["']`,
				`aws_secret_access_key`,
				`BEGIN RSA PRIVATE KEY`,
			},
		},
		{
			Name: "Insecure function calls",
			Patterns: []string{
				`\beval\(`,
				`\bexec\(`,
				`os\.system\(`,
				`subprocess\.Popen\(`,
				`pickle\.loads?\(`,
				`yaml\.load\(`,
				`\bgets\(`,
				`\bstrcpy\(`,
				`\bsystem\(`,
			},
		},
	}
}

// MergeCategories overlays user-provided categories on top of the
// defaults. A category with a known name replaces the default pattern
// list wholesale; unknown names are appended in the order given.
func MergeCategories(defaults, overrides []CategoryConfig) []CategoryConfig {
	merged := make([]CategoryConfig, len(defaults))
	copy(merged, defaults)

	for _, override := range overrides {
		replaced := false
		for i := range merged {
			if merged[i].Name == override.Name {
				merged[i] = override
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, override)
		}
	}
	return merged
}

// Compile turns category configs into compiled categories. Any malformed
// expression is a configuration error and must abort startup; scanning
// with a partial pattern set silently hides findings.
func Compile(configs []CategoryConfig) ([]Category, error) {
	categories := make([]Category, 0, len(configs))
	for _, cfg := range configs {
		if len(cfg.Patterns) == 0 {
			return nil, fmt.Errorf("%w: category %q", sharederrors.ErrEmptyCategory, cfg.Name)
		}
		cat := Category{Name: cfg.Name, Patterns: make([]*regexp.Regexp, 0, len(cfg.Patterns))}
		for _, raw := range cfg.Patterns {
			re, err := regexp.Compile(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: category %q pattern %q: %v", sharederrors.ErrInvalidPattern, cfg.Name, raw, err)
			}
			cat.Patterns = append(cat.Patterns, re)
		}
		categories = append(categories, cat)
	}
	return categories, nil
}
