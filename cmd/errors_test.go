package cmd

import (
	"errors"
	"strings"
	"testing"
)

func TestConfigErrorMessageAndUnwrap(t *testing.T) {
	inner := errors.New("yaml: unmarshal failed")
	err := &ConfigError{Key: "categories", Err: inner}

	if !strings.Contains(err.Error(), "categories") {
		t.Errorf("message should name the config key: %s", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("ConfigError must unwrap to its cause")
	}
}
