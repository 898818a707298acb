package config

import (
	"path/filepath"
	"reflect"
	"strings"
)

const defaultBinary = "vul"

// GetBoolValue retrieves a boolean value from a nested struct based on a dot-separated path.
// It returns the provided defaultValue if the specified field is not explicitly set or is nil.
func GetBoolValue(config interface{}, fieldPath string, defaultValue bool) bool {
	if config == nil {
		return defaultValue
	}

	fields := strings.Split(fieldPath, ".")
	val := reflect.ValueOf(config)

	for _, field := range fields {
		if val.Kind() == reflect.Ptr {
			if val.IsNil() {
				return defaultValue
			}
			val = val.Elem()
		}

		val = val.FieldByName(field)
		if !val.IsValid() {
			return defaultValue
		}
	}

	if val.Kind() == reflect.Ptr && !val.IsNil() {
		return val.Elem().Bool()
	} else if val.Kind() == reflect.Bool {
		return val.Bool()
	}

	return defaultValue
}

// SetThen returns value when it is set, otherwise defaultValue.
func SetThen[T any](value T, defaultValue T) T {
	if reflect.ValueOf(value).IsZero() {
		return defaultValue
	}
	return value
}

// GetBinaryPath returns the scanner binary, falling back to "vul" when unset.
func GetBinaryPath(cfg *Config) string {
	if cfg == nil {
		return defaultBinary
	}
	return SetThen(strings.TrimSpace(cfg.Vul.BinaryPath), defaultBinary)
}

// GetResultsFolder returns the folder holding result documents.
func GetResultsFolder(cfg *Config) string {
	if cfg == nil || cfg.Vul.ResultsFolder == "" {
		return filepath.Join(".vulx", "results")
	}
	return cfg.Vul.ResultsFolder
}

// GetJobs returns the number of scanner processes allowed to run at once.
func GetJobs(cfg *Config) int {
	if cfg == nil {
		return 1
	}
	return SetThen(cfg.Vul.Jobs, 1)
}
