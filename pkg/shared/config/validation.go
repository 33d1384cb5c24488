package config

import (
	"fmt"
	"strings"

	"github.com/scan-io-git/scanio-checkstyle/internal/findings"
)

// Formats lists the output formats the parse command can write.
var Formats = []string{"json", "text", "sarif"}

const maxThreads = 64

// ValidateConfig checks if the global configurations have valid values.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := ValidateLoggerConfig(&cfg.Logger); err != nil {
		return fmt.Errorf("YAML global config: logger directive is invalid: %w", err)
	}
	if err := ValidateCheckstyleConfig(&cfg.Checkstyle); err != nil {
		return fmt.Errorf("YAML global config: checkstyle directive is invalid: %w", err)
	}
	return nil
}

// ValidateLoggerConfig checks the log level name.
func ValidateLoggerConfig(loggerConfig *Logger) error {
	if loggerConfig == nil {
		return fmt.Errorf("logger configuration is nil")
	}
	switch strings.ToUpper(loggerConfig.Level) {
	case "", "TRACE", "DEBUG", "INFO", "WARN", "ERROR":
		return nil
	default:
		return fmt.Errorf("unknown log level %q", loggerConfig.Level)
	}
}

// ValidateCheckstyleConfig checks the parse command defaults.
func ValidateCheckstyleConfig(cs *Checkstyle) error {
	if cs == nil {
		return fmt.Errorf("checkstyle configuration is nil")
	}
	if cs.Format != "" && !IsKnownFormat(cs.Format) {
		return fmt.Errorf("format must be one of %s: %q", strings.Join(Formats, ", "), cs.Format)
	}
	if cs.Threads < 0 || cs.Threads > maxThreads {
		return fmt.Errorf("threads must be between 0 and %d: %d", maxThreads, cs.Threads)
	}
	if cs.MinPriority != "" {
		if _, err := findings.ParsePriority(cs.MinPriority); err != nil {
			return fmt.Errorf("min_priority must be one of %s: %w", priorityNames(), err)
		}
	}
	return nil
}

func priorityNames() string {
	names := make([]string, 0, len(findings.Priorities))
	for _, p := range findings.Priorities {
		names = append(names, p.String())
	}
	return strings.Join(names, ", ")
}

// IsKnownFormat reports whether format names a supported output format.
func IsKnownFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}
