package checkstyle

import (
	"strings"

	"github.com/scan-io-git/scanio-checkstyle/internal/findings"
)

// MapPriority maps a checkstyle severity to a priority.
// The second result is false for anything but error, warning and info (compared case-insensitively).
func MapPriority(severity string) (findings.Priority, bool) {
	switch {
	case strings.EqualFold(severity, "error"):
		return findings.PriorityHigh, true
	case strings.EqualFold(severity, "warning"):
		return findings.PriorityNormal, true
	case strings.EqualFold(severity, "info"):
		return findings.PriorityLow, true
	default:
		return 0, false
	}
}
