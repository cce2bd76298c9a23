package pagecraft

import (
	"fmt"
	"strings"
)

// Warning describes a non-fatal problem encountered during conversion.
// The affected block is skipped or degraded; the conversion continues.
type Warning struct {
	// Stage names the pipeline stage that raised the warning, such as
	// "extract" or "ocr".
	Stage string

	// Message is a human-readable description of the problem.
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Stage, w.Message)
}

// FormatWarnings renders warnings one per line for logging.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "\n")
}
