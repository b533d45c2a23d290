package convert

import (
	"strconv"
	"strings"
)

// NormalizeDecimal strips spurious trailing zeros (and a bare trailing
// decimal point) from numeric-looking values, so a count exported as "5.0"
// merges cleanly with one exported as "5": "5.0" -> "5", "5.10" -> "5.1".
// Non-numeric values are returned with surrounding whitespace trimmed.
func NormalizeDecimal(value string) string {
	trimmed := strings.TrimSpace(value)
	if !strings.Contains(trimmed, ".") {
		return trimmed
	}
	if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
		return trimmed
	}
	out := strings.TrimRight(trimmed, "0")
	out = strings.TrimRight(out, ".")
	if out == "" || out == "-" {
		return "0"
	}
	return out
}
