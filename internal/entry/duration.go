package entry

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// durationPattern matches durations in Xh, Ym, Zs or any combination in that
// order (e.g. "2h", "30m", "45s", "1h30m", "1h2m3s")
var durationPattern = regexp.MustCompile(`^(?:(\d+)h)?(?:(\d+)m)?(?:(\d+)s)?$`)

// MaxDuration is the maximum allowed duration per entry (24 hours)
const MaxDuration = 24 * time.Hour

// ParseDuration parses a duration string in Xh, Ym, Zs or combined format.
// Valid inputs: "2h" (2 hours), "30m", "45s", "1h30m", "1h2m3s"
// Invalid inputs: "invalid", "", "0h", "0m0s", values exceeding 24h
func ParseDuration(input string) (time.Duration, error) {
	matches := durationPattern.FindStringSubmatch(input)
	if matches == nil || input == "" {
		return 0, fmt.Errorf("invalid duration format: expected Xh, Ym, Zs or a combination like 1h30m, got %q", input)
	}

	var total time.Duration
	units := []time.Duration{time.Hour, time.Minute, time.Second}
	for i, unit := range units {
		if matches[i+1] == "" {
			continue
		}
		value, err := strconv.Atoi(matches[i+1])
		if err != nil {
			return 0, fmt.Errorf("invalid duration format: expected Xh, Ym, Zs or a combination like 1h30m, got %q", input)
		}
		total += time.Duration(value) * unit
	}

	if total == 0 {
		return 0, fmt.Errorf("invalid duration: duration cannot be zero")
	}
	if total > MaxDuration {
		return 0, fmt.Errorf("invalid duration: exceeds maximum of 24 hours")
	}

	return total, nil
}

// FormatDuration renders a duration for display, omitting zero components.
// Examples: "45s", "30m", "2h", "1h 30m", "1h 2m 3s"
func FormatDuration(d time.Duration) string {
	d = d.Truncate(time.Second)
	if d <= 0 {
		return "0s"
	}

	hours := int(d / time.Hour)
	minutes := int(d % time.Hour / time.Minute)
	seconds := int(d % time.Minute / time.Second)

	out := ""
	if hours > 0 {
		out = fmt.Sprintf("%dh", hours)
	}
	if minutes > 0 {
		if out != "" {
			out += " "
		}
		out += fmt.Sprintf("%dm", minutes)
	}
	if seconds > 0 {
		if out != "" {
			out += " "
		}
		out += fmt.Sprintf("%ds", seconds)
	}
	return out
}
