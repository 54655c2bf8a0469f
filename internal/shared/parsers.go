// filepath: internal/shared/parsers.go
package shared

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	sizePattern     = regexp.MustCompile(`(?i)^(\d+)\s*([KMGT])?B?$`)
	durationPattern = regexp.MustCompile(`^(\d+)\s*([dhms])$`)
)

var sizeUnits = map[string]int64{
	"":  1,
	"K": 1 << 10,
	"M": 1 << 20,
	"G": 1 << 30,
	"T": 1 << 40,
}

var durationUnits = map[string]time.Duration{
	"d": 24 * time.Hour,
	"h": time.Hour,
	"m": time.Minute,
	"s": time.Second,
}

// ParseSize turns a human size such as "8MB", "512KB" or "100" into bytes.
// Units are binary and case-insensitive; the trailing B is optional.
func ParseSize(s string) (int64, error) {
	m := sizePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("invalid size format: %s", s)
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size number: %s", m[1])
	}
	return n * sizeUnits[strings.ToUpper(m[2])], nil
}

// ParseDuration is time.ParseDuration for a single unit, plus "d" for days.
// "0" means disabled and parses to zero.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "0" {
		return 0, nil
	}
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid duration format: %s", s)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("invalid duration number: %s", m[1])
	}
	return time.Duration(n) * durationUnits[m[2]], nil
}
