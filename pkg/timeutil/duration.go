// Package timeutil parses the compact spans used by the refresh and timeline
// settings, such as "30s", "2w" or "1d12h".
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const day = 24 * time.Hour

var units = []struct {
	suffix byte
	size   time.Duration
}{
	{'w', 7 * day},
	{'d', day},
	{'h', time.Hour},
	{'m', time.Minute},
	{'s', time.Second},
}

func unitSize(c byte) (time.Duration, bool) {
	for _, u := range units {
		if u.suffix == c {
			return u.size, true
		}
	}
	return 0, false
}

// Parse reads a span made of <number><unit> pairs, unit being one of w, d, h,
// m or s. The result must be positive.
func Parse(s string) (time.Duration, error) {
	rest := strings.ToLower(strings.TrimSpace(s))
	if rest == "" {
		return 0, fmt.Errorf("empty span")
	}
	var total time.Duration
	for rest != "" {
		n := 0
		for n < len(rest) && rest[n] >= '0' && rest[n] <= '9' {
			n++
		}
		if n == 0 || n == len(rest) {
			return 0, fmt.Errorf("invalid span %q: want <number><unit>", s)
		}
		size, ok := unitSize(rest[n])
		if !ok {
			return 0, fmt.Errorf("invalid span %q: unknown unit %q", s, rest[n])
		}
		count, err := strconv.ParseInt(rest[:n], 10, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid span %q: %w", s, err)
		}
		total += time.Duration(count) * size
		rest = rest[n+1:]
	}
	if total <= 0 {
		return 0, fmt.Errorf("span %q must be positive", s)
	}
	return total, nil
}

// Format is the inverse of Parse. Sub-second remainders are dropped.
func Format(d time.Duration) string {
	var b strings.Builder
	for _, u := range units {
		if d >= u.size {
			fmt.Fprintf(&b, "%d%c", d/u.size, u.suffix)
			d %= u.size
		}
	}
	if b.Len() == 0 {
		return "0s"
	}
	return b.String()
}

// ParseDays is Parse rounded up to whole days.
func ParseDays(s string) (int, error) {
	d, err := Parse(s)
	if err != nil {
		return 0, err
	}
	return int((d + day - 1) / day), nil
}
