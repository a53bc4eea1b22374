// Package timefmt handles the planner's H.MM duration strings: hours, a dot,
// and two minute digits ("2.30" is two hours thirty minutes, not 2.3 hours).
package timefmt

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse converts an H.MM string to minutes. Accepted forms: "H", "H.M",
// "H.MM", and the colon variant "H:MM". Minutes must be < 60. Anything else
// reports ok=false; malformed input is never an error condition for callers.
func Parse(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	sep := "."
	if strings.Contains(s, ":") {
		sep = ":"
	}
	parts := strings.SplitN(s, sep, 2)
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 {
		return 0, false
	}
	mins := 0
	if len(parts) == 2 {
		mm := parts[1]
		if mm == "" || len(mm) > 2 {
			return 0, false
		}
		mins, err = strconv.Atoi(mm)
		if err != nil || mins < 0 {
			return 0, false
		}
		// A single digit means tens of minutes: "2.3" is 2h30m.
		if len(mm) == 1 {
			mins *= 10
		}
		if mins > 59 {
			return 0, false
		}
	}
	return hours*60 + mins, true
}

// Format renders minutes as a canonical H.MM string ("150" -> "2.30").
func Format(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%d.%02d", minutes/60, minutes%60)
}

// Add sums two H.MM strings in base-60 minutes ("2.00" + "1.30" -> "3.30").
// Unparseable operands count as zero.
func Add(a, b string) string {
	am, _ := Parse(a)
	bm, _ := Parse(b)
	return Format(am + bm)
}

// Sum folds Add over a list.
func Sum(values []string) string {
	total := 0
	for _, v := range values {
		if m, ok := Parse(v); ok {
			total += m
		}
	}
	return Format(total)
}

// IsNonZero reports whether s parses to a value greater than zero.
func IsNonZero(s string) bool {
	m, ok := Parse(s)
	return ok && m > 0
}
