package model

import "strings"

// Estimate is one of the fixed labels below, or Custom (free-form TimeValue),
// or Multi (habit pattern detected; TimeValue is the sum of day entries).
type Estimate string

const (
	EstimateCustom Estimate = "Custom"
	EstimateMulti  Estimate = "Multi"
)

// estimateMinutes is the canonical label set in display order.
var estimateMinutes = []struct {
	Label   Estimate
	Minutes int
}{
	{"5 Minutes", 5},
	{"10 Minutes", 10},
	{"15 Minutes", 15},
	{"30 Minutes", 30},
	{"45 Minutes", 45},
	{"1 Hour", 60},
	{"2 Hours", 120},
	{"3 Hours", 180},
	{"4 Hours", 240},
	{"5 Hours", 300},
	{"6 Hours", 360},
	{"7 Hours", 420},
	{"8 Hours", 480},
}

// EstimateLabels returns the canonical labels, excluding Custom and Multi.
func EstimateLabels() []Estimate {
	out := make([]Estimate, 0, len(estimateMinutes))
	for _, e := range estimateMinutes {
		out = append(out, e.Label)
	}
	return out
}

// EstimateToMinutes maps a canonical label to its minute value.
// Custom, Multi, and unknown labels report ok=false.
func EstimateToMinutes(e Estimate) (int, bool) {
	for _, c := range estimateMinutes {
		if c.Label == e {
			return c.Minutes, true
		}
	}
	return 0, false
}

// MinutesToEstimate maps a minute value back to its canonical label.
func MinutesToEstimate(minutes int) (Estimate, bool) {
	for _, c := range estimateMinutes {
		if c.Minutes == minutes {
			return c.Label, true
		}
	}
	return "", false
}

// ParseEstimate normalizes user input to a known estimate value.
func ParseEstimate(s string) (Estimate, bool) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, string(EstimateCustom)) {
		return EstimateCustom, true
	}
	if strings.EqualFold(s, string(EstimateMulti)) {
		return EstimateMulti, true
	}
	for _, c := range estimateMinutes {
		if strings.EqualFold(s, string(c.Label)) {
			return c.Label, true
		}
	}
	return "", false
}

// ParseStatus normalizes user input to a known status.
func ParseStatus(s string) (Status, bool) {
	for _, st := range []Status{
		StatusNone, StatusNotScheduled, StatusScheduled, StatusDone,
		StatusBlocked, StatusOnHold, StatusAbandoned, StatusSpecial,
	} {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, true
		}
	}
	return "", false
}
