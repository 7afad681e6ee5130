package assignment

import "strings"

// Priority orders proposals inside a truck group. Higher values are admitted
// first.
type Priority int

const (
	// Low is also the fallback for missing or unrecognized values.
	Low Priority = 1
	// Medium is used by automated optimization runs.
	Medium Priority = 2
	// High is admitted before everything else.
	High Priority = 3
)

// ParsePriority maps "HIGH", "MEDIUM" and "LOW" case-insensitively. Anything
// else, the empty string included, is Low.
func ParsePriority(s string) Priority {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HIGH":
		return High
	case "MEDIUM":
		return Medium
	default:
		return Low
	}
}

// String implements fmt.Stringer.
func (p Priority) String() string {
	switch p {
	case High:
		return "HIGH"
	case Medium:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// Rank returns the numeric ordering weight, treating out-of-range values as Low.
func (p Priority) Rank() int {
	if p < Low || p > High {
		return int(Low)
	}
	return int(p)
}
