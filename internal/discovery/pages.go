package discovery

import (
	"strconv"
	"strings"
)

const (
	// MinPages is the smallest number of result pages a search may request.
	MinPages = 1
	// MaxPages is the largest number of result pages a search may request.
	MaxPages = 3
	// DefaultPages is used when the page count is missing or not a number.
	DefaultPages = 1
)

// ClampPages bounds n to [MinPages, MaxPages].
func ClampPages(n int) int {
	return max(MinPages, min(n, MaxPages))
}

// ParsePages interprets free-form page-count input. Empty or non-numeric input silently
// resolves to DefaultPages; numbers are clamped.
func ParsePages(input string) int {
	input = strings.TrimSpace(input)
	if input == "" {
		return DefaultPages
	}
	n, err := strconv.Atoi(input)
	if err != nil {
		return DefaultPages
	}
	return ClampPages(n)
}
