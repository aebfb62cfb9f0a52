package utils

import (
	"strings"
)

// SplitCommaList splits comma-separated string into slice of strings
func SplitCommaList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// JoinCommaList is the inverse of SplitCommaList
func JoinCommaList(items []string) string {
	return strings.Join(items, ", ")
}
