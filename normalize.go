package sentiview

import "strings"

// NormalizeLines splits raw input on line boundaries, trims each line and
// drops the ones left empty. Order is preserved and duplicates are kept.
// Blank input yields an empty slice.
func NormalizeLines(raw string) []string {
	lines := strings.Split(raw, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line) // also strips the \r of CRLF input
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
