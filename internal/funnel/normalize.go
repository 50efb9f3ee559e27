package funnel

import "strings"

// Normalize canonicalizes raw user text for matching: surrounding whitespace
// is trimmed and the result is lowercased.  It is applied once on ingress;
// stored answers are never re-normalized.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// SplitMulti splits a multi-select answer on the literal ", " separator.  The
// entries are returned exactly as split; callers lowercase or trim them
// separately when matching.
func SplitMulti(raw string) []string {
	return strings.Split(raw, ", ")
}

// IsQuit reports whether a normalized input is one of the global quit tokens.
// The quit check precedes stage dispatch and never touches session state.
func IsQuit(input string) bool {
	switch input {
	case "quit", "q", "exit":
		return true
	}
	return false
}
