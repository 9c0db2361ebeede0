package expr

import (
	"strings"
	"unicode"
)

// reserved characters may not appear in an atomic identifier.
const reserved = "0123456789.*/^()"

func isReserved(r rune) bool {
	return strings.ContainsRune(reserved, r) || unicode.IsSpace(r)
}

// IsAtomic reports whether s is a single identifier with no operator,
// digit, dot, parenthesis or whitespace in it.
func IsAtomic(s string) bool {
	if s == "" {
		return false
	}
	return strings.IndexFunc(s, isReserved) < 0
}

// normalize removes whitespace and rewrites the "**" exponent synonym to "^".
func normalize(s string) string {
	s = strings.Join(strings.FieldsFunc(s, unicode.IsSpace), "")
	return strings.ReplaceAll(s, "**", "^")
}

// unbalancedAt returns the byte offset of the first unmatched parenthesis, or -1.
func unbalancedAt(s string) int {
	var open []int
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			open = append(open, i)
		case ')':
			if len(open) == 0 {
				return i
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) > 0 {
		return open[0]
	}
	return -1
}

// stripEnclosing removes one layer of parentheses when the first '(' closes
// at the very last byte, e.g. "(m/s)" but not "(N)(m)".
func stripEnclosing(s string) (string, bool) {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return s, false
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(s)-1 {
				return s, false
			}
		}
	}
	return s[1 : len(s)-1], true
}

// splitFirst splits s at the first top-level op, scanning left to right.
func splitFirst(s string, op byte) (string, string, bool) {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '(':
			depth++
		case c == ')':
			depth--
		case c == op && depth == 0:
			return s[:i], s[i+1:], true
		}
	}
	return "", "", false
}

// splitLast splits s at the last top-level op, scanning right to left.
func splitLast(s string, op byte) (string, string, bool) {
	depth := 0
	for i := len(s) - 1; i >= 0; i-- {
		switch c := s[i]; {
		case c == ')':
			depth++
		case c == '(':
			depth--
		case c == op && depth == 0:
			return s[:i], s[i+1:], true
		}
	}
	return "", "", false
}
