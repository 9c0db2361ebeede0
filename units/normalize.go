package units

import "golang.org/x/text/unicode/norm"

// normalizeIdentifier puts an identifier in Unicode NFC so that a composed
// "Å" and an "A" followed by a combining ring name the same unit.
func normalizeIdentifier(id string) string {
	return norm.NFC.String(id)
}
