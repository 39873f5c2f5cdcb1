// =============================================================================
// Transmittal Updater - Code List Preparation
// =============================================================================

package stamper

import "strings"

// ParseCodes splits a raw pasted blob into usable codes. Codes may be
// separated by newlines or commas in any mix; tokens are trimmed and empty
// tokens are dropped. Duplicates are kept: each occurrence is matched
// independently by Update.
func ParseCodes(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ','
	})

	codes := make([]string, 0, len(fields))
	for _, f := range fields {
		if code := strings.TrimSpace(f); code != "" {
			codes = append(codes, code)
		}
	}

	return codes
}
