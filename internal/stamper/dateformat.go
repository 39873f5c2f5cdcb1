// =============================================================================
// Transmittal Updater - Canonical Date Format
// =============================================================================
//
// Every date the tool writes - whether stamped onto a matched row or produced
// by the normalization pass - uses one canonical textual format: two-digit
// day, three-letter month, two-digit year, hyphen-separated ("11-May-25").
// An upper-case variant ("11-MAY-25") exists for downstream systems that
// expect it; a single run must use one style throughout, since the updated-
// rows preview matches stamped cells by exact string.
//
// =============================================================================

package stamper

import (
	"fmt"
	"strings"
	"time"
)

// canonicalLayout is the Go reference layout for the canonical format.
const canonicalLayout = "02-Jan-06"

// DateStyle selects the letter case of the canonical date format.
type DateStyle int

const (
	// StyleTitle renders months as "Jan", "Feb", ... This is the default.
	StyleTitle DateStyle = iota

	// StyleUpper renders the whole date upper-case: "11-MAY-25".
	StyleUpper
)

// ParseDateStyle converts a configuration string to a DateStyle.
// Recognized values: "title" (default when empty) and "upper".
func ParseDateStyle(s string) (DateStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "title":
		return StyleTitle, nil
	case "upper", "uppercase":
		return StyleUpper, nil
	default:
		return StyleTitle, fmt.Errorf("unknown date style %q (want \"title\" or \"upper\")", s)
	}
}

// FormatDate renders t in the canonical format under the given style.
func FormatDate(t time.Time, style DateStyle) string {
	s := t.Format(canonicalLayout)
	if style == StyleUpper {
		return strings.ToUpper(s)
	}
	return s
}

// parseLayouts are the layouts the normalizer tries, in order. The canonical
// layout comes first so that an already-normalized column round-trips to the
// same calendar dates (time.Parse matches month names case-insensitively, so
// the upper-case variant re-parses as well). Slash layouts follow the
// month-first convention of the legacy exports this tool was built for.
var parseLayouts = []string{
	canonicalLayout,
	"2-Jan-06",
	"02-Jan-2006",
	"2-Jan-2006",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"January 2, 2006",
	"Jan 2, 2006",
}

// parseDate attempts to interpret a single cell as a calendar date.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
