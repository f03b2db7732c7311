package match

import (
	"regexp"
	"strings"

	"github.com/arsfamsss/mobil-bekas-monitor/internal/domain"
)

// Plate patterns, in priority order. The explicit keyword forms come
// first: the bare letter-digits form is broad enough to false-positive
// on ordinary text containing a digit run, so it must only be tried
// when no keyword form matched.
var platePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bPLAT\s+([A-Z])\b`),
	regexp.MustCompile(`\bNOPOL\s+([A-Z])\b`),
	regexp.MustCompile(`\b([A-Z])\s+\d{1,4}\s*[A-Z]{0,3}\b`),
	regexp.MustCompile(`\b([A-Z])-\d{1,4}\b`),
}

// IsTargetModel reports whether title+description mention the wanted
// model. At least one include keyword must be present and no exclude
// keyword may be; an exclude hit vetoes regardless of includes, which
// handles ads listing several models in one title.
func (m *Matcher) IsTargetModel(title, description string) bool {
	text := strings.ToLower(title + " " + description)

	for _, kw := range m.exclude {
		if strings.Contains(text, kw) {
			return false
		}
	}
	for _, kw := range m.include {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// DetectPlateRegion extracts the leading letter of an Indonesian
// registration plate from the listing text, or PlateUnknown. The first
// pattern producing any match wins.
func (m *Matcher) DetectPlateRegion(title, description string) string {
	text := strings.ToUpper(title + " " + description)

	for _, re := range platePatterns {
		if sub := re.FindStringSubmatch(text); sub != nil {
			return sub[1]
		}
	}
	return domain.PlateUnknown
}
