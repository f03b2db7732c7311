package util

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/arsfamsss/mobil-bekas-monitor/internal/domain"
)

var (
	digitsRe = regexp.MustCompile(`\d`)
	yearRe   = regexp.MustCompile(`\b(20\d{2})\b`)
	kmRe     = regexp.MustCompile(`(?i)(\d+[\d.,]*)\s*(?:km|kilometer|rb|ribu)`)
	manualRe = regexp.MustCompile(`(?i)\b(man|manual|mt)\b`)
	maticRe  = regexp.MustCompile(`(?i)\b(auto|automatic|matic|at|cvt)\b`)
)

// CleanText collapses whitespace and non-breaking spaces.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}

// DigitsOnly strips everything but digits; returns 0 for no digits.
func DigitsOnly(s string) int {
	var b strings.Builder
	for _, m := range digitsRe.FindAllString(s, -1) {
		b.WriteString(m)
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return n
}

// ParseRupiah extracts a whole-rupiah price from card text like
// "Rp 160.000.000". Returns 0 when nothing parses (0 = unknown price
// by the data model's convention).
func ParseRupiah(s string) int {
	return DigitsOnly(s)
}

// ParseYear finds a 20xx model year in text, nil when absent.
func ParseYear(s string) *int {
	m := yearRe.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	y, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &y
}

// ParseKm finds an odometer reading. Sites write "35.000 km",
// "35,000 KM" or "35 rb" (ribu = thousands); the rb/ribu forms are
// scaled accordingly.
func ParseKm(s string) *int {
	m := kmRe.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	n := DigitsOnly(m[1])
	if n == 0 {
		return nil
	}
	lower := strings.ToLower(m[0])
	if strings.Contains(lower, "rb") || strings.Contains(lower, "ribu") {
		n *= 1000
	}
	return &n
}

// ParseTransmission classifies transmission words in card text; manual
// markers are checked first since "MT" ads often also carry "AT" in
// unrelated trim codes. Empty string means unknown.
func ParseTransmission(s string) string {
	if manualRe.MatchString(s) {
		return domain.TransmissionManual
	}
	if maticRe.MatchString(s) {
		return domain.TransmissionAutomatic
	}
	return ""
}
