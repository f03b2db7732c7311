package notify

import (
	"fmt"
	"strings"

	"github.com/arsfamsss/mobil-bekas-monitor/internal/domain"
)

// FormatListing renders a matched listing as a Telegram Markdown
// message. Layout follows the original bot's card format.
func FormatListing(m domain.Match) string {
	lines := []string{
		fmt.Sprintf("🚗 *%s*", EscapeMarkdown(m.Title)),
		fmt.Sprintf("💰 %s", FormatRupiah(m.Price)),
		fmt.Sprintf("📍 %s", EscapeMarkdown(displayOr(m.Location, "Tidak diketahui"))),
		fmt.Sprintf("📅 %s | 🧭 %s | 🧾 %s",
			formatYear(m.Year), formatTransmission(m.Transmission), FormatKm(m.Km)),
		fmt.Sprintf("🏷️ Plat: %s", m.PlateRegion),
	}

	if m.Score > 0 {
		lines = append(lines, fmt.Sprintf("⭐ Skor: %d/100", m.Score))
	}
	lines = append(lines, fmt.Sprintf("📱 Sumber: %s", strings.ToUpper(m.Source)))
	if m.URL != "" {
		lines = append(lines, fmt.Sprintf("\n🔗 [Lihat Detail](%s)", m.URL))
	}

	return strings.Join(lines, "\n")
}

// FormatRupiah renders whole-rupiah prices the way locals read them:
// "Rp 1.2 M" for billions, "Rp 160 Juta" for millions, dotted
// thousands below that.
func FormatRupiah(price int) string {
	switch {
	case price >= 1_000_000_000:
		return fmt.Sprintf("Rp %.1f M", float64(price)/1_000_000_000)
	case price >= 1_000_000:
		return fmt.Sprintf("Rp %.0f Juta", float64(price)/1_000_000)
	default:
		return "Rp " + groupDigits(price)
	}
}

// FormatKm renders an odometer reading with dotted thousands, or
// "N/A" when unknown.
func FormatKm(km *int) string {
	if km == nil {
		return "N/A"
	}
	return groupDigits(*km) + " km"
}

// groupDigits inserts Indonesian-style dot separators: 35000 -> 35.000.
func groupDigits(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// EscapeMarkdown escapes the characters Telegram's legacy Markdown
// parser chokes on inside free text.
func EscapeMarkdown(text string) string {
	r := strings.NewReplacer(
		"_", `\_`,
		"*", `\*`,
		"`", "\\`",
		"[", `\[`,
	)
	return r.Replace(text)
}

func formatYear(year *int) string {
	if year == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d", *year)
}

func formatTransmission(tr string) string {
	switch {
	case tr == "":
		return "N/A"
	case strings.Contains(strings.ToLower(tr), "manual"):
		return "Manual"
	case strings.Contains(strings.ToLower(tr), "matic") || strings.Contains(strings.ToLower(tr), "auto"):
		return "Matic"
	default:
		return strings.ToUpper(tr[:1]) + strings.ToLower(tr[1:])
	}
}

func displayOr(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
