package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string
	Warnings []string
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate trims and lowercases list/enum fields and
// checks the settings the pipeline depends on. Keyword lists are
// deduplicated; the include and exclude sets must stay disjoint.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.ToLower(strings.TrimSpace(x))
			if x == "" || seen[x] {
				continue
			}
			seen[x] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Keywords.Include = trimList(out.Keywords.Include)
	out.Keywords.Exclude = trimList(out.Keywords.Exclude)
	out.Criteria.Transmission = strings.ToLower(strings.TrimSpace(out.Criteria.Transmission))
	out.Criteria.Color = strings.ToLower(strings.TrimSpace(out.Criteria.Color))
	out.Criteria.PriorityPlate = strings.ToUpper(strings.TrimSpace(out.Criteria.PriorityPlate))

	// ---- Validation rules ----

	if out.Polling.IntervalSeconds <= 0 {
		res.addErr("polling.interval_seconds must be > 0")
	} else if out.Polling.IntervalSeconds < 60 {
		res.addWarn("polling.interval_seconds is very low (%d); the sites may block you.", out.Polling.IntervalSeconds)
	}

	if out.Criteria.YearMin > out.Criteria.YearMax {
		res.addErr("criteria.year_min (%d) > criteria.year_max (%d)", out.Criteria.YearMin, out.Criteria.YearMax)
	}
	if out.Criteria.PriceMin > out.Criteria.PriceMax {
		res.addErr("criteria.price_min (%d) > criteria.price_max (%d)", out.Criteria.PriceMin, out.Criteria.PriceMax)
	}
	if out.Criteria.MaxKm < 0 {
		res.addErr("criteria.max_km must be >= 0")
	}
	if len(out.Criteria.PriorityPlate) > 1 {
		res.addErr("criteria.priority_plate must be a single letter, got %q", out.Criteria.PriorityPlate)
	}

	if len(out.Keywords.Include) == 0 {
		res.addErr("keywords.include is empty; no listing would ever match")
	}
	includeSet := map[string]bool{}
	for _, kw := range out.Keywords.Include {
		includeSet[kw] = true
	}
	for _, kw := range out.Keywords.Exclude {
		if includeSet[kw] {
			res.addErr("keyword appears in both include and exclude: %q", kw)
		}
	}

	if out.Limits.MaxNotificationsPerHour <= 0 {
		res.addErr("limits.max_notifications_per_hour must be > 0")
	}
	if out.Limits.RetentionDays <= 0 {
		res.addWarn("limits.retention_days <= 0; notification and error logs will grow unbounded.")
	}

	anySource := out.Sources.OLX.Enabled || out.Sources.Mobil123.Enabled ||
		out.Sources.Carmudi.Enabled || out.Sources.Jualo.Enabled
	if !anySource {
		res.addErr("no sources enabled")
	}
	for name, src := range map[string]SourceConfig{
		"olx": out.Sources.OLX, "mobil123": out.Sources.Mobil123,
		"carmudi": out.Sources.Carmudi, "jualo": out.Sources.Jualo,
	} {
		if src.Enabled && strings.TrimSpace(src.SearchURL) == "" {
			res.addErr("sources.%s.search_url is required when enabled", name)
		}
	}

	if strings.TrimSpace(out.Telegram.ChatID) == "" {
		res.addWarn("telegram.chat_id is empty; notifications will fail until it is set.")
	}

	return out, res
}
