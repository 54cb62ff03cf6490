package parse

import (
	"strings"
	"time"
)

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// OptionalText trims s and returns nil when nothing is left.
func OptionalText(s string) *string {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	return &t
}

// Deref returns the pointed-to string or fallback when p is nil.
func Deref(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}

// ContainsFold is a case-insensitive substring test.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Placeholder is shown wherever a value is missing.
const Placeholder = "—"

var spanishMonths = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"}

// FormatTimestamp renders t as "dd MMM yyyy - HH:mm" with Spanish month
// abbreviations in loc. A nil or zero time renders as Placeholder.
func FormatTimestamp(t *time.Time, loc *time.Location) string {
	if t == nil || t.IsZero() {
		return Placeholder
	}
	if loc == nil {
		loc = time.Local
	}
	lt := t.In(loc)
	return lt.Format("02") + " " + spanishMonths[lt.Month()-1] + " " + lt.Format("2006 - 15:04")
}
