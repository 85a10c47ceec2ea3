package projection

import (
	"strings"
	"time"
)

const (
	LayoutFecha     = "02/01/2006"
	LayoutFechaHora = "02/01/2006 15:04"
)

// Layouts carrying their own offset.
var layoutsConZona = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05-07",
}

// Layouts interpreted in the caller's zone. The display layouts are here so
// that formatting an already formatted value is a no-op.
var layoutsLocales = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	LayoutFechaHora,
	LayoutFecha,
}

// Parse reads any date or timestamp shape the store, the importers or the
// display layer produce. Values without an offset are read in zone.
func Parse(raw string, zone *time.Location) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	if zone == nil {
		zone = time.UTC
	}
	for _, l := range layoutsConZona {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	for _, l := range layoutsLocales {
		if t, err := time.ParseInLocation(l, s, zone); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatFecha renders a calendar date as dd/mm/yyyy. The date components are
// taken as stored, without shifting to zone. Unparseable input is returned
// unchanged.
func FormatFecha(raw string, zone *time.Location) string {
	if raw == "" {
		return ""
	}
	t, ok := Parse(raw, zone)
	if !ok {
		return raw
	}
	return t.Format(LayoutFecha)
}

// FormatFechaHora renders an instant as dd/mm/yyyy hh:mm in zone.
// Unparseable input is returned unchanged.
func FormatFechaHora(raw string, zone *time.Location) string {
	if raw == "" {
		return ""
	}
	if zone == nil {
		zone = time.UTC
	}
	t, ok := Parse(raw, zone)
	if !ok {
		return raw
	}
	return t.In(zone).Format(LayoutFechaHora)
}

// FechaISO normalizes a date to yyyy-mm-dd for storage, or "" when it cannot
// be parsed.
func FechaISO(raw string, zone *time.Location) string {
	t, ok := Parse(raw, zone)
	if !ok {
		return ""
	}
	return t.Format("2006-01-02")
}
