// Package i18n holds the UI string table and the per-request locale
// settings. Settings are resolved once per request and passed explicitly to
// whatever needs to render text or dates.
package i18n

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Locale is one of the supported UI languages.
type Locale string

const (
	ES Locale = "es"
	EN Locale = "en"
)

// StorageKey is the key under which the chosen locale is persisted.
const StorageKey = "embarques-locale"

// Parse accepts "es"/"en" in any case, optionally with a region suffix.
func Parse(s string) (Locale, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, "-_"); i > 0 {
		s = s[:i]
	}
	switch Locale(s) {
	case ES:
		return ES, true
	case EN:
		return EN, true
	}
	return "", false
}

var matcher = language.NewMatcher([]language.Tag{language.Spanish, language.English})

// Negotiate picks a supported locale from an Accept-Language header.
func Negotiate(acceptLanguage string, fallback Locale) Locale {
	if strings.TrimSpace(acceptLanguage) == "" {
		return fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return fallback
	}
	if idx == 1 {
		return EN
	}
	return ES
}

// Settings is the explicit presentation configuration for one request.
type Settings struct {
	Locale Locale
	Zone   *time.Location
}

// NewSettings normalizes an unknown locale to Spanish and a nil zone to UTC.
func NewSettings(l Locale, zone *time.Location) Settings {
	if _, ok := messages[l]; !ok {
		l = ES
	}
	if zone == nil {
		zone = time.UTC
	}
	return Settings{Locale: l, Zone: zone}
}

// Lang is the value for the document language attribute.
func (s Settings) Lang() string { return string(s.Locale) }

// T returns the translated message for key. Extra args are applied with
// fmt.Sprintf. Missing keys fall back to Spanish and then to the key itself.
func (s Settings) T(key Key, args ...any) string {
	msg, ok := messages[s.Locale][key]
	if !ok {
		msg, ok = messages[ES][key]
	}
	if !ok {
		msg = string(key)
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}
