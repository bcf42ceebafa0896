// Package i18n holds the display-name tables for dates and moon phases.
// Locales live in embedded active.<code>.toml files so the prose is data,
// not code.
package i18n

import (
	"embed"
	"fmt"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed active.*.toml
var localeFS embed.FS

type Locale struct {
	TimePrefix string            `toml:"time_prefix"`
	Weekdays   []string          `toml:"weekdays"` // indexed by time.Weekday, Sunday first
	Months     []string          `toml:"months"`
	Phases     map[string]string `toml:"phases"`
}

// Load reads the embedded table for the given locale code (e.g. "pl").
func Load(code string) (*Locale, error) {
	raw, err := localeFS.ReadFile("active." + code + ".toml")
	if err != nil {
		return nil, fmt.Errorf("i18n: unknown locale %q: %w", code, err)
	}

	var l Locale

	if err := toml.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("i18n: parse locale %q: %w", code, err)
	}

	if len(l.Weekdays) != 7 {
		return nil, fmt.Errorf("i18n: locale %q has %d weekday names, want 7", code, len(l.Weekdays))
	}
	if len(l.Months) != 12 {
		return nil, fmt.Errorf("i18n: locale %q has %d month names, want 12", code, len(l.Months))
	}

	return &l, nil
}

func MustLoad(code string) *Locale {
	l, err := Load(code)
	if err != nil {
		panic(err)
	}
	return l
}

// FormatDateTime renders "<weekday>, <day> <month> <year>, godz. <HH:MM>"
// with the locale's name tables. Pure.
func (l *Locale) FormatDateTime(t time.Time) string {
	return fmt.Sprintf("%s, %d %s %d, %s %02d:%02d",
		l.Weekdays[int(t.Weekday())],
		t.Day(),
		l.Months[int(t.Month())-1],
		t.Year(),
		l.TimePrefix,
		t.Hour(),
		t.Minute(),
	)
}

// PhaseName resolves a moon-phase key to its display name, falling back to
// the key itself when the table has no entry.
func (l *Locale) PhaseName(key string) string {
	if name, ok := l.Phases[key]; ok {
		return name
	}
	return key
}
