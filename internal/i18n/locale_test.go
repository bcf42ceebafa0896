package i18n

import (
	"strings"
	"testing"
	"time"
)

func TestLoadPolishLocale(t *testing.T) {
	l, err := Load("pl")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if l.TimePrefix != "godz." {
		t.Fatalf("unexpected time prefix %q", l.TimePrefix)
	}
	if len(l.Phases) != 8 {
		t.Fatalf("expected 8 phase names, got %d", len(l.Phases))
	}
}

func TestLoadUnknownLocale(t *testing.T) {
	_, err := Load("xx")
	if err == nil {
		t.Fatalf("expected error for unknown locale")
	}
}

func TestFormatDateTime(t *testing.T) {
	l := MustLoad("pl")

	// 2025-11-21 is a Friday
	got := l.FormatDateTime(time.Date(2025, 11, 21, 18, 0, 0, 0, time.UTC))
	want := "piątek, 21 listopada 2025, godz. 18:00"

	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatDateTimeMondayLabelFirst(t *testing.T) {
	l := MustLoad("pl")

	// 2026-01-19 is a Monday
	got := l.FormatDateTime(time.Date(2026, 1, 19, 9, 5, 0, 0, time.UTC))

	first, _, ok := strings.Cut(got, ",")
	if !ok {
		t.Fatalf("no comma in %q", got)
	}
	if first != l.Weekdays[int(time.Monday)] {
		t.Fatalf("first token %q, want Monday label %q", first, l.Weekdays[int(time.Monday)])
	}
	if !strings.Contains(got, "godz. 09:05") {
		t.Fatalf("missing zero-padded time in %q", got)
	}
}

func TestPhaseNameFallsBackToKey(t *testing.T) {
	l := MustLoad("pl")

	if got := l.PhaseName("full_moon"); got != "Pełnia" {
		t.Fatalf("got %q", got)
	}
	if got := l.PhaseName("blood_moon"); got != "blood_moon" {
		t.Fatalf("expected key fallback, got %q", got)
	}
}
