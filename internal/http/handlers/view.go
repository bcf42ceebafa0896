package handlers

import (
	"time"

	"github.com/mooncircle/mooncircle/internal/domain/event"
	"github.com/mooncircle/mooncircle/internal/i18n"
	"github.com/mooncircle/mooncircle/internal/moon"
)

// EventView is the template-facing shape of an event: the stored record plus
// the derived seat counts, the localized date and the moon phase of the
// start date.
type EventView struct {
	ID          string
	Title       string
	Location    string
	Description string
	Duration    string
	Image       string

	DateLabel string

	MoonSymbol       string
	MoonPhaseName    string
	MoonIllumination float64

	SpotsTotal     int
	SpotsTaken     int
	SpotsAvailable int
	IsFull         bool
	IsPast         bool
}

type ViewBuilder struct {
	locale *i18n.Locale
}

func NewViewBuilder(locale *i18n.Locale) *ViewBuilder {
	return &ViewBuilder{locale: locale}
}

func (b *ViewBuilder) Event(e event.Event, now time.Time) EventView {
	phase := moon.At(e.StartAt)

	return EventView{
		ID:          e.ID,
		Title:       e.Title,
		Location:    e.Location,
		Description: e.Description,
		Duration:    e.Duration,
		Image:       e.Image,

		DateLabel: b.locale.FormatDateTime(e.StartAt),

		MoonSymbol:       phase.Symbol,
		MoonPhaseName:    b.locale.PhaseName(phase.Bucket.Key()),
		MoonIllumination: phase.Illumination,

		SpotsTotal:     e.SpotsTotal,
		SpotsTaken:     e.SpotsTaken,
		SpotsAvailable: e.SpotsAvailable(),
		IsFull:         e.IsFull(),
		IsPast:         e.IsPast(now),
	}
}

func (b *ViewBuilder) Events(events []event.Event, now time.Time) []EventView {
	out := make([]EventView, 0, len(events))

	for _, e := range events {
		out = append(out, b.Event(e, now))
	}

	return out
}
