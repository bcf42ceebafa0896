package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mooncircle/mooncircle/internal/domain/event"
	"github.com/mooncircle/mooncircle/internal/moon"
)

type PagesHandler struct {
	events EventReader
	views  *ViewBuilder
	log    *slog.Logger
	now    func() time.Time
}

func NewPagesHandler(events EventReader, views *ViewBuilder, log *slog.Logger) *PagesHandler {
	return &PagesHandler{
		events: events,
		views:  views,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Home shows tonight's moon phase and the nearest upcoming event, if any.
func (h *PagesHandler) Home(ctx *gin.Context) {
	now := h.now()
	phase := moon.At(now)

	data := gin.H{
		"Title":            "Kręgi przy Księżycu",
		"MoonSymbol":       phase.Symbol,
		"MoonPhaseName":    h.views.locale.PhaseName(phase.Bucket.Key()),
		"MoonIllumination": phase.Illumination,
	}

	next, err := h.events.NextUpcoming(ctx.Request.Context(), now)
	switch {
	case err == nil:
		view := h.views.Event(next, now)
		data["NextEvent"] = &view
	case errors.Is(err, event.ErrNotFound):
		// no upcoming event, the hero section renders without one
	default:
		h.log.Error("load next event", "err", err)
	}

	ctx.HTML(http.StatusOK, "home.html", data)
}

func (h *PagesHandler) Oils(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "oils.html", gin.H{"Title": "Olejki eteryczne"})
}

func (h *PagesHandler) Water(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "water.html", gin.H{"Title": "Woda wodorowa"})
}

func (h *PagesHandler) Yoga(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "yoga.html", gin.H{"Title": "Joga"})
}

func (h *PagesHandler) GreenFood(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "green_food.html", gin.H{"Title": "Zielona żywność"})
}
