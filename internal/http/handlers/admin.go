package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mooncircle/mooncircle/internal/domain/registration"
	"github.com/mooncircle/mooncircle/internal/utils"
)

type RegistrationLister interface {
	ListRecent(ctx context.Context, after *utils.RegistrationCursor, limit int) ([]registration.Registration, error)
}

const adminPageSize = 100

// AdminHandler serves the operator-only JSON views, guarded by the site
// secret presented as a bearer token.
type AdminHandler struct {
	registrations RegistrationLister
	secret        string
	log           *slog.Logger
}

func NewAdminHandler(registrations RegistrationLister, secret string, log *slog.Logger) *AdminHandler {
	return &AdminHandler{
		registrations: registrations,
		secret:        secret,
		log:           log,
	}
}

func (h *AdminHandler) RequireSecret() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx.GetHeader("Authorization"))

		if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(h.secret)) != 1 {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx.Next()
	}
}

func (h *AdminHandler) ListRegistrations(ctx *gin.Context) {
	var after *utils.RegistrationCursor

	if raw := ctx.Query("cursor"); raw != "" {
		cur, err := utils.DecodeRegistrationCursor(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid cursor"})
			return
		}
		after = &cur
	}

	regs, err := h.registrations.ListRecent(ctx.Request.Context(), after, adminPageSize)
	if err != nil {
		h.log.Error("list registrations", "err", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	resp := gin.H{
		"count":         len(regs),
		"registrations": regs,
	}

	// a full page means there may be older rows behind it
	if len(regs) == adminPageSize {
		last := regs[len(regs)-1]

		next, err := utils.EncodeRegistrationCursor(last.CreatedAt, last.ID)
		if err == nil {
			resp["next_cursor"] = next
		}
	}

	ctx.JSON(http.StatusOK, resp)
}

func bearerToken(header string) string {
	const prefix = "Bearer "

	if !strings.HasPrefix(header, prefix) {
		return ""
	}

	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
