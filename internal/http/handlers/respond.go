package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func RenderNotFound(ctx *gin.Context) {
	ctx.HTML(http.StatusNotFound, "not_found.html", gin.H{
		"Title": "Nie znaleziono",
	})
	ctx.Abort()
}

func RenderInternal(ctx *gin.Context) {
	ctx.HTML(http.StatusInternalServerError, "error.html", gin.H{
		"Title": "Coś poszło nie tak",
	})
	ctx.Abort()
}

// Redirect after a successful POST so a refresh never resubmits the form.
func RedirectSeeOther(ctx *gin.Context, location string) {
	ctx.Redirect(http.StatusSeeOther, location)
}
