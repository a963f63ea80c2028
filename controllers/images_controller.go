package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"catalogapi/apperrors"
)

// LoadImage streams stored asset bytes. Stored names carry no extension and
// the original format is not recorded, so the endpoint always declares PNG.
func (a *App) LoadImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		rc, err := a.Store.Open(c.Request.Context(), c.Param("id"))
		if err != nil {
			apperrors.Respond(c, apperrors.NotFound("image"))
			return
		}
		defer rc.Close()

		c.Header("Content-Type", "image/png")
		c.Status(http.StatusOK)
		_, _ = io.Copy(c.Writer, rc)
	}
}
