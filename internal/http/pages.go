package http

import (
	"embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed pages/*.html
var pagesFS embed.FS

const (
	viewerPage   = "pages/embed.html"
	notFoundPage = "pages/embed-not-found.html"
	expiredPage  = "pages/embed-expired.html"
)

func servePage(c *gin.Context, name string) {
	page, err := pagesFS.ReadFile(name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("viewer page missing"))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}
