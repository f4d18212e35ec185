package app

import (
	"net/http"

	"github.com/cellar-club/tasting/internal/modules/tasting"
	"github.com/cellar-club/tasting/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(th *tasting.Handler) {
	a.router.NoRoute(response.NotFound)

	api := a.router.Group("/api/v1")
	api.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": 1, "store": a.cfg.Store.Driver})
	})
	th.RegisterRoutes(api)
}
