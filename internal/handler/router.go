package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"wedding-guestlist/internal/storage"
)

// RouterConfig holds the options the router needs from the process config.
type RouterConfig struct {
	CORSOrigins []string
}

// NewRouter wires the guest API onto a gin engine.
func NewRouter(registry storage.Registry, log zerolog.Logger, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(log), CORS(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	guests := NewGuestHandler(registry, log)
	api := r.Group("/api")
	{
		api.GET("/guests", guests.ListGuests)
		api.GET("/guests/summary", guests.GetSummary)
		api.POST("/guests", guests.AddGuest)
		api.PUT("/guests/:id", guests.UpdateGuest)
		api.DELETE("/guests/:id", guests.RemoveGuest)
	}

	return r
}
