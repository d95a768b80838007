package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yoockh/callsight/internal/api/handlers"
)

type Deps struct {
	Ingest      *handlers.IngestHandler
	Interaction *handlers.InteractionHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.POST("/interactions", d.Ingest.Upload)
	r.GET("/interactions/:interaction_id", d.Interaction.Get)
}
