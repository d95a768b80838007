package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/callsight/internal/cache"
	"github.com/yoockh/callsight/internal/models"
	mongorepo "github.com/yoockh/callsight/internal/repositories/mongo"
	"github.com/yoockh/callsight/internal/utils"
)

const interactionCacheTTL = 15 * time.Second

// InteractionHandler exposes read-only pipeline progress per interaction.
// Status moves quickly while a call is in flight, hence the short cache.
type InteractionHandler struct {
	interactions mongorepo.InteractionRepository
	cache        cache.Cache
}

func NewInteractionHandler(interactions mongorepo.InteractionRepository, c cache.Cache) *InteractionHandler {
	return &InteractionHandler{interactions: interactions, cache: c}
}

func (h *InteractionHandler) Get(c *gin.Context) {
	const op = "InteractionHandler.Get"

	interactionID := c.Param("interaction_id")
	if interactionID == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "interaction_id is required", nil))
		return
	}

	key := cache.InteractionKey(interactionID)
	if h.cache != nil {
		var cached models.Interaction
		if hit, err := h.cache.GetJSON(c.Request.Context(), key, &cached); err == nil && hit {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	row, err := h.interactions.GetByInteractionID(c.Request.Context(), interactionID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			writeError(c, utils.E(utils.CodeNotFound, op, "interaction not found", err))
			return
		}
		writeError(c, utils.E(utils.CodeUnavailable, op, "failed to look up interaction", err))
		return
	}

	if h.cache != nil {
		_ = h.cache.SetJSON(c.Request.Context(), key, row, interactionCacheTTL)
	}
	c.JSON(http.StatusOK, row)
}
