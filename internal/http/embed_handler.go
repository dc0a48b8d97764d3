package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"graph-embedder/internal/service"
)

// EmbedHandler mantiene dependencias para los endpoints de embeds.
type EmbedHandler struct {
	logger   *zap.Logger
	embedSvc *service.EmbedService
}

// NewEmbedHandler crea una instancia de EmbedHandler con sus dependencias.
func NewEmbedHandler(logger *zap.Logger, embedSvc *service.EmbedService) *EmbedHandler {
	return &EmbedHandler{
		logger:   logger,
		embedSvc: embedSvc,
	}
}

// CreateEmbed maneja POST /api/embed.
func (h *EmbedHandler) CreateEmbed(c *gin.Context) {
	var req struct {
		CypherQuery   string `json:"cypherQuery"`
		ExpiresInDays *int   `json:"expiresInDays"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create embed request", zap.Error(err))
		c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
		return
	}

	created, err := h.embedSvc.CreateEmbed(c.Request.Context(), service.CreateEmbedInput{
		CypherQuery:   req.CypherQuery,
		ExpiresInDays: req.ExpiresInDays,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQueryRequired),
			errors.Is(err, service.ErrInvalidExpiry),
			errors.Is(err, service.ErrExpiryTooLong):
			c.JSON(http.StatusBadRequest, errorBody(err.Error()))
			return
		case errors.Is(err, service.ErrStorageUnavailable):
			c.JSON(http.StatusServiceUnavailable, errorBody("embed storage unavailable"))
			return
		default:
			h.logger.Error("create embed failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, errorBody("could not create embed"))
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"embedUrl":   created.EmbedURL,
			"embedToken": created.Token,
			"expiresAt":  created.ExpiresAt.Format(time.RFC3339),
			"expiresIn":  created.ExpiresIn,
		},
	})
}

// GetEmbedData maneja GET /api/embed/:token.
func (h *EmbedHandler) GetEmbedData(c *gin.Context) {
	resolved, err := h.embedSvc.ResolveEmbed(c.Request.Context(), c.Param("token"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenNotFound):
			c.JSON(http.StatusNotFound, errorBody("token not found"))
			return
		case errors.Is(err, service.ErrTokenExpired):
			c.JSON(http.StatusGone, errorBody("token expired"))
			return
		case errors.Is(err, service.ErrStorageUnavailable):
			c.JSON(http.StatusServiceUnavailable, errorBody("embed storage unavailable"))
			return
		default:
			h.logger.Error("resolve embed failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, errorBody("could not resolve embed"))
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"cypherQuery": resolved.CypherQuery,
			"token":       resolved.Token,
			"expiresAt":   resolved.ExpiresAt.Format(time.RFC3339),
		},
	})
}

// ViewEmbed maneja GET /view/:token sirviendo la variante de página según el
// estado de resolución: visor, no encontrado o expirado.
func (h *EmbedHandler) ViewEmbed(c *gin.Context) {
	_, err := h.embedSvc.ResolveEmbed(c.Request.Context(), c.Param("token"))
	switch {
	case err == nil:
		servePage(c, viewerPage)
	case errors.Is(err, service.ErrTokenNotFound):
		servePage(c, notFoundPage)
	case errors.Is(err, service.ErrTokenExpired):
		servePage(c, expiredPage)
	default:
		h.logger.Error("view embed failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, errorBody("embed storage unavailable"))
	}
}

func errorBody(message string) gin.H {
	return gin.H{
		"success": false,
		"error":   gin.H{"message": message},
	}
}
