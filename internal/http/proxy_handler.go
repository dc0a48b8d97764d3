package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"graph-embedder/internal/graph"
	"graph-embedder/internal/service"
)

// ProxyHandler mantiene dependencias para el endpoint de proxy de consultas.
type ProxyHandler struct {
	logger *zap.Logger
	proxy  *service.QueryProxy
}

// NewProxyHandler crea una instancia de ProxyHandler con sus dependencias.
func NewProxyHandler(logger *zap.Logger, proxy *service.QueryProxy) *ProxyHandler {
	return &ProxyHandler{
		logger: logger,
		proxy:  proxy,
	}
}

// Query maneja POST /api/proxy/query. Cada categoría de falla llega al
// cliente con su status propio: 400 consulta inválida o rechazada, 503
// base de grafo inalcanzable, 500 el resto.
func (h *ProxyHandler) Query(c *gin.Context) {
	var req struct {
		Cypher string         `json:"cypher"`
		Params map[string]any `json:"params"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid proxy query request", zap.Error(err))
		c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
		return
	}

	rows, err := h.proxy.Execute(c.Request.Context(), req.Cypher, req.Params)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQueryRequired):
			c.JSON(http.StatusBadRequest, errorBody(err.Error()))
			return
		case errors.Is(err, graph.ErrQueryRejected):
			c.JSON(http.StatusBadRequest, errorBody(err.Error()))
			return
		case errors.Is(err, graph.ErrUnavailable):
			c.JSON(http.StatusServiceUnavailable, errorBody(err.Error()))
			return
		default:
			h.logger.Error("proxy query failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, errorBody("unexpected error executing query"))
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    rows,
	})
}
