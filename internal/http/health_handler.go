package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"graph-embedder/internal/graph"
)

// HealthHandler reporta el estado del proceso y sus dependencias.
type HealthHandler struct {
	pool        *pgxpool.Pool
	graphClient *graph.Neo4jClient
}

func NewHealthHandler(pool *pgxpool.Pool, graphClient *graph.Neo4jClient) *HealthHandler {
	return &HealthHandler{
		pool:        pool,
		graphClient: graphClient,
	}
}

// Check maneja GET /. Responde 200 siempre; el estado de cada dependencia
// va en el payload para no tumbar health checks por una caída transitoria.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "graph-embedder backend",
		"postgres": dependencyStatus(h.pool != nil && h.pool.Ping(ctx) == nil),
		"neo4j":    dependencyStatus(h.graphClient != nil && h.graphClient.VerifyConnectivity(ctx) == nil),
	})
}

func dependencyStatus(up bool) string {
	if up {
		return "up"
	}
	return "down"
}
