package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"graph-embedder/internal/graph"
	"graph-embedder/internal/service"
)

type mockGraphClient struct {
	lastCypher string
	lastParams map[string]any
	rows       []map[string]any
	err        error
}

func (m *mockGraphClient) Run(_ context.Context, cypher string, params map[string]any) ([]map[string]any, error) {
	m.lastCypher = cypher
	m.lastParams = params
	if m.err != nil {
		return nil, m.err
	}
	return m.rows, nil
}

func newProxyTestRouter(client *mockGraphClient) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	embedSvc := service.NewEmbedService(logger, newMockTokenRepo(), nil, "http://localhost:8080", 7, 90)
	embedH := NewEmbedHandler(logger, embedSvc)
	proxyH := NewProxyHandler(logger, service.NewQueryProxy(logger, client))
	healthH := NewHealthHandler(nil, nil)
	return NewRouter(logger, embedH, proxyH, healthH)
}

func TestProxyQueryEndpoint_Success(t *testing.T) {
	client := &mockGraphClient{
		rows: []map[string]any{
			{"n": map[string]any{"identity": 1, "labels": []string{"Person"}, "properties": map[string]any{"name": "Tom Hanks"}}},
		},
	}
	router := newProxyTestRouter(client)

	rec := postJSON(t, router, "/api/proxy/query", map[string]any{
		"cypher": "MATCH (n) RETURN n LIMIT 1",
		"params": map[string]any{"limit": 1},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool             `json:"success"`
		Data    []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || len(resp.Data) != 1 {
		t.Fatalf("unexpected response %s", rec.Body.String())
	}
	if client.lastParams["limit"] != float64(1) {
		t.Fatalf("expected params forwarded, got %v", client.lastParams)
	}
}

func TestProxyQueryEndpoint_BlankQuery(t *testing.T) {
	router := newProxyTestRouter(&mockGraphClient{})

	rec := postJSON(t, router, "/api/proxy/query", map[string]any{"cypher": "   "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestProxyQueryEndpoint_ErrorStatuses(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{name: "rejected", err: fmt.Errorf("%w: syntax error", graph.ErrQueryRejected), want: http.StatusBadRequest},
		{name: "unavailable", err: fmt.Errorf("%w: dial tcp", graph.ErrUnavailable), want: http.StatusServiceUnavailable},
		{name: "internal", err: fmt.Errorf("driver exploded"), want: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newProxyTestRouter(&mockGraphClient{err: tc.err})

			rec := postJSON(t, router, "/api/proxy/query", map[string]any{"cypher": "MATCH (n) RETURN n"})
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, rec.Code, rec.Body.String())
			}

			var resp struct {
				Success bool `json:"success"`
				Error   struct {
					Message string `json:"message"`
				} `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Success {
				t.Fatal("expected success false")
			}
			if resp.Error.Message == "" {
				t.Fatal("expected error message")
			}
		})
	}
}
