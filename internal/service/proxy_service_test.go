package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"graph-embedder/internal/graph"
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

func TestQueryProxy_BlankQuery(t *testing.T) {
	proxy := NewQueryProxy(zap.NewNop(), &mockGraphClient{})

	for _, cypher := range []string{"", "   "} {
		_, err := proxy.Execute(context.Background(), cypher, nil)
		if !errors.Is(err, ErrQueryRequired) {
			t.Fatalf("cypher %q: expected ErrQueryRequired, got %v", cypher, err)
		}
	}
}

func TestQueryProxy_PassesQueryAndParams(t *testing.T) {
	client := &mockGraphClient{rows: []map[string]any{{"n": 1}}}
	proxy := NewQueryProxy(zap.NewNop(), client)

	rows, err := proxy.Execute(context.Background(), "MATCH (n) RETURN n", map[string]any{"limit": 5})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if client.lastCypher != "MATCH (n) RETURN n" {
		t.Fatalf("unexpected cypher %q", client.lastCypher)
	}
	if client.lastParams["limit"] != 5 {
		t.Fatalf("expected params to pass through, got %v", client.lastParams)
	}
}

func TestQueryProxy_NilParamsBecomeEmptyMap(t *testing.T) {
	client := &mockGraphClient{}
	proxy := NewQueryProxy(zap.NewNop(), client)

	if _, err := proxy.Execute(context.Background(), "MATCH (n) RETURN n", nil); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if client.lastParams == nil {
		t.Fatal("expected non-nil params map")
	}
}

func TestQueryProxy_ClassifiedErrorsPropagate(t *testing.T) {
	for _, wantErr := range []error{graph.ErrUnavailable, graph.ErrQueryRejected} {
		client := &mockGraphClient{err: wantErr}
		proxy := NewQueryProxy(zap.NewNop(), client)

		_, err := proxy.Execute(context.Background(), "MATCH (n) RETURN n", nil)
		if !errors.Is(err, wantErr) {
			t.Fatalf("expected %v, got %v", wantErr, err)
		}
	}
}
