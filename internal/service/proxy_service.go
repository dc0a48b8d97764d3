package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"graph-embedder/internal/graph"
)

// QueryProxy reenvía consultas Cypher al cliente de grafo tal cual llegan.
// Sin cache ni reintentos: un intento por llamada, error clasificado o filas.
type QueryProxy struct {
	logger *zap.Logger
	graph  graph.Client
}

func NewQueryProxy(logger *zap.Logger, client graph.Client) *QueryProxy {
	return &QueryProxy{logger: logger, graph: client}
}

// Execute valida la consulta y la ejecuta contra el grafo. La clasificación
// de errores (graph.ErrUnavailable, graph.ErrQueryRejected, resto) viene ya
// hecha desde el cliente y se propaga intacta al llamador.
func (p *QueryProxy) Execute(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error) {
	if strings.TrimSpace(cypher) == "" {
		return nil, ErrQueryRequired
	}
	if params == nil {
		params = map[string]any{}
	}

	rows, err := p.graph.Run(ctx, cypher, params)
	if err != nil {
		p.logger.Warn("proxy query failed", zap.Error(err))
		return nil, err
	}
	return rows, nil
}
