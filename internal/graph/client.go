// Package graph encapsula el acceso a Neo4j: sesiones de corta vida por
// consulta, normalización de valores del driver y clasificación de errores.
package graph

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

var (
	// ErrUnavailable indica que Neo4j no está alcanzable.
	ErrUnavailable = errors.New("graph database unavailable")
	// ErrQueryRejected indica que Neo4j rechazó la consulta enviada.
	ErrQueryRejected = errors.New("query rejected by graph database")
)

// Client define el contrato para ejecutar consultas Cypher.
type Client interface {
	Run(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error)
}

// Neo4jClient implementa Client sobre el driver oficial con Bolt.
type Neo4jClient struct {
	driver   neo4j.DriverWithContext
	database string
	timeout  time.Duration
	logger   *zap.Logger
}

// NewNeo4jClient construye el cliente a partir de URI y credenciales.
// El driver mantiene su propio pool de conexiones; una instancia por proceso.
func NewNeo4jClient(uri, user, password, database string, logger *zap.Logger) (*Neo4jClient, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	return &Neo4jClient{
		driver:   driver,
		database: database,
		timeout:  30 * time.Second,
		logger:   logger,
	}, nil
}

// VerifyConnectivity comprueba que el servidor responde.
func (c *Neo4jClient) VerifyConnectivity(ctx context.Context) error {
	if err := c.driver.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Run abre una sesión, ejecuta la consulta y materializa todos los registros
// antes de devolver. Nada del driver escapa de esta llamada: los valores se
// convierten a estructuras planas serializables.
func (c *Neo4jClient) Run(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	session := c.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: c.database})
	defer session.Close(ctx)

	result, err := session.Run(ctx, cypher, params)
	if err != nil {
		return nil, c.classify(err)
	}

	records, err := result.Collect(ctx)
	if err != nil {
		return nil, c.classify(err)
	}

	rows := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		row := make(map[string]any, len(rec.Keys))
		for i, key := range rec.Keys {
			row[key] = normalizeValue(rec.Values[i])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Close libera el driver y su pool.
func (c *Neo4jClient) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

// classify traduce fallas del driver a la taxonomía del servicio:
// conectividad -> ErrUnavailable, error reportado por el servidor ->
// ErrQueryRejected, cualquier otra cosa se propaga sin clasificar.
func (c *Neo4jClient) classify(err error) error {
	switch {
	case neo4j.IsConnectivityError(err), errors.Is(err, context.DeadlineExceeded):
		if c.logger != nil {
			c.logger.Warn("neo4j unreachable", zap.Error(err))
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	case neo4j.IsNeo4jError(err):
		return fmt.Errorf("%w: %v", ErrQueryRejected, err)
	default:
		return err
	}
}
