package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"graph-embedder/internal/domain"
)

// ErrDuplicateToken se produce cuando el token ya existe en la tabla.
// La unicidad la garantiza el índice único de embed_tokens.
var ErrDuplicateToken = errors.New("embed token already exists")

// EmbedTokenRepository define el contrato de persistencia para embed tokens.
type EmbedTokenRepository interface {
	Create(ctx context.Context, token domain.EmbedToken) error
	GetByToken(ctx context.Context, token string) (domain.EmbedToken, error)
}

// PgEmbedTokenRepository implementa EmbedTokenRepository usando pgxpool.
type PgEmbedTokenRepository struct {
	pool *pgxpool.Pool
}

func NewPgEmbedTokenRepository(pool *pgxpool.Pool) *PgEmbedTokenRepository {
	return &PgEmbedTokenRepository{pool: pool}
}

func (r *PgEmbedTokenRepository) Create(ctx context.Context, token domain.EmbedToken) error {
	const query = `
		INSERT INTO embed_tokens (id, embed_token, cypher_query, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		token.ID,
		token.Token,
		token.CypherQuery,
		token.CreatedAt,
		token.ExpiresAt,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateToken
	}
	return err
}

func (r *PgEmbedTokenRepository) GetByToken(ctx context.Context, token string) (domain.EmbedToken, error) {
	const query = `
		SELECT id, embed_token, cypher_query, created_at, expires_at
		FROM embed_tokens
		WHERE embed_token = $1
	`
	var t domain.EmbedToken
	err := r.pool.QueryRow(ctx, query, token).Scan(
		&t.ID,
		&t.Token,
		&t.CypherQuery,
		&t.CreatedAt,
		&t.ExpiresAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.EmbedToken{}, err
	}
	return t, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
