package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"graph-embedder/internal/domain"
	"graph-embedder/internal/repository"
)

var (
	ErrQueryRequired      = errors.New("cypher query is required")
	ErrInvalidExpiry      = errors.New("expiresInDays must be a positive integer")
	ErrExpiryTooLong      = errors.New("expiresInDays exceeds the allowed maximum")
	ErrTokenNotFound      = errors.New("embed token not found")
	ErrTokenExpired       = errors.New("embed token expired")
	ErrStorageUnavailable = errors.New("embed storage unavailable")
)

const secondsPerDay = 24 * 60 * 60

// EmbedService emite tokens de embed y los resuelve a su consulta guardada.
// Es dueño de la política de TTL; la persistencia vive en el repositorio.
type EmbedService struct {
	logger         *zap.Logger
	tokens         repository.EmbedTokenRepository
	cache          EmbedCache
	baseURL        string
	defaultTTLDays int
	maxTTLDays     int
}

func NewEmbedService(
	logger *zap.Logger,
	tokens repository.EmbedTokenRepository,
	cache EmbedCache,
	baseURL string,
	defaultTTLDays, maxTTLDays int,
) *EmbedService {
	if defaultTTLDays < 1 {
		defaultTTLDays = 7
	}
	return &EmbedService{
		logger:         logger,
		tokens:         tokens,
		cache:          cache,
		baseURL:        strings.TrimRight(baseURL, "/"),
		defaultTTLDays: defaultTTLDays,
		maxTTLDays:     maxTTLDays,
	}
}

type CreateEmbedInput struct {
	CypherQuery string
	// ExpiresInDays nil significa "usar el default configurado". Cero se
	// interpreta como un día, compatibilidad con el contrato anterior donde
	// cero nunca debía producir tokens ya vencidos.
	ExpiresInDays *int
}

type CreatedEmbed struct {
	Token     string
	EmbedURL  string
	ExpiresAt time.Time
	ExpiresIn int
}

type ResolvedEmbed struct {
	CypherQuery string
	Token       string
	ExpiresAt   time.Time
}

// CreateEmbed valida la entrada, genera un token único y lo persiste.
// Cualquier falla del repositorio significa que no se emitió nada.
func (s *EmbedService) CreateEmbed(ctx context.Context, input CreateEmbedInput) (CreatedEmbed, error) {
	query := strings.TrimSpace(input.CypherQuery)
	if query == "" {
		return CreatedEmbed{}, ErrQueryRequired
	}

	days := s.defaultTTLDays
	if input.ExpiresInDays != nil {
		switch d := *input.ExpiresInDays; {
		case d < 0:
			return CreatedEmbed{}, ErrInvalidExpiry
		case d == 0:
			days = 1
		default:
			days = d
		}
	}
	if s.maxTTLDays > 0 && days > s.maxTTLDays {
		return CreatedEmbed{}, ErrExpiryTooLong
	}

	expiresIn := days * secondsPerDay
	now := time.Now().UTC()
	record := domain.EmbedToken{
		ID:          uuid.NewString(),
		Token:       uuid.NewString(),
		CypherQuery: query,
		CreatedAt:   now,
		ExpiresAt:   now.Add(time.Duration(expiresIn) * time.Second),
	}

	if err := s.tokens.Create(ctx, record); err != nil {
		s.logger.Error("create embed token failed", zap.Error(err))
		return CreatedEmbed{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return CreatedEmbed{
		Token:     record.Token,
		EmbedURL:  s.baseURL + "/view/" + record.Token,
		ExpiresAt: record.ExpiresAt,
		ExpiresIn: expiresIn,
	}, nil
}

// ResolveEmbed busca el token y reporta el resultado de tres vías:
// ErrTokenNotFound, ErrTokenExpired o la consulta guardada. El registro
// nunca se muta; la expiración se deriva del reloj en cada llamada.
func (s *EmbedService) ResolveEmbed(ctx context.Context, token string) (ResolvedEmbed, error) {
	record, ok := s.cachedToken(token)
	if !ok {
		var err error
		record, err = s.tokens.GetByToken(ctx, token)
		if errors.Is(err, pgx.ErrNoRows) {
			return ResolvedEmbed{}, ErrTokenNotFound
		}
		if err != nil {
			s.logger.Error("embed token lookup failed", zap.Error(err))
			return ResolvedEmbed{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		s.cacheToken(record)
	}

	if record.Expired(time.Now().UTC()) {
		return ResolvedEmbed{}, ErrTokenExpired
	}

	return ResolvedEmbed{
		CypherQuery: record.CypherQuery,
		Token:       record.Token,
		ExpiresAt:   record.ExpiresAt,
	}, nil
}

// cachedToken consulta la cache opcional; una falla de cache nunca es fatal.
func (s *EmbedService) cachedToken(token string) (domain.EmbedToken, bool) {
	if s.cache == nil {
		return domain.EmbedToken{}, false
	}
	record, ok, err := s.cache.Get(token)
	if err != nil {
		s.logger.Warn("embed cache get failed", zap.Error(err))
		return domain.EmbedToken{}, false
	}
	return record, ok
}

func (s *EmbedService) cacheToken(record domain.EmbedToken) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Store(record); err != nil {
		s.logger.Warn("embed cache store failed", zap.Error(err))
	}
}
