package accessgate

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/corpsite/pkg/jwt"
	"github.com/dmitrymomot/corpsite/pkg/logger"
	"github.com/dmitrymomot/corpsite/pkg/metrics"
)

// TokenSubject is the "sub" claim of access tokens.
const TokenSubject = "email-access"

// DefaultTokenTTL matches the inactivity window of the web client.
const DefaultTokenTTL = 10 * time.Minute

// Grant is the result of a successful verification. Token and ExpiresAt are
// zero when access tokens are disabled.
type Grant struct {
	Token     string
	ExpiresAt time.Time
}

// Service verifies the shared access password and issues short lived
// access tokens.
type Service struct {
	source Source
	tokens *jwt.Service
	ttl    time.Duration
	log    *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithTokens enables access tokens signed by svc and valid for ttl.
// A non-positive ttl uses DefaultTokenTTL.
func WithTokens(svc *jwt.Service, ttl time.Duration) Option {
	return func(s *Service) {
		s.tokens = svc
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithLogger sets the logger used to report a missing password. Logs are
// discarded by default.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a Service reading its password from source.
func New(source Source, opts ...Option) *Service {
	s := &Service{
		source: source,
		ttl:    DefaultTokenTTL,
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TokensEnabled reports whether Verify issues tokens and Authorize accepts them.
func (s *Service) TokensEnabled() bool {
	return s.tokens != nil
}

// Verify compares candidate with the configured password. The comparison is
// exact: no trimming, case folding or normalization.
func (s *Service) Verify(ctx context.Context, candidate string) (Grant, error) {
	cfg, err := s.source(ctx)
	if err != nil {
		return Grant{}, fmt.Errorf("accessgate: read config: %w", err)
	}

	if cfg.Password == "" {
		metrics.AccessVerifications.WithLabelValues(metrics.ResultUnconfigured).Inc()
		s.log.WarnContext(ctx, "access password is not configured", logger.Component("accessgate"))
		return Grant{}, ErrNotConfigured
	}

	if subtle.ConstantTimeCompare([]byte(candidate), []byte(cfg.Password)) != 1 {
		metrics.AccessVerifications.WithLabelValues(metrics.ResultUnauthorized).Inc()
		return Grant{}, ErrUnauthorized
	}
	metrics.AccessVerifications.WithLabelValues(metrics.ResultAuthorized).Inc()

	if s.tokens == nil {
		return Grant{}, nil
	}
	return s.issue()
}

func (s *Service) issue() (Grant, error) {
	now := s.tokens.Now()
	claims := jwt.Claims{
		ID:        uuid.NewString(),
		Subject:   TokenSubject,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
	}
	token, err := s.tokens.Generate(claims)
	if err != nil {
		return Grant{}, fmt.Errorf("accessgate: issue token: %w", err)
	}
	return Grant{Token: token, ExpiresAt: claims.Expiry()}, nil
}

// Authorize validates an access token issued by Verify.
func (s *Service) Authorize(_ context.Context, token string) (jwt.Claims, error) {
	if s.tokens == nil {
		return jwt.Claims{}, ErrTokensDisabled
	}

	var claims jwt.Claims
	if err := s.tokens.Parse(token, &claims); err != nil {
		return jwt.Claims{}, errors.Join(ErrInvalidToken, err)
	}
	if claims.Subject != TokenSubject {
		return jwt.Claims{}, fmt.Errorf("%w: unexpected subject %q", ErrInvalidToken, claims.Subject)
	}
	return claims, nil
}
