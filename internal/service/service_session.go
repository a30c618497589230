package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/remy-site/internal/auth"
	"github.com/MKhiriev/remy-site/internal/logger"
	"github.com/MKhiriev/remy-site/internal/metrics"
	"github.com/MKhiriev/remy-site/models"
)

// sessionService binds the token codec, the cookie manager and the gate.
type sessionService struct {
	codec   *auth.Codec
	cookies *auth.CookieManager
	gate    *auth.Gate

	logger *logger.Logger
}

func NewSessionService(codec *auth.Codec, cookies *auth.CookieManager, logger *logger.Logger) SessionService {
	return &sessionService{
		codec:   codec,
		cookies: cookies,
		gate:    auth.NewGate(codec, cookies),
		logger:  logger,
	}
}

func (s *sessionService) Issue(ctx context.Context, user models.User) (string, error) {
	token, err := s.codec.Sign(user.ID, user.Name, user.Role)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", user.ID).Msg("cannot sign session")
		return "", fmt.Errorf("cannot sign session: %w", err)
	}

	return s.cookies.Serialize(token), nil
}

func (s *sessionService) Destroy(ctx context.Context) string {
	return s.cookies.Clear()
}

func (s *sessionService) Identify(ctx context.Context, rawCookie string) (auth.Identity, bool) {
	return s.gate.ReadIdentity(rawCookie)
}

func (s *sessionService) Authorize(ctx context.Context, rawCookie string, minimum auth.Role) auth.Decision {
	decision := s.gate.RequireRole(rawCookie, minimum)
	metrics.RecordAuthDecision(decision.Outcome())

	if !decision.Allowed {
		logger.FromContext(ctx).Debug().
			Str("required_role", minimum.String()).
			Str("outcome", decision.Outcome()).
			Msg("request denied")
	}

	return decision
}
