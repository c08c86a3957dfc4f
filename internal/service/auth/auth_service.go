package auth

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/ougirez/certenergy/internal/pkg/constants"
	"github.com/ougirez/certenergy/internal/pkg/logger"
	"github.com/ougirez/certenergy/internal/pkg/utils"
)

const DefaultTokenTTL = 24 * time.Hour

type Service struct {
	secret string
	ttl    time.Duration
}

func NewService(secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Service{secret: secret, ttl: ttl}
}

// LoginAdmin exchanges the shared secret for a signed admin token.
func (svc *Service) LoginAdmin(ctx context.Context, secret string) (string, error) {
	if svc.secret == "" || !svc.matches(secret) {
		logger.Warn(ctx, "admin login rejected")
		return "", constants.ErrUnauthorized
	}

	wrapper := &utils.AuthTokenWrapper{
		StandardClaims: jwt.StandardClaims{Subject: constants.TokenSubjectAdmin},
	}
	return utils.GenerateAuthToken(wrapper, svc.secret, svc.ttl)
}

// Authorize validates a token issued by LoginAdmin.
func (svc *Service) Authorize(raw string) error {
	if raw == "" || svc.secret == "" {
		return constants.ErrUnauthorized
	}

	token, err := utils.ParseAuthToken(raw, svc.secret)
	if err != nil {
		return err
	}
	if token.Subject != constants.TokenSubjectAdmin {
		return constants.ErrUnauthorized
	}
	return nil
}

func (svc *Service) matches(secret string) bool {
	return subtle.ConstantTimeCompare([]byte(secret), []byte(svc.secret)) == 1
}

func (svc *Service) TTL() time.Duration {
	return svc.ttl
}
