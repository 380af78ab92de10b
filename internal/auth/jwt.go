package auth

import (
	"fmt"
	"time"

	"sso-server/internal/shared/config"
	"sso-server/internal/user"

	"github.com/golang-jwt/jwt/v5"
)

type JWTSigner struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

func NewJWTSigner(cfg config.AuthConfig) *JWTSigner {
	return &JWTSigner{
		secret:     []byte(cfg.JWTSecret),
		expiration: cfg.TokenExpiration,
		now:        time.Now,
	}
}

func (s *JWTSigner) Sign(u *user.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:   u.ID.String(),
		Email:    u.Email,
		Provider: u.ProviderName.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   u.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

func (s *JWTSigner) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
