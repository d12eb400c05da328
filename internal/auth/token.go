package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cmlichen-UTT/UA-api/internal/config"
	"github.com/cmlichen-UTT/UA-api/internal/domain"
)

// Claims is the payload carried by a bearer token. Only the user id matters
// to the API, everything else is opaque to callers.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// GenerateToken signs a bearer token for the user. A zero expiry would issue
// an already-dead token, so it is rejected as a configuration error.
func GenerateToken(cfg config.Config, user *domain.User) (string, error) {
	if cfg.JWTExpires == 0 {
		return "", fmt.Errorf("token expiry is not configured")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(cfg.JWTExpires)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "ua-api",
		},
	})

	signed, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies a bearer token and returns the user id it carries.
func ParseToken(cfg config.Config, tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", domain.ErrUnauthenticated
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return "", domain.ErrUnauthenticated
	}

	return claims.UserID, nil
}
