package auth

import (
	"errors"
	"os"
	"sync"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
	"verifid.io/infrastructure/logger"
)

var jwksOnce = sync.Once{}
var jwks *keyfunc.JWKS

// GenerateAdminToken signs an HS256 token for the admin surface. Used by
// internal tooling; production deployments usually hand out tokens from the
// identity provider and verify them through the JWKS path instead.
func GenerateAdminToken(claimsData AdminClaimsData) (*string, error) {
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":     os.Getenv("JWT_ISSUER"),
		"sub":     claimsData.AdminID,
		"email":   claimsData.Email,
		"exp":     claimsData.ExpiresAt,
		"iat":     claimsData.IssuedAt,
		"role":    "admin",
	}).SignedString([]byte(os.Getenv("ADMIN_JWT_SIGNING_KEY")))
	if err != nil {
		return nil, err
	}
	return &tokenString, nil
}

// DecodeAdminToken verifies an admin token. When ADMIN_JWKS_URL is set the
// token is checked against the identity provider's key set, otherwise
// against the shared HS256 key.
func DecodeAdminToken(tokenString string) (*jwt.Token, error) {
	var token *jwt.Token
	var err error
	jwksURL := os.Getenv("ADMIN_JWKS_URL")
	if jwksURL != "" {
		keySet := loadJWKS(jwksURL)
		if keySet == nil {
			return nil, errors.New("could not load identity provider key set")
		}
		token, err = jwt.Parse(tokenString, keySet.Keyfunc)
	} else {
		token, err = jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(os.Getenv("ADMIN_JWT_SIGNING_KEY")), nil
		})
	}
	if err != nil {
		logger.Error("error decoding admin jwt", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token used")
	}
	return token, nil
}

func loadJWKS(jwksURL string) *keyfunc.JWKS {
	jwksOnce.Do(func() {
		var err error
		jwks, err = keyfunc.Get(jwksURL, keyfunc.Options{})
		if err != nil {
			logger.Error("could not fetch jwks from identity provider", logger.LoggerOptions{
				Key:  "error",
				Data: err,
			})
		}
	})
	return jwks
}
