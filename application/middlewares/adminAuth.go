package middlewares

import (
	"strings"

	"github.com/golang-jwt/jwt/v4"
	apperrors "verifid.io/application/appErrors"
	"verifid.io/application/interfaces"
	"verifid.io/infrastructure/auth"
)

// AdminAuthenticationMiddleware guards the workflow administration surface.
func AdminAuthenticationMiddleware(ctx *interfaces.ApplicationContext[any]) (*interfaces.ApplicationContext[any], bool) {
	authHeader := ctx.GetHeader("Authorization")
	if authHeader == nil {
		apperrors.AuthenticationError(ctx.Ctx, "provide an auth token")
		return nil, false
	}
	tokenString := strings.TrimPrefix(*authHeader, "Bearer ")
	token, err := auth.DecodeAdminToken(tokenString)
	if err != nil {
		apperrors.AuthenticationError(ctx.Ctx, "invalid or expired auth token")
		return nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		apperrors.AuthenticationError(ctx.Ctx, "invalid auth token claims")
		return nil, false
	}
	if role, _ := claims["role"].(string); role != "admin" {
		apperrors.AuthenticationError(ctx.Ctx, "insufficient permissions")
		return nil, false
	}
	if sub, _ := claims["sub"].(string); sub != "" {
		ctx.UserID = sub
	}
	return ctx, true
}
