package controller

import (
	"net/http"
	"time"

	apperrors "verifid.io/application/appErrors"
	"verifid.io/application/controller/dto"
	"verifid.io/application/interfaces"
	"verifid.io/infrastructure/auth"
	server_response "verifid.io/infrastructure/serverResponse"
	"verifid.io/infrastructure/validator"
)

// MintAdminToken signs a short-lived admin token for local development.
// The route is only registered in debug mode; deployed environments get
// tokens from the identity provider.
func MintAdminToken(ctx *interfaces.ApplicationContext[dto.MintAdminTokenDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	ttl := time.Duration(ctx.Body.TTLMinutes) * time.Minute
	if ttl == 0 {
		ttl = time.Hour
	}
	now := time.Now()
	token, err := auth.GenerateAdminToken(auth.AdminClaimsData{
		AdminID:   ctx.Body.AdminID,
		Email:     ctx.Body.Email,
		ExpiresAt: now.Add(ttl).Unix(),
		IssuedAt:  now.Unix(),
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "admin token minted", map[string]any{
		"token": token,
	}, nil, nil)
}
