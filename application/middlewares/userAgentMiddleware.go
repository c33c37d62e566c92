package middlewares

import (
	"errors"

	apperrors "verifid.io/application/appErrors"
	"verifid.io/application/interfaces"
	"verifid.io/infrastructure/useragent"
)

// UserAgentMiddleware rejects requests without an identifiable client. Every
// verification call must carry a user agent and a device id so session
// activity can be tied to one device.
func UserAgentMiddleware(ctx *interfaces.ApplicationContext[any]) (*interfaces.ApplicationContext[any], bool) {
	agent := ctx.GetHeader("User-Agent")
	if agent == nil {
		apperrors.ClientError(ctx.Ctx, "missing user agent", []error{errors.New("user agent header missing")}, nil)
		return nil, false
	}
	agentDetails := useragent.ParseUserAgent(*agent)
	if agentDetails.Bot {
		apperrors.UnsupportedUserAgent(ctx.Ctx)
		return nil, false
	}
	ctx.UserAgent = *agent
	ctx.DeviceName = agentDetails.Name
	deviceID := ctx.GetHeader("X-Device-Id")
	if deviceID == nil || *deviceID == "" {
		apperrors.ClientError(ctx.Ctx, "missing device id", []error{errors.New("x-device-id header missing")}, nil)
		return nil, false
	}
	ctx.DeviceID = *deviceID
	return ctx, true
}
