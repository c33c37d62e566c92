package interfaces

import "github.com/gin-gonic/gin"

// ApplicationContext carries a parsed request body plus the request metadata
// controllers need, so controller signatures stay transport-agnostic.
type ApplicationContext[T any] struct {
	Ctx        *gin.Context
	Body       *T
	DeviceID   string
	DeviceName string
	UserAgent  string
	UserID     string
	Param      map[string]any
}

func (appCtx *ApplicationContext[T]) GetHeader(key string) *string {
	value := appCtx.Ctx.GetHeader(key)
	if value == "" {
		return nil
	}
	return &value
}

func (appCtx *ApplicationContext[T]) GetStringParameter(key string) string {
	if appCtx.Param == nil {
		return ""
	}
	value, ok := appCtx.Param[key].(string)
	if !ok {
		return ""
	}
	return value
}
