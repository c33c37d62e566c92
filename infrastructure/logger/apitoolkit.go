package logger

import (
	"context"
	"os"

	apitoolkit "github.com/apitoolkit/apitoolkit-go"
	"github.com/gin-gonic/gin"
)

// APIToolKitMonitor ships per-request metrics to APIToolkit. When no API key
// is configured the middleware is a passthrough so local runs stay quiet.
type APIToolKitMonitor struct {
	client *apitoolkit.Client
}

func (monitor *APIToolKitMonitor) Init() {
	apiKey := os.Getenv("APITOOLKIT_API_KEY")
	if apiKey == "" {
		Info("apitoolkit api key not set. request metrics disabled")
		return
	}
	client, err := apitoolkit.NewClient(context.Background(), apitoolkit.Config{APIKey: apiKey})
	if err != nil {
		Error("could not initialise apitoolkit client", LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return
	}
	monitor.client = client
	Info("apitoolkit request metric monitor initialised")
}

func (monitor *APIToolKitMonitor) RequestMetricMiddleware() interface{} {
	if monitor.client == nil {
		return func(ctx *gin.Context) {
			ctx.Next()
		}
	}
	return monitor.client.GinMiddleware
}
