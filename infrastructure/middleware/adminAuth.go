package middlewares

import (
	"github.com/gin-gonic/gin"
	"verifid.io/application/interfaces"
	"verifid.io/application/middlewares"
)

func AdminAuthenticationMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		appContext, next := middlewares.AdminAuthenticationMiddleware(&interfaces.ApplicationContext[any]{
			Ctx: ctx,
		})
		if next {
			ctx.Set("AppContext", appContext)
			ctx.Next()
		}
	}
}
