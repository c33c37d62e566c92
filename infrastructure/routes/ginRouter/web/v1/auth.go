package routev1

import (
	"os"

	"github.com/gin-gonic/gin"
	apperrors "verifid.io/application/appErrors"
	"verifid.io/application/controller"
	"verifid.io/application/controller/dto"
	"verifid.io/application/interfaces"
)

// AuthRouter exposes the dev-only admin token mint. Registered in debug
// mode only.
func AuthRouter(router *gin.RouterGroup) {
	if os.Getenv("GIN_MODE") != "debug" {
		return
	}
	authRouter := router.Group("/auth")
	{
		authRouter.POST("/admin-token", func(ctx *gin.Context) {
			var body dto.MintAdminTokenDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.MintAdminToken(&interfaces.ApplicationContext[dto.MintAdminTokenDTO]{
				Ctx:  ctx,
				Body: &body,
			})
		})
	}
}
