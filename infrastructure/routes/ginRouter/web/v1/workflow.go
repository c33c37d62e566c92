package routev1

import (
	"github.com/gin-gonic/gin"
	apperrors "verifid.io/application/appErrors"
	"verifid.io/application/controller"
	"verifid.io/application/controller/dto"
	"verifid.io/application/interfaces"
	middlewares "verifid.io/infrastructure/middleware"
)

func WorkflowRouter(router *gin.RouterGroup) {
	workflowRouter := router.Group("/admin/workflows", middlewares.AdminAuthenticationMiddleware())
	{
		workflowRouter.POST("", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.CreateWorkflowDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.CreateWorkflow(&interfaces.ApplicationContext[dto.CreateWorkflowDTO]{
				Ctx:    ctx,
				Body:   &body,
				UserID: appContext.UserID,
			})
		})

		workflowRouter.PUT("", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.UpdateWorkflowDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.UpdateWorkflow(&interfaces.ApplicationContext[dto.UpdateWorkflowDTO]{
				Ctx:    ctx,
				Body:   &body,
				UserID: appContext.UserID,
			})
		})

		workflowRouter.GET("", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.ListWorkflows(&interfaces.ApplicationContext[any]{
				Ctx:    ctx,
				UserID: appContext.UserID,
			})
		})

		workflowRouter.GET("/:id", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.FetchWorkflow(&interfaces.ApplicationContext[any]{
				Ctx: ctx,
				Param: map[string]any{
					"id": ctx.Param("id"),
				},
				UserID: appContext.UserID,
			})
		})
	}
}
