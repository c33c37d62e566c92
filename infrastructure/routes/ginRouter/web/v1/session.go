package routev1

import (
	"github.com/gin-gonic/gin"
	apperrors "verifid.io/application/appErrors"
	"verifid.io/application/controller"
	"verifid.io/application/controller/dto"
	"verifid.io/application/interfaces"
)

func SessionRouter(router *gin.RouterGroup) {
	sessionRouter := router.Group("/sessions")
	{
		sessionRouter.POST("", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.CreateSessionDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.CreateSession(&interfaces.ApplicationContext[dto.CreateSessionDTO]{
				Ctx:       ctx,
				Body:      &body,
				DeviceID:  appContext.DeviceID,
				UserAgent: appContext.UserAgent,
			})
		})

		sessionRouter.GET("/:id", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.FetchSession(&interfaces.ApplicationContext[any]{
				Ctx: ctx,
				Param: map[string]any{
					"id": ctx.Param("id"),
				},
				DeviceID: appContext.DeviceID,
			})
		})

		sessionRouter.POST("/:id/consent", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.SubmitConsentDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.SubmitConsent(&interfaces.ApplicationContext[dto.SubmitConsentDTO]{
				Ctx:  ctx,
				Body: &body,
				Param: map[string]any{
					"id": ctx.Param("id"),
				},
				DeviceID: appContext.DeviceID,
			})
		})

		sessionRouter.POST("/:id/location", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.SubmitLocationDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.SubmitLocation(&interfaces.ApplicationContext[dto.SubmitLocationDTO]{
				Ctx:  ctx,
				Body: &body,
				Param: map[string]any{
					"id": ctx.Param("id"),
				},
				DeviceID: appContext.DeviceID,
			})
		})

		sessionRouter.POST("/:id/location/verify", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.VerifyLocationDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.VerifyLocation(&interfaces.ApplicationContext[dto.VerifyLocationDTO]{
				Ctx:  ctx,
				Body: &body,
				Param: map[string]any{
					"id": ctx.Param("id"),
				},
				DeviceID: appContext.DeviceID,
			})
		})

		sessionRouter.POST("/:id/document", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.SubmitDocumentDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.SubmitDocument(&interfaces.ApplicationContext[dto.SubmitDocumentDTO]{
				Ctx:  ctx,
				Body: &body,
				Param: map[string]any{
					"id": ctx.Param("id"),
				},
				DeviceID: appContext.DeviceID,
			})
		})

		sessionRouter.POST("/:id/secure-verification", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.SubmitSecureVerificationDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.SubmitSecureVerification(&interfaces.ApplicationContext[dto.SubmitSecureVerificationDTO]{
				Ctx:  ctx,
				Body: &body,
				Param: map[string]any{
					"id": ctx.Param("id"),
				},
				DeviceID: appContext.DeviceID,
			})
		})

		sessionRouter.POST("/:id/questionnaire", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.SubmitQuestionnaireDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.SubmitQuestionnaire(&interfaces.ApplicationContext[dto.SubmitQuestionnaireDTO]{
				Ctx:  ctx,
				Body: &body,
				Param: map[string]any{
					"id": ctx.Param("id"),
				},
				DeviceID: appContext.DeviceID,
			})
		})

		sessionRouter.POST("/:id/complete", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.CompleteSessionDTO
			if err := ctx.ShouldBindJSON(&body); err != nil && err.Error() != "EOF" {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.CompleteSession(&interfaces.ApplicationContext[dto.CompleteSessionDTO]{
				Ctx:  ctx,
				Body: &body,
				Param: map[string]any{
					"id": ctx.Param("id"),
				},
				DeviceID: appContext.DeviceID,
			})
		})

		sessionRouter.GET("/:id/recording-upload-url", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.GetRecordingUploadURL(&interfaces.ApplicationContext[any]{
				Ctx: ctx,
				Param: map[string]any{
					"id": ctx.Param("id"),
				},
				DeviceID: appContext.DeviceID,
			})
		})
	}
}
