package controller

import (
	"net/http"

	apperrors "verifid.io/application/appErrors"
	"verifid.io/application/controller/dto"
	"verifid.io/application/interfaces"
	"verifid.io/application/services/workflow"
	server_response "verifid.io/infrastructure/serverResponse"
	"verifid.io/infrastructure/validator"
)

func CreateWorkflow(ctx *interfaces.ApplicationContext[dto.CreateWorkflowDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	created, err := workflow.Create(ctx.Body.Name, ctx.Body.Steps, ctx.UserID)
	if err != nil {
		if err == workflow.ErrWorkflowNameTaken {
			apperrors.EntityAlreadyExistsError(ctx.Ctx, err.Error())
			return
		}
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "workflow created", created, nil, nil)
}

func UpdateWorkflow(ctx *interfaces.ApplicationContext[dto.UpdateWorkflowDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	updated, err := workflow.Update(ctx.Body.ID, ctx.Body.Steps, ctx.Body.Active)
	if err != nil {
		if err == workflow.ErrWorkflowNotFound {
			apperrors.NotFoundError(ctx.Ctx, err.Error())
			return
		}
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "workflow updated", updated, nil, nil)
}

func ListWorkflows(ctx *interfaces.ApplicationContext[any]) {
	workflows, err := workflow.List()
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "workflows fetched", workflows, nil, nil)
}

func FetchWorkflow(ctx *interfaces.ApplicationContext[any]) {
	found, err := workflow.Fetch(ctx.GetStringParameter("id"))
	if err != nil {
		apperrors.NotFoundError(ctx.Ctx, "workflow configuration not found")
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "workflow fetched", found, nil, nil)
}
