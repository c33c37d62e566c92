package dto

import "verifid.io/entities"

type CreateWorkflowDTO struct {
	Name  string                 `json:"name" validate:"required,max=100"`
	Steps entities.WorkflowSteps `json:"steps"`
}

type UpdateWorkflowDTO struct {
	ID     string                  `json:"id" validate:"required"`
	Steps  *entities.WorkflowSteps `json:"steps"`
	Active *bool                   `json:"active"`
}
