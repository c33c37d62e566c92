package entities

import (
	"time"

	"verifid.io/application/utils"
)

// WorkflowSteps is the resolved set of stage toggles governing a session.
// A fixed struct rather than an open map so every stage that exists is
// visible at compile time.
type WorkflowSteps struct {
	LocationRequired           bool     `bson:"locationRequired" json:"locationRequired"`
	DocumentRequired           bool     `bson:"documentRequired" json:"documentRequired"`
	SecureVerificationRequired bool     `bson:"secureVerificationRequired" json:"secureVerificationRequired"`
	QuestionnaireRequired      bool     `bson:"questionnaireRequired" json:"questionnaireRequired"`
	LocationRadiusKM           *float64 `bson:"locationRadiusKM" json:"locationRadiusKM"`
}

// DefaultWorkflowSteps is applied when a session is created without a named
// configuration: location, document and secure verification are mandatory,
// the questionnaire is not.
func DefaultWorkflowSteps() WorkflowSteps {
	return WorkflowSteps{
		LocationRequired:           true,
		DocumentRequired:           true,
		SecureVerificationRequired: true,
		QuestionnaireRequired:      false,
	}
}

// WorkflowConfiguration is an admin-defined template of stage requirements.
// Sessions snapshot the resolved steps at creation; later admin updates do
// not retroactively affect them.
type WorkflowConfiguration struct {
	Name      string        `bson:"name" json:"name"`
	Steps     WorkflowSteps `bson:"steps" json:"steps"`
	Active    bool          `bson:"active" json:"active"`
	CreatedBy string        `bson:"createdBy" json:"createdBy"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (model WorkflowConfiguration) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		if model.ID == "" {
			model.ID = utils.GenerateULIDString()
		}
	}
	model.UpdatedAt = now
	return &model
}
