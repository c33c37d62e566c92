package repository

import (
	"sync"

	"verifid.io/entities"
	"verifid.io/infrastructure/database/connection/datastore"
	"verifid.io/infrastructure/database/repository/mongo"
)

var workflowConfigOnce = sync.Once{}

var workflowConfigRepository mongo.MongoRepository[entities.WorkflowConfiguration]

func WorkflowConfigRepo() *mongo.MongoRepository[entities.WorkflowConfiguration] {
	workflowConfigOnce.Do(func() {
		workflowConfigRepository = mongo.MongoRepository[entities.WorkflowConfiguration]{Model: datastore.WorkflowConfigurationModel}
	})
	return &workflowConfigRepository
}
