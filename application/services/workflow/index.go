package workflow

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"verifid.io/application/repository"
	"verifid.io/entities"
	"verifid.io/infrastructure/database/repository/cache"
	"verifid.io/infrastructure/logger"
)

var ErrWorkflowNotFound = errors.New("workflow configuration not found")
var ErrWorkflowNameTaken = errors.New("a workflow configuration with this name already exists")

const cacheTTL = 10 * time.Minute

func cacheKey(id string) string {
	return fmt.Sprintf("workflow_config:%s", id)
}

// ResolveSteps returns the step snapshot a new session should run under. A
// nil or unknown workflow id resolves to the default steps so session
// creation never blocks on configuration state.
func ResolveSteps(workflowID *string) (entities.WorkflowSteps, string) {
	if workflowID == nil || *workflowID == "" {
		return entities.DefaultWorkflowSteps(), ""
	}
	config := fetchCached(*workflowID)
	if config == nil || !config.Active {
		logger.Warning("session requested an unknown or inactive workflow, falling back to defaults", logger.LoggerOptions{
			Key:  "workflowID",
			Data: *workflowID,
		})
		return entities.DefaultWorkflowSteps(), ""
	}
	return config.Steps, config.ID
}

// Fetch loads one configuration by id, through the cache.
func Fetch(id string) (*entities.WorkflowConfiguration, error) {
	config := fetchCached(id)
	if config == nil {
		return nil, ErrWorkflowNotFound
	}
	return config, nil
}

// List returns every stored configuration.
func List() (*[]entities.WorkflowConfiguration, error) {
	return repository.WorkflowConfigRepo().FindMany(map[string]interface{}{})
}

// Create stores a new configuration. Names are unique.
func Create(name string, steps entities.WorkflowSteps, createdBy string) (*entities.WorkflowConfiguration, error) {
	existing, err := repository.WorkflowConfigRepo().FindOneByFilter(map[string]interface{}{
		"name": name,
	})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrWorkflowNameTaken
	}
	return repository.WorkflowConfigRepo().CreateOne(nil, entities.WorkflowConfiguration{
		Name:      name,
		Steps:     steps,
		Active:    true,
		CreatedBy: createdBy,
	})
}

// Update overwrites a configuration's steps or active flag and drops the
// cached copy. Sessions created earlier keep their snapshot.
func Update(id string, steps *entities.WorkflowSteps, active *bool) (*entities.WorkflowConfiguration, error) {
	payload := map[string]interface{}{}
	if steps != nil {
		payload["steps"] = *steps
	}
	if active != nil {
		payload["active"] = *active
	}
	if len(payload) != 0 {
		modified, err := repository.WorkflowConfigRepo().UpdatePartialByID(nil, id, payload)
		if err != nil {
			return nil, err
		}
		if modified == 0 {
			return nil, ErrWorkflowNotFound
		}
	}
	cache.Cache.DeleteOne(cacheKey(id))
	config, err := repository.WorkflowConfigRepo().FindByID(id)
	if err != nil {
		return nil, err
	}
	if config == nil {
		return nil, ErrWorkflowNotFound
	}
	return config, nil
}

func fetchCached(id string) *entities.WorkflowConfiguration {
	if cached := cache.Cache.FindOne(cacheKey(id)); cached != nil {
		var config entities.WorkflowConfiguration
		if err := json.Unmarshal([]byte(*cached), &config); err == nil {
			return &config
		}
	}
	config, err := repository.WorkflowConfigRepo().FindByID(id)
	if err != nil || config == nil {
		return nil
	}
	if payload, err := json.Marshal(config); err == nil {
		cache.Cache.CreateEntry(cacheKey(id), payload, cacheTTL)
	}
	return config
}
