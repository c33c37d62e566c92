package queue_tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	fileupload "verifid.io/infrastructure/file_upload"
	"verifid.io/infrastructure/logger"
	mq_types "verifid.io/infrastructure/message_queue/types"
)

var HandleSessionArtifactPurgeTaskName mq_types.Queues = "purge_session_artifacts"

type SessionArtifactPurgePayload struct {
	SessionID string
}

// HandleSessionArtifactPurgeTask deletes every stored artifact (recording
// chunks, document images) belonging to an expired or deleted session.
func HandleSessionArtifactPurgeTask(ctx context.Context, t *asynq.Task) error {
	var payload SessionArtifactPurgePayload
	err := json.Unmarshal(t.Payload(), &payload)
	if err != nil {
		logger.Error("an error occured while unmarshalling artifact purge queue payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return err
	}
	err = fileupload.FileUploader.DeleteByPrefix(fmt.Sprintf("sessions/%s/", payload.SessionID))
	if err != nil {
		logger.Error("failed to purge session artifacts", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "sessionID",
			Data: payload.SessionID,
		})
		return err
	}
	logger.Info("purged session artifacts", logger.LoggerOptions{
		Key:  "sessionID",
		Data: payload.SessionID,
	})
	return nil
}
