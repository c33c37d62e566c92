package queue_tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"verifid.io/infrastructure/logger"
	mq_types "verifid.io/infrastructure/message_queue/types"
	"verifid.io/infrastructure/messaging/emails"
)

var HandleSessionReportTaskName mq_types.Queues = "send_session_report"

type SessionReportPayload struct {
	To        string
	SessionID string
	Outcome   string
	Score     string
}

// HandleSessionReportTask emails the completion report for a finished
// session.
func HandleSessionReportTask(ctx context.Context, t *asynq.Task) error {
	var payload SessionReportPayload
	err := json.Unmarshal(t.Payload(), &payload)
	if err != nil {
		logger.Error("an error occured while unmarshalling session report queue payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return err
	}
	success := emails.EmailService.SendEmail(payload.To, "Your verification result", "session_report", map[string]any{
		"SessionID":    payload.SessionID,
		"Outcome":      payload.Outcome,
		"Score":        payload.Score,
		"SupportEmail": "support@verifid.io",
	})
	if !success {
		logger.Error("failed to send session report email", logger.LoggerOptions{
			Key:  "toEmail",
			Data: payload.To,
		}, logger.LoggerOptions{
			Key:  "sessionID",
			Data: payload.SessionID,
		})
		return fmt.Errorf("failed to send session report to %s", payload.To)
	}
	return nil
}
