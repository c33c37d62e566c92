package startup

import (
	"encoding/json"
	"os"
	"strconv"
	"time"

	"verifid.io/application/controller"
	"verifid.io/application/services/session"
	"verifid.io/entities"
	"verifid.io/infrastructure/biometric"
	"verifid.io/infrastructure/database"
	"verifid.io/infrastructure/database/connection/datastore"
	"verifid.io/infrastructure/document_intelligence"
	"verifid.io/infrastructure/facescan"
	fileupload "verifid.io/infrastructure/file_upload"
	"verifid.io/infrastructure/ipresolver/maxmind"
	"verifid.io/infrastructure/logger"
	messagequeue "verifid.io/infrastructure/message_queue"
	queue_tasks "verifid.io/infrastructure/message_queue/tasks"
	mq_types "verifid.io/infrastructure/message_queue/types"
)

// Used to start services such as loggers, databases, queues, etc.
func StartServices() {
	logger.InitializeLogger()
	database.SetUpDatabase()
	logger.RequestMetricMonitor.Init()
	fileupload.InitialiseFileUploader()
	document_intelligence.InitialiseDocumentAnalyzer()
	facescan.InitialiseFaceAnalyzer()
	(&maxmind.MaxMindIPResolver{}).ConnectToDB()

	controller.SessionStore = buildSessionStore()
	controller.SessionStore.StartSweep()
	controller.SecureVerifier = &biometric.SecureVerifier{
		Analyzer: facescan.FaceScanService,
		Liveness: &biometric.LivenessEvaluator{
			Analyzer: facescan.FaceScanService,
		},
	}
}

// Used to clean up after services that have been shutdown.
func CleanUpServices() {
	if controller.SessionStore != nil {
		controller.SessionStore.StopSweep()
	}
	datastore.CleanUp()
}

func buildSessionStore() *session.Store {
	store := session.NewStore(durationFromEnv("SESSION_EXPIRY_MINUTES", session.DefaultExpiry),
		durationFromEnv("SESSION_SWEEP_INTERVAL_MINUTES", session.DefaultSweepInterval))
	store.OnPurge = func(expired *entities.Session) {
		payload, err := json.Marshal(queue_tasks.SessionArtifactPurgePayload{
			SessionID: expired.ID,
		})
		if err != nil {
			logger.Error("failed to marshal artifact purge payload", logger.LoggerOptions{
				Key:  "error",
				Data: err,
			})
			return
		}
		messagequeue.TaskQueue.Enqueue(mq_types.QueueTask{
			Name:     queue_tasks.HandleSessionArtifactPurgeTaskName,
			Payload:  payload,
			Priority: mq_types.Low,
		})
	}
	return store
}

func durationFromEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		logger.Warning("invalid duration env value, using fallback", logger.LoggerOptions{
			Key:  "env",
			Data: key,
		})
		return fallback
	}
	return time.Duration(minutes) * time.Minute
}
