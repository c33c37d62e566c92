package controller

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	apperrors "verifid.io/application/appErrors"
	"verifid.io/application/constants"
	"verifid.io/application/controller/dto"
	"verifid.io/application/interfaces"
	"verifid.io/application/repository"
	"verifid.io/application/services/session"
	"verifid.io/application/services/workflow"
	"verifid.io/application/utils"
	"verifid.io/entities"
	"verifid.io/infrastructure/biometric"
	"verifid.io/infrastructure/cryptography"
	"verifid.io/infrastructure/document_intelligence"
	fileupload "verifid.io/infrastructure/file_upload"
	"verifid.io/infrastructure/location"
	"verifid.io/infrastructure/logger"
	messagequeue "verifid.io/infrastructure/message_queue"
	queue_tasks "verifid.io/infrastructure/message_queue/tasks"
	mq_types "verifid.io/infrastructure/message_queue/types"
	server_response "verifid.io/infrastructure/serverResponse"
	"verifid.io/infrastructure/validator"
)

// SessionStore and SecureVerifier are wired once at startup.
var SessionStore *session.Store
var SecureVerifier *biometric.SecureVerifier

func CreateSession(ctx *interfaces.ApplicationContext[dto.CreateSessionDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	steps, workflowID := workflow.ResolveSteps(ctx.Body.WorkflowID)
	created := SessionStore.CreateSession(ctx.Body.ApplicantID, workflowID, steps)
	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "session created", created, nil, nil)
}

func FetchSession(ctx *interfaces.ApplicationContext[any]) {
	found, err := SessionStore.Get(ctx.GetStringParameter("id"))
	if err != nil {
		apperrors.NotFoundError(ctx.Ctx, "session not found")
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "session fetched", found, nil, nil)
}

func SubmitConsent(ctx *interfaces.ApplicationContext[dto.SubmitConsentDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	updated, err := SessionStore.SubmitConsent(ctx.GetStringParameter("id"), entities.ConsentData{
		Granted:   ctx.Body.Granted,
		Text:      ctx.Body.Text,
		GrantedAt: time.Now(),
	})
	if err != nil {
		apperrors.NotFoundError(ctx.Ctx, "session not found")
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "consent recorded", updated, nil, nil)
}

func SubmitLocation(ctx *interfaces.ApplicationContext[dto.SubmitLocationDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	updated, err := SessionStore.SubmitLocation(ctx.GetStringParameter("id"), entities.LocationData{
		Latitude:   ctx.Body.Latitude,
		Longitude:  ctx.Body.Longitude,
		Address:    ctx.Body.Address,
		IPAddress:  ctx.Ctx.ClientIP(),
		CapturedAt: time.Now(),
	})
	if err != nil {
		apperrors.NotFoundError(ctx.Ctx, "session not found")
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "location captured", updated, nil, nil)
}

// VerifyLocation runs the explicit comparison between the captured
// coordinates and the claimed address. Capturing and verifying are separate
// calls on purpose; a captured location proves nothing by itself.
func VerifyLocation(ctx *interfaces.ApplicationContext[dto.VerifyLocationDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	sessionID := ctx.GetStringParameter("id")
	current, err := SessionStore.Get(sessionID)
	if err != nil {
		apperrors.NotFoundError(ctx.Ctx, "session not found")
		return
	}
	if current.Location == nil {
		apperrors.ClientError(ctx.Ctx, "capture a location before verifying it", nil, nil)
		return
	}
	comparison := location.Compare(*current.Location, ctx.Body.ClaimedLatitude, ctx.Body.ClaimedLongitude,
		current.WorkflowSteps.LocationRadiusKM, ctx.Body.ExpectedCountryCode)
	updated, err := SessionStore.VerifyLocation(sessionID, comparison.Verified)
	if err != nil {
		apperrors.NotFoundError(ctx.Ctx, "session not found")
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, comparison.Message, map[string]any{
		"session":    updated,
		"comparison": comparison,
	}, nil, nil)
}

func SubmitDocument(ctx *interfaces.ApplicationContext[dto.SubmitDocumentDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	image, err := base64.StdEncoding.DecodeString(ctx.Body.Image)
	if err != nil {
		apperrors.ClientError(ctx.Ctx, "image must be base64 encoded", nil, nil)
		return
	}
	analysis, err := document_intelligence.DocumentAnalyzer.AnalyzeDocument(ctx.Body.DocumentType, image)
	if err != nil {
		apperrors.ExternalDependencyError(ctx.Ctx, "document-intelligence", "500", err)
		return
	}
	idHash, err := cryptography.CryptoHasher.HashString(ctx.Body.DocumentNumber, nil)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	updated, err := SessionStore.SubmitDocument(ctx.GetStringParameter("id"), entities.DocumentData{
		DocumentType:    ctx.Body.DocumentType,
		IDHash:          string(idHash),
		ExtractedFields: analysis.ExtractedFields,
		Confidence:      analysis.Confidence,
		IsValid:         analysis.IsValid,
		SubmittedAt:     time.Now(),
	})
	if err != nil {
		apperrors.NotFoundError(ctx.Ctx, "session not found")
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "document processed", updated, nil, nil)
}

func SubmitSecureVerification(ctx *interfaces.ApplicationContext[dto.SubmitSecureVerificationDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	if len(ctx.Body.Frames) == 0 {
		apperrors.CustomError(ctx.Ctx, "at least one recorded frame is required", &constants.LIVENESS_FRAMES_MISSING)
		return
	}
	referencePhoto, err := base64.StdEncoding.DecodeString(ctx.Body.ReferencePhoto)
	if err != nil {
		apperrors.ClientError(ctx.Ctx, "referencePhoto must be base64 encoded", nil, nil)
		return
	}
	captureImage, err := base64.StdEncoding.DecodeString(ctx.Body.CaptureImage)
	if err != nil {
		apperrors.ClientError(ctx.Ctx, "captureImage must be base64 encoded", nil, nil)
		return
	}
	frames := make([][]byte, 0, len(ctx.Body.Frames))
	for _, encoded := range ctx.Body.Frames {
		frame, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			apperrors.ClientError(ctx.Ctx, "frames must be base64 encoded", nil, nil)
			return
		}
		frames = append(frames, frame)
	}

	result := SecureVerifier.Verify(referencePhoto, captureImage, frames)
	updated, err := SessionStore.SubmitSecureVerification(ctx.GetStringParameter("id"), *result)
	if err != nil {
		apperrors.NotFoundError(ctx.Ctx, "session not found")
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "secure verification processed", updated, nil, nil)
}

// SubmitQuestionnaire cross-checks the applicant's answers against the
// fields extracted from their document. Only answers with a corresponding
// extracted field count towards the score.
func SubmitQuestionnaire(ctx *interfaces.ApplicationContext[dto.SubmitQuestionnaireDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	sessionID := ctx.GetStringParameter("id")
	current, err := SessionStore.Get(sessionID)
	if err != nil {
		apperrors.NotFoundError(ctx.Ctx, "session not found")
		return
	}
	score, passed := scoreQuestionnaire(ctx.Body.Answers, current.Document)
	updated, err := SessionStore.SubmitQuestionnaire(sessionID, entities.QuestionnaireData{
		Answers:     ctx.Body.Answers,
		Score:       score,
		Passed:      passed,
		SubmittedAt: time.Now(),
	})
	if err != nil {
		apperrors.NotFoundError(ctx.Ctx, "session not found")
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "questionnaire recorded", updated, nil, nil)
}

func CompleteSession(ctx *interfaces.ApplicationContext[dto.CompleteSessionDTO]) {
	if ctx.Body != nil {
		validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
		if validationErr != nil {
			apperrors.ValidationFailedError(ctx.Ctx, validationErr)
			return
		}
	}
	completed, err := SessionStore.Complete(ctx.GetStringParameter("id"))
	if err != nil {
		apperrors.NotFoundError(ctx.Ctx, "session not found")
		return
	}
	archiveSession(completed)
	if ctx.Body != nil && ctx.Body.NotifyEmail != nil {
		enqueueSessionReport(*ctx.Body.NotifyEmail, completed)
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "session evaluated", completed, nil, nil)
}

func GetRecordingUploadURL(ctx *interfaces.ApplicationContext[any]) {
	sessionID := ctx.GetStringParameter("id")
	if _, err := SessionStore.Get(sessionID); err != nil {
		apperrors.NotFoundError(ctx.Ctx, "session not found")
		return
	}
	fileName := fmt.Sprintf("sessions/%s/chunks/%s.webm", sessionID, utils.GenerateULIDString())
	url, err := fileupload.FileUploader.GenerateUploadURL(fileName)
	if err != nil {
		apperrors.ExternalDependencyError(ctx.Ctx, "azure", "500", err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "upload url generated", map[string]any{
		"url":      url,
		"fileName": fileName,
	}, nil, nil)
}

func scoreQuestionnaire(answers map[string]string, document *entities.DocumentData) (float64, bool) {
	if document == nil || len(document.ExtractedFields) == 0 {
		return 0, false
	}
	compared := 0
	matched := 0
	for field, answer := range answers {
		expected, known := document.ExtractedFields[field]
		if !known {
			continue
		}
		compared++
		if strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(expected)) {
			matched++
		}
	}
	if compared == 0 {
		return 0, false
	}
	score := float64(matched) / float64(compared)
	return score, matched == compared
}

// archiveSession writes a terminal session to the audit collection with the
// extracted document fields encrypted at rest.
func archiveSession(completed *entities.Session) {
	archived := *completed
	if archived.Document != nil && len(archived.Document.ExtractedFields) > 0 {
		document := *archived.Document
		plaintext, err := json.Marshal(document.ExtractedFields)
		if err == nil {
			if cipher, err := cryptography.EncryptData(plaintext, nil); err == nil {
				document.ExtractedFields = map[string]string{"_encrypted": *cipher}
			}
		}
		archived.Document = &document
	}
	if _, err := repository.SessionArchiveRepo().CreateOne(nil, archived); err != nil {
		logger.Error("failed to archive completed session", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "sessionID",
			Data: completed.ID,
		})
	}
}

func enqueueSessionReport(toEmail string, completed *entities.Session) {
	score := 0.0
	if completed.OverallScore != nil {
		score = *completed.OverallScore
	}
	payload, err := json.Marshal(queue_tasks.SessionReportPayload{
		To:        toEmail,
		SessionID: completed.ID,
		Outcome:   string(completed.Status),
		Score:     fmt.Sprintf("%.0f%%", score*100),
	})
	if err != nil {
		logger.Error("failed to marshal session report payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return
	}
	messagequeue.TaskQueue.Enqueue(mq_types.QueueTask{
		Name:     queue_tasks.HandleSessionReportTaskName,
		Payload:  payload,
		Priority: mq_types.Medium,
	})
}
