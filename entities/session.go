package entities

import (
	"time"

	"verifid.io/application/utils"
)

type SessionStatus string

const (
	SessionInitiated                 SessionStatus = "initiated"
	SessionConsentGiven              SessionStatus = "consent_given"
	SessionLocationCaptured          SessionStatus = "location_captured"
	SessionDocumentUploaded          SessionStatus = "document_uploaded"
	SessionDocumentVerified          SessionStatus = "document_verified"
	SessionSecureVerificationPending SessionStatus = "secure_verification_pending"
	SessionSecureVerified            SessionStatus = "secure_verified"
	SessionQuestionnairePending      SessionStatus = "questionnaire_pending"
	SessionQuestionnaireCompleted    SessionStatus = "questionnaire_completed"
	SessionCompleted                 SessionStatus = "completed"
	SessionFailed                    SessionStatus = "failed"
	SessionExpired                   SessionStatus = "expired"
)

// Rank orders statuses along the pipeline so stage submissions never move a
// session backwards. Stage resubmission overwrites stage data without
// touching the status pointer.
func (status SessionStatus) Rank() int {
	switch status {
	case SessionInitiated:
		return 0
	case SessionConsentGiven:
		return 1
	case SessionLocationCaptured:
		return 2
	case SessionDocumentUploaded:
		return 3
	case SessionDocumentVerified:
		return 4
	case SessionSecureVerificationPending:
		return 5
	case SessionSecureVerified:
		return 6
	case SessionQuestionnairePending:
		return 7
	case SessionQuestionnaireCompleted:
		return 8
	case SessionCompleted, SessionFailed, SessionExpired:
		return 9
	}
	return -1
}

type ConsentData struct {
	Granted   bool      `bson:"granted" json:"granted"`
	Text      string    `bson:"text" json:"text"`
	GrantedAt time.Time `bson:"grantedAt" json:"grantedAt"`
}

type LocationData struct {
	Latitude   float64   `bson:"latitude" json:"latitude"`
	Longitude  float64   `bson:"longitude" json:"longitude"`
	Address    string    `bson:"address" json:"address"`
	IPAddress  string    `bson:"ipAddress" json:"ipAddress"`
	CapturedAt time.Time `bson:"capturedAt" json:"capturedAt"`
}

type DocumentData struct {
	DocumentType    string            `bson:"documentType" json:"documentType"`
	IDHash          string            `bson:"idHash" json:"idHash"`
	ExtractedFields map[string]string `bson:"extractedFields" json:"extractedFields"`
	Confidence      float64           `bson:"confidence" json:"confidence"`
	IsValid         bool              `bson:"isValid" json:"isValid"`
	SubmittedAt     time.Time         `bson:"submittedAt" json:"submittedAt"`
}

type QuestionnaireData struct {
	Answers     map[string]string `bson:"answers" json:"answers"`
	Score       float64           `bson:"score" json:"score"`
	Passed      bool              `bson:"passed" json:"passed"`
	SubmittedAt time.Time         `bson:"submittedAt" json:"submittedAt"`
}

type LivenessCheckType string

const (
	LivenessCheckBlink          LivenessCheckType = "blink"
	LivenessCheckHeadTurnLeft   LivenessCheckType = "head_turn_left"
	LivenessCheckHeadTurnRight  LivenessCheckType = "head_turn_right"
	LivenessCheckSmile          LivenessCheckType = "smile"
	LivenessCheckPassiveTexture LivenessCheckType = "passive_texture"
)

// LivenessCheck is a single pass/fail biometric signal evaluation.
type LivenessCheck struct {
	CheckType  LivenessCheckType `bson:"checkType" json:"checkType"`
	Result     bool              `bson:"result" json:"result"`
	Confidence float64           `bson:"confidence" json:"confidence"`
	Timestamp  time.Time         `bson:"timestamp" json:"timestamp"`
	Details    string            `bson:"details" json:"details"`
}

type FaceMatchData struct {
	IsMatch    bool    `bson:"isMatch" json:"isMatch"`
	MatchScore float64 `bson:"matchScore" json:"matchScore"`
	Confidence float64 `bson:"confidence" json:"confidence"`
}

type LivenessData struct {
	OverallResult   bool            `bson:"overallResult" json:"overallResult"`
	Checks          []LivenessCheck `bson:"checks" json:"checks"`
	ConfidenceScore float64         `bson:"confidenceScore" json:"confidenceScore"`
}

type FaceConsistencyData struct {
	IsConsistent     bool    `bson:"isConsistent" json:"isConsistent"`
	ConsistencyScore float64 `bson:"consistencyScore" json:"consistencyScore"`
	Message          string  `bson:"message" json:"message"`
}

// SecureVerificationData is the combined anti-spoofing decision recorded on a
// session. OverallResult is the AND of the three sub-results; Error carries a
// diagnostic when any input could not be produced (no face detected etc.) and
// never prevents a well-formed record from being written.
type SecureVerificationData struct {
	FaceMatch       FaceMatchData       `bson:"faceMatch" json:"faceMatch"`
	Liveness        LivenessData        `bson:"liveness" json:"liveness"`
	FaceConsistency FaceConsistencyData `bson:"faceConsistency" json:"faceConsistency"`
	OverallResult   bool                `bson:"overallResult" json:"overallResult"`
	Error           *string             `bson:"error" json:"error"`
	Timestamp       time.Time           `bson:"timestamp" json:"timestamp"`
}

type VerificationResults struct {
	ConsentVerified            bool `bson:"consentVerified" json:"consentVerified"`
	LocationVerified           bool `bson:"locationVerified" json:"locationVerified"`
	DocumentVerified           bool `bson:"documentVerified" json:"documentVerified"`
	SecureVerificationVerified bool `bson:"secureVerificationVerified" json:"secureVerificationVerified"`
	QuestionnaireVerified      bool `bson:"questionnaireVerified" json:"questionnaireVerified"`
	OverallVerified            bool `bson:"overallVerified" json:"overallVerified"`
}

// Session is the unit of work for one applicant's verification attempt. The
// session store owns these records exclusively; WorkflowSteps is snapshotted
// from the governing configuration at creation and never changes afterwards.
type Session struct {
	ApplicantID        string                  `bson:"applicantID" json:"applicantID"`
	Status             SessionStatus           `bson:"status" json:"status"`
	WorkflowID         string                  `bson:"workflowID" json:"workflowID"`
	WorkflowSteps      WorkflowSteps           `bson:"workflowSteps" json:"workflowSteps"`
	Consent            *ConsentData            `bson:"consent" json:"consent"`
	Location           *LocationData           `bson:"location" json:"location"`
	Document           *DocumentData           `bson:"document" json:"document"`
	SecureVerification *SecureVerificationData `bson:"secureVerification" json:"secureVerification"`
	Questionnaire      *QuestionnaireData      `bson:"questionnaire" json:"questionnaire"`
	Results            VerificationResults     `bson:"results" json:"results"`
	OverallScore       *float64                `bson:"overallScore" json:"overallScore"`
	CompletedAt        *time.Time              `bson:"completedAt" json:"completedAt"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (model Session) ParseModel() any {
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
