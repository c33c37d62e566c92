package dto

type CreateSessionDTO struct {
	ApplicantID string  `json:"applicantID" validate:"required,max=100"`
	WorkflowID  *string `json:"workflowID" validate:"omitempty,max=100"`
}

type SubmitConsentDTO struct {
	Granted bool   `json:"granted"`
	Text    string `json:"text" validate:"required,max=5000"`
}

type SubmitLocationDTO struct {
	Latitude  float64 `json:"latitude" validate:"latitude_range"`
	Longitude float64 `json:"longitude" validate:"longitude_range"`
	Address   string  `json:"address" validate:"max=500"`
}

type VerifyLocationDTO struct {
	ClaimedLatitude     float64 `json:"claimedLatitude" validate:"latitude_range"`
	ClaimedLongitude    float64 `json:"claimedLongitude" validate:"longitude_range"`
	ExpectedCountryCode string  `json:"expectedCountryCode" validate:"omitempty,len=2"`
}

type SubmitDocumentDTO struct {
	DocumentType   string `json:"documentType" validate:"required,document_type"`
	DocumentNumber string `json:"documentNumber" validate:"required,max=100"`
	Image          string `json:"image" validate:"required"`
}

type SubmitSecureVerificationDTO struct {
	ReferencePhoto string   `json:"referencePhoto" validate:"required"`
	CaptureImage   string   `json:"captureImage" validate:"required"`
	Frames         []string `json:"frames" validate:"required"`
}

type SubmitQuestionnaireDTO struct {
	Answers map[string]string `json:"answers" validate:"required"`
}

type CompleteSessionDTO struct {
	NotifyEmail *string `json:"notifyEmail" validate:"omitempty,email"`
}
