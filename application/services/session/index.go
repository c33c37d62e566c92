package session

import (
	"errors"
	"sync"
	"time"

	"verifid.io/entities"
	"verifid.io/infrastructure/logger"
)

// ErrSessionNotFound distinguishes "never existed or expired" from a failed
// verification.
var ErrSessionNotFound = errors.New("session not found")

const (
	DefaultExpiry        = 30 * time.Minute
	DefaultSweepInterval = 5 * time.Minute
)

// Store owns the live session table. All access goes through its mutex, so
// concurrent stage submissions for the same session are mutually exclusive
// rather than last-write-wins; a submission reads, mutates and writes the
// record atomically.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entities.Session

	expiry        time.Duration
	sweepInterval time.Duration
	sweepStop     chan struct{}

	// OnPurge fires after an expired session is removed, outside the store
	// lock. Used to cascade artifact cleanup.
	OnPurge func(session *entities.Session)
}

// NewStore builds a session store. Zero durations fall back to the
// defaults (30 minute expiry, 5 minute sweep).
func NewStore(expiry time.Duration, sweepInterval time.Duration) *Store {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	if sweepInterval <= 0 {
		sweepInterval = DefaultSweepInterval
	}
	return &Store{
		sessions:      map[string]*entities.Session{},
		expiry:        expiry,
		sweepInterval: sweepInterval,
	}
}

// CreateSession opens a new session in the initiated state with the resolved
// workflow step snapshot.
func (store *Store) CreateSession(applicantID string, workflowID string, steps entities.WorkflowSteps) *entities.Session {
	session := entities.Session{
		ApplicantID:   applicantID,
		Status:        entities.SessionInitiated,
		WorkflowID:    workflowID,
		WorkflowSteps: steps,
	}.ParseModel().(*entities.Session)

	store.mu.Lock()
	store.sessions[session.ID] = session
	store.mu.Unlock()

	snapshot := *session
	return &snapshot
}

// Get returns a snapshot of the session or ErrSessionNotFound.
func (store *Store) Get(id string) (*entities.Session, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	session, found := store.sessions[id]
	if !found {
		return nil, ErrSessionNotFound
	}
	snapshot := *session
	return &snapshot, nil
}

// Delete removes a session outright.
func (store *Store) Delete(id string) {
	store.mu.Lock()
	delete(store.sessions, id)
	store.mu.Unlock()
}

// SubmitConsent records the applicant's consent payload.
func (store *Store) SubmitConsent(id string, consent entities.ConsentData) (*entities.Session, error) {
	return store.update(id, func(session *entities.Session) {
		session.Consent = &consent
		session.Results.ConsentVerified = consent.Granted
		advance(session, entities.SessionConsentGiven)
	})
}

// SubmitLocation records captured coordinates. Capturing a location does not
// verify it; VerifyLocation sets the verified flag separately.
func (store *Store) SubmitLocation(id string, location entities.LocationData) (*entities.Session, error) {
	return store.update(id, func(session *entities.Session) {
		session.Location = &location
		advance(session, entities.SessionLocationCaptured)
	})
}

// VerifyLocation records the outcome of the explicit location comparison.
func (store *Store) VerifyLocation(id string, verified bool) (*entities.Session, error) {
	return store.update(id, func(session *entities.Session) {
		session.Results.LocationVerified = verified
	})
}

// SubmitDocument records the document stage. The session only reaches
// document_verified when the extraction reported a valid document.
func (store *Store) SubmitDocument(id string, document entities.DocumentData) (*entities.Session, error) {
	return store.update(id, func(session *entities.Session) {
		session.Document = &document
		session.Results.DocumentVerified = document.IsValid
		if document.IsValid {
			advance(session, entities.SessionDocumentVerified)
		} else {
			advance(session, entities.SessionDocumentUploaded)
		}
	})
}

// SubmitSecureVerification records the combined biometric decision.
func (store *Store) SubmitSecureVerification(id string, data entities.SecureVerificationData) (*entities.Session, error) {
	return store.update(id, func(session *entities.Session) {
		session.SecureVerification = &data
		session.Results.SecureVerificationVerified = data.OverallResult
		if data.OverallResult {
			advance(session, entities.SessionSecureVerified)
		} else {
			advance(session, entities.SessionSecureVerificationPending)
		}
	})
}

// SubmitQuestionnaire records the questionnaire stage.
func (store *Store) SubmitQuestionnaire(id string, questionnaire entities.QuestionnaireData) (*entities.Session, error) {
	return store.update(id, func(session *entities.Session) {
		session.Questionnaire = &questionnaire
		session.Results.QuestionnaireVerified = questionnaire.Passed
		if questionnaire.Passed {
			advance(session, entities.SessionQuestionnaireCompleted)
		} else {
			advance(session, entities.SessionQuestionnairePending)
		}
	})
}

// Complete recomputes the final verdict from the current stage data. It is
// idempotent and may be called repeatedly; each call restamps completedAt
// and may flip the terminal status if stage data changed in between.
func (store *Store) Complete(id string) (*entities.Session, error) {
	return store.update(id, func(session *entities.Session) {
		totalChecks := 0
		score := 0
		allRequiredVerified := true

		tally := func(required bool, verified bool) {
			if !required {
				return
			}
			totalChecks++
			if verified {
				score++
			} else {
				allRequiredVerified = false
			}
		}
		tally(session.WorkflowSteps.LocationRequired, session.Results.LocationVerified)
		tally(session.WorkflowSteps.DocumentRequired, session.Results.DocumentVerified)
		tally(session.WorkflowSteps.SecureVerificationRequired, session.Results.SecureVerificationVerified)
		tally(session.WorkflowSteps.QuestionnaireRequired, session.Results.QuestionnaireVerified)

		overallScore := 1.0
		if totalChecks > 0 {
			overallScore = float64(score) / float64(totalChecks)
		}
		session.Results.OverallVerified = allRequiredVerified
		session.OverallScore = &overallScore
		if allRequiredVerified {
			session.Status = entities.SessionCompleted
		} else {
			session.Status = entities.SessionFailed
		}
		now := time.Now()
		session.CompletedAt = &now
	})
}

// StartSweep launches the periodic expiry sweep. Safe to call once per
// store.
func (store *Store) StartSweep() {
	store.mu.Lock()
	if store.sweepStop != nil {
		store.mu.Unlock()
		return
	}
	store.sweepStop = make(chan struct{})
	stop := store.sweepStop
	store.mu.Unlock()

	go func() {
		ticker := time.NewTicker(store.sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				store.Sweep(time.Now())
			case <-stop:
				return
			}
		}
	}()
}

// StopSweep halts the expiry sweep goroutine.
func (store *Store) StopSweep() {
	store.mu.Lock()
	if store.sweepStop != nil {
		close(store.sweepStop)
		store.sweepStop = nil
	}
	store.mu.Unlock()
}

// Sweep expires and removes every session older than the expiry window.
// Purge callbacks run after the lock is released.
func (store *Store) Sweep(now time.Time) {
	var expired []*entities.Session
	store.mu.Lock()
	for id, session := range store.sessions {
		if now.Sub(session.CreatedAt) > store.expiry {
			session.Status = entities.SessionExpired
			expired = append(expired, session)
			delete(store.sessions, id)
		}
	}
	store.mu.Unlock()

	for _, session := range expired {
		logger.Info("session expired", logger.LoggerOptions{
			Key:  "sessionID",
			Data: session.ID,
		})
		if store.OnPurge != nil {
			store.OnPurge(session)
		}
	}
}

func (store *Store) update(id string, mutate func(session *entities.Session)) (*entities.Session, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	session, found := store.sessions[id]
	if !found {
		return nil, ErrSessionNotFound
	}
	mutate(session)
	session.UpdatedAt = time.Now()
	snapshot := *session
	return &snapshot, nil
}

// advance moves the status forward only. Stage resubmission overwrites the
// payload without dragging the status backwards, and terminal sessions stay
// terminal.
func advance(session *entities.Session, next entities.SessionStatus) {
	if next.Rank() > session.Status.Rank() {
		session.Status = next
	}
}
