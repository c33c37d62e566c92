package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"verifid.io/entities"
)

func newTestStore() *Store {
	return NewStore(0, 0)
}

func TestCreateAndGetSession(t *testing.T) {
	store := newTestStore()

	created := store.CreateSession("applicant-1", "", entities.DefaultWorkflowSteps())

	require.NotEmpty(t, created.ID)
	assert.Equal(t, entities.SessionInitiated, created.Status)
	assert.Equal(t, "applicant-1", created.ApplicantID)

	found, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = store.Get("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGetReturnsSnapshot(t *testing.T) {
	store := newTestStore()
	created := store.CreateSession("applicant-1", "", entities.DefaultWorkflowSteps())

	first, err := store.Get(created.ID)
	require.NoError(t, err)
	first.Status = entities.SessionFailed

	second, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.SessionInitiated, second.Status, "mutating a snapshot must not touch the store")
}

func TestStageSubmissionsAdvanceStatus(t *testing.T) {
	store := newTestStore()
	created := store.CreateSession("applicant-1", "", entities.DefaultWorkflowSteps())

	updated, err := store.SubmitConsent(created.ID, entities.ConsentData{Granted: true, Text: "terms", GrantedAt: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, entities.SessionConsentGiven, updated.Status)
	assert.True(t, updated.Results.ConsentVerified)

	updated, err = store.SubmitLocation(created.ID, entities.LocationData{Latitude: 6.5, Longitude: 3.3})
	require.NoError(t, err)
	assert.Equal(t, entities.SessionLocationCaptured, updated.Status)
	assert.False(t, updated.Results.LocationVerified, "capturing a location does not verify it")

	updated, err = store.VerifyLocation(created.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.Results.LocationVerified)
	assert.Equal(t, entities.SessionLocationCaptured, updated.Status, "verification does not move the status")
}

func TestDocumentStatusDependsOnValidity(t *testing.T) {
	store := newTestStore()
	created := store.CreateSession("applicant-1", "", entities.DefaultWorkflowSteps())

	updated, err := store.SubmitDocument(created.ID, entities.DocumentData{DocumentType: "passport", IsValid: false})
	require.NoError(t, err)
	assert.Equal(t, entities.SessionDocumentUploaded, updated.Status)
	assert.False(t, updated.Results.DocumentVerified)

	updated, err = store.SubmitDocument(created.ID, entities.DocumentData{DocumentType: "passport", IsValid: true})
	require.NoError(t, err)
	assert.Equal(t, entities.SessionDocumentVerified, updated.Status)
	assert.True(t, updated.Results.DocumentVerified)
}

func TestStatusNeverMovesBackwards(t *testing.T) {
	store := newTestStore()
	created := store.CreateSession("applicant-1", "", entities.DefaultWorkflowSteps())

	_, err := store.SubmitDocument(created.ID, entities.DocumentData{DocumentType: "passport", IsValid: true})
	require.NoError(t, err)

	updated, err := store.SubmitLocation(created.ID, entities.LocationData{Latitude: 1, Longitude: 1})
	require.NoError(t, err)
	assert.Equal(t, entities.SessionDocumentVerified, updated.Status, "resubmitting an earlier stage keeps the later status")
	require.NotNil(t, updated.Location, "the stage payload is still overwritten")
}

func TestSecureVerificationStatus(t *testing.T) {
	store := newTestStore()
	created := store.CreateSession("applicant-1", "", entities.DefaultWorkflowSteps())

	updated, err := store.SubmitSecureVerification(created.ID, entities.SecureVerificationData{OverallResult: false})
	require.NoError(t, err)
	assert.Equal(t, entities.SessionSecureVerificationPending, updated.Status)

	updated, err = store.SubmitSecureVerification(created.ID, entities.SecureVerificationData{OverallResult: true})
	require.NoError(t, err)
	assert.Equal(t, entities.SessionSecureVerified, updated.Status)
	assert.True(t, updated.Results.SecureVerificationVerified)
}

func TestCompleteWithPartialResults(t *testing.T) {
	store := newTestStore()
	created := store.CreateSession("applicant-1", "", entities.WorkflowSteps{
		LocationRequired:           true,
		DocumentRequired:           true,
		SecureVerificationRequired: true,
	})
	_, err := store.VerifyLocation(created.ID, true)
	require.NoError(t, err)
	_, err = store.SubmitDocument(created.ID, entities.DocumentData{DocumentType: "passport", IsValid: true})
	require.NoError(t, err)
	_, err = store.SubmitSecureVerification(created.ID, entities.SecureVerificationData{OverallResult: false})
	require.NoError(t, err)

	completed, err := store.Complete(created.ID)
	require.NoError(t, err)

	assert.Equal(t, entities.SessionFailed, completed.Status)
	require.NotNil(t, completed.OverallScore)
	assert.InDelta(t, 0.667, *completed.OverallScore, 0.001)
	assert.False(t, completed.Results.OverallVerified)
	require.NotNil(t, completed.CompletedAt)
}

func TestCompleteWithZeroRequiredSteps(t *testing.T) {
	store := newTestStore()
	created := store.CreateSession("applicant-1", "", entities.WorkflowSteps{})

	completed, err := store.Complete(created.ID)
	require.NoError(t, err)

	assert.Equal(t, entities.SessionCompleted, completed.Status)
	require.NotNil(t, completed.OverallScore)
	assert.Equal(t, 1.0, *completed.OverallScore)
	assert.True(t, completed.Results.OverallVerified)
}

func TestCompleteIsIdempotentAndRecomputed(t *testing.T) {
	store := newTestStore()
	created := store.CreateSession("applicant-1", "", entities.WorkflowSteps{
		SecureVerificationRequired: true,
	})

	first, err := store.Complete(created.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.SessionFailed, first.Status)

	second, err := store.Complete(created.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, *first.OverallScore, *second.OverallScore)
	assert.False(t, second.CompletedAt.Before(*first.CompletedAt), "completedAt is restamped on every call")

	// new stage data flips the verdict on the next evaluation
	_, err = store.SubmitSecureVerification(created.ID, entities.SecureVerificationData{OverallResult: true})
	require.NoError(t, err)
	third, err := store.Complete(created.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.SessionCompleted, third.Status)
	assert.Equal(t, 1.0, *third.OverallScore)
}

func TestSweepExpiresOldSessions(t *testing.T) {
	store := NewStore(time.Second, time.Minute)
	purged := []string{}
	store.OnPurge = func(expired *entities.Session) {
		purged = append(purged, expired.ID)
		assert.Equal(t, entities.SessionExpired, expired.Status)
	}
	created := store.CreateSession("applicant-1", "", entities.DefaultWorkflowSteps())

	store.Sweep(time.Now().Add(1500 * time.Millisecond))

	_, err := store.Get(created.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, []string{created.ID}, purged)
}

func TestSweepKeepsFreshSessions(t *testing.T) {
	store := NewStore(time.Hour, time.Minute)
	created := store.CreateSession("applicant-1", "", entities.DefaultWorkflowSteps())

	store.Sweep(time.Now())

	_, err := store.Get(created.ID)
	assert.NoError(t, err)
}

func TestWorkflowStepsSnapshotIsImmutable(t *testing.T) {
	store := newTestStore()
	steps := entities.DefaultWorkflowSteps()
	created := store.CreateSession("applicant-1", "wf-1", steps)

	steps.LocationRequired = false

	found, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.True(t, found.WorkflowSteps.LocationRequired, "later changes to the source steps do not leak in")
	assert.Equal(t, "wf-1", found.WorkflowID)
}
