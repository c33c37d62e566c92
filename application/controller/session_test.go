package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"verifid.io/entities"
)

func TestScoreQuestionnaire(t *testing.T) {
	document := &entities.DocumentData{
		ExtractedFields: map[string]string{
			"firstName":   "Ada",
			"lastName":    "Obi",
			"dateOfBirth": "1990-04-12",
		},
	}

	score, passed := scoreQuestionnaire(map[string]string{
		"firstName":   "ada",
		"lastName":    " Obi ",
		"dateOfBirth": "1990-04-12",
	}, document)
	assert.Equal(t, 1.0, score, "case and surrounding whitespace are ignored")
	assert.True(t, passed)

	score, passed = scoreQuestionnaire(map[string]string{
		"firstName":   "Ada",
		"lastName":    "Eze",
		"dateOfBirth": "1990-04-12",
	}, document)
	assert.InDelta(t, 0.667, score, 0.001)
	assert.False(t, passed, "one mismatch fails the questionnaire")
}

func TestScoreQuestionnaireIgnoresUnknownFields(t *testing.T) {
	document := &entities.DocumentData{
		ExtractedFields: map[string]string{"firstName": "Ada"},
	}

	score, passed := scoreQuestionnaire(map[string]string{
		"firstName":     "Ada",
		"favoriteColor": "blue",
	}, document)

	assert.Equal(t, 1.0, score, "answers without an extracted counterpart are not scored")
	assert.True(t, passed)
}

func TestScoreQuestionnaireFailsClosed(t *testing.T) {
	score, passed := scoreQuestionnaire(map[string]string{"firstName": "Ada"}, nil)
	assert.Zero(t, score)
	assert.False(t, passed, "no document means nothing to verify against")

	score, passed = scoreQuestionnaire(map[string]string{"middleName": "K"}, &entities.DocumentData{
		ExtractedFields: map[string]string{"firstName": "Ada"},
	})
	assert.Zero(t, score)
	assert.False(t, passed, "nothing comparable is a failure, not a free pass")
}
