package services

import (
	"strings"
	"testing"

	"kesher_server/apperrors"
	"kesher_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModerate(t *testing.T) {
	svc := NewModerationService()

	tests := []struct {
		name    string
		text    string
		allowed bool
		labels  []string
	}{
		{
			name:    "clean text passes",
			text:    "Hey, nice to meet you! How was your weekend?",
			allowed: true,
			labels:  []string{},
		},
		{
			name:    "english profanity blocks",
			text:    "what the fuck is this",
			allowed: false,
			labels:  []string{models.LabelOffensiveLanguage},
		},
		{
			name:    "hebrew profanity blocks",
			text:    "איזה חרא של יום",
			allowed: false,
			labels:  []string{models.LabelOffensiveLanguage},
		},
		{
			name:    "profanity inside a longer word blocks",
			text:    "classic case",
			allowed: false,
			labels:  []string{models.LabelOffensiveLanguage},
		},
		{
			name:    "eleven repeated runes block as spam",
			text:    "hi " + strings.Repeat("a", 11),
			allowed: false,
			labels:  []string{models.LabelSpam},
		},
		{
			name:    "hebrew repeated runes block as spam",
			// Hebrew has no letter case, so the long text also picks up
			// the all-caps label.
			text:    "ההההההההההההההההההההה",
			allowed: false,
			labels:  []string{models.LabelSpam, models.LabelAllCaps},
		},
		{
			name:    "ten repeated runes pass",
			text:    "hi " + strings.Repeat("a", 10),
			allowed: true,
			labels:  []string{},
		},
		{
			name:    "http url blocks",
			text:    "check out https://wa.me/123456",
			allowed: false,
			labels:  []string{models.LabelExternalContact},
		},
		{
			name:    "www link blocks",
			text:    "find me at www.example.org ok",
			allowed: false,
			labels:  []string{models.LabelExternalContact},
		},
		{
			name:    "local phone number blocks",
			text:    "call me 052-1234567",
			allowed: false,
			labels:  []string{models.LabelExternalContact},
		},
		{
			name:    "phone number without dash blocks",
			text:    "0521234567",
			allowed: false,
			labels:  []string{models.LabelExternalContact},
		},
		{
			name:    "long all caps is labeled but not blocked",
			text:    "I REALLY LIKE YOUR PROFILE PICTURE",
			allowed: true,
			labels:  []string{models.LabelAllCaps},
		},
		{
			name:    "short all caps gets no label",
			text:    "NICE TO MEET YOU",
			allowed: true,
			labels:  []string{},
		},
		{
			name:    "multiple rules stack labels",
			text:    "fuck this, call 052-1234567",
			allowed: false,
			labels:  []string{models.LabelOffensiveLanguage, models.LabelExternalContact},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Moderate(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, result.Allowed)
			assert.Equal(t, tt.labels, result.Labels)
		})
	}
}

func TestModerateRejectsEmptyText(t *testing.T) {
	svc := NewModerationService()

	_, err := svc.Moderate("")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.InvalidArgument))
}

func TestModerateRejectsOversizedText(t *testing.T) {
	svc := NewModerationService()

	_, err := svc.Moderate(strings.Repeat("x", models.MaxModerationTextLen+1))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.InvalidArgument))
}

func TestModerateMaxLengthTextIsEvaluated(t *testing.T) {
	svc := NewModerationService()

	// Exactly at the limit, varied runes so no rule fires.
	text := strings.Repeat("ab", models.MaxModerationTextLen/2)
	result, err := svc.Moderate(text)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}
