package services

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"kesher_server/apperrors"
	"kesher_server/models"
)

// bannedWords is the fixed mixed-language profanity denylist. Matching is a
// case-insensitive substring check, same as the legacy gate.
var bannedWords = []string{
	"fuck", "shit", "damn", "bitch", "ass", "bastard",
	"זין", "כוס", "מניאק", "זונה", "חרא", "לעזאזל",
}

// externalContactPattern flags URLs, common TLDs and local phone numbers.
var externalContactPattern = regexp.MustCompile(`https?://|www\.|\.com|\.net|\.org|05\d-?\d{7}`)

// ModerationService classifies free text before it is persisted. It is a
// pure rule engine with no storage dependencies.
type ModerationService struct{}

func NewModerationService() *ModerationService {
	return &ModerationService{}
}

// Moderate evaluates every rule independently; a text can carry multiple
// labels. allowed is false when any blocking rule fired. all-caps is a
// label only and never blocks on its own.
func (s *ModerationService) Moderate(text string) (models.ModerationResult, error) {
	length := utf8.RuneCountInString(text)
	if length < 1 || length > models.MaxModerationTextLen {
		return models.ModerationResult{}, apperrors.Newf(apperrors.InvalidArgument,
			"text length must be between 1 and %d characters", models.MaxModerationTextLen)
	}

	labels := []string{}
	allowed := true

	lower := strings.ToLower(text)
	for _, word := range bannedWords {
		if strings.Contains(lower, word) {
			allowed = false
			labels = append(labels, models.LabelOffensiveLanguage)
			break
		}
	}

	if hasRepeatedRun(text, 11) {
		allowed = false
		labels = append(labels, models.LabelSpam)
	}

	if externalContactPattern.MatchString(text) {
		allowed = false
		labels = append(labels, models.LabelExternalContact)
	}

	if length > 20 && text == strings.ToUpper(text) {
		labels = append(labels, models.LabelAllCaps)
	}

	return models.ModerationResult{Allowed: allowed, Labels: labels}, nil
}

// hasRepeatedRun reports whether any rune repeats at least minRun times
// consecutively. Go's regexp has no backreferences, so the legacy
// (.)\1{10,} rule is a run-length scan here.
func hasRepeatedRun(s string, minRun int) bool {
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
		} else {
			prev = r
			run = 1
		}
		if run >= minRun {
			return true
		}
	}
	return false
}
