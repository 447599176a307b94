package services

import "kesher_server/models"

// Events is the change-notification boundary: services publish after a
// successful write, handlers (starter generation, push dispatch, projection
// sync, socket broadcast) react asynchronously. Publishing must never block
// or fail the write path.
type Events interface {
	MatchCreated(match models.Match)
	MessageCreated(match models.Match, message models.Message)
	ProfileWritten(userID string, profile *models.UserProfile) // nil profile means deleted
}

// NopEvents discards all events.
type NopEvents struct{}

func (NopEvents) MatchCreated(models.Match)                   {}
func (NopEvents) MessageCreated(models.Match, models.Message) {}
func (NopEvents) ProfileWritten(string, *models.UserProfile)  {}
