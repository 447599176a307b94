package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"kesher_server/apperrors"
	"kesher_server/metrics"
	"kesher_server/models"
	"kesher_server/repositories"

	"github.com/segmentio/ksuid"
)

// Moderator is the moderation gate as seen by the message write path. It is
// injected rather than called through the HTTP handler so the gate stays an
// internal API boundary.
type Moderator interface {
	Moderate(text string) (models.ModerationResult, error)
}

// ChatService is the message store write path plus the read-side helpers.
// Every message passes the moderation gate synchronously before persistence.
type ChatService struct {
	Messages  repositories.MessageRepository
	Matches   repositories.MatchRepository
	Moderator Moderator
	Events    Events
}

func NewChatService(messages repositories.MessageRepository, matches repositories.MatchRepository, moderator Moderator, events Events) *ChatService {
	return &ChatService{Messages: messages, Matches: matches, Moderator: moderator, Events: events}
}

// StoreMessage appends a message to an active match. A blocked text is
// never persisted: the caller gets a failed-precondition naming the labels
// that fired. On success a message-created event is published; the match's
// lastMessageAt is refreshed by SyncMatchActivity reacting to that event.
func (s *ChatService) StoreMessage(ctx context.Context, matchID, senderID, text string) (*models.Message, error) {
	if err := validateMatchID(matchID); err != nil {
		return nil, err
	}
	if err := validateUserID(senderID); err != nil {
		return nil, err
	}
	length := utf8.RuneCountInString(text)
	if length < 1 || length > models.MaxMessageTextLen {
		return nil, apperrors.Newf(apperrors.InvalidArgument,
			"message text must be between 1 and %d characters", models.MaxMessageTextLen)
	}

	match, err := s.Matches.Get(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.State != models.MatchStateActive {
		return nil, apperrors.New(apperrors.FailedPrecondition, "match is not active")
	}
	if !match.HasParticipant(senderID) {
		return nil, apperrors.New(apperrors.PermissionDenied, "sender is not a participant of this match")
	}

	moderation, err := s.Moderator.Moderate(text)
	if err != nil {
		return nil, err
	}
	if !moderation.Allowed {
		for _, label := range moderation.Labels {
			metrics.MessagesBlocked.WithLabelValues(label).Inc()
		}
		return nil, apperrors.Newf(apperrors.FailedPrecondition,
			"message blocked: %s", strings.Join(moderation.Labels, ", "))
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	message := models.Message{
		MatchID:    matchID,
		MessageID:  ksuid.New().String(),
		SenderID:   senderID,
		Text:       text,
		Status:     models.MessageStatusSent,
		Moderation: moderation,
		CreatedAt:  now,
	}

	if err := s.Messages.Put(ctx, message); err != nil {
		return nil, err
	}

	metrics.MessagesStored.Inc()
	s.Events.MessageCreated(*match, message)
	return &message, nil
}

// SyncMatchActivity stamps the message's creation time onto the match's
// lastMessageAt. Invoked from the message-created handler set, so a failure
// here surfaces to the dispatcher instead of being swallowed on the write
// path.
func (s *ChatService) SyncMatchActivity(ctx context.Context, message models.Message) error {
	return s.Matches.TouchLastMessage(ctx, message.MatchID, message.CreatedAt)
}

// GetMessages returns a match's messages oldest first. Only participants
// may read.
func (s *ChatService) GetMessages(ctx context.Context, matchID, callerID string, limit int32) ([]models.Message, error) {
	if err := validateMatchID(matchID); err != nil {
		return nil, err
	}

	match, err := s.Matches.Get(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasParticipant(callerID) {
		return nil, apperrors.New(apperrors.PermissionDenied, "not a participant of this match")
	}

	return s.Messages.ListByMatch(ctx, matchID, limit)
}

// MarkMessagesAsRead advances messages sent to readerID to status=read.
// The write path itself only ever sets "sent".
func (s *ChatService) MarkMessagesAsRead(ctx context.Context, matchID, readerID string) (int, error) {
	if err := validateMatchID(matchID); err != nil {
		return 0, err
	}

	match, err := s.Matches.Get(ctx, matchID)
	if err != nil {
		return 0, err
	}
	if !match.HasParticipant(readerID) {
		return 0, apperrors.New(apperrors.PermissionDenied, "not a participant of this match")
	}

	return s.Messages.MarkRead(ctx, matchID, readerID)
}
