package services

import (
	"context"
	"testing"

	"kesher_server/apperrors"
	"kesher_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatServiceWith(t *testing.T) (*ChatService, *memMessageRepo, *memMatchRepo, *recordingEvents, string) {
	t.Helper()

	matchRepo := newMemMatchRepo()
	match := models.Match{
		MatchID: "match-0001",
		Users:   []string{"user-aaa", "user-bbb"},
		State:   models.MatchStateActive,
	}
	require.NoError(t, matchRepo.CreateActiveMatch(context.Background(), match))

	messageRepo := &memMessageRepo{}
	events := &recordingEvents{}
	svc := NewChatService(messageRepo, matchRepo, NewModerationService(), events)
	return svc, messageRepo, matchRepo, events, match.MatchID
}

func TestStoreMessage(t *testing.T) {
	svc, messageRepo, matchRepo, events, matchID := chatServiceWith(t)
	ctx := context.Background()

	message, err := svc.StoreMessage(ctx, matchID, "user-aaa", "hey, how are you?")
	require.NoError(t, err)

	assert.NotEmpty(t, message.MessageID)
	assert.Equal(t, models.MessageStatusSent, message.Status)
	assert.True(t, message.Moderation.Allowed)

	stored, err := messageRepo.ListByMatch(ctx, matchID, 0)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "hey, how are you?", stored[0].Text)

	require.Len(t, events.messages, 1)
	assert.Equal(t, message.MessageID, events.messages[0].MessageID)

	// The message-created handler stamps the match's activity time.
	require.NoError(t, svc.SyncMatchActivity(ctx, *message))
	match, err := matchRepo.Get(ctx, matchID)
	require.NoError(t, err)
	assert.Equal(t, message.CreatedAt, match.LastMessageAt)
}

func TestSyncMatchActivitySurfacesErrors(t *testing.T) {
	svc, _, _, _, _ := chatServiceWith(t)

	err := svc.SyncMatchActivity(context.Background(), models.Message{
		MatchID:   "match-gone",
		CreatedAt: "2026-01-01T00:00:00Z",
	})
	assert.True(t, apperrors.IsCode(err, apperrors.NotFound))
}

func TestStoreMessageBlockedIsNotPersisted(t *testing.T) {
	svc, messageRepo, matchRepo, events, matchID := chatServiceWith(t)
	ctx := context.Background()

	_, err := svc.StoreMessage(ctx, matchID, "user-aaa", "call me at 052-1234567")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.FailedPrecondition))
	assert.Contains(t, err.Error(), models.LabelExternalContact)

	stored, err := messageRepo.ListByMatch(ctx, matchID, 0)
	require.NoError(t, err)
	assert.Empty(t, stored)

	match, err := matchRepo.Get(ctx, matchID)
	require.NoError(t, err)
	assert.Empty(t, match.LastMessageAt)
	assert.Empty(t, events.messages)
}

func TestStoreMessageClosedMatch(t *testing.T) {
	svc, _, matchRepo, _, matchID := chatServiceWith(t)
	ctx := context.Background()

	match, err := matchRepo.Get(ctx, matchID)
	require.NoError(t, err)
	require.NoError(t, matchRepo.Close(ctx, *match, "user-aaa", "done", "2026-01-01T00:00:00Z"))

	_, err = svc.StoreMessage(ctx, matchID, "user-aaa", "are you still there?")
	assert.True(t, apperrors.IsCode(err, apperrors.FailedPrecondition))
}

func TestStoreMessageNonParticipant(t *testing.T) {
	svc, _, _, _, matchID := chatServiceWith(t)

	_, err := svc.StoreMessage(context.Background(), matchID, "user-stranger", "hello")
	assert.True(t, apperrors.IsCode(err, apperrors.PermissionDenied))
}

func TestStoreMessageValidation(t *testing.T) {
	svc, _, _, _, matchID := chatServiceWith(t)
	ctx := context.Background()

	_, err := svc.StoreMessage(ctx, "short", "user-aaa", "hi")
	assert.True(t, apperrors.IsCode(err, apperrors.InvalidArgument))

	_, err = svc.StoreMessage(ctx, matchID, "bad", "hi")
	assert.True(t, apperrors.IsCode(err, apperrors.InvalidArgument))

	_, err = svc.StoreMessage(ctx, matchID, "user-aaa", "")
	assert.True(t, apperrors.IsCode(err, apperrors.InvalidArgument))
}

func TestGetMessagesParticipantsOnly(t *testing.T) {
	svc, _, _, _, matchID := chatServiceWith(t)
	ctx := context.Background()

	_, err := svc.StoreMessage(ctx, matchID, "user-aaa", "first")
	require.NoError(t, err)
	_, err = svc.StoreMessage(ctx, matchID, "user-bbb", "second")
	require.NoError(t, err)

	messages, err := svc.GetMessages(ctx, matchID, "user-bbb", 0)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "first", messages[0].Text)
	assert.Equal(t, "second", messages[1].Text)

	_, err = svc.GetMessages(ctx, matchID, "user-stranger", 0)
	assert.True(t, apperrors.IsCode(err, apperrors.PermissionDenied))
}

func TestMarkMessagesAsRead(t *testing.T) {
	svc, _, _, _, matchID := chatServiceWith(t)
	ctx := context.Background()

	_, err := svc.StoreMessage(ctx, matchID, "user-aaa", "one")
	require.NoError(t, err)
	_, err = svc.StoreMessage(ctx, matchID, "user-aaa", "two")
	require.NoError(t, err)
	_, err = svc.StoreMessage(ctx, matchID, "user-bbb", "three")
	require.NoError(t, err)

	// Only the other side's messages flip to read.
	updated, err := svc.MarkMessagesAsRead(ctx, matchID, "user-bbb")
	require.NoError(t, err)
	assert.Equal(t, 2, updated)

	// Second pass finds nothing left to update.
	updated, err = svc.MarkMessagesAsRead(ctx, matchID, "user-bbb")
	require.NoError(t, err)
	assert.Equal(t, 0, updated)

	_, err = svc.MarkMessagesAsRead(ctx, matchID, "user-stranger")
	assert.True(t, apperrors.IsCode(err, apperrors.PermissionDenied))
}
