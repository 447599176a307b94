package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"kesher_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestDispatcherFansOut(t *testing.T) {
	d, err := NewDispatcher(4)
	require.NoError(t, err)
	defer d.Close()

	var mu sync.Mutex
	var matchCalls, messageCalls, profileCalls int

	d.OnMatchCreated(func(ctx context.Context, match models.Match) {
		mu.Lock()
		matchCalls++
		mu.Unlock()
	})
	d.OnMatchCreated(func(ctx context.Context, match models.Match) {
		mu.Lock()
		matchCalls++
		mu.Unlock()
	})
	d.OnMessageCreated(func(ctx context.Context, match models.Match, message models.Message) {
		mu.Lock()
		messageCalls++
		mu.Unlock()
	})
	d.OnProfileWritten(func(ctx context.Context, userID string, profile *models.UserProfile) {
		mu.Lock()
		profileCalls++
		mu.Unlock()
	})

	d.MatchCreated(models.Match{MatchID: "match-0001"})
	d.MessageCreated(models.Match{MatchID: "match-0001"}, models.Message{MessageID: "msg-1"})
	d.ProfileWritten("user-aaa", nil)

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return matchCalls == 2 && messageCalls == 1 && profileCalls == 1
	})
}

func TestDispatcherSurvivesPanickingHandler(t *testing.T) {
	d, err := NewDispatcher(2)
	require.NoError(t, err)
	defer d.Close()

	var mu sync.Mutex
	delivered := false

	d.OnMatchCreated(func(ctx context.Context, match models.Match) {
		panic("boom")
	})
	d.OnMatchCreated(func(ctx context.Context, match models.Match) {
		mu.Lock()
		delivered = true
		mu.Unlock()
	})

	d.MatchCreated(models.Match{MatchID: "match-0001"})

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return delivered
	})
}

func TestDispatcherHandlerGetsDeadline(t *testing.T) {
	d, err := NewDispatcher(1)
	require.NoError(t, err)
	defer d.Close()

	var mu sync.Mutex
	var hasDeadline bool
	done := false

	d.OnProfileWritten(func(ctx context.Context, userID string, profile *models.UserProfile) {
		_, ok := ctx.Deadline()
		mu.Lock()
		hasDeadline = ok
		done = true
		mu.Unlock()
	})

	d.ProfileWritten("user-aaa", nil)

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return done
	})
	assert.True(t, hasDeadline)
}
