// Package events fans service change notifications out to registered
// handlers on a bounded worker pool.
package events

import (
	"context"
	"time"

	"kesher_server/models"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

const handlerTimeout = time.Minute

type MatchHandler func(ctx context.Context, match models.Match)

type MessageHandler func(ctx context.Context, match models.Match, message models.Message)

type ProfileHandler func(ctx context.Context, userID string, profile *models.UserProfile)

// Dispatcher implements services.Events. Handlers run asynchronously on a
// shared pool; a slow or panicking handler never touches the write path.
type Dispatcher struct {
	pool *ants.Pool

	matchHandlers   []MatchHandler
	messageHandlers []MessageHandler
	profileHandlers []ProfileHandler
}

func NewDispatcher(poolSize int) (*Dispatcher, error) {
	pool, err := ants.NewPool(poolSize, ants.WithNonblocking(false))
	if err != nil {
		return nil, err
	}
	return &Dispatcher{pool: pool}, nil
}

// Register* must be called before the first publish; registration is not
// synchronized with dispatch.

func (d *Dispatcher) OnMatchCreated(h MatchHandler) {
	d.matchHandlers = append(d.matchHandlers, h)
}

func (d *Dispatcher) OnMessageCreated(h MessageHandler) {
	d.messageHandlers = append(d.messageHandlers, h)
}

func (d *Dispatcher) OnProfileWritten(h ProfileHandler) {
	d.profileHandlers = append(d.profileHandlers, h)
}

func (d *Dispatcher) MatchCreated(match models.Match) {
	for _, h := range d.matchHandlers {
		h := h
		d.submit(func(ctx context.Context) { h(ctx, match) })
	}
}

func (d *Dispatcher) MessageCreated(match models.Match, message models.Message) {
	for _, h := range d.messageHandlers {
		h := h
		d.submit(func(ctx context.Context) { h(ctx, match, message) })
	}
}

func (d *Dispatcher) ProfileWritten(userID string, profile *models.UserProfile) {
	for _, h := range d.profileHandlers {
		h := h
		d.submit(func(ctx context.Context) { h(ctx, userID, profile) })
	}
}

func (d *Dispatcher) submit(task func(ctx context.Context)) {
	err := d.pool.Submit(func() {
		defer func() {
			if r := recover(); r != nil {
				zap.S().Errorf("🔥 event handler panicked: %v", r)
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
		defer cancel()
		task(ctx)
	})
	if err != nil {
		zap.S().Warnf("⚠️ dropping event, worker pool unavailable: %v", err)
	}
}

// Close releases the worker pool. Pending tasks are abandoned.
func (d *Dispatcher) Close() {
	d.pool.Release()
}
