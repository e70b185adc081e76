package game

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Loop drives an Engine from a ticker and serializes commands into it.
// Actions enqueued between two ticks are applied, in order, before the
// next NextFrame.
type Loop[T any] struct {
	engine   *Engine[T]
	id       string
	interval time.Duration
	actions  chan Action
	paused   bool
	mu       sync.Mutex
	onTick   []func(Snapshot[T]) // Callbacks after each step with a COPY of state
}

// NewLoop wraps engine in a Loop stepping at the engine's configured tick
// rate.
func NewLoop[T any](engine *Engine[T]) *Loop[T] {
	return &Loop[T]{
		engine:   engine,
		id:       uuid.NewString(),
		interval: time.Second / time.Duration(engine.Config.TickRate),
		actions:  make(chan Action, 256),
	}
}

// ID returns the session identifier used in log lines.
func (l *Loop[T]) ID() string {
	return l.id
}

// OnTick adds a callback that is invoked after every step with a copy of
// the state. Callbacks must be added before Run.
func (l *Loop[T]) OnTick(fn func(Snapshot[T])) {
	l.onTick = append(l.onTick, fn)
}

// Enqueue queues a command for the next step.
func (l *Loop[T]) Enqueue(a Action) {
	select {
	case l.actions <- a:
	default:
		log.Printf("[LOOP %s] action queue full, dropping %+v", l.id, a)
	}
}

// Run steps the loop until ctx is cancelled.
func (l *Loop[T]) Run(ctx context.Context) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	log.Printf("[LOOP %s] running at %s per tick", l.id, l.interval)
	for {
		select {
		case <-ctx.Done():
			log.Printf("[LOOP %s] stopped at frame %d", l.id, l.Snapshot().Time)
			return
		case <-ticker.C:
			l.Step()
		}
	}
}

// Step drains queued actions, advances the engine unless paused, and then
// reports the new state to the OnTick callbacks. Callbacks run after the
// lock is released so they may call Enqueue or Snapshot.
func (l *Loop[T]) Step() {
	l.mu.Lock()
	l.drainActions()
	if !l.paused {
		l.engine.NextFrame()
	}
	snap := l.snapshotLocked()
	l.mu.Unlock()

	for _, fn := range l.onTick {
		fn(snap)
	}
}

// Snapshot returns a copy of the current state.
func (l *Loop[T]) Snapshot() Snapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// snapshotLocked MUST be called while l.mu is held.
func (l *Loop[T]) snapshotLocked() Snapshot[T] {
	snap := l.engine.Snapshot()
	snap.Paused = l.paused
	return snap
}

func (l *Loop[T]) drainActions() {
	for {
		select {
		case a := <-l.actions:
			l.apply(a)
		default:
			return
		}
	}
}

func (l *Loop[T]) apply(a Action) {
	switch a.Type {
	case ActionMove:
		l.engine.MoveCurrentPiece(a.Axis, a.Amount)
	case ActionRotate:
		l.engine.RotateCurrentPiece(a.Direction)
	case ActionTogglePause:
		l.paused = !l.paused
		log.Printf("[LOOP %s] paused=%v", l.id, l.paused)
	}
}
