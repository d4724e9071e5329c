package event

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"slices"
	"sync"
	"time"
)

// TaskTopic is the topic reported to the Observer for tasks started with Go.
const TaskTopic = "task"

// Envelope is a published event together with its bus-assigned identity.
type Envelope struct {
	ID    string
	Seq   int64
	Event Event
}

// Observer receives delivery statistics. Implemented by internal/metrics.
type Observer interface {
	// Published is called once per Publish, before listeners start.
	Published(topic string)
	// TaskFinished is called when a listener or detached task returns.
	// err is non-nil when it failed or panicked.
	TaskFinished(topic, name string, elapsed time.Duration, err error)
}

type subscription struct {
	name string
	fn   func(ctx context.Context, env Envelope) error
}

// Bus is the typed publish/subscribe bus.
//
// Thread-safety model:
//   - On(), Tap(): call during startup, before the first Publish
//   - Publish(), Go(): safe from any goroutine, including listeners
//   - Wait(): safe from any goroutine except a listener of this bus
type Bus struct {
	mu        sync.RWMutex
	listeners map[Kind][]subscription

	clock    *Clock
	ids      IDGenerator
	observer Observer
	logger   *slog.Logger

	tasks sync.WaitGroup
}

// Option configures a Bus.
type Option func(*Bus)

// WithLogger sets the logger used for delivery diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bus) {
		b.logger = logger
	}
}

// WithObserver sets the delivery statistics sink.
func WithObserver(o Observer) Option {
	return func(b *Bus) {
		b.observer = o
	}
}

// WithIDGenerator overrides the envelope id generator (default UUIDv7).
func WithIDGenerator(g IDGenerator) Option {
	return func(b *Bus) {
		b.ids = g
	}
}

// New creates an empty bus.
func New(opts ...Option) *Bus {
	b := &Bus{
		listeners: make(map[Kind][]subscription),
		clock:     NewClock(),
		ids:       UUIDv7Generator{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// On registers fn for every event of type E for the lifetime of the bus.
// name identifies the listener in logs and metrics.
func On[E Event](b *Bus, name string, fn func(ctx context.Context, e E) error) {
	var zero E
	kind := zero.Kind()

	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[kind] = append(b.listeners[kind], subscription{
		name: name,
		fn: func(ctx context.Context, env Envelope) error {
			e, ok := env.Event.(E)
			if !ok {
				// Unreachable: listeners are keyed by E's own kind.
				return fmt.Errorf("listener %s: unexpected payload %T for %s", name, env.Event, kind)
			}
			return fn(ctx, e)
		},
	})
}

// Tap registers fn for every event kind. Taps see the envelope, including
// the sequence number, and run isolated like any other listener.
func (b *Bus) Tap(name string, fn func(ctx context.Context, env Envelope) error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, kind := range Kinds() {
		b.listeners[kind] = append(b.listeners[kind], subscription{name: name, fn: fn})
	}
}

// ListenerCount returns the number of listeners registered for kind.
func (b *Bus) ListenerCount(kind Kind) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[kind])
}

// Publish delivers e to every listener registered for its kind, each in its
// own goroutine, and returns without waiting for them.
func (b *Bus) Publish(ctx context.Context, e Event) Envelope {
	env := Envelope{
		ID:    b.ids.Generate(),
		Seq:   b.clock.Next(),
		Event: e,
	}
	kind := e.Kind()

	b.mu.RLock()
	subs := slices.Clone(b.listeners[kind])
	b.mu.RUnlock()

	if b.observer != nil {
		b.observer.Published(kind.String())
	}
	b.logger.Debug("event published",
		"event", kind.String(),
		"event_id", env.ID,
		"seq", env.Seq,
		"listeners", len(subs),
	)

	detached := context.WithoutCancel(ctx)
	for _, sub := range subs {
		b.spawn(detached, kind.String(), sub.name, env.ID, func(ctx context.Context) error {
			return sub.fn(ctx, env)
		})
	}
	return env
}

// Go runs fn as a detached task with the same isolation as a listener:
// errors and panics are logged, never propagated.
func (b *Bus) Go(ctx context.Context, name string, fn func(ctx context.Context) error) {
	b.spawn(context.WithoutCancel(ctx), TaskTopic, name, "", fn)
}

// Wait blocks until every listener and detached task has returned,
// including tasks started while waiting.
func (b *Bus) Wait() {
	b.tasks.Wait()
}

func (b *Bus) spawn(ctx context.Context, topic, name, eventID string, fn func(ctx context.Context) error) {
	b.tasks.Add(1)
	go func() {
		defer b.tasks.Done()

		start := time.Now()
		err := runIsolated(ctx, fn)
		elapsed := time.Since(start)

		if err != nil {
			b.logger.Error("listener failed",
				"event", topic,
				"listener", name,
				"event_id", eventID,
				"error", err,
			)
		}
		if b.observer != nil {
			b.observer.TaskFinished(topic, name, elapsed, err)
		}
	}()
}

// runIsolated calls fn and converts a panic into an error.
func runIsolated(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
		}
	}()
	return fn(ctx)
}
