package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Severity classifies a notification for rendering.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// DefaultTTL is how long a notification stays visible unless dismissed.
const DefaultTTL = 3500 * time.Millisecond

// Notification is a single transient user-facing message.
type Notification struct {
	ID        string
	Text      string
	Severity  Severity
	CreatedAt time.Time
	TTL       time.Duration
}

// Queue is an ordered collection of active notifications with timed expiry.
// Consumers append via Enqueue and remove only by id.
type Queue struct {
	defaultTTL time.Duration

	mu     sync.Mutex
	active []Notification
	timers map[string]*time.Timer
	closed bool
}

// NewQueue builds a Queue. A non-positive defaultTTL falls back to DefaultTTL.
func NewQueue(defaultTTL time.Duration) *Queue {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Queue{
		defaultTTL: defaultTTL,
		timers:     make(map[string]*time.Timer),
	}
}

// Enqueue appends a notification with the queue's default TTL and returns its id.
func (q *Queue) Enqueue(text string, severity Severity) string {
	return q.EnqueueTTL(text, severity, q.defaultTTL)
}

// EnqueueTTL appends a notification that expires after ttl. A non-positive ttl
// keeps the notification until it is dismissed explicitly. A closed queue
// discards the message and returns an empty id.
func (q *Queue) EnqueueTTL(text string, severity Severity, ttl time.Duration) string {
	id := uuid.NewString()
	notification := Notification{
		ID:        id,
		Text:      text,
		Severity:  severity,
		CreatedAt: time.Now(),
		TTL:       ttl,
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ""
	}
	q.active = append(q.active, notification)
	if ttl > 0 {
		q.timers[id] = time.AfterFunc(ttl, func() { q.expire(id) })
	}
	return id
}

// Dismiss removes the identified notification immediately and cancels its
// pending expiry. Unknown ids are a no-op.
func (q *Queue) Dismiss(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.removeLocked(id)
}

// List returns the active notifications, oldest first.
func (q *Queue) List() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Notification, len(q.active))
	copy(out, q.active)
	return out
}

// Drain removes and returns every active notification, oldest first.
func (q *Queue) Drain() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Notification, len(q.active))
	copy(out, q.active)
	for _, notification := range out {
		q.removeLocked(notification.ID)
	}
	return out
}

// Close cancels all pending expiries and rejects further enqueues.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	for id, timer := range q.timers {
		timer.Stop()
		delete(q.timers, id)
	}
	q.active = nil
}

// expire runs on the timer goroutine. Removal is idempotent by id, so an
// expiry firing after an explicit dismissal cannot touch anything else.
func (q *Queue) expire(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.removeLocked(id)
}

func (q *Queue) removeLocked(id string) {
	if timer, ok := q.timers[id]; ok {
		timer.Stop()
		delete(q.timers, id)
	}
	for i, notification := range q.active {
		if notification.ID == id {
			q.active = append(q.active[:i], q.active[i+1:]...)
			return
		}
	}
}
