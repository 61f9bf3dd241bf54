package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"mamrr/internal/notify"
	"mamrr/internal/results"
	"mamrr/internal/services"
	"mamrr/internal/services/mamweb"
	"mamrr/internal/session"
)

// Backend is the slice of the API client the coordinator drives.
type Backend interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, username, password, inviteCode string) (string, error)
	Me(ctx context.Context, token string) (mamweb.Account, error)
	Search(ctx context.Context, token, term, field string) (json.RawMessage, error)
	Add(ctx context.Context, token string, tid int64) error
}

// Option customises Coordinator construction.
type Option func(*Coordinator)

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSessionValidation controls whether Restore confirms the persisted token
// against /api/me. On by default.
func WithSessionValidation(enabled bool) Option {
	return func(c *Coordinator) {
		c.validateRestore = enabled
	}
}

// Coordinator orchestrates login, search, and add-torrent flows. It is the
// only writer of the current result view; the session manager and the
// notification queue are mutated solely through their own contracts.
type Coordinator struct {
	backend         Backend
	sessions        *session.Manager
	queue           *notify.Queue
	logger          *slog.Logger
	validateRestore bool

	mu         sync.Mutex
	issued     uint64
	view       results.View
	viewSearch uint64
}

// New builds a Coordinator.
func New(backend Backend, sessions *session.Manager, queue *notify.Queue, opts ...Option) (*Coordinator, error) {
	if backend == nil {
		return nil, errors.New("backend is nil")
	}
	if sessions == nil {
		return nil, errors.New("session manager is nil")
	}
	if queue == nil {
		return nil, errors.New("notification queue is nil")
	}
	c := &Coordinator{
		backend:         backend,
		sessions:        sessions,
		queue:           queue,
		logger:          slog.Default(),
		validateRestore: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Restore loads a persisted session and, when enabled, validates it against
// the server. A rejected token is cleared silently; restore never surfaces a
// user-visible error for stale state.
func (c *Coordinator) Restore(ctx context.Context) (session.Session, error) {
	sess, err := c.sessions.Restore()
	if err != nil {
		return session.Session{}, err
	}
	if !sess.Active() || !c.validateRestore {
		return sess, nil
	}

	if _, err := c.backend.Me(ctx, sess.Token); err != nil {
		if errors.Is(err, services.ErrRejected) {
			c.logger.Debug("persisted session rejected, clearing", "subject", sess.Subject)
			if clearErr := c.sessions.Clear(); clearErr != nil {
				return session.Session{}, clearErr
			}
			return session.Session{}, nil
		}
		// Server unreachable: keep the session, the next action will report.
		c.logger.Debug("session validation skipped", "error", err)
	}
	return c.sessions.Current(), nil
}

// Login authenticates with the backend and establishes the session.
func (c *Coordinator) Login(ctx context.Context, username, password string) error {
	token, err := c.backend.Login(ctx, username, password)
	if err != nil {
		c.reportAuthFailure("Login", err)
		return err
	}

	sess, err := c.sessions.Establish(token, username)
	if err != nil {
		c.queue.Enqueue("Login succeeded but the session could not be saved", notify.SeverityError)
		return err
	}
	c.logger.Info("logged in", "subject", sess.Subject)
	c.queue.Enqueue(fmt.Sprintf("Welcome %s", sess.Subject), notify.SeveritySuccess)
	return nil
}

// Register creates an account and establishes the session from the returned
// token, same contract as Login.
func (c *Coordinator) Register(ctx context.Context, username, password, inviteCode string) error {
	token, err := c.backend.Register(ctx, username, password, inviteCode)
	if err != nil {
		c.reportAuthFailure("Signup", err)
		return err
	}

	sess, err := c.sessions.Establish(token, username)
	if err != nil {
		c.queue.Enqueue("Signup succeeded but the session could not be saved", notify.SeverityError)
		return err
	}
	c.logger.Info("registered", "subject", sess.Subject)
	c.queue.Enqueue("Account created", notify.SeveritySuccess)
	return nil
}

// Logout clears the session.
func (c *Coordinator) Logout() error {
	if err := c.sessions.Clear(); err != nil {
		return err
	}
	c.clearView()
	c.queue.Enqueue("Logged out", notify.SeverityInfo)
	return nil
}

// Search issues an authenticated index query and replaces the result view.
// When no session is established it reports once and sends nothing. When
// searches overlap, only the most recently issued one may update the view.
func (c *Coordinator) Search(ctx context.Context, query Query) error {
	token := c.sessions.Token()
	if token == "" {
		c.queue.Enqueue("Login required", notify.SeverityError)
		return services.Wrap(services.ErrUnauthenticated, "workflow", "search", "no session", nil)
	}

	seq := c.nextSearch()
	c.queue.Enqueue(fmt.Sprintf("Searching for %q…", query.Term), notify.SeverityInfo)

	raw, err := c.backend.Search(ctx, token, query.Term, string(query.Field))
	if c.superseded(seq) {
		// A newer search owns the view now; this outcome is void either way.
		c.logger.Debug("discarding superseded search response", "term", query.Term)
		return nil
	}
	if err != nil {
		c.reportSearchFailure(err)
		return err
	}

	view := results.Normalize(raw)
	c.setView(seq, view)
	c.logger.Info("search completed", "term", query.Term, "field", query.Field, "items", view.Len())
	return nil
}

// AddTorrent forwards a release to the download agent. Fire-and-forget: the
// transfer state lives with the agent, not here, and the result view is
// untouched.
func (c *Coordinator) AddTorrent(ctx context.Context, tid int64, displayName string) error {
	token := c.sessions.Token()
	if token == "" {
		c.queue.Enqueue("Login required", notify.SeverityError)
		return services.Wrap(services.ErrUnauthenticated, "workflow", "add", "no session", nil)
	}

	name := strings.TrimSpace(displayName)
	if name == "" {
		name = fmt.Sprintf("torrent %d", tid)
	}
	c.queue.Enqueue(fmt.Sprintf("Sending %s…", name), notify.SeverityInfo)

	if err := c.backend.Add(ctx, token, tid); err != nil {
		switch {
		case errors.Is(err, services.ErrTransport):
			c.queue.Enqueue(fmt.Sprintf("Could not reach the server while adding %s", name), notify.SeverityError)
		case services.RejectedWithStatus(err, http.StatusUnauthorized):
			// The server revoked the token; drop it so the next action fails fast.
			_ = c.sessions.Clear()
			c.queue.Enqueue("Session expired, log in again", notify.SeverityError)
		default:
			if detail := services.Detail(err); detail != "" {
				c.queue.Enqueue(fmt.Sprintf("Failed to add %s: %s", name, detail), notify.SeverityError)
			} else {
				c.queue.Enqueue(fmt.Sprintf("Failed to add %s", name), notify.SeverityError)
			}
		}
		return err
	}

	c.logger.Info("torrent queued", "tid", tid, "title", name)
	c.queue.Enqueue(fmt.Sprintf("Added %s", name), notify.SeveritySuccess)
	return nil
}

// Results returns the current normalized view.
func (c *Coordinator) Results() results.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Notifications exposes the queue for the presentation layer.
func (c *Coordinator) Notifications() *notify.Queue { return c.queue }

// Session exposes the session manager for the presentation layer.
func (c *Coordinator) Session() *session.Manager { return c.sessions }

func (c *Coordinator) reportAuthFailure(action string, err error) {
	switch {
	case errors.Is(err, services.ErrTransport):
		c.queue.Enqueue(fmt.Sprintf("%s failed: could not reach the server", action), notify.SeverityError)
	case errors.Is(err, services.ErrRejected):
		if detail := services.Detail(err); detail != "" {
			c.queue.Enqueue(fmt.Sprintf("%s failed: %s", action, detail), notify.SeverityError)
		} else {
			c.queue.Enqueue(fmt.Sprintf("%s failed", action), notify.SeverityError)
		}
	default:
		c.queue.Enqueue(fmt.Sprintf("%s failed: unexpected server response", action), notify.SeverityError)
	}
}

func (c *Coordinator) reportSearchFailure(err error) {
	switch {
	case errors.Is(err, services.ErrTransport):
		c.queue.Enqueue("Search failed: could not reach the server", notify.SeverityError)
	case services.RejectedWithStatus(err, http.StatusUnauthorized):
		// The server revoked the token; drop it so the next action fails fast.
		_ = c.sessions.Clear()
		c.queue.Enqueue("Session expired, log in again", notify.SeverityError)
	default:
		if detail := services.Detail(err); detail != "" {
			c.queue.Enqueue(fmt.Sprintf("Search failed: %s", detail), notify.SeverityError)
		} else {
			c.queue.Enqueue("Search failed", notify.SeverityError)
		}
	}
}

func (c *Coordinator) nextSearch() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issued++
	return c.issued
}

func (c *Coordinator) superseded(seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return seq != c.issued
}

func (c *Coordinator) setView(seq uint64, view results.View) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq < c.viewSearch || seq != c.issued {
		return
	}
	c.view = view
	c.viewSearch = seq
}

func (c *Coordinator) clearView() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = results.View{}
}
