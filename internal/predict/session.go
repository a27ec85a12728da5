package predict

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// NewSessionFunc builds and initializes the client for a new session
type NewSessionFunc func(ctx context.Context) *Client

type session struct {
	client   *Client
	lastSeen time.Time
}

// Store keeps one Client per browser session and drops sessions that have
// been idle longer than idleTimeout.
type Store struct {
	mu          sync.Mutex
	sessions    map[uuid.UUID]*session
	newSession  NewSessionFunc
	idleTimeout time.Duration
	now         func() time.Time
	logger      *slog.Logger

	closing sync.WaitGroup
}

func NewStore(newSession NewSessionFunc, idleTimeout time.Duration, logger *slog.Logger) *Store {
	return &Store{
		sessions:    make(map[uuid.UUID]*session),
		newSession:  newSession,
		idleTimeout: idleTimeout,
		now:         time.Now,
		logger:      logger.With("component", "session-store"),
	}
}

// Get returns the client for id. An unknown, expired or malformed id starts a
// new session; the returned id is the one the caller should keep using.
func (s *Store) Get(ctx context.Context, id string) (string, *Client) {
	now := s.now()

	s.mu.Lock()
	expired := s.evictIdle(now)

	if parsed, err := uuid.Parse(id); err == nil {
		if sess, ok := s.sessions[parsed]; ok {
			sess.lastSeen = now
			s.mu.Unlock()
			s.closeExpired(expired)
			return parsed.String(), sess.client
		}
	}
	s.mu.Unlock()
	s.closeExpired(expired)

	newID := uuid.New()
	client := s.newSession(ctx)

	s.mu.Lock()
	s.sessions[newID] = &session{client: client, lastSeen: now}
	count := len(s.sessions)
	s.mu.Unlock()

	s.logger.Debug("session started", "session", newID.String(), "sessions", count)
	return newID.String(), client
}

// Lookup returns the client for an existing session without starting one
func (s *Store) Lookup(id string) (*Client, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, false
	}

	now := s.now()

	s.mu.Lock()
	expired := s.evictIdle(now)
	sess, ok := s.sessions[parsed]
	if ok {
		sess.lastSeen = now
	}
	s.mu.Unlock()
	s.closeExpired(expired)

	if !ok {
		return nil, false
	}
	return sess.client, true
}

// Len reports the number of live sessions
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close ends every session, including ones still closing after eviction
func (s *Store) Close() {
	defer s.closing.Wait()

	s.mu.Lock()
	clients := make([]*Client, 0, len(s.sessions))
	for id, sess := range s.sessions {
		clients = append(clients, sess.client)
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	closeAll(clients)
}

// evictIdle removes expired sessions and returns their clients. Callers hold mu.
func (s *Store) evictIdle(now time.Time) []*Client {
	if s.idleTimeout <= 0 {
		return nil
	}

	var expired []*Client
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.idleTimeout {
			expired = append(expired, sess.client)
			delete(s.sessions, id)
			s.logger.Debug("session expired", "session", id.String())
		}
	}
	return expired
}

// closeExpired closes evicted clients off the request goroutine. Client.Close
// blocks until the client's health check returns.
func (s *Store) closeExpired(clients []*Client) {
	if len(clients) == 0 {
		return
	}
	s.closing.Add(1)
	go func() {
		defer s.closing.Done()
		closeAll(clients)
	}()
}

func closeAll(clients []*Client) {
	for _, c := range clients {
		c.Close()
	}
}
