package loop

import (
	"sync"
	"time"
)

// Session is a registered connection.
type Session struct {
	ID       int
	User     string
	Started  time.Time
	shutdown chan struct{}
	once     sync.Once
}

// Shutdown is closed when the hub is shutting down.
func (s *Session) Shutdown() <-chan struct{} {
	return s.shutdown
}

func (s *Session) notify() {
	s.once.Do(func() { close(s.shutdown) })
}

// Hub tracks live sessions so a server can notify them and wait for them
// to leave.
type Hub struct {
	mu       sync.RWMutex
	sessions map[int]*Session
	nextID   int
	closing  bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		sessions: make(map[int]*Session),
		nextID:   1,
	}
}

// Register adds a session. Sessions registered during shutdown are
// notified immediately.
func (h *Hub) Register(user string) *Session {
	h.mu.Lock()
	defer h.mu.Unlock()

	s := &Session{
		ID:       h.nextID,
		User:     user,
		Started:  time.Now(),
		shutdown: make(chan struct{}),
	}
	h.nextID++
	h.sessions[s.ID] = s
	if h.closing {
		s.notify()
	}
	return s
}

// Unregister removes a session.
func (h *Hub) Unregister(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, id)
}

// Len returns the number of live sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Shutdown notifies every session and waits for all of them to
// unregister, or for the timeout. It reports whether the hub drained.
func (h *Hub) Shutdown(timeout time.Duration) bool {
	h.mu.Lock()
	h.closing = true
	for _, s := range h.sessions {
		s.notify()
	}
	h.mu.Unlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		if h.Len() == 0 {
			return true
		}
		select {
		case <-deadline:
			return false
		case <-ticker.C:
		}
	}
}
