package web

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/JonMunkholm/regions/internal/console"
	"github.com/google/uuid"
)

type sessionEntry struct {
	session  *console.Session
	lastSeen time.Time
}

// sessionRegistry maps session cookie values to console sessions and evicts
// the ones left idle.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	svc      console.RegionService
	idle     time.Duration
	now      func() time.Time

	done      chan struct{}
	closeOnce sync.Once
}

func newSessionRegistry(svc console.RegionService, idle, sweepEvery time.Duration) *sessionRegistry {
	reg := &sessionRegistry{
		sessions: make(map[string]*sessionEntry),
		svc:      svc,
		idle:     idle,
		now:      time.Now,
		done:     make(chan struct{}),
	}
	go reg.run(sweepEvery)
	return reg
}

// get returns the session for id, creating one under a fresh id when id is
// unknown. The returned id is the one to store in the cookie.
func (reg *sessionRegistry) get(id string) (string, *console.Session) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	now := reg.now()
	if e, ok := reg.sessions[id]; ok && id != "" {
		e.lastSeen = now
		return id, e.session
	}

	id = uuid.NewString()
	e := &sessionEntry{session: console.NewSession(reg.svc), lastSeen: now}
	reg.sessions[id] = e
	return id, e.session
}

// sweep evicts sessions idle longer than the idle timeout.
func (reg *sessionRegistry) sweep() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	cutoff := reg.now().Add(-reg.idle)
	evicted := 0
	for id, e := range reg.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(reg.sessions, id)
			evicted++
		}
	}
	return evicted
}

func (reg *sessionRegistry) run(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-reg.done:
			return
		case <-ticker.C:
			if n := reg.sweep(); n > 0 {
				slog.Debug("evicted idle console sessions", "count", n)
			}
		}
	}
}

// Close stops the sweeper.
func (reg *sessionRegistry) Close() {
	reg.closeOnce.Do(func() { close(reg.done) })
}

// Len returns the number of live sessions.
func (reg *sessionRegistry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.sessions)
}

// session resolves the console session for r, issuing a cookie when the
// browser does not present a known one.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *console.Session {
	var current string
	if c, err := r.Cookie(s.cfg.Session.CookieName); err == nil {
		current = c.Value
	}

	id, sess := s.sessions.get(current)
	if id != current {
		http.SetCookie(w, &http.Cookie{
			Name:     s.cfg.Session.CookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			Secure:   s.cfg.Session.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess
}
