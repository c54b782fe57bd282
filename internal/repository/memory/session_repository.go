package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"nephro-assistant-be/pkg/store"
)

// SessionRepository keeps per-session chat state in process memory. There is
// no persistence and no cross-process sharing; go-cache's TTL is the only
// eviction the prototype has.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Default expiration of 1 hour, purging expired items every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session), true
	}
	return nil, false
}

// GetOrCreate returns the existing session or a fresh empty one for the id.
func (r *SessionRepository) GetOrCreate(sessionID string) *store.Session {
	if sess, ok := r.Get(sessionID); ok {
		return sess
	}
	sess := &store.Session{ID: sessionID}
	r.Save(sess)
	return sess
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
