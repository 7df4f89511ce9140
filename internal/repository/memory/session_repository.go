package memory

import (
	"time"

	"lead-engagement-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

const minCleanupInterval = time.Minute

// SessionRepository keeps visitor sessions in process memory with a sliding TTL.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	cleanup := ttl / 6
	if cleanup < minCleanupInterval {
		cleanup = minCleanupInterval
	}
	return &SessionRepository{
		cache: cache.New(ttl, cleanup),
	}
}

// Save stores the session and restarts its expiration.
func (r *SessionRepository) Save(session *store.VisitorSession) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.VisitorSession, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.VisitorSession), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

func (r *SessionRepository) Count() int {
	return r.cache.ItemCount()
}

// OnEvicted registers f for explicit deletes and TTL expiry alike.
func (r *SessionRepository) OnEvicted(f func(sessionID string)) {
	r.cache.OnEvicted(func(key string, _ interface{}) { f(key) })
}
