package memory

import (
	"time"

	"ai-chatbox-be/internal/session"

	"github.com/patrickmn/go-cache"
)

// SessionRepository holds live chat session controllers in memory. Sessions
// are not durable: an idle session expires and nothing survives a restart
// unless it was archived.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Default expiration of 1 hour, purge sweep every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(controller *session.Controller) {
	r.cache.Set(controller.Id(), controller, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*session.Controller, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*session.Controller), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
