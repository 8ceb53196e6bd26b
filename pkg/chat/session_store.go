package chat

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"creative-eval-be/pkg/llm"
)

// Settings are the per-session generation controls: backend selection plus
// the numeric parameters. They persist on the session across turns.
type Settings struct {
	Backend           llm.Backend
	BaseModel         string
	Temperature       float64
	TopP              float64
	RepetitionPenalty float64
	MaxNewTokens      int
}

func (s Settings) Selection() llm.Selection {
	return llm.Selection{Backend: s.Backend, BaseModel: s.BaseModel}
}

func (s Settings) GenParams() GenParams {
	return GenParams{
		Temperature:       s.Temperature,
		TopP:              s.TopP,
		RepetitionPenalty: s.RepetitionPenalty,
		MaxNewTokens:      s.MaxNewTokens,
	}
}

// Session owns one conversation. The websocket read loop appends turns
// sequentially, but the HTTP surface (history, settings, clear) may touch
// the same session while a turn is in flight, so all access goes through
// the lock.
type Session struct {
	ID string

	mu       sync.Mutex
	messages []llm.Message
	settings Settings
}

func NewSession(id string, settings Settings) *Session {
	return &Session{ID: id, settings: settings}
}

// Snapshot returns a copy of the conversation and the current settings.
// Turns generate from the snapshot, so a concurrent clear or settings
// update never mutates what the model is reading.
func (s *Session) Snapshot() ([]llm.Message, Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]llm.Message(nil), s.messages...), s.settings
}

func (s *Session) Append(msg llm.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

// Clear discards the conversation but keeps the settings.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
}

func (s *Session) SetSettings(settings Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

// SessionStore keeps live sessions in memory. Idle sessions expire after an
// hour; every Save renews the clock.
type SessionStore struct {
	cache *cache.Cache
}

func NewSessionStore() *SessionStore {
	// Default expiration of 1 hour, purge sweep every 10 minutes.
	return &SessionStore{
		cache: cache.New(1*time.Hour, 10*time.Minute),
	}
}

func (r *SessionStore) Save(session *Session) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionStore) Get(sessionID string) (*Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*Session), true
	}
	return nil, false
}

func (r *SessionStore) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
