package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/laban/internal/study"
)

const maxChatSessions = 256

type chatEntry struct {
	mu   sync.Mutex
	chat *study.ChatSession
	used time.Time
}

// chatSessions keeps live chats by ID and evicts the least recently used
// one when full.
type chatSessions struct {
	mu      sync.Mutex
	max     int
	entries map[string]*chatEntry
}

func newChatSessions(limit int) *chatSessions {
	return &chatSessions{max: limit, entries: make(map[string]*chatEntry)}
}

// get returns the chat for id, starting a new one under a fresh ID when id
// is empty or unknown.
func (c *chatSessions) get(id string, start func() *study.ChatSession) (string, *chatEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[id]; ok && id != "" {
		e.used = time.Now()
		return id, e
	}
	if len(c.entries) >= c.max {
		c.evictLocked()
	}
	id = uuid.NewString()
	e := &chatEntry{chat: start(), used: time.Now()}
	c.entries[id] = e
	return id, e
}

func (c *chatSessions) evictLocked() {
	var (
		oldest   string
		oldestAt time.Time
	)
	for id, e := range c.entries {
		if oldest == "" || e.used.Before(oldestAt) {
			oldest, oldestAt = id, e.used
		}
	}
	delete(c.entries, oldest)
}

func (c *chatSessions) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
