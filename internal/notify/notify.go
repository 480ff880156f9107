package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const maxPending = 32

type Notice struct {
	ID      string    `json:"id"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Center collects one-time user-facing messages until the UI drains them.
type Center struct {
	mu      sync.Mutex
	pending []Notice
}

func NewCenter() *Center {
	return &Center{}
}

func (c *Center) Notify(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = append(c.pending, Notice{
		ID:      uuid.NewString(),
		Message: message,
		At:      time.Now().UTC(),
	})
	if len(c.pending) > maxPending {
		c.pending = c.pending[len(c.pending)-maxPending:]
	}
}

// Drain returns every pending notice and clears them. Each notice is
// delivered once.
func (c *Center) Drain() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := c.pending
	c.pending = nil
	return out
}
