package memory

import (
	"sync"

	"github.com/mourad-ghafiri/agentflow/core"
)

// History is an append-only, process-local conversation log. Messages are
// immutable once appended and snapshot reads return copies so callers can
// never reorder or drop entries of the internal slice.
//
// Concurrency: protected by RWMutex. An agent run is logically
// single-threaded, but workflows may inspect state from other goroutines.
type History struct {
	mu       sync.RWMutex
	messages []core.Message
}

// NewHistory creates an empty conversation history.
func NewHistory() *History {
	return &History{}
}

// Append adds a message to the end of the log.
func (h *History) Append(msg core.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, msg)
}

// Messages returns a copy of the log in append order.
func (h *History) Messages() []core.Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]core.Message, len(h.messages))
	copy(out, h.messages)
	return out
}

// Len returns the number of stored messages.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.messages)
}

// SystemMessage returns the first system-role message and true, or a zero
// message and false when none exists.
func (h *History) SystemMessage() (core.Message, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, msg := range h.messages {
		if msg.Role == core.RoleSystem {
			return msg, true
		}
	}
	return core.Message{}, false
}

// Clear removes all stored messages.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = nil
}
