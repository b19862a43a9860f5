package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DefaultConsoleSize is the number of messages the console keeps
const DefaultConsoleSize = 200

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "error"
}

// Console implements core.Logger by keeping the most recent messages for the
// web client and forwarding everything to another logger
type Console struct {
	mu       sync.Mutex
	messages []ConsoleMessage
	limit    int
	next     core.Logger
}

// NewConsole creates a console holding up to limit messages. next may be nil.
func NewConsole(limit int, next core.Logger) *Console {
	if limit <= 0 {
		limit = DefaultConsoleSize
	}
	if next == nil {
		next = core.NopLogger{}
	}
	return &Console{limit: limit, next: next}
}

// Printf implements core.Logger
func (c *Console) Printf(format string, args ...interface{}) {
	c.add("info", format, args...)
}

// Errorf records a message at error level
func (c *Console) Errorf(format string, args ...interface{}) {
	c.add("error", format, args...)
}

func (c *Console) add(level, format string, args ...interface{}) {
	c.next.Printf(format, args...)

	msg := ConsoleMessage{
		Message:   fmt.Sprintf(format, args...),
		Timestamp: time.Now(),
		Level:     level,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.messages) == c.limit {
		copy(c.messages, c.messages[1:])
		c.messages = c.messages[:c.limit-1]
	}
	c.messages = append(c.messages, msg)
}

// Messages returns a copy of the retained messages, oldest first
func (c *Console) Messages() []ConsoleMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ConsoleMessage(nil), c.messages...)
}
