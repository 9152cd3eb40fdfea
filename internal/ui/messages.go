package ui

import (
	"sync"
	"time"
)

// Message is a status line entry
type Message struct {
	Text      string
	IsError   bool
	Timestamp time.Time
}

// MessageLogger keeps the last N status messages. View model errors arrive
// from background goroutines, so it is safe for concurrent use.
type MessageLogger struct {
	mu       sync.Mutex
	messages []Message
	maxSize  int
}

// NewMessageLogger creates a logger holding up to maxSize messages
func NewMessageLogger(maxSize int) *MessageLogger {
	return &MessageLogger{
		messages: make([]Message, 0, maxSize),
		maxSize:  maxSize,
	}
}

// AddMessage records an informational message
func (ml *MessageLogger) AddMessage(text string) {
	ml.add(text, false)
}

// AddError records an error message
func (ml *MessageLogger) AddError(text string) {
	ml.add(text, true)
}

func (ml *MessageLogger) add(text string, isError bool) {
	if text == "" {
		return
	}

	ml.mu.Lock()
	defer ml.mu.Unlock()

	ml.messages = append(ml.messages, Message{Text: text, IsError: isError, Timestamp: time.Now()})
	if len(ml.messages) > ml.maxSize {
		ml.messages = ml.messages[len(ml.messages)-ml.maxSize:]
	}
}

// Latest returns the newest message
func (ml *MessageLogger) Latest() (Message, bool) {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	if len(ml.messages) == 0 {
		return Message{}, false
	}
	return ml.messages[len(ml.messages)-1], true
}

// GetMessages returns all messages, oldest first
func (ml *MessageLogger) GetMessages() []Message {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	return append([]Message(nil), ml.messages...)
}

// Count returns the number of messages in the logger
func (ml *MessageLogger) Count() int {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	return len(ml.messages)
}
