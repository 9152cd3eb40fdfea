// Package socket lets other processes control a running mqa instance over a
// Unix socket. Each connection carries one JSON message and one response.
package socket

import (
	"strings"

	"github.com/pstuifzand/microqrart/internal/model"
	"github.com/pstuifzand/microqrart/internal/repository"
)

// Message represents a command sent to the running instance
type Message struct {
	Command string `json:"command"`
	Title   string `json:"title,omitempty"`
	Source  string `json:"source,omitempty"`
	Image   string `json:"image,omitempty"`

	// ResponseChan is set by the server for synchronous commands; the
	// handler must send exactly one response on it
	ResponseChan chan *Response `json:"-"`
}

// Response represents the response from the server
type Response struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Records model.List `json:"records,omitempty"`
}

// Command types
const (
	CommandReload    = "reload"
	CommandList      = "list"
	CommandAddRecord = "add_record"
)

// isSynchronous reports whether the client waits for the handler's answer
func isSynchronous(command string) bool {
	return command == CommandList
}

// NewRecord returns the record an add_record message describes, trimmed
func (m Message) NewRecord() repository.NewRecord {
	return repository.NewRecord{
		Title:  strings.TrimSpace(m.Title),
		Source: strings.TrimSpace(m.Source),
		Image:  strings.TrimSpace(m.Image),
	}
}
