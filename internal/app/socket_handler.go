package app

import (
	"fmt"
	"log"

	"github.com/pstuifzand/microqrart/internal/repository"
	"github.com/pstuifzand/microqrart/internal/socket"
)

// handleSocketMessage processes messages received from the Unix socket
func (a *App) handleSocketMessage(msg socket.Message) {
	log.Printf("Received socket message: command=%s", msg.Command)

	switch msg.Command {
	case socket.CommandReload:
		a.reload()
	case socket.CommandList:
		items := a.listVM.Items()
		msg.ResponseChan <- &socket.Response{
			Success: true,
			Message: fmt.Sprintf("%d records", len(items)),
			Records: items,
		}
	case socket.CommandAddRecord:
		a.handleAddRecord(msg)
	default:
		log.Printf("Unknown socket command: %s", msg.Command)
		if msg.ResponseChan != nil {
			msg.ResponseChan <- &socket.Response{Success: false, Message: "unknown command"}
		}
	}
}

// handleAddRecord creates a record through the repository and reloads the
// list once it is stored
func (a *App) handleAddRecord(msg socket.Message) {
	adder, ok := a.repo.(repository.Adder)
	if !ok {
		a.report(repository.ErrUnsupported)
		return
	}

	rec := msg.NewRecord()
	log.Printf("Adding record from socket: %q", rec.Title)
	go func() {
		created, err := adder.Add(a.ctx, rec)
		if err != nil {
			a.report(fmt.Errorf("add failed: %w", err))
			return
		}
		log.Printf("Added record %s", created.ID)
		a.listVM.Load()
	}()
}
