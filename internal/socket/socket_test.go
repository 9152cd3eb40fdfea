package socket

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/microqrart/internal/model"
)

func startServer(t *testing.T) (*Server, *Client) {
	t.Helper()
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	server, err := NewServer(os.Getpid())
	require.NoError(t, err)
	t.Cleanup(server.Stop)
	server.Start()

	client, err := NewClient(server.SocketPath())
	require.NoError(t, err)
	return server, client
}

func receive(t *testing.T, server *Server) Message {
	t.Helper()
	select {
	case msg := <-server.Messages():
		return msg
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for message")
		return Message{}
	}
}

func TestReloadIsQueued(t *testing.T) {
	server, client := startServer(t)

	resp, err := client.SendReload()
	require.NoError(t, err)
	assert.True(t, resp.Success, resp.Message)

	msg := receive(t, server)
	assert.Equal(t, CommandReload, msg.Command)
	assert.Nil(t, msg.ResponseChan)
}

func TestListWaitsForHandler(t *testing.T) {
	server, client := startServer(t)

	go func() {
		msg := <-server.Messages()
		msg.ResponseChan <- &Response{
			Success: true,
			Message: "1 records",
			Records: model.List{{ID: "1", Title: "Home Wi-Fi"}},
		}
	}()

	resp, err := client.SendList()
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "Home Wi-Fi", resp.Records[0].Title)
}

func TestAddRecordIsValidated(t *testing.T) {
	server, client := startServer(t)

	tests := []struct {
		name    string
		title   string
		source  string
		image   string
		wantErr string
	}{
		{"missing title", "  ", "https://cafe.example.com", "", "title is required"},
		{"bad source", "Menu", "not a url", "", "source must be a URL"},
		{"bad image", "Menu", "https://cafe.example.com", "nope", "image must be a URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := client.SendAddRecord(tt.title, tt.source, tt.image)
			require.NoError(t, err)
			assert.False(t, resp.Success)
			assert.Contains(t, resp.Message, tt.wantErr)
		})
	}

	resp, err := client.SendAddRecord(" Menu ", "https://cafe.example.com", "")
	require.NoError(t, err)
	assert.True(t, resp.Success, resp.Message)

	msg := receive(t, server)
	assert.Equal(t, CommandAddRecord, msg.Command)
	assert.Equal(t, "Menu", msg.NewRecord().Title)
}

func TestUnknownCommandIsRejected(t *testing.T) {
	_, client := startServer(t)

	resp, err := client.Send(Message{Command: "add_node"})
	require.NoError(t, err)
	assert.False(t, resp.Success)

	resp, err = client.Send(Message{})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "missing command field", resp.Message)
}

func TestFindRunningInstance(t *testing.T) {
	server, _ := startServer(t)

	socketPath, pid, err := FindRunningInstance()
	require.NoError(t, err)
	assert.Equal(t, server.SocketPath(), socketPath)
	assert.Equal(t, os.Getpid(), pid)
}

func TestFindRunningInstanceWithoutServer(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	_, _, err := FindRunningInstance()
	assert.Error(t, err)
}
