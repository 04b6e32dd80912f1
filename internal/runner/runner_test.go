package runner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesen/weave/internal/wire"
)

var upgrader = websocket.Upgrader{}

// fakeBackend upgrades the connection, waits for one execute_workflow
// request, and replies with the given event sequence.
func fakeBackend(t *testing.T, events []map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var req map[string]any
		if err := json.Unmarshal(data, &req); err != nil {
			t.Errorf("bad request: %v", err)
			return
		}
		if req["type"] != "execute_workflow" {
			t.Errorf("unexpected request type %v", req["type"])
			return
		}
		for _, ev := range events {
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		}
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func samplePayload() wire.Payload {
	return wire.Payload{
		WorkflowID: "wf-1",
		Nodes: []wire.Node{
			{NodeID: "a", NodeType: "input", Name: "Input"},
			{NodeID: "b", NodeType: "output", Name: "Output"},
		},
		Connections: []wire.Connection{{ID: "a-b", From: "a", To: "b"}},
	}
}

func TestRunCollectsEvents(t *testing.T) {
	srv := fakeBackend(t, []map[string]any{
		{"type": "workflow_started", "workflow_id": "wf-1"},
		{"type": "node_executed", "node_id": "a", "result": "hello"},
		{"type": "node_executed", "node_id": "b", "result": "done"},
		{"type": "workflow_finished", "workflow_id": "wf-1"},
	})
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, err := Run(ctx, wsURL(srv), samplePayload(), nil)
	require.NoError(t, err)
	require.Len(t, events, 4)
	assert.Equal(t, EventWorkflowStarted, events[0].Type)
	assert.Equal(t, "a", events[1].NodeID)
	assert.Equal(t, "hello", events[1].Result)
	assert.Equal(t, EventWorkflowFinished, events[3].Type)
	assert.True(t, events[3].Terminal())
}

func TestRunSurfacesExecutionError(t *testing.T) {
	srv := fakeBackend(t, []map[string]any{
		{"type": "workflow_started", "workflow_id": "wf-1"},
		{"type": "execution_error", "node_id": "a", "error": "model unavailable"},
	})
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, err := Run(ctx, wsURL(srv), samplePayload(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model unavailable")
	require.Len(t, events, 2)
	assert.True(t, events[1].Terminal())
}

func TestRunConnectionDropBeforeFinish(t *testing.T) {
	srv := fakeBackend(t, []map[string]any{
		{"type": "workflow_started", "workflow_id": "wf-1"},
	})
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, err := Run(ctx, wsURL(srv), samplePayload(), nil)
	require.Error(t, err)
	assert.Len(t, events, 1)
}

func TestDialBadURL(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := Dial(ctx, "ws://127.0.0.1:1/ws/canvas", nil)
	assert.Error(t, err)
}

func TestExecuteAfterClose(t *testing.T) {
	srv := fakeBackend(t, nil)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, err := Dial(ctx, wsURL(srv), nil)
	require.NoError(t, err)
	require.NoError(t, c.Close())
	assert.Error(t, c.Execute(samplePayload()))

	// events channel must close after Close
	select {
	case _, ok := <-c.Events():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("events channel did not close")
	}
}
