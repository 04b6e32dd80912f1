// Package runner talks to the workflow execution backend over its canvas
// websocket. The client sends a workflow payload and streams back
// per-node execution events.
package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/wesen/weave/internal/wire"
)

// Event types emitted by the backend during a run.
const (
	EventExecutionStarted = "execution_started"
	EventWorkflowStarted  = "workflow_started"
	EventNodeExecuted     = "node_executed"
	EventExecutionError   = "execution_error"
	EventWorkflowFinished = "workflow_finished"
)

// Event is one streamed execution update. Fields are populated depending
// on Type.
type Event struct {
	Type        string `json:"type"`
	WorkflowID  string `json:"workflow_id,omitempty"`
	ExecutionID string `json:"execution_id,omitempty"`
	NodeID      string `json:"node_id,omitempty"`
	Result      string `json:"result,omitempty"`
	Error       string `json:"error,omitempty"`
	Message     string `json:"message,omitempty"`
}

// Terminal reports whether no further events follow this one in a run.
func (e Event) Terminal() bool {
	return e.Type == EventWorkflowFinished || e.Type == EventExecutionError
}

type request struct {
	Type string       `json:"type"`
	Data wire.Payload `json:"data"`
}

// Client is a websocket connection to the execution backend. It is safe
// to call Execute from one goroutine while draining Events from another.
type Client struct {
	conn   *websocket.Conn
	logger *zap.Logger

	events chan Event

	mu     sync.Mutex
	closed bool
}

// Dial connects to the backend's canvas websocket endpoint.
func Dial(ctx context.Context, url string, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial backend %s: %w", url, err)
	}
	c := &Client{
		conn:   conn,
		logger: logger,
		events: make(chan Event, 16),
	}
	go c.readLoop()
	logger.Info("Connected to execution backend", zap.String("url", url))
	return c, nil
}

// Execute submits a workflow for execution. Events stream back on
// Events().
func (c *Client) Execute(p wire.Payload) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("execute workflow %s: client closed", p.WorkflowID)
	}
	c.logger.Info("Executing workflow",
		zap.String("workflow", p.WorkflowID),
		zap.Int("nodes", len(p.Nodes)))
	if err := c.conn.WriteJSON(request{Type: "execute_workflow", Data: p}); err != nil {
		return fmt.Errorf("execute workflow %s: %w", p.WorkflowID, err)
	}
	return nil
}

// Events returns the stream of execution events. The channel is closed
// when the connection drops or Close is called.
func (c *Client) Events() <-chan Event {
	return c.events
}

// Close shuts the connection down.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.conn.Close()
}

func (c *Client) readLoop() {
	defer close(c.events)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			closed := c.closed
			c.mu.Unlock()
			if !closed {
				c.logger.Warn("Backend connection lost", zap.Error(err))
			}
			return
		}
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			c.logger.Warn("Malformed backend event", zap.Error(err))
			continue
		}
		if ev.Type == "" {
			continue
		}
		c.events <- ev
	}
}

// Run executes the payload and collects events until a terminal event,
// the stream closing, or ctx expiring. The returned events always include
// the terminal one when the run completed.
func Run(ctx context.Context, url string, p wire.Payload, logger *zap.Logger) ([]Event, error) {
	c, err := Dial(ctx, url, logger)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	if err := c.Execute(p); err != nil {
		return nil, err
	}

	var events []Event
	for {
		select {
		case <-ctx.Done():
			return events, ctx.Err()
		case ev, ok := <-c.Events():
			if !ok {
				return events, fmt.Errorf("run workflow %s: connection closed before completion", p.WorkflowID)
			}
			events = append(events, ev)
			if ev.Terminal() {
				if ev.Type == EventExecutionError {
					return events, fmt.Errorf("run workflow %s: %s", p.WorkflowID, ev.Error)
				}
				return events, nil
			}
		}
	}
}
