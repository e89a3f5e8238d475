// Package bridge turns the asynchronous websocket stream to the agent
// runtime into one synchronous request/response call per operation.
package bridge

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/mtzanidakis/agentdeck/internal/protocol"
)

// Bridge owns a single websocket connection to the agent runtime. There
// is no request identifier on the wire, so ordering is the only
// correlation: a mutex spans each whole exchange, guaranteeing that the
// Nth frame sent pairs with the Nth frame received even when many
// callers share one Bridge.
type Bridge struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// Connect dials the runtime endpoint and performs the websocket
// handshake. A Bridge is bound to its connection for life; after a
// transport failure the caller reconnects by constructing a new one.
func Connect(ctx context.Context, url string) (*Bridge, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	return &Bridge{conn: conn}, nil
}

// Close tears down the underlying connection. Any exchange in flight
// fails with a TransportError.
func (b *Bridge) Close() error {
	return b.conn.Close()
}

// exchange performs one full round trip: encode, send one text frame,
// await one reply frame, decode. It never retries, times out, or
// pipelines; a silent runtime blocks the calling operation until the
// connection drops.
func (b *Bridge) exchange(req protocol.Request) (protocol.Response, error) {
	data, err := protocol.EncodeRequest(req)
	if err != nil {
		return nil, &ProtocolError{Reason: "encode request", Err: err}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return nil, &TransportError{Op: "write", Err: err}
	}

	msgType, payload, err := b.conn.ReadMessage()
	if err != nil {
		return nil, &TransportError{Op: "read", Err: err}
	}
	if msgType != websocket.TextMessage {
		return nil, &ProtocolError{Reason: "unexpected message type"}
	}

	resp, err := protocol.DecodeResponse(payload)
	if err != nil {
		return nil, &ProtocolError{Reason: "decode response", Err: err}
	}
	return resp, nil
}

// StartAgent asks the runtime to launch an agent and returns the
// runtime's snapshot of it.
func (b *Bridge) StartAgent(cfg protocol.AgentConfig) (protocol.Agent, error) {
	resp, err := b.exchange(protocol.StartAgent{Config: cfg})
	if err != nil {
		return protocol.Agent{}, err
	}
	switch r := resp.(type) {
	case protocol.AgentResponse:
		return r.Agent, nil
	case protocol.ErrorResponse:
		return protocol.Agent{}, &PeerError{Message: r.Message}
	default:
		return protocol.Agent{}, &ProtocolError{Reason: "unexpected response"}
	}
}

// StopAgent asks the runtime to stop the agent with the given id.
func (b *Bridge) StopAgent(agentID string) error {
	resp, err := b.exchange(protocol.StopAgent{AgentID: agentID})
	if err != nil {
		return err
	}
	switch r := resp.(type) {
	case protocol.SuccessResponse:
		return nil
	case protocol.ErrorResponse:
		return &PeerError{Message: r.Message}
	default:
		return &ProtocolError{Reason: "unexpected response"}
	}
}

// ListAgents returns a fresh snapshot of every agent the runtime knows
// about. Nothing is cached on this side.
func (b *Bridge) ListAgents() ([]protocol.Agent, error) {
	resp, err := b.exchange(protocol.ListAgents{})
	if err != nil {
		return nil, err
	}
	switch r := resp.(type) {
	case protocol.AgentsResponse:
		return r.Agents, nil
	case protocol.ErrorResponse:
		return nil, &PeerError{Message: r.Message}
	default:
		return nil, &ProtocolError{Reason: "unexpected response"}
	}
}

// GetAgent returns the agent with the given id, or nil if the runtime
// does not know it.
func (b *Bridge) GetAgent(agentID string) (*protocol.Agent, error) {
	resp, err := b.exchange(protocol.GetAgent{AgentID: agentID})
	if err != nil {
		return nil, err
	}
	switch r := resp.(type) {
	case protocol.AgentOptionalResponse:
		return r.Agent, nil
	case protocol.ErrorResponse:
		return nil, &PeerError{Message: r.Message}
	default:
		return nil, &ProtocolError{Reason: "unexpected response"}
	}
}

// SendMessage delivers a free-text message to a running agent.
func (b *Bridge) SendMessage(agentID, message string) error {
	resp, err := b.exchange(protocol.SendMessage{AgentID: agentID, Message: message})
	if err != nil {
		return err
	}
	switch r := resp.(type) {
	case protocol.SuccessResponse:
		return nil
	case protocol.ErrorResponse:
		return &PeerError{Message: r.Message}
	default:
		return &ProtocolError{Reason: "unexpected response"}
	}
}
