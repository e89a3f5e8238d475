// Package runtimesim is an in-memory stand-in for the external agent
// runtime, speaking the same wire protocol over websocket. It exists so
// the shell can be developed and integration-tested without the real
// runtime; it does not spawn agent processes.
package runtimesim

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/mtzanidakis/agentdeck/internal/protocol"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Server struct {
	mu     sync.Mutex
	agents map[string]protocol.Agent
}

func New() *Server {
	return &Server{agents: make(map[string]protocol.Agent)}
}

// Start serves the simulator on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/", s)

	server := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		server.Close()
	}()

	slog.Info("runtime simulator listening", "addr", addr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// ServeHTTP upgrades the connection and serves exchanges until the
// client disconnects: one reply frame per request frame, in order.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		out, err := protocol.EncodeResponse(s.handle(data))
		if err != nil {
			slog.Error("encode response failed", "error", err)
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
			return
		}
	}
}

func (s *Server) handle(data []byte) protocol.Response {
	req, err := protocol.DecodeRequest(data)
	if err != nil {
		return protocol.ErrorResponse{Message: fmt.Sprintf("bad request: %v", err)}
	}

	switch r := req.(type) {
	case protocol.StartAgent:
		return s.startAgent(r.Config)
	case protocol.StopAgent:
		return s.stopAgent(r.AgentID)
	case protocol.ListAgents:
		return s.listAgents()
	case protocol.GetAgent:
		return s.getAgent(r.AgentID)
	case protocol.SendMessage:
		return s.sendMessage(r.AgentID, r.Message)
	default:
		return protocol.ErrorResponse{Message: fmt.Sprintf("unsupported request %T", req)}
	}
}

func (s *Server) startAgent(cfg protocol.AgentConfig) protocol.Response {
	ag := protocol.Agent{
		ID:         uuid.New().String(),
		AgentType:  cfg.AgentType,
		Name:       cfg.Name,
		Status:     "running",
		WorkingDir: cfg.WorkingDir,
		StartedAt:  time.Now().UTC().Format(time.RFC3339),
	}

	s.mu.Lock()
	s.agents[ag.ID] = ag
	s.mu.Unlock()

	slog.Info("agent started", "id", ag.ID, "type", ag.AgentType, "name", ag.Name)
	return protocol.AgentResponse{Agent: ag}
}

func (s *Server) stopAgent(id string) protocol.Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	ag, ok := s.agents[id]
	if !ok {
		return protocol.ErrorResponse{Message: "agent not found: " + id}
	}
	ag.Status = "stopped"
	s.agents[id] = ag

	slog.Info("agent stopped", "id", id)
	return protocol.SuccessResponse{}
}

func (s *Server) listAgents() protocol.Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	agents := make([]protocol.Agent, 0, len(s.agents))
	for _, ag := range s.agents {
		agents = append(agents, ag)
	}
	sort.Slice(agents, func(i, j int) bool {
		if agents[i].StartedAt != agents[j].StartedAt {
			return agents[i].StartedAt < agents[j].StartedAt
		}
		return agents[i].ID < agents[j].ID
	})
	return protocol.AgentsResponse{Agents: agents}
}

func (s *Server) getAgent(id string) protocol.Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ag, ok := s.agents[id]; ok {
		return protocol.AgentOptionalResponse{Agent: &ag}
	}
	return protocol.AgentOptionalResponse{}
}

func (s *Server) sendMessage(id, message string) protocol.Response {
	s.mu.Lock()
	ag, ok := s.agents[id]
	s.mu.Unlock()

	if !ok {
		return protocol.ErrorResponse{Message: "agent not found: " + id}
	}
	if ag.Status != "running" {
		return protocol.ErrorResponse{Message: "agent not running: " + id}
	}

	slog.Info("message delivered", "agent", id, "bytes", len(message))
	return protocol.SuccessResponse{}
}
