// Package shell is the caller-facing surface the GUI dispatches into:
// one shared bridge slot plus the five runtime operations. Before a
// successful Connect every operation fails with bridge.ErrNotConnected
// without touching the network.
package shell

import (
	"context"
	"sync"

	"github.com/mtzanidakis/agentdeck/internal/bridge"
	"github.com/mtzanidakis/agentdeck/internal/config"
	"github.com/mtzanidakis/agentdeck/internal/protocol"
)

type Shell struct {
	url string

	mu sync.Mutex
	br *bridge.Bridge
}

func New(cfg config.RuntimeConfig) *Shell {
	return &Shell{url: cfg.URL}
}

// Connect dials the runtime and installs the bridge, replacing and
// closing any previous one.
func (s *Shell) Connect(ctx context.Context) error {
	b, err := bridge.Connect(ctx, s.url)
	if err != nil {
		return err
	}

	s.mu.Lock()
	old := s.br
	s.br = b
	s.mu.Unlock()

	if old != nil {
		old.Close()
	}
	return nil
}

func (s *Shell) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.br != nil
}

// Disconnect closes and drops the current bridge, if any.
func (s *Shell) Disconnect() {
	s.mu.Lock()
	b := s.br
	s.br = nil
	s.mu.Unlock()

	if b != nil {
		b.Close()
	}
}

func (s *Shell) current() (*bridge.Bridge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.br == nil {
		return nil, bridge.ErrNotConnected
	}
	return s.br, nil
}

func (s *Shell) StartAgent(cfg protocol.AgentConfig) (protocol.Agent, error) {
	b, err := s.current()
	if err != nil {
		return protocol.Agent{}, err
	}
	return b.StartAgent(cfg)
}

func (s *Shell) StopAgent(agentID string) error {
	b, err := s.current()
	if err != nil {
		return err
	}
	return b.StopAgent(agentID)
}

func (s *Shell) ListAgents() ([]protocol.Agent, error) {
	b, err := s.current()
	if err != nil {
		return nil, err
	}
	return b.ListAgents()
}

func (s *Shell) GetAgent(agentID string) (*protocol.Agent, error) {
	b, err := s.current()
	if err != nil {
		return nil, err
	}
	return b.GetAgent(agentID)
}

func (s *Shell) SendMessage(agentID, message string) error {
	b, err := s.current()
	if err != nil {
		return err
	}
	return b.SendMessage(agentID, message)
}
