package runtimesim

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mtzanidakis/agentdeck/internal/bridge"
	"github.com/mtzanidakis/agentdeck/internal/protocol"
)

func newTestBridge(t *testing.T) *bridge.Bridge {
	t.Helper()
	srv := httptest.NewServer(New())
	t.Cleanup(srv.Close)

	b, err := bridge.Connect(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

func TestAgentLifecycle(t *testing.T) {
	b := newTestBridge(t)

	agents, err := b.ListAgents()
	if err != nil {
		t.Fatalf("list agents: %v", err)
	}
	if len(agents) != 0 {
		t.Fatalf("expected empty runtime, got %d agents", len(agents))
	}

	ag, err := b.StartAgent(protocol.AgentConfig{AgentType: "shell", Name: "builder", WorkingDir: "/work"})
	if err != nil {
		t.Fatalf("start agent: %v", err)
	}
	if ag.ID == "" {
		t.Fatal("expected assigned id")
	}
	if ag.Status != "running" {
		t.Errorf("expected status running, got %q", ag.Status)
	}
	if ag.StartedAt == "" {
		t.Error("expected started_at timestamp")
	}

	got, err := b.GetAgent(ag.ID)
	if err != nil {
		t.Fatalf("get agent: %v", err)
	}
	if got == nil {
		t.Fatal("expected agent, got absence")
	}
	if *got != ag {
		t.Errorf("snapshot mismatch: started %+v, got %+v", ag, *got)
	}

	agents, err = b.ListAgents()
	if err != nil {
		t.Fatalf("list agents: %v", err)
	}
	if len(agents) != 1 {
		t.Fatalf("expected 1 agent, got %d", len(agents))
	}

	if err := b.SendMessage(ag.ID, "hello"); err != nil {
		t.Fatalf("send message: %v", err)
	}

	if err := b.StopAgent(ag.ID); err != nil {
		t.Fatalf("stop agent: %v", err)
	}
	got, err = b.GetAgent(ag.ID)
	if err != nil {
		t.Fatalf("get agent after stop: %v", err)
	}
	if got == nil || got.Status != "stopped" {
		t.Errorf("expected stopped agent, got %+v", got)
	}

	// Messages to a stopped agent are refused.
	err = b.SendMessage(ag.ID, "anyone there")
	var peerErr *bridge.PeerError
	if !errors.As(err, &peerErr) {
		t.Fatalf("expected PeerError, got %T: %v", err, err)
	}
}

func TestUnknownAgent(t *testing.T) {
	b := newTestBridge(t)

	ag, err := b.GetAgent("missing")
	if err != nil {
		t.Fatalf("get agent: %v", err)
	}
	if ag != nil {
		t.Errorf("expected absence, got %+v", ag)
	}

	var peerErr *bridge.PeerError
	if err := b.StopAgent("missing"); !errors.As(err, &peerErr) {
		t.Errorf("stop: expected PeerError, got %v", err)
	}
	if err := b.SendMessage("missing", "hi"); !errors.As(err, &peerErr) {
		t.Errorf("send: expected PeerError, got %v", err)
	}
}

func TestBadFrameGetsErrorResponse(t *testing.T) {
	s := New()
	resp := s.handle([]byte(`{"type":"teleport_agent"}`))
	er, ok := resp.(protocol.ErrorResponse)
	if !ok {
		t.Fatalf("expected ErrorResponse, got %T", resp)
	}
	if !strings.Contains(er.Message, "bad request") {
		t.Errorf("expected bad request message, got %q", er.Message)
	}
}

func TestListOrderedByStart(t *testing.T) {
	s := New()

	for _, name := range []string{"a", "b", "c"} {
		resp := s.startAgent(protocol.AgentConfig{AgentType: "shell", Name: name, WorkingDir: "/tmp"})
		if _, ok := resp.(protocol.AgentResponse); !ok {
			t.Fatalf("start %s: %+v", name, resp)
		}
	}

	resp := s.listAgents()
	list, ok := resp.(protocol.AgentsResponse)
	if !ok {
		t.Fatalf("expected AgentsResponse, got %T", resp)
	}
	if len(list.Agents) != 3 {
		t.Fatalf("expected 3 agents, got %d", len(list.Agents))
	}
}
