// Package protocol defines the messages exchanged with the agent runtime
// over the control socket. Every frame carries exactly one JSON object,
// tagged by a "type" field that names the variant.
package protocol

// AgentConfig describes an agent to launch. No validation happens on
// this side; the runtime is authoritative.
type AgentConfig struct {
	AgentType  string `json:"agent_type"`
	Name       string `json:"name"`
	WorkingDir string `json:"working_dir"`
	Prompt     string `json:"prompt,omitempty"`
	Model      string `json:"model,omitempty"`
}

// Agent is a snapshot of a runtime-managed agent. Status is the
// runtime's own vocabulary (e.g. running, stopped) and is deliberately
// not enumerated here.
type Agent struct {
	ID         string `json:"id"`
	AgentType  string `json:"agent_type"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	WorkingDir string `json:"working_dir"`
	StartedAt  string `json:"started_at"`
}

// Request is one of the five commands the bridge can issue. Exactly one
// request goes out per exchange.
type Request interface {
	requestType() string
}

type StartAgent struct {
	Config AgentConfig `json:"config"`
}

type StopAgent struct {
	AgentID string `json:"agent_id"`
}

type ListAgents struct{}

type GetAgent struct {
	AgentID string `json:"agent_id"`
}

type SendMessage struct {
	AgentID string `json:"agent_id"`
	Message string `json:"message"`
}

func (StartAgent) requestType() string  { return "start_agent" }
func (StopAgent) requestType() string   { return "stop_agent" }
func (ListAgents) requestType() string  { return "list_agents" }
func (GetAgent) requestType() string    { return "get_agent" }
func (SendMessage) requestType() string { return "send_message" }

// Response is the single reply the runtime sends back for each request.
// Its variant must match the shape the request expects; the bridge
// treats any other variant as a protocol error.
type Response interface {
	responseType() string
}

type AgentResponse struct {
	Agent Agent `json:"agent"`
}

type AgentsResponse struct {
	Agents []Agent `json:"agents"`
}

// AgentOptionalResponse carries an agent or its absence (JSON null).
type AgentOptionalResponse struct {
	Agent *Agent `json:"agent"`
}

type SuccessResponse struct{}

type ErrorResponse struct {
	Message string `json:"message"`
}

func (AgentResponse) responseType() string         { return "agent" }
func (AgentsResponse) responseType() string        { return "agents" }
func (AgentOptionalResponse) responseType() string { return "agent_optional" }
func (SuccessResponse) responseType() string       { return "success" }
func (ErrorResponse) responseType() string         { return "error" }
