package protocol

import (
	"encoding/json"
	"fmt"
)

// The discriminant strings below are a fixed contract shared with the
// runtime; changing any of them breaks the wire protocol.

type envelope struct {
	Type string `json:"type"`
}

// EncodeRequest serializes a request into one wire frame.
func EncodeRequest(req Request) ([]byte, error) {
	var payload any
	switch r := req.(type) {
	case StartAgent:
		payload = struct {
			Type string `json:"type"`
			StartAgent
		}{r.requestType(), r}
	case StopAgent:
		payload = struct {
			Type string `json:"type"`
			StopAgent
		}{r.requestType(), r}
	case ListAgents:
		payload = envelope{Type: r.requestType()}
	case GetAgent:
		payload = struct {
			Type string `json:"type"`
			GetAgent
		}{r.requestType(), r}
	case SendMessage:
		payload = struct {
			Type string `json:"type"`
			SendMessage
		}{r.requestType(), r}
	default:
		return nil, fmt.Errorf("encode request: unsupported type %T", req)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return data, nil
}

// DecodeRequest parses one wire frame into a request. Unknown
// discriminants are rejected, never ignored.
func DecodeRequest(data []byte) (Request, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}

	switch env.Type {
	case "start_agent":
		var r StartAgent
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("decode start_agent: %w", err)
		}
		return r, nil
	case "stop_agent":
		var r StopAgent
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("decode stop_agent: %w", err)
		}
		return r, nil
	case "list_agents":
		return ListAgents{}, nil
	case "get_agent":
		var r GetAgent
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("decode get_agent: %w", err)
		}
		return r, nil
	case "send_message":
		var r SendMessage
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("decode send_message: %w", err)
		}
		return r, nil
	case "":
		return nil, fmt.Errorf("decode request: missing type field")
	default:
		return nil, fmt.Errorf("decode request: unknown type %q", env.Type)
	}
}

// EncodeResponse serializes a response into one wire frame.
func EncodeResponse(resp Response) ([]byte, error) {
	var payload any
	switch r := resp.(type) {
	case AgentResponse:
		payload = struct {
			Type string `json:"type"`
			AgentResponse
		}{r.responseType(), r}
	case AgentsResponse:
		payload = struct {
			Type string `json:"type"`
			AgentsResponse
		}{r.responseType(), r}
	case AgentOptionalResponse:
		payload = struct {
			Type string `json:"type"`
			AgentOptionalResponse
		}{r.responseType(), r}
	case SuccessResponse:
		payload = envelope{Type: r.responseType()}
	case ErrorResponse:
		payload = struct {
			Type string `json:"type"`
			ErrorResponse
		}{r.responseType(), r}
	default:
		return nil, fmt.Errorf("encode response: unsupported type %T", resp)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	return data, nil
}

// DecodeResponse parses one wire frame into a response. Unknown
// discriminants are rejected, never ignored.
func DecodeResponse(data []byte) (Response, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	switch env.Type {
	case "agent":
		var r AgentResponse
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("decode agent: %w", err)
		}
		return r, nil
	case "agents":
		var r AgentsResponse
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("decode agents: %w", err)
		}
		return r, nil
	case "agent_optional":
		var r AgentOptionalResponse
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("decode agent_optional: %w", err)
		}
		return r, nil
	case "success":
		return SuccessResponse{}, nil
	case "error":
		var r ErrorResponse
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("decode error: %w", err)
		}
		return r, nil
	case "":
		return nil, fmt.Errorf("decode response: missing type field")
	default:
		return nil, fmt.Errorf("decode response: unknown type %q", env.Type)
	}
}
