package bridge

import (
	"errors"
	"fmt"
)

// ErrNotConnected is returned when an operation runs against a shell
// that has no live bridge. No I/O is attempted in that case.
var ErrNotConnected = errors.New("not connected to agent runtime")

// ConnectionError reports a failed dial or websocket handshake.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect to agent runtime: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// TransportError reports a send or receive failure on an established
// connection, including the peer closing mid-exchange.
type TransportError struct {
	Op  string // "write" or "read"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s frame: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError reports a frame the codec cannot accept: a non-text
// frame, malformed content, or a reply whose shape does not match the
// request that provoked it. It usually means a version mismatch with
// the runtime.
type ProtocolError struct {
	Reason string
	Err    error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// PeerError carries the runtime's own error message, verbatim.
type PeerError struct {
	Message string
}

func (e *PeerError) Error() string { return e.Message }
