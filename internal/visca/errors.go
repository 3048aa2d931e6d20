package visca

import (
	"errors"
	"fmt"
)

// ErrNotConnected is returned by Exchange and every Camera operation when
// no connection has been established.
var ErrNotConnected = errors.New("not connected")

// ValidationError reports a caller-supplied parameter out of range. It is
// raised before any bytes are built or sent.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// ConnectError reports a failed connection attempt. The session stays
// unconnected.
type ConnectError struct {
	Addr string
	Err  error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connect %s: %v", e.Addr, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// statusText maps camera error status codes to descriptions. 0x76 is
// reported by some device families for position limits and blocked commands.
var statusText = map[byte]string{
	0x01: "message length error",
	0x02: "syntax error",
	0x03: "command buffer full",
	0x04: "command cancelled",
	0x05: "no socket",
	0x41: "command not executable",
	0x76: "position limit exceeded or command blocked",
}

// StatusText returns the description for a camera error status code.
func StatusText(code byte) string {
	if text, ok := statusText[code]; ok {
		return text
	}
	return fmt.Sprintf("unknown error code 0x%02X", code)
}

// ProtocolError reports an error reply (90 6X <code> FF) from the camera.
type ProtocolError struct {
	Status byte
}

func (e *ProtocolError) Error() string {
	return "camera error: " + StatusText(e.Status)
}

// MalformedReplyError reports an inquiry reply too short to carry the
// expected fields.
type MalformedReplyError struct {
	What string
	Len  int
	Min  int
}

func (e *MalformedReplyError) Error() string {
	return fmt.Sprintf("%s reply too short: %d bytes, want at least %d", e.What, e.Len, e.Min)
}
