package visca

import (
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"time"
)

// Stream is the byte transport under a Session: reliable, in-order delivery
// once connected. *net.TCPConn satisfies it; see OpenSerial for RS-232 links.
type Stream interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
	SetReadDeadline(t time.Time) error
}

// Session owns the single connection to the camera and runs one blocking
// request/reply exchange at a time. It is not safe for concurrent use.
type Session struct {
	addr    string
	timeout time.Duration
	dial    func() (Stream, error)
	conn    Stream
}

// NewSession creates an unconnected session for a camera reachable over TCP.
// A zero timeout selects DefaultTimeout.
func NewSession(host string, port int, timeout time.Duration) *Session {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	s := &Session{
		addr:    net.JoinHostPort(host, strconv.Itoa(port)),
		timeout: timeout,
	}
	s.dial = func() (Stream, error) {
		return net.DialTimeout("tcp", s.addr, s.timeout)
	}
	return s
}

// NewSerialSession creates an unconnected session for a camera on a serial
// port, for links where the protocol runs over RS-232 instead of TCP.
func NewSerialSession(device string, baud int, timeout time.Duration) *Session {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	s := &Session{addr: device, timeout: timeout}
	s.dial = func() (Stream, error) {
		return OpenSerial(device, baud)
	}
	return s
}

// Connect establishes the connection. On failure the session stays
// unconnected and a *ConnectError is returned.
func (s *Session) Connect() error {
	conn, err := s.dial()
	if err != nil {
		return &ConnectError{Addr: s.addr, Err: err}
	}
	s.conn = conn
	slog.Debug("connected", "addr", s.addr, "timeout", s.timeout)
	return nil
}

// Close releases the connection if present. Errors from the release itself
// are discarded; calling Close on an unconnected session is a no-op.
func (s *Session) Close() {
	if s.conn == nil {
		return
	}
	s.conn.Close()
	s.conn = nil
	slog.Debug("closed", "addr", s.addr)
}

// Connected reports whether the session holds a connection.
func (s *Session) Connected() bool { return s.conn != nil }

// flushInput drains bytes left over from a previous exchange so they are
// never read as the next command's reply.
func (s *Session) flushInput() {
	// An already-expired deadline would fail the read before it looks at
	// the buffer, so probe with a short one instead.
	buf := make([]byte, 1024)
	drained := 0
	for {
		s.conn.SetReadDeadline(time.Now().Add(flushProbe))
		n, err := s.conn.Read(buf)
		drained += n
		if err != nil || n == 0 {
			break
		}
	}
	if drained > 0 {
		slog.Debug("flushed stale input", "bytes", drained)
	}
	s.conn.SetReadDeadline(time.Now().Add(s.timeout))
}

// Exchange sends one command frame and receives its reply. The read blocks
// for at most the configured timeout; elapsing without data yields a
// ReplyEmpty, not an error.
func (s *Session) Exchange(cmd []byte) (Reply, error) {
	if s.conn == nil {
		return Reply{}, ErrNotConnected
	}
	s.flushInput()

	if _, err := s.conn.Write(cmd); err != nil {
		return Reply{}, fmt.Errorf("send: %w", err)
	}
	slog.Debug("sent", "frame", fmt.Sprintf("% X", cmd))

	// Give the device a moment to answer before the blocking read.
	time.Sleep(settleDelay)

	s.conn.SetReadDeadline(time.Now().Add(s.timeout))
	buf := make([]byte, 1024)
	n, err := s.conn.Read(buf)
	if err != nil && n == 0 {
		// A timeout is a valid outcome: some devices skip the ack for
		// certain commands. A peer close also reads as zero bytes.
		if isTimeout(err) || err == io.EOF {
			slog.Debug("no reply within timeout", "frame", fmt.Sprintf("% X", cmd))
			return Reply{Kind: ReplyEmpty}, nil
		}
		return Reply{}, fmt.Errorf("recv: %w", err)
	}
	if n == 0 {
		return Reply{Kind: ReplyEmpty}, nil
	}

	raw := make([]byte, n)
	copy(raw, buf[:n])
	slog.Debug("received", "frame", fmt.Sprintf("% X", raw))
	return ClassifyReply(raw, IsInquiry(cmd)), nil
}

func isTimeout(err error) bool {
	ne, ok := err.(net.Error)
	return ok && ne.Timeout()
}
