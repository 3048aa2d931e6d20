package visca

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestClassifyReply_Error(t *testing.T) {
	tests := []struct {
		name    string
		raw     []byte
		inquiry bool
		status  byte
	}{
		{"syntax error", []byte{0x90, 0x60, 0x02, 0xFF}, false, 0x02},
		{"error on inquiry", []byte{0x90, 0x60, 0x02, 0xFF}, true, 0x02},
		{"socket nibble ignored", []byte{0x90, 0x61, 0x41, 0xFF}, false, 0x41},
		{"position limit", []byte{0x90, 0x60, 0x76, 0xFF}, false, 0x76},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ClassifyReply(tt.raw, tt.inquiry)
			if r.Kind != ReplyError {
				t.Fatalf("Kind = %d, want ReplyError", r.Kind)
			}
			if r.Status != tt.status {
				t.Errorf("Status = 0x%02X, want 0x%02X", r.Status, tt.status)
			}
		})
	}
}

func TestClassifyReply_Inquiry(t *testing.T) {
	raw := []byte{0x90, 0x50, 0x00, 0x01, 0x02, 0x03, 0x0F, 0x0E, 0x05, 0x00, 0xFF}
	r := ClassifyReply(raw, true)
	if r.Kind != ReplyInquiry {
		t.Fatalf("Kind = %d, want ReplyInquiry", r.Kind)
	}
	want := []byte{0x00, 0x01, 0x02, 0x03, 0x0F, 0x0E, 0x05, 0x00}
	if !bytes.Equal(r.Payload, want) {
		t.Errorf("Payload = % X, want % X", r.Payload, want)
	}
}

func TestClassifyReply_Ack(t *testing.T) {
	tests := []struct {
		name    string
		raw     []byte
		inquiry bool
	}{
		// 0x41 in the second byte is an ack (high nibble 0x4), not an error.
		{"ack", []byte{0x90, 0x41, 0xFF}, false},
		{"completion", []byte{0x90, 0x51, 0xFF}, false},
		{"data shape but not inquiry", []byte{0x90, 0x50, 0x02, 0x00, 0xFF}, false},
		{"inquiry reply too short for data", []byte{0x90, 0x50, 0xFF}, true},
		{"two bytes", []byte{0x90, 0x60}, false}, // too short for the error shape
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ClassifyReply(tt.raw, tt.inquiry)
			if r.Kind != ReplyAck {
				t.Errorf("Kind = %d, want ReplyAck", r.Kind)
			}
			if !bytes.Equal(r.Raw, tt.raw) {
				t.Errorf("Raw = % X, want % X", r.Raw, tt.raw)
			}
		})
	}
}

func TestClassifyReply_Empty(t *testing.T) {
	for _, inquiry := range []bool{false, true} {
		r := ClassifyReply(nil, inquiry)
		if r.Kind != ReplyEmpty {
			t.Errorf("ClassifyReply(nil, %v).Kind = %d, want ReplyEmpty", inquiry, r.Kind)
		}
	}
}

func TestStatusText(t *testing.T) {
	tests := []struct {
		code byte
		want string
	}{
		{0x01, "message length error"},
		{0x02, "syntax error"},
		{0x03, "command buffer full"},
		{0x04, "command cancelled"},
		{0x05, "no socket"},
		{0x41, "command not executable"},
		{0x76, "position limit exceeded or command blocked"},
		{0x99, "unknown error code 0x99"},
	}
	for _, tt := range tests {
		if got := StatusText(tt.code); got != tt.want {
			t.Errorf("StatusText(0x%02X) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestProtocolError_Message(t *testing.T) {
	err := &ProtocolError{Status: 0x02}
	if !strings.Contains(err.Error(), "syntax error") {
		t.Errorf("Error() = %q, want syntax error description", err.Error())
	}
}

func TestConnectError_Unwrap(t *testing.T) {
	cause := errors.New("refused")
	err := &ConnectError{Addr: "10.0.0.1:5678", Err: cause}
	if !errors.Is(err, cause) {
		t.Error("errors.Is does not reach the wrapped cause")
	}
	if !strings.Contains(err.Error(), "10.0.0.1:5678") {
		t.Errorf("Error() = %q, want address included", err.Error())
	}
}

func TestParseFocusMode(t *testing.T) {
	tests := []struct {
		in   string
		want FocusMode
	}{
		{"auto", FocusAuto},
		{"manual", FocusManual},
		{"auto/manual", FocusAutoManual},
		{"one push trigger", FocusOnePush},
		{"infinity", FocusInfinity},
	}
	for _, tt := range tests {
		got, err := ParseFocusMode(tt.in)
		if err != nil {
			t.Errorf("ParseFocusMode(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFocusMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFocusMode_Invalid(t *testing.T) {
	_, err := ParseFocusMode("invalid")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
}
