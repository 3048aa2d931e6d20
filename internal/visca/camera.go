package visca

import (
	"fmt"
	"time"
)

// Camera is the high-level control surface for a single camera. Every
// operation validates its parameters, builds one command frame, and runs one
// request/reply exchange on the underlying session.
type Camera struct {
	session *Session
}

// NewCamera creates a Camera for a host reachable over TCP. Call Connect
// before issuing operations.
func NewCamera(host string, port int, timeout time.Duration) *Camera {
	return &Camera{session: NewSession(host, port, timeout)}
}

// NewSerialCamera creates a Camera on a serial device.
func NewSerialCamera(device string, baud int, timeout time.Duration) *Camera {
	return &Camera{session: NewSerialSession(device, baud, timeout)}
}

// With connects to a camera, runs fn, and closes the connection on every
// exit path, including when fn or the connect itself fails.
func With(host string, port int, timeout time.Duration, fn func(*Camera) error) error {
	return scoped(NewCamera(host, port, timeout), fn)
}

func scoped(cam *Camera, fn func(*Camera) error) error {
	if err := cam.Connect(); err != nil {
		return err
	}
	defer cam.Close()
	return fn(cam)
}

// Connect establishes the connection to the camera.
func (c *Camera) Connect() error { return c.session.Connect() }

// Close releases the connection. Safe to call repeatedly.
func (c *Camera) Close() { c.session.Close() }

// Connected reports whether the camera connection is established.
func (c *Camera) Connected() bool { return c.session.Connected() }

// do runs one action command. An error reply becomes a *ProtocolError; an
// ack or no reply at all counts as success.
func (c *Camera) do(cmd []byte) error {
	reply, err := c.session.Exchange(cmd)
	if err != nil {
		return err
	}
	if reply.Kind == ReplyError {
		return &ProtocolError{Status: reply.Status}
	}
	return nil
}

// inquire runs one inquiry and returns its payload, which must be at least
// min bytes long.
func (c *Camera) inquire(cmd []byte, min int, what string) ([]byte, error) {
	reply, err := c.session.Exchange(cmd)
	if err != nil {
		return nil, err
	}
	switch reply.Kind {
	case ReplyError:
		return nil, &ProtocolError{Status: reply.Status}
	case ReplyInquiry:
		if len(reply.Payload) < min {
			return nil, &MalformedReplyError{What: what, Len: len(reply.Payload), Min: min}
		}
		return reply.Payload, nil
	default:
		return nil, &MalformedReplyError{What: what, Len: len(reply.Raw), Min: min}
	}
}

func checkSpeed(name string, speed, max int) error {
	if speed < -max || speed > max {
		return &ValidationError{Msg: fmt.Sprintf("%s must be between %d and %d, got %d", name, -max, max, speed)}
	}
	return nil
}

func checkPanTiltSpeeds(panSpeed, tiltSpeed int) error {
	if err := checkSpeed("pan speed", panSpeed, MaxPanTiltSpeed); err != nil {
		return err
	}
	return checkSpeed("tilt speed", tiltSpeed, MaxPanTiltSpeed)
}

// --------------------------------------------------------------------------
// Pan/tilt
// --------------------------------------------------------------------------

// PanTilt starts continuous pan/tilt movement. Negative speeds pan left or
// tilt down, zero stops the axis. Speeds range -24..24.
func (c *Camera) PanTilt(panSpeed, tiltSpeed int) error {
	if err := checkPanTiltSpeeds(panSpeed, tiltSpeed); err != nil {
		return err
	}
	return c.do(MarshalPanTiltDrive(panSpeed, tiltSpeed))
}

// PanTiltAbsolute moves to an absolute pan/tilt position at the given
// per-axis speed magnitudes.
func (c *Camera) PanTiltAbsolute(panSpeed, tiltSpeed int, pan, tilt int16) error {
	if err := checkPanTiltSpeeds(panSpeed, tiltSpeed); err != nil {
		return err
	}
	return c.do(MarshalPanTiltAbsolute(panSpeed, tiltSpeed, pan, tilt))
}

// PanTiltRelative moves by a pan/tilt offset at the given per-axis speed
// magnitudes.
func (c *Camera) PanTiltRelative(panSpeed, tiltSpeed int, pan, tilt int16) error {
	if err := checkPanTiltSpeeds(panSpeed, tiltSpeed); err != nil {
		return err
	}
	return c.do(MarshalPanTiltRelative(panSpeed, tiltSpeed, pan, tilt))
}

// PanTiltStop stops all pan/tilt movement.
func (c *Camera) PanTiltStop() error { return c.PanTilt(0, 0) }

// PanTiltHome moves the camera to its home position.
func (c *Camera) PanTiltHome() error { return c.do(MarshalPanTiltHome()) }

// PanTiltReset resets the pan/tilt mechanism.
func (c *Camera) PanTiltReset() error { return c.do(MarshalPanTiltReset()) }

// PanTiltPosition queries the current pan and tilt positions.
func (c *Camera) PanTiltPosition() (pan, tilt int16, err error) {
	payload, err := c.inquire(MarshalPanTiltPositionInquiry(), 8, "pan/tilt position")
	if err != nil {
		return 0, 0, err
	}
	return DecodeSignedNibbles(payload[0:4]), DecodeSignedNibbles(payload[4:8]), nil
}

// --------------------------------------------------------------------------
// Zoom
// --------------------------------------------------------------------------

// Zoom starts a continuous zoom. Positive speeds zoom in, negative out,
// zero stops. Speeds range -7..7.
func (c *Camera) Zoom(speed int) error {
	if err := checkSpeed("zoom speed", speed, MaxZoomSpeed); err != nil {
		return err
	}
	return c.do(MarshalZoomDrive(speed))
}

// ZoomStop stops zooming.
func (c *Camera) ZoomStop() error { return c.Zoom(0) }

// ZoomTo zooms to an absolute position given as a fraction of full tele
// (0.0 = wide, 1.0 = tele). The camera clamps out-of-range positions.
func (c *Camera) ZoomTo(fraction float64) error {
	return c.do(MarshalZoomDirect(fraction))
}

// ZoomPosition queries the current zoom position (0..16384 typical).
func (c *Camera) ZoomPosition() (int, error) {
	payload, err := c.inquire(MarshalZoomPositionInquiry(), 4, "zoom position")
	if err != nil {
		return 0, err
	}
	return int(DecodeNibbles(payload[0:4])), nil
}

// --------------------------------------------------------------------------
// Focus
// --------------------------------------------------------------------------

// SetFocusMode switches the camera focus mode.
func (c *Camera) SetFocusMode(mode FocusMode) error {
	if _, ok := focusModeOps[mode]; !ok {
		return &ValidationError{Msg: fmt.Sprintf("invalid focus mode %v", mode)}
	}
	return c.do(MarshalFocusMode(mode))
}

// ManualFocus drives the focus manually. Positive speeds focus near,
// negative far, zero stops. Speeds range -7..7.
func (c *Camera) ManualFocus(speed int) error {
	if err := checkSpeed("focus speed", speed, MaxFocusSpeed); err != nil {
		return err
	}
	return c.do(MarshalFocusDrive(speed))
}

// FocusMode queries the current focus mode. A status byte outside the known
// codes yields FocusUnknown without an error.
func (c *Camera) FocusMode() (FocusMode, error) {
	payload, err := c.inquire(MarshalFocusModeInquiry(), 1, "focus mode")
	if err != nil {
		return FocusUnknown, err
	}
	switch payload[len(payload)-1] {
	case 0x02:
		return FocusAuto, nil
	case 0x03:
		return FocusManual, nil
	}
	return FocusUnknown, nil
}

// --------------------------------------------------------------------------
// Presets
// --------------------------------------------------------------------------

func checkPreset(num int) error {
	if num < 0 || num > MaxPreset {
		return &ValidationError{Msg: fmt.Sprintf("preset number must be 0-%d, got %d", MaxPreset, num)}
	}
	return nil
}

// SavePreset stores the current position in preset slot num (0-255).
func (c *Camera) SavePreset(num int) error {
	if err := checkPreset(num); err != nil {
		return err
	}
	return c.do(MarshalPreset(presetSave, num))
}

// RecallPreset moves the camera to a stored preset (0-255).
func (c *Camera) RecallPreset(num int) error {
	if err := checkPreset(num); err != nil {
		return err
	}
	return c.do(MarshalPreset(presetRecall, num))
}

// --------------------------------------------------------------------------
// Power
// --------------------------------------------------------------------------

// SetPower turns the camera on or puts it in standby.
func (c *Camera) SetPower(on bool) error {
	return c.do(MarshalPower(on))
}

// PowerStatus queries whether the camera is powered on. Unknown status
// bytes report false without an error.
func (c *Camera) PowerStatus() (bool, error) {
	payload, err := c.inquire(MarshalPowerInquiry(), 1, "power status")
	if err != nil {
		return false, err
	}
	return payload[len(payload)-1] == powerOn, nil
}
