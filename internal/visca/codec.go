package visca

import "math"

// --------------------------------------------------------------------------
// Nibble packing
// --------------------------------------------------------------------------
//
// 16-bit values travel as four bytes, one 4-bit nibble per byte, most
// significant nibble first. The high nibble of each wire byte is always zero.

// EncodeNibbles packs a 16-bit value into its 4-byte wire form.
// Signed values are passed through their two's-complement bit pattern,
// e.g. EncodeNibbles(uint16(int16(-432))).
func EncodeNibbles(v uint16) [4]byte {
	return [4]byte{
		byte(v >> 12 & 0x0F),
		byte(v >> 8 & 0x0F),
		byte(v >> 4 & 0x0F),
		byte(v & 0x0F),
	}
}

// DecodeNibbles reassembles a 16-bit value from the low nibbles of the
// first four bytes of b. Callers guarantee len(b) >= 4.
func DecodeNibbles(b []byte) uint16 {
	return uint16(b[0]&0x0F)<<12 |
		uint16(b[1]&0x0F)<<8 |
		uint16(b[2]&0x0F)<<4 |
		uint16(b[3]&0x0F)
}

// DecodeSignedNibbles reassembles a signed 16-bit value; wire values at or
// above 0x8000 are interpreted as two's complement.
func DecodeSignedNibbles(b []byte) int16 {
	return int16(DecodeNibbles(b))
}

// --------------------------------------------------------------------------
// Command frames
// --------------------------------------------------------------------------
//
// Builders are pure assemblers. Parameters arrive already validated by the
// Camera operation that calls them.

func marshalFrame(kind byte, payload ...byte) []byte {
	buf := make([]byte, 0, len(payload)+3)
	buf = append(buf, FrameHeader, kind)
	buf = append(buf, payload...)
	return append(buf, FrameEnd)
}

// MarshalCommand builds an action command frame: 81 01 <payload> FF.
func MarshalCommand(payload ...byte) []byte {
	return marshalFrame(TypeCommand, payload...)
}

// MarshalInquiry builds an inquiry frame: 81 09 <payload> FF.
func MarshalInquiry(payload ...byte) []byte {
	return marshalFrame(TypeInquiry, payload...)
}

// IsInquiry reports whether cmd is an inquiry frame.
func IsInquiry(cmd []byte) bool {
	return len(cmd) >= 2 && cmd[1] == TypeInquiry
}

// axisDirection maps a signed speed to the per-axis drive code.
func axisDirection(speed int) byte {
	switch {
	case speed < 0:
		return dirDecrease
	case speed > 0:
		return dirIncrease
	default:
		return dirStop
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// MarshalPanTiltDrive builds the continuous pan/tilt command. Direction per
// axis comes from the speed's sign, the wire speed is its magnitude.
func MarshalPanTiltDrive(panSpeed, tiltSpeed int) []byte {
	return MarshalCommand(catPanTilt, opPanTiltDrive,
		byte(abs(panSpeed)), byte(abs(tiltSpeed)),
		axisDirection(panSpeed), axisDirection(tiltSpeed))
}

func marshalPanTiltMove(mode byte, panSpeed, tiltSpeed int, pan, tilt int16) []byte {
	p := EncodeNibbles(uint16(pan))
	t := EncodeNibbles(uint16(tilt))
	return MarshalCommand(catPanTilt, mode,
		byte(abs(panSpeed)), byte(abs(tiltSpeed)),
		p[0], p[1], p[2], p[3],
		t[0], t[1], t[2], t[3])
}

// MarshalPanTiltAbsolute builds the absolute-position pan/tilt command.
func MarshalPanTiltAbsolute(panSpeed, tiltSpeed int, pan, tilt int16) []byte {
	return marshalPanTiltMove(opPanTiltAbsolute, panSpeed, tiltSpeed, pan, tilt)
}

// MarshalPanTiltRelative builds the relative-offset pan/tilt command.
func MarshalPanTiltRelative(panSpeed, tiltSpeed int, pan, tilt int16) []byte {
	return marshalPanTiltMove(opPanTiltRelative, panSpeed, tiltSpeed, pan, tilt)
}

// MarshalPanTiltHome builds the home-position command.
func MarshalPanTiltHome() []byte {
	return MarshalCommand(catPanTilt, opPanTiltHome)
}

// MarshalPanTiltReset builds the pan/tilt reset command.
func MarshalPanTiltReset() []byte {
	return MarshalCommand(catPanTilt, opPanTiltReset)
}

// MarshalPanTiltPositionInquiry builds the pan/tilt position inquiry.
func MarshalPanTiltPositionInquiry() []byte {
	return MarshalInquiry(catPanTilt, opPanTiltPosInq)
}

// MarshalZoomDrive builds the continuous zoom command. The single parameter
// byte carries the direction in its high nibble and the speed magnitude in
// its low nibble.
func MarshalZoomDrive(speed int) []byte {
	dir := driveStop
	switch {
	case speed > 0:
		dir = zoomTele
	case speed < 0:
		dir = zoomWide
	}
	return MarshalCommand(catLens, opZoomDrive, dir<<4|byte(abs(speed)))
}

// MarshalZoomDirect builds the absolute zoom command for a position given
// as a fraction of full tele (0.0 = wide, 1.0 = tele). Only the 16-bit wire
// limit is enforced; range policing beyond that is the camera's.
func MarshalZoomDirect(fraction float64) []byte {
	pos := EncodeNibbles(uint16(int(math.Round(fraction*ZoomScale)) & 0xFFFF))
	return MarshalCommand(catLens, opZoomDirect, pos[0], pos[1], pos[2], pos[3])
}

// MarshalZoomPositionInquiry builds the zoom position inquiry.
func MarshalZoomPositionInquiry() []byte {
	return MarshalInquiry(catLens, opZoomDirect)
}

// MarshalFocusDrive builds the manual focus command. Same nibble layout as
// zoom drive; positive speeds focus near, negative far.
func MarshalFocusDrive(speed int) []byte {
	dir := driveStop
	switch {
	case speed > 0:
		dir = focusNear
	case speed < 0:
		dir = focusFar
	}
	return MarshalCommand(catLens, opFocusDrive, dir<<4|byte(abs(speed)))
}

// MarshalFocusMode builds the focus mode command for a known mode.
func MarshalFocusMode(mode FocusMode) []byte {
	op := focusModeOps[mode]
	return MarshalCommand(catLens, op[0], op[1])
}

// MarshalFocusModeInquiry builds the focus mode inquiry.
func MarshalFocusModeInquiry() []byte {
	return MarshalInquiry(catLens, opFocusMode)
}

// MarshalPreset builds a preset save or recall command.
func MarshalPreset(action byte, num int) []byte {
	return MarshalCommand(catLens, opPreset, action, byte(num))
}

// MarshalPower builds the power on/standby command.
func MarshalPower(on bool) []byte {
	state := powerOff
	if on {
		state = powerOn
	}
	return MarshalCommand(catLens, opPower, state)
}

// MarshalPowerInquiry builds the power status inquiry.
func MarshalPowerInquiry() []byte {
	return MarshalInquiry(catLens, opPower)
}
