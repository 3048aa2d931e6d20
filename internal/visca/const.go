package visca

import "time"

// Frame bytes. Every command is 0x81 <type> <payload...> 0xFF.
const (
	FrameHeader byte = 0x81
	FrameEnd    byte = 0xFF

	TypeCommand byte = 0x01
	TypeInquiry byte = 0x09
)

// Reply header bytes.
const (
	replyHeader      byte = 0x90
	replyInquiry     byte = 0x50
	replyErrorNibble byte = 0x60 // high nibble of the second reply byte
)

// Command categories (first payload byte).
const (
	catPanTilt byte = 0x06
	catLens    byte = 0x04
)

// Pan/tilt opcodes (after the 0x06 category byte).
const (
	opPanTiltDrive    byte = 0x01
	opPanTiltAbsolute byte = 0x02
	opPanTiltRelative byte = 0x03
	opPanTiltHome     byte = 0x04
	opPanTiltReset    byte = 0x05
	opPanTiltPosInq   byte = 0x12
)

// Lens/system opcodes (after the 0x04 category byte).
const (
	opPower      byte = 0x00
	opZoomDrive  byte = 0x07
	opFocusDrive byte = 0x08
	opFocusOne   byte = 0x18
	opFocusMode  byte = 0x38
	opPreset     byte = 0x3F
	opZoomDirect byte = 0x47
)

// Per-axis direction codes for pan/tilt drive.
const (
	dirDecrease byte = 0x01
	dirIncrease byte = 0x02
	dirStop     byte = 0x03
)

// High-nibble direction codes for zoom and focus drive.
const (
	driveStop byte = 0x0
	zoomTele  byte = 0x2
	zoomWide  byte = 0x3
	focusFar  byte = 0x2
	focusNear byte = 0x3
)

// Preset actions.
const (
	presetSave   byte = 0x01
	presetRecall byte = 0x02
)

// Power states.
const (
	powerOn  byte = 0x02
	powerOff byte = 0x03
)

// Parameter limits enforced before any bytes are built.
const (
	MaxPanTiltSpeed = 24
	MaxZoomSpeed    = 7
	MaxFocusSpeed   = 7
	MaxPreset       = 255
)

// ZoomScale is the camera's nominal full-tele zoom position.
const ZoomScale = 16384

// Connection defaults.
const (
	DefaultPort    = 5678
	DefaultTimeout = 2 * time.Second
)

// settleDelay is the pause between sending a command and reading its reply.
// Some devices need a moment before they answer on the same stream.
const settleDelay = 100 * time.Millisecond

// flushProbe bounds each drain read while discarding stale input.
const flushProbe = 5 * time.Millisecond
