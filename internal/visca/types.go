package visca

import "fmt"

// FocusMode represents the camera focus modes this driver knows how to set.
type FocusMode int

const (
	FocusAuto FocusMode = iota
	FocusManual
	FocusAutoManual
	FocusOnePush
	FocusInfinity
	FocusUnknown
)

// focusModeOps maps each settable mode to its opcode and parameter byte.
var focusModeOps = map[FocusMode][2]byte{
	FocusAuto:       {opFocusMode, 0x02},
	FocusManual:     {opFocusMode, 0x03},
	FocusAutoManual: {opFocusMode, 0x10},
	FocusOnePush:    {opFocusOne, 0x01},
	FocusInfinity:   {opFocusOne, 0x02},
}

var focusModeNames = map[FocusMode]string{
	FocusAuto:       "auto",
	FocusManual:     "manual",
	FocusAutoManual: "auto/manual",
	FocusOnePush:    "one push trigger",
	FocusInfinity:   "infinity",
	FocusUnknown:    "unknown",
}

func (m FocusMode) String() string {
	if name, ok := focusModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("FocusMode(%d)", int(m))
}

// ParseFocusMode resolves a mode name as accepted on the wire-facing API
// ("auto", "manual", "auto/manual", "one push trigger", "infinity").
func ParseFocusMode(name string) (FocusMode, error) {
	for mode, n := range focusModeNames {
		if mode != FocusUnknown && n == name {
			return mode, nil
		}
	}
	return FocusUnknown, &ValidationError{Msg: fmt.Sprintf("invalid focus mode %q", name)}
}
