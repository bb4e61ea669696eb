package keymap

import "fmt"

// Key is a Linux input event key code (input-event-codes.h). Only the codes
// produced by the supported hotkey tables are named here.
type Key uint16

const (
	KeyHelp                Key = 0x8a
	KeyProg1               Key = 0x94
	KeyProg2               Key = 0x95
	KeyF14                 Key = 0xb8
	KeyProg3               Key = 0xca
	KeyProg4               Key = 0xcb
	KeyFavorites           Key = 0x16c
	KeySelectiveScreenshot Key = 0x27a
	KeyPickupPhone         Key = 0x289
	KeyHangupPhone         Key = 0x28a
	KeyMacro1              Key = 0x290
)

var keyNames = map[Key]string{
	KeyHelp:                "HELP",
	KeyProg1:               "PROG1",
	KeyProg2:               "PROG2",
	KeyF14:                 "F14",
	KeyProg3:               "PROG3",
	KeyProg4:               "PROG4",
	KeyFavorites:           "FAVORITES",
	KeySelectiveScreenshot: "SELECTIVE_SCREENSHOT",
	KeyPickupPhone:         "PICKUP_PHONE",
	KeyHangupPhone:         "HANGUP_PHONE",
	KeyMacro1:              "MACRO1",
}

// String returns the kernel-style name for known keys, or a hex literal.
func (k Key) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	return fmt.Sprintf("0x%x", uint16(k))
}
