package sink

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/mhuth/fnkeyd/keymap"
)

// uinput ioctls and event constants (linux/uinput.h, linux/input.h).
const (
	uiSetEvBit   = 0x40045564
	uiSetKeyBit  = 0x40045565
	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502

	evSyn     = 0x00
	evKey     = 0x01
	synReport = 0

	busHost = 0x19

	uinputMaxNameSize = 80
	absCount          = 64
)

type inputID struct {
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

// uinputUserDev is the legacy uinput_user_dev setup record written to
// /dev/uinput before UI_DEV_CREATE.
type uinputUserDev struct {
	Name         [uinputMaxNameSize]byte
	ID           inputID
	FFEffectsMax uint32
	AbsMax       [absCount]int32
	AbsMin       [absCount]int32
	AbsFuzz      [absCount]int32
	AbsFlat      [absCount]int32
}

type inputEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// UinputRegistry registers virtual input devices with the kernel via
// /dev/uinput.
type UinputRegistry struct {
	// Path of the uinput device node; defaults to /dev/uinput.
	Path string
}

// NewUinputRegistry returns a registry backed by the default uinput node.
func NewUinputRegistry() *UinputRegistry {
	return &UinputRegistry{Path: "/dev/uinput"}
}

// Register creates a virtual key-only input device announcing exactly the
// given capability set. On any failure after the device node is opened, the
// node is closed before returning so no resource leaks.
func (r *UinputRegistry) Register(name string, capabilities []keymap.Key) (Sink, error) {
	f, err := os.OpenFile(r.Path, os.O_WRONLY|unix.O_NONBLOCK, 0o660)
	if err != nil {
		return nil, &AllocationError{Err: err}
	}

	if err := r.setup(f, name, capabilities); err != nil {
		_ = f.Close()
		return nil, &RegistrationError{Err: err}
	}

	return &uinputSink{file: f}, nil
}

func (r *UinputRegistry) setup(f *os.File, name string, capabilities []keymap.Key) error {
	fd := int(f.Fd())

	if err := unix.IoctlSetInt(fd, uiSetEvBit, evKey); err != nil {
		return fmt.Errorf("enable EV_KEY: %w", err)
	}
	for _, k := range capabilities {
		if err := unix.IoctlSetInt(fd, uiSetKeyBit, int(k)); err != nil {
			return fmt.Errorf("declare key 0x%x: %w", uint16(k), err)
		}
	}

	var dev uinputUserDev
	copy(dev.Name[:uinputMaxNameSize-1], name)
	dev.ID = inputID{Bustype: busHost, Vendor: 0x17ef, Product: 0x0001, Version: 1}

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, &dev); err != nil {
		return fmt.Errorf("encode device setup: %w", err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write device setup: %w", err)
	}

	if err := unix.IoctlSetInt(fd, uiDevCreate, 0); err != nil {
		return fmt.Errorf("create device: %w", err)
	}
	return nil
}

// uinputSink emits key events through a created uinput device.
type uinputSink struct {
	file *os.File
}

func (s *uinputSink) Emit(key keymap.Key, pressed bool) error {
	if s.file == nil {
		return ErrClosed
	}
	value := int32(0)
	if pressed {
		value = 1
	}
	if err := s.writeEvent(evKey, uint16(key), value); err != nil {
		return err
	}
	// Each key event is its own frame.
	return s.writeEvent(evSyn, synReport, 0)
}

func (s *uinputSink) writeEvent(typ, code uint16, value int32) error {
	ev := inputEvent{Type: typ, Code: code, Value: value}
	return binary.Write(s.file, binary.LittleEndian, &ev)
}

func (s *uinputSink) Close() error {
	if s.file == nil {
		return ErrClosed
	}
	_ = unix.IoctlSetInt(int(s.file.Fd()), uiDevDestroy, 0)
	err := s.file.Close()
	s.file = nil
	return err
}
