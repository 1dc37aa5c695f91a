// Package mcs is the Maxim custom GATT service: a button that notifies its
// state and the R, G and B channels of an LED.
package mcs

import (
	"sync"

	"github.com/sarchlab/sramcheck/ble/att"
)

// UUIDs of the service and its characteristics, little-endian.
var (
	ServiceUUID = att.UUID{0xBE, 0xC5, 0xD1, 0x24, 0x99, 0x33, 0xC6, 0x87,
		0x85, 0x41, 0xD9, 0x31, 0x7D, 0x56, 0xFC, 0x85}
	ButtonUUID = att.UUID{0xBE, 0xC5, 0xD1, 0x24, 0x99, 0x33, 0xC6, 0x87,
		0x85, 0x41, 0xD9, 0x31, 0x7E, 0x56, 0xFC, 0x85}
	RUUID = att.UUID{0xBE, 0xC5, 0xD1, 0x24, 0x99, 0x33, 0xC6, 0x87,
		0x85, 0x41, 0xD9, 0x31, 0x7F, 0x56, 0xFC, 0x85}
	GUUID = att.UUID{0xBE, 0xC5, 0xD1, 0x24, 0x99, 0x33, 0xC6, 0x87,
		0x85, 0x41, 0xD9, 0x31, 0x80, 0x56, 0xFC, 0x85}
	BUUID = att.UUID{0xBE, 0xC5, 0xD1, 0x24, 0x99, 0x33, 0xC6, 0x87,
		0x85, 0x41, 0xD9, 0x31, 0x81, 0x56, 0xFC, 0x85}
)

// StartHandle is the first handle of the service.
const StartHandle = 0x1500

// Handles of the service.
const (
	SvcHandle       = StartHandle + iota // service declaration
	ButtonChHandle                       // button characteristic
	ButtonHandle                         // button
	ButtonCCCHandle                      // button CCCD
	RChHandle                            // R characteristic
	RHandle                              // R
	GChHandle                            // G characteristic
	GHandle                              // G
	BChHandle                            // B characteristic
	BHandle                              // B
	MaxHandle
)

// EndHandle is the last handle of the service.
const EndHandle = MaxHandle - 1

// cccNotify is the notification bit of a client characteristic
// configuration.
const cccNotify = 0x0001

// Service holds the attributes of one instance of the service. Once the
// group is added to a server, every access goes through that server.
type Service struct {
	lock   sync.Mutex
	group  *att.Group
	server *att.Server
}

// New creates the service with the button released and the LED off.
func New() *Service {
	return &Service{group: newGroup()}
}

func newGroup() *att.Group {
	return &att.Group{
		StartHandle: StartHandle,
		Attrs: []*att.Attr{
			{
				Type:        att.PrimaryServiceUUID,
				Value:       append([]byte(nil), ServiceUUID...),
				MaxLen:      len(ServiceUUID),
				Permissions: att.PermitRead,
			},
			declaration(att.CharRead|att.CharNotify, ButtonHandle, ButtonUUID),
			{
				Type:        ButtonUUID,
				Value:       []byte{0},
				MaxLen:      1,
				Settings:    att.SetReadCallback,
				Permissions: att.PermitRead,
			},
			{
				Type:        att.ClientCharacteristicConfigUUID,
				Value:       []byte{0, 0},
				MaxLen:      2,
				Permissions: att.PermitRead | att.PermitWrite,
			},
			declaration(att.CharRead|att.CharWrite, RHandle, RUUID),
			color(RUUID),
			declaration(att.CharRead|att.CharWrite, GHandle, GUUID),
			color(GUUID),
			declaration(att.CharRead|att.CharWrite, BHandle, BUUID),
			color(BUUID),
		},
	}
}

func declaration(props byte, valueHandle uint16, uuid att.UUID) *att.Attr {
	v := append([]byte{props, byte(valueHandle), byte(valueHandle >> 8)}, uuid...)

	return &att.Attr{
		Type:        att.CharacteristicUUID,
		Value:       v,
		MaxLen:      len(v),
		Permissions: att.PermitRead,
	}
}

func color(uuid att.UUID) *att.Attr {
	return &att.Attr{
		Type:        uuid,
		Value:       []byte{0},
		MaxLen:      1,
		Settings:    att.SetReadCallback | att.SetWriteCallback,
		Permissions: att.PermitRead | att.PermitWrite,
	}
}

// AddGroup adds the service to the attribute server.
func (s *Service) AddGroup(server *att.Server) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := server.AddGroup(s.group); err != nil {
		return err
	}

	s.server = server

	return nil
}

// RemoveGroup removes the service from the attribute server.
func (s *Service) RemoveGroup(server *att.Server) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	removed := server.RemoveGroup(StartHandle)
	if removed && server == s.server {
		s.server = nil
	}

	return removed
}

// RegisterCallbacks sets the callbacks for the button and the LED channels.
func (s *Service) RegisterCallbacks(read att.ReadHandler, write att.WriteHandler) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.server != nil {
		if err := s.server.SetCallbacks(StartHandle, read, write); err == nil {
			return
		}
	}

	s.group.ReadCback = read
	s.group.WriteCback = write
}

// SetButton updates the button state. It reports whether the client asked
// to be notified of it.
func (s *Service) SetButton(pressed bool) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	state := byte(0)
	if pressed {
		state = 1
	}

	s.setValue(ButtonHandle, []byte{state})

	ccc := s.value(ButtonCCCHandle)
	if len(ccc) < 2 {
		return false
	}

	return (uint16(ccc[0])|uint16(ccc[1])<<8)&cccNotify != 0
}

// Color returns the LED channels as last written.
func (s *Service) Color() (r, g, b byte) {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.channel(RHandle), s.channel(GHandle), s.channel(BHandle)
}

func (s *Service) channel(h uint16) byte {
	v := s.value(h)
	if len(v) == 0 {
		return 0
	}

	return v[0]
}

// value and setValue must be called with s.lock held.
func (s *Service) value(h uint16) []byte {
	if s.server != nil {
		if v, err := s.server.Value(h); err == nil {
			return v
		}
	}

	return append([]byte(nil), s.group.Attrs[h-StartHandle].Value...)
}

func (s *Service) setValue(h uint16, v []byte) {
	if s.server != nil {
		if err := s.server.SetValue(h, v); err == nil {
			return
		}
	}

	a := s.group.Attrs[h-StartHandle]
	a.Value = append(a.Value[:0], v...)
}

// HandleName names a handle of the service.
func HandleName(h uint16) string {
	names := [...]string{
		"service", "button characteristic", "button", "button CCCD",
		"R characteristic", "R", "G characteristic", "G",
		"B characteristic", "B",
	}

	if h < StartHandle || h > EndHandle {
		return ""
	}

	return names[h-StartHandle]
}
