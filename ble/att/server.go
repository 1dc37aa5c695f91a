package att

import (
	"io"
	"sort"
	"sync"

	"github.com/pkg/errors"

	logxi "github.com/mgutz/logxi/v1"
)

// Server is an attribute server that holds groups in handle order.
type Server struct {
	lock   sync.Mutex
	log    logxi.Logger
	groups []*Group
}

// NewServer creates an empty server. A nil logger discards output.
func NewServer(log logxi.Logger) *Server {
	if log == nil {
		log = logxi.NewLogger(io.Discard, "att")
	}

	return &Server{log: log}
}

// AddGroup adds g. Handles are assigned to the attributes in order starting
// at g.StartHandle. A group that overlaps one already added is rejected.
func (s *Server) AddGroup(g *Group) error {
	if len(g.Attrs) == 0 {
		return errors.New("adding empty group")
	}

	g.EndHandle = g.StartHandle + uint16(len(g.Attrs)) - 1
	if g.EndHandle < g.StartHandle {
		return errors.Errorf("group at 0x%04x overflows the handle space",
			g.StartHandle)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	for _, other := range s.groups {
		if g.StartHandle <= other.EndHandle && other.StartHandle <= g.EndHandle {
			return errors.Errorf("group 0x%04x-0x%04x overlaps 0x%04x-0x%04x",
				g.StartHandle, g.EndHandle, other.StartHandle, other.EndHandle)
		}
	}

	for i, a := range g.Attrs {
		a.Handle = g.StartHandle + uint16(i)
	}

	s.groups = append(s.groups, g)
	sort.Slice(s.groups, func(i, j int) bool {
		return s.groups[i].StartHandle < s.groups[j].StartHandle
	})

	s.log.Debug("group added", "start", g.StartHandle, "end", g.EndHandle)

	return nil
}

// RemoveGroup removes the group that starts at startHandle. It reports
// whether a group was removed.
func (s *Server) RemoveGroup(startHandle uint16) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	for i, g := range s.groups {
		if g.StartHandle == startHandle {
			s.groups = append(s.groups[:i], s.groups[i+1:]...)
			s.log.Debug("group removed", "start", startHandle)

			return true
		}
	}

	return false
}

// Group returns the group that starts at startHandle. Once added, the
// group belongs to the server; change it through SetValue and SetCallbacks.
func (s *Server) Group(startHandle uint16) (*Group, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	for _, g := range s.groups {
		if g.StartHandle == startHandle {
			return g, true
		}
	}

	return nil, false
}

// Attrs returns a copy of all attributes in handle order.
func (s *Server) Attrs() []Attr {
	s.lock.Lock()
	defer s.lock.Unlock()

	var attrs []Attr
	for _, g := range s.groups {
		for _, a := range g.Attrs {
			attrs = append(attrs, snapshot(a))
		}
	}

	return attrs
}

func (s *Server) find(h uint16) (*Group, *Attr) {
	for _, g := range s.groups {
		if g.contains(h) {
			return g, g.attr(h)
		}
	}

	return nil, nil
}

func snapshot(a *Attr) Attr {
	cp := *a
	cp.Value = append([]byte(nil), a.Value...)

	return cp
}

// Value returns a copy of an attribute value. Permissions and callbacks do
// not apply; it is meant for the service that owns the attribute.
func (s *Server) Value(handle uint16) ([]byte, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	_, a := s.find(handle)
	if a == nil {
		return nil, ErrInvalidHandle
	}

	return append([]byte(nil), a.Value...), nil
}

// SetValue replaces an attribute value. Permissions and callbacks do not
// apply; it is meant for the service that owns the attribute.
func (s *Server) SetValue(handle uint16, value []byte) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	_, a := s.find(handle)
	if a == nil {
		return ErrInvalidHandle
	}

	if a.MaxLen > 0 && len(value) > a.MaxLen {
		return ErrInvalidAttrValueLength
	}

	a.Value = append(a.Value[:0], value...)

	return nil
}

// SetCallbacks replaces the callbacks of the group that starts at
// startHandle.
func (s *Server) SetCallbacks(
	startHandle uint16,
	read ReadHandler,
	write WriteHandler,
) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	for _, g := range s.groups {
		if g.StartHandle == startHandle {
			g.ReadCback = read
			g.WriteCback = write

			return nil
		}
	}

	return errors.Errorf("no group starts at 0x%04x", startHandle)
}

// Read returns the value of an attribute from offset on. A read callback
// sees a copy of the attribute; the value it leaves in the copy is stored.
func (s *Server) Read(handle uint16, offset int) ([]byte, error) {
	if offset < 0 {
		return nil, ErrInvalidOffset
	}

	s.lock.Lock()
	g, a := s.find(handle)

	if a == nil {
		s.lock.Unlock()
		return nil, ErrInvalidHandle
	}

	if a.Permissions&PermitRead == 0 {
		s.lock.Unlock()
		return nil, ErrReadNotPermitted
	}

	cback := g.ReadCback
	if a.Settings&SetReadCallback == 0 {
		cback = nil
	}

	cp := snapshot(a)
	s.lock.Unlock()

	if cback != nil {
		if err := cback(handle, offset, &cp); err != nil {
			return nil, err
		}
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if cback != nil {
		a.Value = cp.Value
	}

	if offset > len(a.Value) {
		return nil, ErrInvalidOffset
	}

	return append([]byte(nil), a.Value[offset:]...), nil
}

// Write stores value into an attribute at offset. A write callback sees a
// copy of the attribute and can refuse the write by returning an error.
func (s *Server) Write(handle uint16, offset int, value []byte) error {
	if offset < 0 {
		return ErrInvalidOffset
	}

	s.lock.Lock()
	g, a := s.find(handle)

	if a == nil {
		s.lock.Unlock()
		return ErrInvalidHandle
	}

	if err := checkWrite(a, offset, len(value)); err != nil {
		s.lock.Unlock()
		return err
	}

	cback := g.WriteCback
	if a.Settings&SetWriteCallback == 0 {
		cback = nil
	}

	cp := snapshot(a)
	s.lock.Unlock()

	if cback != nil {
		if err := cback(handle, offset, value, &cp); err != nil {
			return err
		}
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	end := offset + len(value)
	if end > len(a.Value) {
		a.Value = append(a.Value, make([]byte, end-len(a.Value))...)
	}

	copy(a.Value[offset:], value)

	if a.Settings&SetVariableLen != 0 {
		a.Value = a.Value[:end]
	}

	return nil
}

func checkWrite(a *Attr, offset, n int) error {
	if a.Permissions&PermitWrite == 0 {
		return ErrWriteNotPermitted
	}

	if offset > a.MaxLen {
		return ErrInvalidOffset
	}

	if offset+n > a.MaxLen {
		return ErrInvalidAttrValueLength
	}

	if a.Settings&SetVariableLen == 0 && offset == 0 && n != a.MaxLen {
		return ErrInvalidAttrValueLength
	}

	return nil
}
