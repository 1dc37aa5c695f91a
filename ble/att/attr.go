package att

// Permissions of an attribute.
const (
	PermitRead  = 0x01
	PermitWrite = 0x02
)

// Settings that route an access to the group callbacks.
const (
	SetReadCallback  = 0x01
	SetWriteCallback = 0x02
	SetVariableLen   = 0x04
)

// Characteristic properties carried in a characteristic declaration.
const (
	CharRead        = 0x02
	CharWriteNoResp = 0x04
	CharWrite       = 0x08
	CharNotify      = 0x10
	CharIndicate    = 0x20
)

// An Attr is one attribute of a group. The server assigns Handle when the
// group is added.
type Attr struct {
	Handle      uint16
	Type        UUID
	Value       []byte
	MaxLen      int
	Settings    uint8
	Permissions uint8
}

// ReadHandler serves reads of attributes with SetReadCallback. a is a copy
// of the attribute; the value left in it is stored and returned.
type ReadHandler func(handle uint16, offset int, a *Attr) error

// WriteHandler serves writes of attributes with SetWriteCallback. a is a
// copy of the attribute. The server stores value only if the handler
// returns nil.
type WriteHandler func(handle uint16, offset int, value []byte, a *Attr) error

// A Group is a run of attributes with consecutive handles starting at
// StartHandle.
type Group struct {
	Attrs       []*Attr
	StartHandle uint16
	EndHandle   uint16
	ReadCback   ReadHandler
	WriteCback  WriteHandler
}

func (g *Group) contains(h uint16) bool {
	return h >= g.StartHandle && h <= g.EndHandle
}

func (g *Group) attr(h uint16) *Attr {
	return g.Attrs[h-g.StartHandle]
}
