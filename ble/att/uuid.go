// Package att is an in-memory attribute server. Services add groups of
// attributes with consecutive handles; clients read and write them by
// handle.
package att

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// A UUID is a BLE UUID in little-endian byte order, the order it has on
// the air.
type UUID []byte

// Assigned numbers used by the attribute server.
var (
	PrimaryServiceUUID             = UUID16(0x2800)
	CharacteristicUUID             = UUID16(0x2803)
	ClientCharacteristicConfigUUID = UUID16(0x2902)
)

// UUID16 converts a 16-bit assigned number into a UUID.
func UUID16(i uint16) UUID {
	return UUID{byte(i), byte(i >> 8)}
}

// Parse parses a UUID written big-endian, with or without dashes.
func Parse(s string) (UUID, error) {
	b, err := hex.DecodeString(strings.ReplaceAll(s, "-", ""))
	if err != nil {
		return nil, errors.Wrapf(err, "parsing UUID %q", s)
	}

	if len(b) != 2 && len(b) != 16 {
		return nil, errors.Errorf("UUID %q has %d bytes", s, len(b))
	}

	return reverse(b), nil
}

// MustParse is Parse that panics on error.
func MustParse(s string) UUID {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return u
}

// Len returns the length of the UUID in bytes.
func (u UUID) Len() int {
	return len(u)
}

// Equal tells if two UUIDs are the same.
func (u UUID) Equal(v UUID) bool {
	return bytes.Equal(u, v)
}

// String prints the UUID big-endian, in the 8-4-4-4-12 form for 128-bit
// UUIDs.
func (u UUID) String() string {
	s := hex.EncodeToString(reverse(u))
	if len(u) != 16 {
		return s
	}

	return fmt.Sprintf("%s-%s-%s-%s-%s", s[:8], s[8:12], s[12:16], s[16:20], s[20:])
}

func reverse(u []byte) UUID {
	l := len(u)
	b := make([]byte, l)

	for i := range u {
		b[l-i-1] = u[i]
	}

	return b
}
