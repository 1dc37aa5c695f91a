package sram

import (
	"fmt"

	"github.com/pkg/errors"
)

// Errors returned by the chip model.
var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrLaneMismatch   = errors.New("lane count does not match command")
	ErrMissingAddress = errors.New("command requires an address")
	ErrShortID        = errors.New("identity read returned too few bytes")
)

// IdentityError indicates that the device did not identify as the expected
// part.
type IdentityError struct {
	ExpectedMFID byte
	ExpectedKGD  byte
	MFID         byte
	KGD          byte
}

func (e *IdentityError) Error() string {
	return fmt.Sprintf(
		"unexpected SRAM ID: MFID 0x%02x KGD 0x%02x, expected MFID 0x%02x KGD 0x%02x",
		e.MFID, e.KGD, e.ExpectedMFID, e.ExpectedKGD)
}
