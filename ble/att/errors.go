package att

import "fmt"

// ErrorCode is an ATT error response code.
type ErrorCode byte

// ATT error codes returned by the server.
const (
	ErrInvalidHandle            ErrorCode = 0x01
	ErrReadNotPermitted         ErrorCode = 0x02
	ErrWriteNotPermitted        ErrorCode = 0x03
	ErrInvalidOffset            ErrorCode = 0x07
	ErrAttributeNotFound        ErrorCode = 0x0A
	ErrInvalidAttrValueLength   ErrorCode = 0x0D
	ErrUnlikely                 ErrorCode = 0x0E
	ErrInsufficientResources    ErrorCode = 0x11
	ErrApplicationRangeFirst    ErrorCode = 0x80
	ErrCCCDImproperlyConfigured ErrorCode = 0xFD
)

var errorNames = map[ErrorCode]string{
	ErrInvalidHandle:            "invalid handle",
	ErrReadNotPermitted:         "read not permitted",
	ErrWriteNotPermitted:        "write not permitted",
	ErrInvalidOffset:            "invalid offset",
	ErrAttributeNotFound:        "attribute not found",
	ErrInvalidAttrValueLength:   "invalid attribute value length",
	ErrUnlikely:                 "unlikely error",
	ErrInsufficientResources:    "insufficient resources",
	ErrCCCDImproperlyConfigured: "CCCD improperly configured",
}

func (e ErrorCode) Error() string {
	if name, ok := errorNames[e]; ok {
		return name
	}

	if e >= ErrApplicationRangeFirst {
		return fmt.Sprintf("application error 0x%02x", byte(e))
	}

	return fmt.Sprintf("ATT error 0x%02x", byte(e))
}
