package exerciser

import "fmt"

// Identity is what a device reports about itself at startup.
type Identity struct {
	ManufacturerID uint8
	KGD            uint8
	Density        uint8
	ExtendedID     uint8
}

func (id Identity) String() string {
	return fmt.Sprintf("MFID 0x%02x KGD 0x%02x Density 0x%02x EID 0x%x",
		id.ManufacturerID, id.KGD, id.Density, id.ExtendedID)
}

// A Device is the driver of the memory under test. Every method blocks
// until the access has completed.
type Device interface {
	Init() error
	ReadIdentity() (Identity, error)

	// Write and ReadSlow use the single-lane path.
	Write(addr uint32, buf []byte) error
	ReadSlow(addr uint32, buf []byte) error

	// WriteFast and ReadFast use the quad-lane path.
	WriteFast(addr uint32, buf []byte) error
	ReadFast(addr uint32, buf []byte) error
}

// A Stopwatch measures elapsed microseconds between Start and Stop.
type Stopwatch interface {
	Start()
	Stop() uint64
}

// Logger is the line-oriented sink for progress and results. A logxi
// logger satisfies it.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{}) error
	Error(msg string, args ...interface{}) error
}

// A Recorder persists what a run observed.
type Recorder interface {
	RecordPass(runID string, pass PassResult)
	RecordMismatch(runID string, m Mismatch)
	RecordResult(result *Result)
}
