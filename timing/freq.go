package timing

import (
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// VTimeInSec is the virtual time, in seconds, of the simulated hardware.
type VTimeInSec float64

// Microseconds converts the time to whole microseconds, rounding to nearest.
func (t VTimeInSec) Microseconds() uint64 {
	if t <= 0 {
		return 0
	}

	return uint64(math.Round(float64(t) * 1e6))
}

// Freq defines the type of frequency
type Freq float64

// Defines the unit of frequency
const (
	Hz  Freq = 1
	KHz Freq = 1e3
	MHz Freq = 1e6
	GHz Freq = 1e9
)

// Period returns the time between two consecutive ticks
func (f Freq) Period() VTimeInSec {
	if f == 0 {
		log.Panic("frequency cannot be 0")
	}

	return VTimeInSec(1.0 / f)
}

// Cycle converts a time to the number of cycles passed since time 0.
func (f Freq) Cycle(time VTimeInSec) uint64 {
	return uint64(math.Round(float64(time) * float64(f)))
}

// NCycles returns the duration of n cycles.
func (f Freq) NCycles(n uint64) VTimeInSec {
	return VTimeInSec(float64(n)) * f.Period()
}

// String prints the frequency with the largest unit that keeps the value at
// or above one.
func (f Freq) String() string {
	switch {
	case f >= GHz:
		return strconv.FormatFloat(float64(f/GHz), 'f', -1, 64) + "GHz"
	case f >= MHz:
		return strconv.FormatFloat(float64(f/MHz), 'f', -1, 64) + "MHz"
	case f >= KHz:
		return strconv.FormatFloat(float64(f/KHz), 'f', -1, 64) + "KHz"
	default:
		return strconv.FormatFloat(float64(f), 'f', -1, 64) + "Hz"
	}
}

// ParseFreq parses strings like "60MHz", "1.5 GHz" or "400000".
func ParseFreq(s string) (Freq, error) {
	str := strings.TrimSpace(s)
	lower := strings.ToLower(str)

	unit := Hz
	for _, u := range []struct {
		suffix string
		unit   Freq
	}{
		{"ghz", GHz},
		{"mhz", MHz},
		{"khz", KHz},
		{"hz", Hz},
	} {
		if strings.HasSuffix(lower, u.suffix) {
			unit = u.unit
			str = strings.TrimSpace(str[:len(str)-len(u.suffix)])

			break
		}
	}

	value, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid frequency %q", s)
	}

	if value <= 0 {
		return 0, errors.Errorf("invalid frequency %q: must be positive", s)
	}

	return Freq(value) * unit, nil
}
