package timing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("VirtualStopwatch", func() {
	var (
		clock *Clock
		sw    *VirtualStopwatch
	)

	BeforeEach(func() {
		clock = NewClock()
		sw = NewVirtualStopwatch(clock, 3e-6)
	})

	It("should report only the overhead for an empty interval", func() {
		sw.Start()
		Expect(sw.Stop()).To(Equal(uint64(3)))
	})

	It("should include the time charged to the clock", func() {
		sw.Start()
		clock.Advance(100e-6)
		Expect(sw.Stop()).To(Equal(uint64(103)))
	})

	It("should return 0 when stopped without start", func() {
		Expect(sw.Stop()).To(Equal(uint64(0)))
	})

	It("should not let the clock run backwards", func() {
		Expect(func() { clock.Advance(-1) }).To(Panic())
	})
})

var _ = Describe("WallStopwatch", func() {
	It("should return 0 when stopped without start", func() {
		sw := NewWallStopwatch()
		Expect(sw.Stop()).To(Equal(uint64(0)))
	})

	It("should measure a non-negative interval", func() {
		sw := NewWallStopwatch()
		sw.Start()
		Expect(sw.Stop()).To(BeNumerically(">=", 0))
	})
})
