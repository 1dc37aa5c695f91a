package sram_test

import (
	"github.com/sarchlab/sramcheck/exerciser"
	"github.com/sarchlab/sramcheck/spi"
	"github.com/sarchlab/sramcheck/sram"
	"github.com/sarchlab/sramcheck/timing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Board", func() {
	var (
		board *sram.Board
		cfg   exerciser.Config
	)

	BeforeEach(func() {
		board = sram.NewBoard(sram.MakeBuilder().Build("PSRAM"), 60*timing.MHz)
		cfg = exerciser.DefaultConfig()
	})

	It("should pass the default run on a healthy chip", func() {
		result, err := exerciser.New(board.Driver, board.Stopwatch, cfg).Run()

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Passed).To(BeTrue())
		Expect(result.Mismatches).To(Equal(0))
		Expect(result.Passes).To(HaveLen(9))
		Expect(board.Driver.Splits).To(BeNumerically(">", 0))
		Expect(board.Bus.Stats().FailedCount).To(Equal(uint64(0)))
	})

	It("should count one flipped bit in chunk 3 of the last pass", func() {
		chunk3 := uint32(3 * cfg.Size)
		flip := &spi.BitFlipHook{
			Cmd:  sram.CmdQuadRead,
			Addr: chunk3 + 100,
			Bit:  0,
		}
		board.Bus.AcceptHook(flip)

		var mismatches []exerciser.Mismatch
		result, err := exerciser.New(board.Driver, board.Stopwatch, cfg,
			exerciser.WithMismatchHandler(func(m exerciser.Mismatch) {
				mismatches = append(mismatches, m)
			})).Run()

		Expect(err).NotTo(HaveOccurred())
		Expect(flip.Flipped()).To(Equal(1))
		Expect(result.Passed).To(BeFalse())
		Expect(result.Mismatches).To(Equal(1))
		Expect(result.MismatchPercent()).To(
			BeNumerically("~", 1.0/(640*480)*100, 1e-12))

		Expect(mismatches).To(Equal([]exerciser.Mismatch{{
			Pass:     9,
			Chunk:    3,
			Offset:   100,
			Addr:     chunk3 + 100,
			Expected: 100,
			Actual:   101,
		}}))

		pass8, _ := result.Pass(8)
		Expect(pass8.Mismatches).To(Equal(0))
		pass9, _ := result.Pass(9)
		Expect(pass9.Mismatches).To(Equal(1))

		Expect(board.Driver.Splits).To(BeNumerically(">", 0))
	})
})
