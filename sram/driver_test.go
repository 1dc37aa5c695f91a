package sram_test

import (
	"github.com/pkg/errors"
	"github.com/sarchlab/sramcheck/exerciser"
	"github.com/sarchlab/sramcheck/sram"
	"github.com/sarchlab/sramcheck/timing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Driver", func() {
	var board *sram.Board

	BeforeEach(func() {
		chip := sram.MakeBuilder().WithCapacity(1 << 20).Build("SRAM")
		board = sram.NewBoard(chip, 60*timing.MHz)
	})

	It("should reset the chip on init", func() {
		Expect(board.Driver.Init()).To(Succeed())
		Expect(board.Chip.ResetCount).To(Equal(1))
	})

	It("should read the identity", func() {
		id, err := board.Driver.ReadIdentity()

		Expect(err).NotTo(HaveOccurred())
		Expect(id).To(Equal(exerciser.Identity{
			ManufacturerID: sram.ManufacturerID,
			KGD:            sram.KGDPass,
			Density:        sram.Density64Mb,
		}))
	})

	It("should reject a failed die", func() {
		chip := sram.MakeBuilder().
			WithIdentity(sram.ManufacturerID, sram.KGDFail, sram.Density64Mb, 0).
			Build("Bad")
		board = sram.NewBoard(chip, 60*timing.MHz)

		_, err := board.Driver.ReadIdentity()

		var idErr *sram.IdentityError
		Expect(errors.As(err, &idErr)).To(BeTrue())
		Expect(idErr.KGD).To(Equal(byte(sram.KGDFail)))
	})

	It("should split accesses that cross a page", func() {
		data := make([]byte, 3*sram.PageSize)
		exerciser.Ramp(data)

		Expect(board.Driver.WriteFast(sram.PageSize/2, data)).To(Succeed())
		Expect(board.Driver.Transactions).To(Equal(uint64(4)))
		Expect(board.Driver.Splits).To(Equal(uint64(1)))

		got := make([]byte, len(data))
		Expect(board.Driver.ReadSlow(sram.PageSize/2, got)).To(Succeed())
		Expect(got).To(Equal(data))
	})

	It("should not split accesses inside a page", func() {
		buf := make([]byte, 16)
		Expect(board.Driver.ReadFast(0, buf)).To(Succeed())
		Expect(board.Driver.Splits).To(Equal(uint64(0)))
	})

	DescribeTable("round trip between paths",
		func(write func(*sram.Driver) func(uint32, []byte) error,
			read func(*sram.Driver) func(uint32, []byte) error,
		) {
			want := make([]byte, 640)
			exerciser.Ramp(want)

			Expect(write(board.Driver)(1000, want)).To(Succeed())

			got := make([]byte, len(want))
			Expect(read(board.Driver)(1000, got)).To(Succeed())
			Expect(exerciser.Compare(want, got, nil)).To(Equal(0))
		},
		Entry("slow to slow",
			func(d *sram.Driver) func(uint32, []byte) error { return d.Write },
			func(d *sram.Driver) func(uint32, []byte) error { return d.ReadSlow }),
		Entry("slow to fast",
			func(d *sram.Driver) func(uint32, []byte) error { return d.Write },
			func(d *sram.Driver) func(uint32, []byte) error { return d.ReadFast }),
		Entry("fast to slow",
			func(d *sram.Driver) func(uint32, []byte) error { return d.WriteFast },
			func(d *sram.Driver) func(uint32, []byte) error { return d.ReadSlow }),
		Entry("fast to fast",
			func(d *sram.Driver) func(uint32, []byte) error { return d.WriteFast },
			func(d *sram.Driver) func(uint32, []byte) error { return d.ReadFast }),
	)

	It("should make the quad path faster than the single lane", func() {
		buf := make([]byte, 640)

		start := board.Clock.Now()
		Expect(board.Driver.ReadSlow(0, buf)).To(Succeed())
		slow := board.Clock.Now() - start

		start = board.Clock.Now()
		Expect(board.Driver.ReadFast(0, buf)).To(Succeed())
		fast := board.Clock.Now() - start

		Expect(fast).To(BeNumerically("<", slow))
	})
})
