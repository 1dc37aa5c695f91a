package sram

import (
	"log"

	"github.com/sarchlab/sramcheck/storage"
)

// Builder can build Chips.
type Builder struct {
	capacity uint64
	pageSize uint32
	storage  *storage.Storage
	mfid     byte
	kgd      byte
	density  byte
	eid      uint64
}

// MakeBuilder returns a Builder for a good APS6404 part.
func MakeBuilder() Builder {
	return Builder{
		capacity: Capacity,
		pageSize: PageSize,
		mfid:     ManufacturerID,
		kgd:      KGDPass,
		density:  Density64Mb,
	}
}

// WithCapacity sets the number of bytes of the chip.
func (b Builder) WithCapacity(capacity uint64) Builder {
	b.capacity = capacity
	return b
}

// WithPageSize sets the wrap boundary of bursts.
func (b Builder) WithPageSize(pageSize uint32) Builder {
	b.pageSize = pageSize
	return b
}

// WithStorage makes the chip use an existing storage.
func (b Builder) WithStorage(s *storage.Storage) Builder {
	b.storage = s
	return b
}

// WithIdentity sets what the chip returns for Read ID.
func (b Builder) WithIdentity(mfid, kgd, density byte, eid uint64) Builder {
	b.mfid = mfid
	b.kgd = kgd
	b.density = density
	b.eid = eid

	return b
}

// Build creates a new Chip.
func (b Builder) Build(name string) *Chip {
	if b.pageSize == 0 {
		log.Panic("page size cannot be 0")
	}

	s := b.storage
	if s == nil {
		s = storage.NewStorage(b.capacity)
	}

	return &Chip{
		name:     name,
		Storage:  s,
		PageSize: b.pageSize,
		MFID:     b.mfid,
		KGD:      b.kgd,
		Density:  b.density,
		EID:      b.eid,
		stuck:    make(map[uint32]stuckBit),
	}
}
