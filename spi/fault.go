package spi

// BitFlipHook corrupts one bit of the data a target returns. It models a
// transient fault on the data lines: the stored content is untouched, only
// the bytes the host receives are wrong.
type BitFlipHook struct {
	// Cmd selects the read command to corrupt.
	Cmd byte

	// Addr is the device address of the corrupted byte. Only transfers whose
	// data phase covers Addr are considered.
	Addr uint32

	// Bit is the bit index, 0 to 7.
	Bit uint8

	// Skip is the number of matching transfers to let through untouched.
	Skip int

	// Count is the number of flips to inject. Zero means one.
	Count int

	seen    int
	flipped int
}

// Flipped returns the number of bits flipped so far.
func (h *BitFlipHook) Flipped() int {
	return h.flipped
}

// Func flips the bit when a matching transfer completes.
func (h *BitFlipHook) Func(ctx HookCtx) {
	if ctx.Pos != HookPosAfterTransfer {
		return
	}

	t, ok := ctx.Item.(*Transaction)
	if !ok || t.Cmd != h.Cmd || !t.HasAddr {
		return
	}

	if h.Addr < t.Addr || uint64(h.Addr) >= uint64(t.Addr)+uint64(len(t.Rx)) {
		return
	}

	h.seen++
	if h.seen <= h.Skip {
		return
	}

	limit := h.Count
	if limit == 0 {
		limit = 1
	}

	if h.flipped >= limit {
		return
	}

	t.Rx[h.Addr-t.Addr] ^= 1 << (h.Bit & 7)
	h.flipped++
}
