package alloc

import (
	"io"

	"github.com/lispkit/lispkit/lisp"
)

// The tracer iteration is how the external collector sees block
// memory: every slot reports its liveness and both fields explicitly,
// so no pointer-width heuristics are needed to scan a block.

// Blocks returns an iterator over the block chain, newest first.
func (h *Heap) Blocks() *BlockIter {
	return &BlockIter{cur: h.head}
}

// BlockIter walks the block chain. Next returns io.EOF at the end.
type BlockIter struct {
	cur *consBlock
}

func (it *BlockIter) Next() (Block, error) {
	if it.cur == nil {
		return Block{}, io.EOF
	}
	b := it.cur
	it.cur = b.prev
	return Block{b: b}, nil
}

// Block is the tracer-facing view of one cons block.
type Block struct {
	b *consBlock
}

// Base returns the ref of the block's first slot.
func (b Block) Base() lisp.Ref { return b.b.base }

// Len returns the slot capacity of the block.
func (b Block) Len() int { return ConsBlockSize }

// Slots returns an iterator over the block's slots in order.
func (b Block) Slots() *SlotIter {
	return &SlotIter{b: b.b}
}

// SlotInfo reports one slot to the tracer. Car and Cdr are nil unless
// the slot is live.
type SlotInfo struct {
	Ref    lisp.Ref
	Live   bool
	Marked bool
	Pure   bool
	Car    lisp.Value
	Cdr    lisp.Value
}

// SlotIter yields SlotInfo for each slot of a block. Next returns
// io.EOF after the last slot.
type SlotIter struct {
	b *consBlock
	i int
}

func (it *SlotIter) Next() (SlotInfo, error) {
	if it.i >= ConsBlockSize {
		return SlotInfo{}, io.EOF
	}
	i := it.i
	it.i++

	s := &it.b.conses[i]
	info := SlotInfo{
		Ref:    it.b.base + lisp.Ref(i),
		Live:   s.state == slotLive,
		Marked: it.b.gcMarkBits.Test(i),
		Pure:   it.b.pureBits.Test(i),
	}
	if info.Live {
		info.Car = s.car
		info.Cdr = s.cdr
	}
	return info, nil
}
