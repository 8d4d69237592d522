package alloc

import (
	"fmt"

	"github.com/lispkit/lispkit/lisp"
)

// popFree detaches and returns the head of the free list. The second
// result is false when the list is exhausted and the caller must grow
// the block chain instead.
func (h *Heap) popFree() (lisp.Ref, bool) {
	if h.freeHead == refNone {
		return 0, false
	}
	ref := h.freeHead
	b, i := h.mustSlot(ref)
	h.freeHead = b.conses[i].next
	return ref, true
}

// Reclaim pushes a dead cell onto the free list, reusing its storage
// for the link. Only the collector's reclaim phase may call this, and
// only for cells whose mark bit is clear and which nothing else
// references; a marked cell is refused to keep a live cell from being
// aliased with a free one.
func (h *Heap) Reclaim(ref lisp.Ref) error {
	b, i, err := h.slotAt(ref)
	if err != nil {
		return err
	}
	s := &b.conses[i]
	if s.state != slotLive {
		debugLogf("Reclaim(%#x): already on free list", uint32(ref))
		return fmt.Errorf("%w: %#x already reclaimed", ErrNotLive, uint32(ref))
	}
	if b.gcMarkBits.Test(i) {
		debugLogf("Reclaim(%#x): mark bit still set", uint32(ref))
		return fmt.Errorf("%w: %#x", ErrMarkedCell, uint32(ref))
	}

	s.state = slotFree
	s.car = lisp.Nil
	s.cdr = lisp.Nil
	s.next = h.freeHead
	h.freeHead = ref

	h.totalFreeConses++
	h.stats.ReclaimCalls++
	return nil
}
