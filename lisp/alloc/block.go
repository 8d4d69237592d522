package alloc

import (
	"fmt"
	"os"

	"github.com/lispkit/lispkit/internal/bitvec"
	"github.com/lispkit/lispkit/lisp"
)

const (
	// ConsBlockSize is the number of cell slots per block.
	ConsBlockSize = 100

	// ConsBytes is the storage size of one cell: two 8-byte value
	// words. Cons charges this amount against the consing counter.
	ConsBytes = 16

	// BlockBytes is the cell storage added to the heap per block.
	BlockBytes = ConsBlockSize * ConsBytes
)

// refNone terminates the free list.
const refNone = ^lisp.Ref(0)

// slotState distinguishes the two storage states of a cell slot.
type slotState uint8

const (
	slotFree slotState = iota
	slotLive
)

// consSlot is one cell of storage. A live slot carries the cell's two
// fields; a free slot's storage is reused to hold the free-list link.
// The state tag makes it impossible to read a reclaimed slot as live
// data.
type consSlot struct {
	state slotState
	car   lisp.Value
	cdr   lisp.Value
	next  lisp.Ref // free-list link, meaningful only when state == slotFree
}

// consBlock is the unit of bulk allocation: a fixed array of cell
// slots, a GC mark bitmap and a purity bitmap with one bit per slot,
// and a link to the previously allocated block. The chain is newest
// first. Slot i of conses corresponds to bit i of both bitmaps.
type consBlock struct {
	conses     [ConsBlockSize]consSlot
	gcMarkBits bitvec.Vector
	pureBits   bitvec.Vector
	prev       *consBlock
	base       lisp.Ref // ref of conses[0]
}

// memRange records the purpose of one bulk allocation for the
// conservative scanner: the half-open ref interval [start, end) and
// its registered kind.
type memRange struct {
	start lisp.Ref
	end   lisp.Ref
	kind  lisp.MemKind
}

// growBlock allocates a new cons block, registers it under KindCons,
// links it as the head of the chain, and seeds every slot onto the
// free list. Fails with ErrOutOfMemory when the configured heap limit
// would be exceeded; no retry happens here.
func (h *Heap) growBlock() error {
	if h.heapBytes+BlockBytes > h.cfg.MaxHeapBytes {
		return fmt.Errorf("%w: %d + %d bytes exceeds limit %d",
			ErrOutOfMemory, h.heapBytes, BlockBytes, h.cfg.MaxHeapBytes)
	}

	base := lisp.Ref(len(h.blocks)) * ConsBlockSize
	b := &consBlock{
		gcMarkBits: bitvec.New(ConsBlockSize),
		pureBits:   bitvec.New(ConsBlockSize),
		prev:       h.head,
		base:       base,
	}

	// Seed the free list with every slot, highest first, so the list
	// head ends up at conses[0] and cells are handed out in slot order.
	for i := ConsBlockSize - 1; i >= 0; i-- {
		s := &b.conses[i]
		s.state = slotFree
		s.next = h.freeHead
		h.freeHead = base + lisp.Ref(i)
	}
	h.totalFreeConses += ConsBlockSize

	h.head = b
	h.blocks = append(h.blocks, b)
	h.registerRange(base, base+ConsBlockSize, lisp.KindCons)

	h.heapBytes += BlockBytes
	h.stats.GrowCalls++

	if logHeap {
		fmt.Fprintf(os.Stderr, "[HEAP] grow #%d: block base=%#x, %d slots, heap=%d bytes, free=%d\n",
			h.stats.GrowCalls, uint32(base), ConsBlockSize, h.heapBytes, h.totalFreeConses)
	}

	return nil
}

// registerRange records a bulk allocation's purpose for FindKind.
// Blocks are allocated at strictly increasing bases, so the index
// stays sorted by construction.
func (h *Heap) registerRange(start, end lisp.Ref, kind lisp.MemKind) {
	h.mem = append(h.mem, memRange{start: start, end: end, kind: kind})
}

// FindKind reports the registered purpose of the bulk allocation
// containing ref, via binary search over the range index. The second
// result is false when ref lies in no registered allocation.
func (h *Heap) FindKind(ref lisp.Ref) (lisp.MemKind, bool) {
	lo, hi := 0, len(h.mem)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		r := h.mem[mid]
		switch {
		case ref < r.start:
			hi = mid - 1
		case ref >= r.end:
			lo = mid + 1
		default:
			return r.kind, true
		}
	}
	return lisp.KindNonLisp, false
}

// slotAt resolves a ref to its owning block and slot index.
func (h *Heap) slotAt(ref lisp.Ref) (*consBlock, int, error) {
	if ref == refNone {
		return nil, 0, ErrBadRef
	}
	bi := int(ref) / ConsBlockSize
	if bi >= len(h.blocks) {
		return nil, 0, fmt.Errorf("%w: %#x", ErrBadRef, uint32(ref))
	}
	return h.blocks[bi], int(ref) % ConsBlockSize, nil
}

// mustSlot resolves a ref known to be valid, such as one just popped
// from the free list.
func (h *Heap) mustSlot(ref lisp.Ref) (*consBlock, int) {
	b, i, err := h.slotAt(ref)
	if err != nil {
		panic(err)
	}
	return b, i
}
