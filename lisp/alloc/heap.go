package alloc

import (
	"fmt"
	"os"

	"github.com/lispkit/lispkit/lisp"
)

// Debug flag - set to true to enable verbose logging (compile-time toggle).
const debugHeap = false

// Runtime flag for heap growth logging - controlled by LISP_LOG_HEAP env var.
var logHeap = os.Getenv("LISP_LOG_HEAP") != ""

const (
	// DefaultMaxHeapBytes caps cons storage at 1GB unless configured.
	DefaultMaxHeapBytes = 1 << 30

	// DefaultGCThreshold is the number of bytes consed between
	// collections before the OnGC hook fires.
	DefaultGCThreshold = 800_000
)

// Config controls heap limits and collection scheduling.
type Config struct {
	// MaxHeapBytes caps total cons block storage. Cons fails with
	// ErrOutOfMemory rather than grow past it. 0 selects
	// DefaultMaxHeapBytes.
	MaxHeapBytes int64

	// GCThreshold is the bytes-consed-since-collection level at which
	// Cons fires OnGC. 0 selects DefaultGCThreshold.
	GCThreshold int64

	// OnGC, when non-nil, is invoked synchronously by Cons once the
	// threshold is crossed, after the allocation completes and the
	// input guard is released. The hook is expected to run a
	// stop-the-world collection and call ResetConsing; nothing else
	// proceeds while it runs.
	OnGC func(*Heap)
}

// Heap owns the cons block chain, the free list, and the accounting
// the collection scheduler reads. It is the allocator context passed
// wherever cons primitives execute; there is no package-global state.
//
// A Heap is single-threaded and not reentrant-safe.
type Heap struct {
	head   *consBlock   // newest block; chain runs through prev
	blocks []*consBlock // flat index: blocks[ref/ConsBlockSize]

	freeHead lisp.Ref // head of the reclaimed-cell chain, refNone when empty

	// Accounting read by external collection-scheduling policy.
	consingSinceGC  int64 // bytes consed since the collector last reset
	totalFreeConses int64 // cells currently on the free list
	consCellsConsed int64 // lifetime cells allocated

	heapBytes int64 // cell storage across all blocks

	mem []memRange // kind-tagged bulk allocations, sorted by start

	cfg          Config
	stats        HeapStats
	inputBlocked bool
}

// HeapStats is a snapshot of allocator counters for instrumentation.
type HeapStats struct {
	ConsCalls    int64 // total Cons calls
	ConsFastPath int64 // allocations served from the free list
	ConsSlowPath int64 // allocations that required a new block
	GrowCalls    int64 // blocks allocated
	ReclaimCalls int64 // cells returned by the collector

	Blocks         int   // blocks in the chain
	HeapBytes      int64 // cell storage across all blocks
	FreeConses     int64 // cells currently free
	CellsConsed    int64 // lifetime cells allocated
	ConsingSinceGC int64 // bytes consed since last collection
}

// New returns an empty heap. A nil config selects the defaults; zero
// fields of a non-nil config do too.
func New(cfg *Config) *Heap {
	c := Config{}
	if cfg != nil {
		c = *cfg
	}
	if c.MaxHeapBytes == 0 {
		c.MaxHeapBytes = DefaultMaxHeapBytes
	}
	if c.GCThreshold == 0 {
		c.GCThreshold = DefaultGCThreshold
	}
	return &Heap{
		freeHead: refNone,
		cfg:      c,
	}
}

// Cons allocates a cell, initializes it with car and cdr, and returns
// a cons value referencing it. The free list is preferred; when it is
// empty a new block is allocated and seeded first. The only failure is
// ErrOutOfMemory from block allocation, which is surfaced, not
// retried.
func (h *Heap) Cons(car, cdr lisp.Value) (lisp.Value, error) {
	release := h.blockInput()

	h.stats.ConsCalls++

	ref, ok := h.popFree()
	if !ok {
		if err := h.growBlock(); err != nil {
			release()
			return lisp.Nil, err
		}
		h.stats.ConsSlowPath++
		ref, _ = h.popFree()
	} else {
		h.stats.ConsFastPath++
	}

	b, i := h.mustSlot(ref)
	s := &b.conses[i]
	s.state = slotLive
	s.car = car
	s.cdr = cdr
	s.next = refNone

	h.consingSinceGC += ConsBytes
	h.consCellsConsed++
	h.totalFreeConses--

	release()

	if h.cfg.OnGC != nil && h.consingSinceGC > h.cfg.GCThreshold {
		h.cfg.OnGC(h)
	}

	return lisp.MakeRef(ref, lisp.TypeCons), nil
}

// blockInput suspends asynchronous input handling for the duration of
// an allocation. The returned func releases the guard and must be
// called on every exit path. Nested acquisition means a handler
// re-entered the allocator mid-mutation; that is a caller bug and
// panics.
func (h *Heap) blockInput() func() {
	if h.inputBlocked {
		panic("alloc: reentrant heap operation")
	}
	h.inputBlocked = true
	return func() { h.inputBlocked = false }
}

// debugLogf prints debug messages if debugHeap is enabled.
func debugLogf(format string, args ...any) {
	if debugHeap {
		fmt.Fprintf(os.Stderr, "[HEAP] "+format+"\n", args...)
	}
}

// ConsingSinceGC returns the bytes consed since the collector last
// called ResetConsing.
func (h *Heap) ConsingSinceGC() int64 { return h.consingSinceGC }

// FreeConses returns the number of cells currently on the free list.
func (h *Heap) FreeConses() int64 { return h.totalFreeConses }

// CellsConsed returns the lifetime count of cells allocated.
func (h *Heap) CellsConsed() int64 { return h.consCellsConsed }

// ResetConsing zeroes the since-collection counter. Called by the
// collector at the end of a cycle.
func (h *Heap) ResetConsing() { h.consingSinceGC = 0 }

// Stats returns a snapshot of the allocator counters.
func (h *Heap) Stats() HeapStats {
	s := h.stats
	s.Blocks = len(h.blocks)
	s.HeapBytes = h.heapBytes
	s.FreeConses = h.totalFreeConses
	s.CellsConsed = h.consCellsConsed
	s.ConsingSinceGC = h.consingSinceGC
	return s
}
