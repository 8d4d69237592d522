package alloc

import "github.com/lispkit/lispkit/lisp"

// The mark bitmap is toggled by the external collector during its
// tracing pass; this package only provides the bit storage and keeps
// slot i of every block paired with bit i of its bitmap.

// IsMarked reports whether the collector has marked the cell. False
// for out-of-range refs.
func (h *Heap) IsMarked(ref lisp.Ref) bool {
	b, i, err := h.slotAt(ref)
	if err != nil {
		return false
	}
	return b.gcMarkBits.Test(i)
}

// SetMark sets the cell's mark bit.
func (h *Heap) SetMark(ref lisp.Ref) error {
	b, i, err := h.slotAt(ref)
	if err != nil {
		return err
	}
	b.gcMarkBits.Set(i)
	return nil
}

// ClearMark clears the cell's mark bit.
func (h *Heap) ClearMark(ref lisp.Ref) error {
	b, i, err := h.slotAt(ref)
	if err != nil {
		return err
	}
	b.gcMarkBits.Clear(i)
	return nil
}

// ClearAllMarks clears every mark bit in every block. Called by the
// collector after its sweep.
func (h *Heap) ClearAllMarks() {
	for b := h.head; b != nil; b = b.prev {
		b.gcMarkBits.ClearAll()
	}
}

// MarkPure flags a live cell as read-only, as when it becomes part of
// a value baked into compiled constant data. SetCar and SetCdr refuse
// to touch it afterwards. There is no way to unmark.
func (h *Heap) MarkPure(ref lisp.Ref) error {
	b, i, err := h.slotAt(ref)
	if err != nil {
		return err
	}
	if b.conses[i].state != slotLive {
		return ErrNotLive
	}
	b.pureBits.Set(i)
	return nil
}

// IsPure reports whether the cell is marked read-only. False for
// out-of-range refs.
func (h *Heap) IsPure(ref lisp.Ref) bool {
	b, i, err := h.slotAt(ref)
	if err != nil {
		return false
	}
	return b.pureBits.Test(i)
}
