package alloc

import (
	"fmt"

	"github.com/lispkit/lispkit/lisp"
)

// Consp reports whether v is a cons cell. Nil is not a cons.
func (h *Heap) Consp(v lisp.Value) bool {
	return v.Type() == lisp.TypeCons
}

// resolveCons type-checks v and resolves it to its slot. A cons value
// referencing a reclaimed slot violates the free-list invariant and
// surfaces as ErrBadRef rather than yielding stale data.
func (h *Heap) resolveCons(v lisp.Value) (*consBlock, int, error) {
	if v.Type() != lisp.TypeCons {
		return nil, 0, &lisp.TypeError{Expected: lisp.TypeCons, Actual: v}
	}
	b, i, err := h.slotAt(v.Ref())
	if err != nil {
		return nil, 0, err
	}
	if b.conses[i].state != slotLive {
		return nil, 0, fmt.Errorf("%w: %#x references a free cell", ErrBadRef, uint32(v.Ref()))
	}
	return b, i, nil
}

// Car returns the first field of a cons cell. Fails with a type error
// if v is not a cons.
func (h *Heap) Car(v lisp.Value) (lisp.Value, error) {
	b, i, err := h.resolveCons(v)
	if err != nil {
		return lisp.Nil, err
	}
	return b.conses[i].car, nil
}

// Cdr returns the second field of a cons cell. Fails with a type
// error if v is not a cons.
func (h *Heap) Cdr(v lisp.Value) (lisp.Value, error) {
	b, i, err := h.resolveCons(v)
	if err != nil {
		return lisp.Nil, err
	}
	return b.conses[i].cdr, nil
}

// SetCar overwrites the first field of a cons cell and returns the new
// value. Both the type check and the purity check run before any
// write, so a failed call leaves the cell unchanged.
func (h *Heap) SetCar(v, newcar lisp.Value) (lisp.Value, error) {
	b, i, err := h.resolveCons(v)
	if err != nil {
		return lisp.Nil, err
	}
	if b.pureBits.Test(i) {
		return lisp.Nil, &lisp.PureWriteError{Ref: v.Ref()}
	}
	b.conses[i].car = newcar
	return newcar, nil
}

// SetCdr overwrites the second field of a cons cell and returns the
// new value, with the same guards as SetCar.
func (h *Heap) SetCdr(v, newcdr lisp.Value) (lisp.Value, error) {
	b, i, err := h.resolveCons(v)
	if err != nil {
		return lisp.Nil, err
	}
	if b.pureBits.Test(i) {
		return lisp.Nil, &lisp.PureWriteError{Ref: v.Ref()}
	}
	b.conses[i].cdr = newcdr
	return newcdr, nil
}
