package alloc

import "github.com/lispkit/lispkit/lisp"

// List conses vals into a nil-terminated list, building from the
// rightmost element.
func (h *Heap) List(vals ...lisp.Value) (lisp.Value, error) {
	tail := lisp.Nil
	for i := len(vals) - 1; i >= 0; i-- {
		v, err := h.Cons(vals[i], tail)
		if err != nil {
			return lisp.Nil, err
		}
		tail = v
	}
	return tail, nil
}

// MakeList builds a list of n cells, each holding init in its car.
// n <= 0 yields nil.
func (h *Heap) MakeList(n int, init lisp.Value) (lisp.Value, error) {
	tail := lisp.Nil
	for ; n > 0; n-- {
		v, err := h.Cons(init, tail)
		if err != nil {
			return lisp.Nil, err
		}
		tail = v
	}
	return tail, nil
}
