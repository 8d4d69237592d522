// Package alloc implements the cons-cell heap for the Lisp runtime.
//
// # Overview
//
// Cons cells are allocated from fixed-capacity blocks of 100 slots.
// Blocks form a singly linked chain, newest first, and are never freed
// individually; a slot's address (lisp.Ref) is stable for the life of
// the process. Cells reclaimed by the garbage collector go on a free
// list and are reused before any slot is carved from a new block.
//
// # Heap
//
// All allocator state lives in a Heap value owned by the interpreter:
//
//	h := alloc.New(nil)
//	v, err := h.Cons(lisp.MakeInt(1), lisp.Nil)
//	if err != nil {
//	    return err
//	}
//	car, _ := h.Car(v)
//
// Heap operations are single-threaded and not reentrant-safe. Cons
// brackets itself with a scoped input-blocking guard so a re-entrant
// handler can never observe the block chain or free list mid-mutation.
//
// # Collector surface
//
// The collector is external. This package maintains the structures it
// walks and the free list it repopulates:
//
//   - SetMark, ClearMark, IsMarked, ClearAllMarks operate on each
//     block's mark bitmap (one bit per slot, word-rounded).
//   - Blocks and Block.Slots iterate every slot, reporting liveness
//     and both fields, so a tracer never has to interpret raw memory.
//   - Reclaim pushes an unmarked dead cell onto the free list.
//   - ResetConsing resets the bytes-consed-since-GC counter.
//   - FindKind classifies a heap address by the registered purpose of
//     the bulk allocation containing it.
//
// # Mutation guards
//
// SetCar and SetCdr verify the operand is a cons and that it is not
// marked pure before writing. Both checks happen before any mutation;
// a failed call leaves the cell untouched.
package alloc
