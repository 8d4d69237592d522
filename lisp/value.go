package lisp

import "fmt"

// Type is the dynamic type discriminant carried by every Value.
type Type uint8

const (
	TypeNil Type = iota
	TypeInt
	TypeSymbol
	TypeCons
	TypeString
	TypeFloat
	TypeVector
)

func (t Type) String() string {
	switch t {
	case TypeNil:
		return "nil"
	case TypeInt:
		return "integer"
	case TypeSymbol:
		return "symbol"
	case TypeCons:
		return "cons"
	case TypeString:
		return "string"
	case TypeFloat:
		return "float"
	case TypeVector:
		return "vector"
	default:
		return fmt.Sprintf("type(%d)", uint8(t))
	}
}

// heapAllocated reports whether values of this type live in heap
// storage and therefore carry a Ref payload.
func (t Type) heapAllocated() bool {
	switch t {
	case TypeCons, TypeString, TypeVector:
		return true
	default:
		return false
	}
}

// Ref is the address of a heap cell slot: a stable uint32 offset into
// block storage, assigned when the owning block is allocated and never
// reused for a different slot.
type Ref uint32

// Value is a dynamically typed Lisp value: either an immediate datum
// (nil, integer, float, interned symbol) or a tagged reference into
// heap storage. The zero Value is nil.
//
// The discriminant is checked at every boundary; there is no way to
// read a Value's payload under the wrong type.
type Value struct {
	ty  Type
	num int64
	flt float64
	ref Ref
}

// Nil is the distinguished empty value. It is not a cons.
var Nil = Value{}

// T is the canonical truth value, the interned symbol t.
var T = Value{ty: TypeSymbol, num: 1}

// MakeInt returns an immediate integer value.
func MakeInt(n int64) Value {
	return Value{ty: TypeInt, num: n}
}

// MakeFloat returns an immediate float value.
func MakeFloat(f float64) Value {
	return Value{ty: TypeFloat, flt: f}
}

// MakeSymbol returns a symbol value for an interned symbol id. The
// symbol table itself lives outside this module; id 1 is t.
func MakeSymbol(id int64) Value {
	return Value{ty: TypeSymbol, num: id}
}

// MakeRef builds a tagged reference value from a heap address and a
// type discriminant. Only heap-allocated types may carry a Ref;
// passing an immediate type is a programming error and panics.
func MakeRef(ref Ref, ty Type) Value {
	if !ty.heapAllocated() {
		panic(fmt.Sprintf("lisp: MakeRef called with immediate type %s", ty))
	}
	return Value{ty: ty, ref: ref}
}

// Type returns the dynamic type discriminant.
func (v Value) Type() Type { return v.ty }

// IsNil reports whether v is the empty value.
func (v Value) IsNil() bool { return v.ty == TypeNil }

// Int returns the immediate integer payload. Panics if v is not an
// integer; callers must check the discriminant first.
func (v Value) Int() int64 {
	if v.ty != TypeInt {
		panic(fmt.Sprintf("lisp: Int on %s value", v.ty))
	}
	return v.num
}

// Float returns the immediate float payload. Panics if v is not a
// float.
func (v Value) Float() float64 {
	if v.ty != TypeFloat {
		panic(fmt.Sprintf("lisp: Float on %s value", v.ty))
	}
	return v.flt
}

// Symbol returns the interned symbol id. Panics if v is not a symbol.
func (v Value) Symbol() int64 {
	if v.ty != TypeSymbol {
		panic(fmt.Sprintf("lisp: Symbol on %s value", v.ty))
	}
	return v.num
}

// Ref returns the heap address payload. Panics if v is not a
// heap-allocated type.
func (v Value) Ref() Ref {
	if !v.ty.heapAllocated() {
		panic(fmt.Sprintf("lisp: Ref on %s value", v.ty))
	}
	return v.ref
}

// Eq reports identity equality: same discriminant and same immediate
// payload or heap address. This is Lisp eq, not equal.
func (v Value) Eq(w Value) bool {
	return v == w
}

func (v Value) String() string {
	switch v.ty {
	case TypeNil:
		return "nil"
	case TypeInt:
		return fmt.Sprintf("%d", v.num)
	case TypeFloat:
		return fmt.Sprintf("%g", v.flt)
	case TypeSymbol:
		if v.num == 1 {
			return "t"
		}
		return fmt.Sprintf("#<symbol %d>", v.num)
	default:
		return fmt.Sprintf("#<%s %#x>", v.ty, v.ref)
	}
}
