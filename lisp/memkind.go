package lisp

// MemKind tags the purpose of a bulk allocation so a conservative or
// semi-conservative scanner can tell what a region of heap memory
// holds without per-object metadata. Every block an allocator obtains
// is registered under one of these kinds.
type MemKind uint8

const (
	KindNonLisp MemKind = iota
	KindBuffer
	KindCons
	KindString
	KindMisc
	KindSymbol
	KindFloat
	// KindVectorLike denotes large regular vectors and large bool
	// pseudovectors; small ones come from vector blocks.
	KindVectorLike
	KindVectorBlock
	// KindSpare denotes reserved memory.
	KindSpare
)

func (k MemKind) String() string {
	switch k {
	case KindNonLisp:
		return "non-lisp"
	case KindBuffer:
		return "buffer"
	case KindCons:
		return "cons"
	case KindString:
		return "string"
	case KindMisc:
		return "misc"
	case KindSymbol:
		return "symbol"
	case KindFloat:
		return "float"
	case KindVectorLike:
		return "vector-like"
	case KindVectorBlock:
		return "vector-block"
	case KindSpare:
		return "spare"
	default:
		return "unknown"
	}
}
