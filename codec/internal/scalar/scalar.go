package scalar

// Unicode scalar value boundaries.
const (
	SurrogateMin = 0xD800
	SurrogateMax = 0xDFFF
	Max          = 0x10FFFF

	Replacement = 0xFFFD // U+FFFD REPLACEMENT CHARACTER
	Sub         = 0x1A   // U+001A SUBSTITUTE, the ASCII sentinel
	BOM         = 0xFEFF // U+FEFF, byte order mark when leading
)

const (
	// MaxInputSize caps single-call input to keep size arithmetic in range.
	MaxInputSize = 1 << 30 // 1 GB
)

// IsSurrogate reports whether v is in the UTF-16 surrogate range.
func IsSurrogate(v uint32) bool {
	return v >= SurrogateMin && v <= SurrogateMax
}

// Valid reports whether v is a Unicode scalar value: in range and not a
// surrogate.
func Valid(v uint32) bool {
	return v <= Max && !IsSurrogate(v)
}

// UTF8Len returns the number of bytes needed to encode the scalar v in
// UTF-8. The caller must have validated v.
func UTF8Len(v uint32) int {
	switch {
	case v < 0x80:
		return 1
	case v < 0x800:
		return 2
	case v < 0x10000:
		return 3
	default:
		return 4
	}
}

// UTF16Len returns the number of bytes needed to encode the scalar v in
// UTF-16. The caller must have validated v.
func UTF16Len(v uint32) int {
	if v < 0x10000 {
		return 2
	}
	return 4
}

// MinForUTF8Len returns the smallest scalar value that requires a UTF-8
// sequence of n bytes. Assembled values below it are overlong.
func MinForUTF8Len(n int) uint32 {
	switch n {
	case 2:
		return 0x80
	case 3:
		return 0x800
	case 4:
		return 0x10000
	default:
		return 0
	}
}

func SafeMul(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	p := a * b
	if p/b != a {
		return 0, false
	}
	return p, true
}

func SafeAdd(a, b int) (int, bool) {
	s := a + b
	if (b > 0 && s < a) || (b < 0 && s > a) {
		return 0, false
	}
	return s, true
}
