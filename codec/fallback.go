package codec

// Fallback supplies replacement text for an invalid code unit. The unicode
// flag is true when the replacement will be emitted as text and false when
// it will be emitted as raw bytes. Returning an empty string drops the
// invalid unit.
type Fallback func(unit uint32, unicode bool) string

// Replacement is the default policy: U+FFFD REPLACEMENT CHARACTER for text
// output, U+001A SUBSTITUTE for byte output.
func Replacement(_ uint32, unicode bool) string {
	if unicode {
		return "�"
	}
	return "\x1a"
}

// Ignore drops invalid units entirely.
func Ignore(uint32, bool) string {
	return ""
}

// substitution resolves the effective fallback text for an invalid unit.
func substitution(fb Fallback, unit uint32, unicode bool) string {
	if fb == nil {
		fb = Replacement
	}
	return fb(unit, unicode)
}

// emitRunes feeds each code point of s to emit. Used by stages whose output
// units are code points.
func emitRunes(s string, emit Emit) {
	for _, r := range s {
		emit(uint32(r))
	}
}

// emitBytes feeds each raw byte of s to emit. Used by stages whose output
// units are bytes.
func emitBytes(s string, emit Emit) {
	for i := 0; i < len(s); i++ {
		emit(uint32(s[i]))
	}
}
