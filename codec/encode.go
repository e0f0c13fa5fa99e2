package codec

import (
	"unicode/utf8"

	"github.com/wippyai/textcodec/codec/internal/scalar"
	"github.com/wippyai/textcodec/errors"
)

// Encode converts text to its byte serialization under enc. Only the
// Unicode encodings accept text; the transfer codecs serialize raw bytes
// through EncodeBase64, EncodeBase64URL and EncodeHex instead.
func Encode(enc Encoding, text string, o Options) ([]byte, error) {
	if !enc.unicode() {
		return nil, errors.Unsupported(errors.PhaseEncode, "encoding "+enc.String())
	}
	if len(text) > scalar.MaxInputSize {
		return nil, errors.InvalidInput(errors.PhaseEncode, "input exceeds maximum size")
	}
	st, err := NewEncodePipe(enc, o)
	if err != nil {
		return nil, err
	}
	if o.Fallback == nil {
		// built-in recovery is deterministic, so a measuring walk gives the
		// exact output size and the result is allocated once
		size, merr := MeasureSize(enc, text, o)
		if merr != nil {
			return nil, merr
		}
		out := make([]byte, 0, size)
		if err := drainString(st, text, func(u uint32) { out = append(out, byte(u)) }); err != nil {
			return nil, err
		}
		return out, nil
	}
	buf := getBuf()
	b := (*buf)[:0]
	derr := drainString(st, text, func(u uint32) { b = append(b, byte(u)) })
	*buf = b
	if derr != nil {
		putBuf(buf)
		return nil, derr
	}
	out := make([]byte, len(b))
	copy(out, b)
	putBuf(buf)
	return out, nil
}

// EncodeInto serializes text into out and reports how much of each side was
// used: read counts the text bytes consumed, written the output bytes
// stored. It stops cleanly at a code point boundary when out fills up and
// never writes a partial sequence; read < len(text) on return means the
// destination was too small. Output staged at flush time, such as the byte
// order mark of an empty stream, cannot be signalled that way, so a flush
// tail that does not fit returns an out-of-bounds error instead.
func EncodeInto(enc Encoding, text string, out []byte, o Options) (read, written int, err error) {
	if !enc.unicode() {
		return 0, 0, errors.Unsupported(errors.PhaseEncode, "encoding "+enc.String())
	}
	if len(text) > scalar.MaxInputSize {
		return 0, 0, errors.InvalidInput(errors.PhaseEncode, "input exceeds maximum size")
	}
	st, perr := NewEncodePipe(enc, o)
	if perr != nil {
		return 0, 0, perr
	}

	// each input unit's output is staged so a unit that straddles the end
	// of out is dropped whole rather than truncated
	var scratch [16]byte
	group := scratch[:0]
	stage := func(u uint32) { group = append(group, byte(u)) }
	commit := func() bool {
		if written+len(group) > len(out) {
			return false
		}
		copy(out[written:], group)
		written += len(group)
		return true
	}

	for i := 0; i < len(text); {
		r, sz := utf8.DecodeRuneInString(text[i:])
		unit := uint32(r)
		if r == utf8.RuneError && sz == 1 {
			unit = illFormed | uint32(text[i])
		}
		group = group[:0]
		cont, terr := st.Transform(unit, stage)
		if terr != nil {
			return read, written, st.Catch(terr)
		}
		if !commit() {
			return read, written, nil
		}
		i += sz
		read = i
		if !cont {
			return read, written, nil
		}
	}
	group = group[:0]
	if ferr := st.Flush(stage); ferr != nil {
		return read, written, st.Catch(ferr)
	}
	if !commit() {
		return read, written, errors.New(errors.PhaseEncode, errors.KindOutOfBounds).
			Detail("destination too small for final %d-byte output", len(group)).Build()
	}
	return read, written, nil
}
