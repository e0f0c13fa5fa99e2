package codec

import (
	"strings"

	"github.com/wippyai/textcodec/codec/internal/scalar"
	"github.com/wippyai/textcodec/errors"
)

// Decode converts enc-serialized bytes back to a Go string. Only the
// Unicode encodings produce text; the transfer codecs recover raw bytes
// through DecodeBase64, DecodeBase64URL and DecodeHex instead.
func Decode(enc Encoding, data []byte, o Options) (string, error) {
	if !enc.unicode() {
		return "", errors.Unsupported(errors.PhaseDecode, "encoding "+enc.String())
	}
	if len(data) > scalar.MaxInputSize {
		return "", errors.InvalidInput(errors.PhaseDecode, "input exceeds maximum size")
	}
	st, err := NewDecodePipe(enc, o)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if o.Fallback == nil {
		if n, merr := MeasureLength(enc, data, o); merr == nil {
			b.Grow(n)
		} else {
			return "", merr
		}
	}
	if err := drainBytes(st, data, func(u uint32) { b.WriteRune(rune(u)) }); err != nil {
		return "", err
	}
	return b.String(), nil
}
