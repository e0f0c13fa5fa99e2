package codec

import (
	"github.com/wippyai/textcodec/codec/internal/scalar"
	"github.com/wippyai/textcodec/errors"
)

// MeasureSize returns the byte length Encode would produce for text. It
// walks the encode machine with a counting sink, so it is exact whenever
// the fallback policy is deterministic, as the built-in policies are.
// Under Fatal it fails exactly where Encode would.
func MeasureSize(enc Encoding, text string, o Options) (int, error) {
	if !enc.unicode() {
		return 0, errors.Unsupported(errors.PhaseMeasure, "encoding "+enc.String())
	}
	if len(text) > scalar.MaxInputSize {
		return 0, errors.InvalidInput(errors.PhaseMeasure, "input exceeds maximum size")
	}
	o.silent = true
	st, err := NewEncodePipe(enc, o)
	if err != nil {
		return 0, err
	}
	n := 0
	if err := drainString(st, text, func(uint32) { n++ }); err != nil {
		return 0, err
	}
	return n, nil
}

// MeasureLength returns the byte length of the Go string (Unicode
// encodings) or byte slice (transfer codecs) that Decode would produce for
// data. Base64 lengths come from arithmetic over character and padding
// counts, per the format; everything else walks the decode machine.
func MeasureLength(enc Encoding, data []byte, o Options) (int, error) {
	if len(data) > scalar.MaxInputSize {
		return 0, errors.InvalidInput(errors.PhaseMeasure, "input exceeds maximum size")
	}
	o.silent = true
	switch enc {
	case UTF8, UTF16LE, UTF16BE:
		st, err := NewDecodePipe(enc, o)
		if err != nil {
			return 0, err
		}
		n := 0
		if err := drainBytes(st, data, func(u uint32) { n += scalar.UTF8Len(u) }); err != nil {
			return 0, err
		}
		return n, nil
	case Base64, Base64URL:
		return MeasureBase64Length(string(data), o)
	case Hex:
		st := newHexDecoder(o)
		n := 0
		if err := drainBytes(st, data, func(uint32) { n++ }); err != nil {
			return 0, err
		}
		return n, nil
	default:
		return 0, errors.Unsupported(errors.PhaseMeasure, "encoding "+enc.String())
	}
}

// MeasureBase64Size returns the exact character count of the Base64 form of
// n input bytes under the padding policy in o.
func MeasureBase64Size(n int, o Options) int {
	if o.Padding == PadForbidden {
		size := n / 3 * 4
		switch n % 3 {
		case 1:
			size += 2
		case 2:
			size += 3
		}
		return size
	}
	groups, ok := scalar.SafeAdd(n, 2)
	if !ok {
		return 0
	}
	size, ok := scalar.SafeMul(groups/3, 4)
	if !ok {
		return 0
	}
	return size
}

// MeasureBase64Length returns the byte count Base64 decode would produce,
// computed from the input length and padding-character count without
// decoding. The input is assumed to be in-alphabet; Verify first when that
// is in doubt.
func MeasureBase64Length(s string, o Options) (int, error) {
	pads := 0
	for pads < 2 && pads < len(s) && s[len(s)-1-pads] == base64Pad {
		pads++
	}
	chars := len(s) - pads
	n := chars / 4 * 3
	switch chars % 4 {
	case 0:
	case 2:
		n++
	case 3:
		n += 2
	default:
		return 0, errors.InvalidLength(base64Name, int64(chars), "a final group needs at least 2 characters")
	}
	return n, nil
}

// MeasureHexSize returns the exact character count of the hex form of n
// input bytes.
func MeasureHexSize(n int, o Options) int {
	if o.Pretty {
		if n == 0 {
			return 0
		}
		size, ok := scalar.SafeMul(n, 3)
		if !ok {
			return 0
		}
		return size - 1
	}
	size, ok := scalar.SafeMul(n, 2)
	if !ok {
		return 0
	}
	return size
}

// EstimateSize returns a cheap upper bound on the encoded size of n input
// bytes (text bytes for the Unicode encodings, raw bytes for the transfer
// codecs). It never walks the input. Zero means the encoding is
// unsupported.
func EstimateSize(enc Encoding, n int, o Options) int {
	bound := func(mul, bom int) int {
		v, ok := scalar.SafeMul(n, mul)
		if !ok {
			return 0
		}
		v, ok = scalar.SafeAdd(v, bom)
		if !ok {
			return 0
		}
		return v
	}
	switch enc {
	case UTF8:
		// worst case: every input byte is invalid and becomes U+FFFD
		bom := 0
		if o.BOM {
			bom = 3
		}
		return bound(3, bom)
	case UTF16LE, UTF16BE:
		bom := 0
		if o.BOM {
			bom = 2
		}
		return bound(2, bom)
	case Base64, Base64URL:
		return MeasureBase64Size(n, Options{})
	case Hex:
		if o.Pretty {
			return bound(3, 0)
		}
		return bound(2, 0)
	default:
		return 0
	}
}

// EstimateLength returns a cheap upper bound on the decoded size of n input
// units, again without walking the input.
func EstimateLength(enc Encoding, n int, o Options) int {
	switch enc {
	case UTF8:
		// every byte may decode to a 3-byte replacement character
		v, _ := scalar.SafeMul(n, 3)
		return v
	case UTF16LE, UTF16BE:
		units := (n + 1) / 2
		v, _ := scalar.SafeMul(units, 3)
		return v
	case Base64, Base64URL:
		v, _ := scalar.SafeMul((n+3)/4, 3)
		return v
	case Hex:
		// invalid characters substitute one byte each
		return n
	default:
		return 0
	}
}
