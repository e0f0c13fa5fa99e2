package codec

import (
	"encoding/binary"
)

// Encoding identifies a supported text encoding.
type Encoding uint8

const (
	UTF8 Encoding = iota
	UTF16LE
	UTF16BE
	Base64
	Base64URL
	Hex

	// Legacy encodings handled elsewhere in the system. Reserved here so
	// callers can name them; every operation on them fails with an
	// unsupported error.
	ShiftJIS
	GB18030
	Windows1252
)

var encodingNames = map[Encoding]string{
	UTF8:        "utf-8",
	UTF16LE:     "utf-16le",
	UTF16BE:     "utf-16be",
	Base64:      "base64",
	Base64URL:   "base64url",
	Hex:         "hex",
	ShiftJIS:    "shift_jis",
	GB18030:     "gb18030",
	Windows1252: "windows-1252",
}

func (e Encoding) String() string {
	if name, ok := encodingNames[e]; ok {
		return name
	}
	return "unknown"
}

// unicode reports whether the encoding converts text to bytes. The transfer
// codecs (Base64, Hex) run the other way: bytes to text.
func (e Encoding) unicode() bool {
	return e == UTF8 || e == UTF16LE || e == UTF16BE
}

// Endian selects a UTF-16 byte order.
type Endian uint8

const (
	LittleEndian Endian = iota
	BigEndian
	// PlatformEndian resolves to the host byte order.
	PlatformEndian
)

func (e Endian) String() string {
	switch e {
	case BigEndian:
		return "be"
	case PlatformEndian:
		return "platform"
	default:
		return "le"
	}
}

// resolve maps PlatformEndian to the concrete host byte order.
func (e Endian) resolve() Endian {
	if e != PlatformEndian {
		return e
	}
	var probe [2]byte
	binary.NativeEndian.PutUint16(probe[:], 1)
	if probe[0] == 1 {
		return LittleEndian
	}
	return BigEndian
}

// Padding selects the Base64 padding policy.
type Padding uint8

const (
	// PadEither emits padding on encode and accepts both padded and
	// unpadded input on decode/verify.
	PadEither Padding = iota
	// PadRequired demands a fully padded final group.
	PadRequired
	// PadForbidden rejects any padding character.
	PadForbidden
)

func (p Padding) String() string {
	switch p {
	case PadRequired:
		return "required"
	case PadForbidden:
		return "forbidden"
	default:
		return "either"
	}
}

// Options configures a codec operation. It is the union of every codec's
// knobs; fields a codec does not recognize are ignored. The zero value is
// the default for every codec: non-fatal recovery with the built-in
// replacement policy, no BOM on encode, little-endian UTF-16, padding
// emitted and tolerated, lowercase hex.
type Options struct {
	// Fatal makes invalid input fail with a structured error instead of
	// substituting the fallback.
	Fatal bool

	// Fallback overrides the replacement text for an invalid unit. Nil
	// selects Replacement. Whole-buffer operations pre-allocate exact-size
	// output only when Fallback is nil, since a custom policy may not be
	// deterministic across the measuring and materializing walks.
	Fallback Fallback

	// BOM emits a byte order mark during UTF-8/UTF-16 encode. UTF-8 decode
	// strips a leading BOM only when this is set; UTF-16 decode always
	// consumes a leading BOM since it determines byte order.
	BOM bool

	// Endian selects the UTF-16 byte order used on encode and assumed on
	// decode when the input carries no BOM.
	Endian Endian

	// Padding selects the Base64 padding policy.
	Padding Padding

	// Loose makes Base64 decode/verify accept both the standard and the
	// URL-safe alphabet.
	Loose bool

	// Upper selects uppercase hex digits on encode.
	Upper bool

	// Pretty selects space-separated uppercase hex output.
	Pretty bool

	// silent suppresses fallback diagnostics. Measuring walks set it so a
	// substitution is logged once per operation, not once per walk.
	silent bool
}
