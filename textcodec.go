package textcodec

import "github.com/wippyai/textcodec/codec"

// Encoding identifies one of the supported serialization formats.
type Encoding = codec.Encoding

// Supported encodings.
const (
	UTF8      = codec.UTF8
	UTF16LE   = codec.UTF16LE
	UTF16BE   = codec.UTF16BE
	Base64    = codec.Base64
	Base64URL = codec.Base64URL
	Hex       = codec.Hex
)

// Options configures error handling, byte order, BOM emission and
// format-specific behavior for every operation. The zero value selects
// non-fatal decoding with replacement substitution, no BOM, little-endian
// UTF-16, tolerant Base64 padding and lowercase hex.
type Options = codec.Options

// Fallback substitutes replacement text for units that cannot be
// represented. See codec.Replacement and codec.Ignore.
type Fallback = codec.Fallback

// Stage is the streaming unit-at-a-time transform contract; build one with
// codec.NewEncodePipe, codec.NewDecodePipe or codec.NewVerifyPipe.
type Stage = codec.Stage

// Emit receives the output units a Stage produces.
type Emit = codec.Emit

// Endian selects UTF-16 byte order.
type Endian = codec.Endian

// UTF-16 byte orders.
const (
	LittleEndian   = codec.LittleEndian
	BigEndian      = codec.BigEndian
	PlatformEndian = codec.PlatformEndian
)

// Padding selects the Base64 padding policy.
type Padding = codec.Padding

// Base64 padding policies.
const (
	PadEither    = codec.PadEither
	PadRequired  = codec.PadRequired
	PadForbidden = codec.PadForbidden
)
