// Package textcodec provides streaming conversion between Unicode text and
// byte sequences.
//
// The library implements UTF-8, UTF-16 (little/big endian with BOM
// detection), Base64 (standard and URL-safe), and Hex, both as whole-buffer
// operations and as incremental pipelines that accept input in arbitrarily
// small chunks, down to one byte or code unit per call, without losing
// correctness at chunk boundaries.
//
// # Architecture Overview
//
// The library is organized into a small set of packages:
//
//	textcodec/           Root package re-exporting the main API
//	├── codec/           Codec engine: stages, options, convenience API,
//	│                    size measurement, fallback policies
//	├── byteview/        Uniform indexed byte access over strings, byte
//	│                    slices, and endianness-aware numeric slices
//	├── errors/          Structured error types with position tracking
//	└── log/             Pluggable leveled logger (zap/logrus/slog adapters)
//
// # Quick Start
//
// Whole-buffer conversion:
//
//	data, err := codec.EncodeUTF8("héllo", codec.Options{})
//	text, err := codec.DecodeUTF8(data, codec.Options{})
//	ok := codec.VerifyUTF8(data, codec.Options{})
//
// Streaming decode, one byte at a time:
//
//	stage, _ := codec.NewDecodePipe(codec.UTF8, codec.Options{})
//	for _, b := range chunk {
//	    cont, err := stage.Transform(uint32(b), emit)
//	    ...
//	}
//	err := stage.Flush(emit)
//
// # Error Recovery
//
// Every decode and verify operation accepts a fatal flag and a fallback
// policy. With Fatal set, invalid input produces a structured error carrying
// the offending unit and its position. Otherwise the configured fallback
// (U+FFFD for Unicode output, U+001A for byte output by default) is
// substituted and the stream continues, so decoding is total over arbitrary
// input.
//
// # Exact Allocation
//
// MeasureSize and MeasureLength walk the same state machines as the codecs
// without materializing output. Under the built-in fallback policies the
// whole-buffer operations use them to pre-allocate result buffers exactly.
//
// # Thread Safety
//
// Whole-buffer functions are stateless and safe for concurrent use. Stages
// hold mutable carry state and are single-owner: never share one stage
// between overlapping streams.
package textcodec
