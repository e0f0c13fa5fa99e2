// Package codec provides streaming and whole-buffer conversion between
// Unicode text and byte sequences.
//
// # Supported Encodings
//
//	Encoding     Direction            Unit in    Unit out
//	─────────────────────────────────────────────────────
//	UTF8         text ↔ bytes         code point byte
//	UTF16LE/BE   text ↔ bytes         code point byte
//	Base64(URL)  bytes ↔ text         byte       byte (ASCII)
//	Hex          bytes ↔ text         byte       byte (ASCII)
//
// The Encoding enum also names legacy encodings the wider system reserves
// (Shift-JIS, GB18030, Windows-1252); every operation on those fails with an
// unsupported error.
//
// # Key Types
//
//	Stage      - the streaming contract: Transform/Flush/Catch/Reset
//	Options    - per-operation configuration (union; unused fields ignored)
//	Fallback   - replacement policy for invalid input
//	Verifier   - a decode machine with no sink, for validation
//
// # Streaming Flow
//
//  1. NewEncodePipe/NewDecodePipe/NewVerifyPipe(enc, opts) → Stage
//  2. Transform(unit, emit) once per input unit, in any chunking
//  3. Flush(emit) exactly once to drain the carry buffer
//  4. Reset() to reuse, or Catch(err) to recover after a fatal error
//
// A multi-unit logical character is always emitted atomically: Transform
// buffers the incomplete tail of a sequence in a fixed carry buffer (at most
// four units) and emits only when the sequence completes. Feeding a stage
// one unit at a time therefore produces output identical to a single
// whole-buffer call.
//
// # Whole-Buffer Flow
//
// Encode, Decode, EncodeInto, and Verify drive a stage over an entire
// buffer. With the built-in fallback policy the output buffer is
// pre-allocated exactly via MeasureSize/MeasureLength and never grows.
//
// # Error Recovery
//
// With Options.Fatal, invalid input fails with a structured error carrying
// the offending unit and its input offset. Otherwise the fallback policy
// substitutes replacement text (U+FFFD for text output, U+001A for byte
// output) and the stream continues, so every input produces some output.
// Errors at a continuation byte are reported at the lead byte's offset.
//
// # Thread Safety
//
// Whole-buffer functions are stateless and safe for concurrent use. Stages
// maintain internal carry state and are NOT thread-safe: a stage is owned by
// the driver that created it and must never serve two overlapping streams.
package codec
