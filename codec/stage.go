package codec

import (
	stderrors "errors"
	"unicode/utf8"

	"github.com/wippyai/textcodec/errors"
	"github.com/wippyai/textcodec/log"
)

// Emit receives output units produced by a stage: bytes for encode stages,
// Unicode code points for text-producing decode stages.
type Emit func(unit uint32)

// Stage is the capability contract every codec stage implements. A stage is
// stateful and single-owner: it serves exactly one stream at a time and must
// not be shared across goroutines.
type Stage interface {
	// Transform consumes one input unit and emits zero or more output
	// units. It returns false to tell the driver to stop supplying input
	// (used by verification to short-circuit). A multi-unit sequence split
	// across calls is held in the carry buffer until it completes.
	Transform(unit uint32, emit Emit) (bool, error)

	// Flush finalizes the stream exactly once, draining the carry buffer:
	// an incomplete sequence is resolved through the fallback policy or,
	// under Fatal, fails with an unexpected-end error.
	Flush(emit Emit) error

	// Catch clears all internal state after an error so the stage starts
	// the next stream clean, and returns the error re-wrapped with the
	// position accumulated so far if it does not already carry one.
	Catch(err error) error

	// Reset returns the stage to its initial state for reuse.
	Reset()
}

// NewEncodePipe returns a reusable encode stage for the encoding. Input
// units are code points for the Unicode encodings and bytes for the
// transfer codecs; output units are bytes.
func NewEncodePipe(enc Encoding, o Options) (Stage, error) {
	switch enc {
	case UTF8:
		return newUTF8Encoder(o), nil
	case UTF16LE:
		o.Endian = LittleEndian
		return newUTF16Encoder(o), nil
	case UTF16BE:
		o.Endian = BigEndian
		return newUTF16Encoder(o), nil
	case Base64:
		return newBase64Encoder(o, false), nil
	case Base64URL:
		return newBase64Encoder(o, true), nil
	case Hex:
		return newHexEncoder(o), nil
	default:
		return nil, errors.Unsupported(errors.PhaseEncode, "encoding "+enc.String())
	}
}

// NewDecodePipe returns a reusable decode stage for the encoding. Input
// units are bytes; output units are code points for the Unicode encodings
// and bytes for the transfer codecs.
func NewDecodePipe(enc Encoding, o Options) (Stage, error) {
	switch enc {
	case UTF8:
		return newUTF8Decoder(o), nil
	case UTF16LE:
		o.Endian = LittleEndian
		return newUTF16Decoder(o), nil
	case UTF16BE:
		o.Endian = BigEndian
		return newUTF16Decoder(o), nil
	case Base64:
		return newBase64Decoder(o, false), nil
	case Base64URL:
		return newBase64Decoder(o, true), nil
	case Hex:
		return newHexDecoder(o), nil
	default:
		return nil, errors.Unsupported(errors.PhaseDecode, "encoding "+enc.String())
	}
}

// Verifier runs a decode machine with no output sink. Input is invalid as
// soon as any error recovery would be required; Transform then returns
// false so the driver can stop early.
type Verifier struct {
	inner Stage
	valid bool
}

// NewVerifyPipe returns a reusable verify stage for the encoding.
func NewVerifyPipe(enc Encoding, o Options) (*Verifier, error) {
	o.Fatal = true
	o.Fallback = nil
	inner, err := NewDecodePipe(enc, o)
	if err != nil {
		return nil, err
	}
	return &Verifier{inner: inner, valid: true}, nil
}

func discard(uint32) {}

func (v *Verifier) Transform(unit uint32, _ Emit) (bool, error) {
	if !v.valid {
		return false, nil
	}
	cont, err := v.inner.Transform(unit, discard)
	if err != nil {
		_ = v.inner.Catch(err)
		v.valid = false
		return false, nil
	}
	return cont, nil
}

func (v *Verifier) Flush(_ Emit) error {
	if !v.valid {
		return nil
	}
	if err := v.inner.Flush(discard); err != nil {
		_ = v.inner.Catch(err)
		v.valid = false
	}
	return nil
}

func (v *Verifier) Catch(err error) error {
	v.Reset()
	return err
}

func (v *Verifier) Reset() {
	v.inner.Reset()
	v.valid = true
}

// Valid reports whether everything consumed since the last Reset was valid.
func (v *Verifier) Valid() bool {
	return v.valid
}

// drainBytes drives a stage over a whole buffer and flushes it.
func drainBytes(st Stage, in []byte, emit Emit) error {
	for _, b := range in {
		cont, err := st.Transform(uint32(b), emit)
		if err != nil {
			return st.Catch(err)
		}
		if !cont {
			break
		}
	}
	if err := st.Flush(emit); err != nil {
		return st.Catch(err)
	}
	return nil
}

// drainText drives a byte-consuming stage over the raw bytes of a string.
func drainText(st Stage, in string, emit Emit) error {
	for i := 0; i < len(in); i++ {
		cont, err := st.Transform(uint32(in[i]), emit)
		if err != nil {
			return st.Catch(err)
		}
		if !cont {
			break
		}
	}
	if err := st.Flush(emit); err != nil {
		return st.Catch(err)
	}
	return nil
}

// illFormed tags a byte of input text that is not part of any valid UTF-8
// sequence. A range loop would hand such bytes to the stage as U+FFFD, which
// is a valid scalar and would slip past Fatal; tagging keeps the offending
// byte in the low bits so the encoder can fault on it. A genuine U+FFFD in
// the text decodes with width 3 and is never tagged.
const illFormed uint32 = 1 << 31

// drainString drives a code-point-consuming stage over the text.
func drainString(st Stage, in string, emit Emit) error {
	for i := 0; i < len(in); {
		r, size := utf8.DecodeRuneInString(in[i:])
		unit := uint32(r)
		if r == utf8.RuneError && size == 1 {
			unit = illFormed | uint32(in[i])
		}
		cont, err := st.Transform(unit, emit)
		if err != nil {
			return st.Catch(err)
		}
		if !cont {
			break
		}
		i += size
	}
	if err := st.Flush(emit); err != nil {
		return st.Catch(err)
	}
	return nil
}

// rewrap attaches the accumulated position to errors that did not originate
// in this package; structured errors already carry their own.
func rewrap(phase errors.Phase, pos int64, err error) error {
	if err == nil {
		return nil
	}
	var ce *errors.Error
	if stderrors.As(err, &ce) {
		return err
	}
	return errors.Wrap(phase, errors.KindInvalidInput, pos, err)
}

// logFallback reports one fallback substitution to the package logger.
func logFallback(err *errors.Error) {
	lgr().Debug("fallback substitution", log.Fields{
		"encoding": err.Encoding,
		"kind":     string(err.Kind),
		"unit":     err.Unit,
		"offset":   err.Position,
	})
}
