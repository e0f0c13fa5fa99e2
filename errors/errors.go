package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates which operation was running when the error occurred
type Phase string

const (
	PhaseEncode  Phase = "encode"  // text to bytes
	PhaseDecode  Phase = "decode"  // bytes to text
	PhaseVerify  Phase = "verify"  // validation without output
	PhaseMeasure Phase = "measure" // size pre-computation
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidLeadByte     Kind = "invalid_lead_byte"
	KindInvalidContinuation Kind = "invalid_continuation"
	KindInvalidSurrogate    Kind = "invalid_surrogate"
	KindUnexpectedEnd       Kind = "unexpected_end"
	KindInvalidCharacter    Kind = "invalid_character"
	KindInvalidLength       Kind = "invalid_length"
	KindOutOfBounds         Kind = "out_of_bounds"
	KindUnsupported         Kind = "unsupported"
	KindInvalidInput        Kind = "invalid_input"
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause    error
	Phase    Phase
	Kind     Kind
	Encoding string // codec name, e.g. "utf-8"
	Unit     uint32 // offending code unit or code point
	Position int64  // input units consumed before the offending unit, -1 if unknown
	Detail   string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Encoding != "" {
		b.WriteString(" in ")
		b.WriteString(e.Encoding)
	}

	if e.Position >= 0 {
		b.WriteString(" at offset ")
		b.WriteString(strconv.FormatInt(e.Position, 10))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:    phase,
			Kind:     kind,
			Position: -1,
		},
	}
}

// Encoding sets the codec name
func (b *Builder) Encoding(name string) *Builder {
	b.err.Encoding = name
	return b
}

// Position sets the input offset
func (b *Builder) Position(pos int64) *Builder {
	b.err.Position = pos
	return b
}

// Unit sets the offending code unit
func (b *Builder) Unit(u uint32) *Builder {
	b.err.Unit = u
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidLeadByte creates an error for a byte that cannot start a sequence
func InvalidLeadByte(encoding string, pos int64, unit uint32) *Error {
	return &Error{
		Phase:    PhaseDecode,
		Kind:     KindInvalidLeadByte,
		Encoding: encoding,
		Unit:     unit,
		Position: pos,
		Detail:   fmt.Sprintf("byte 0x%02X cannot start a sequence", unit),
	}
}

// InvalidContinuation creates an error for a malformed continuation byte.
// The position is the lead byte's offset, the unit is the offending byte.
func InvalidContinuation(encoding string, pos int64, unit uint32) *Error {
	return &Error{
		Phase:    PhaseDecode,
		Kind:     KindInvalidContinuation,
		Encoding: encoding,
		Unit:     unit,
		Position: pos,
		Detail:   fmt.Sprintf("byte 0x%02X is not a continuation byte", unit),
	}
}

// InvalidSurrogate creates an error for a lone or encoded surrogate
func InvalidSurrogate(phase Phase, encoding string, pos int64, unit uint32) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindInvalidSurrogate,
		Encoding: encoding,
		Unit:     unit,
		Position: pos,
		Detail:   fmt.Sprintf("unpaired surrogate U+%04X", unit),
	}
}

// UnexpectedEnd creates an error for input ending mid-sequence
func UnexpectedEnd(encoding string, pos int64) *Error {
	return &Error{
		Phase:    PhaseDecode,
		Kind:     KindUnexpectedEnd,
		Encoding: encoding,
		Position: pos,
		Detail:   "input ended inside a multi-unit sequence",
	}
}

// InvalidCharacter creates an error for a character outside the codec alphabet
func InvalidCharacter(encoding string, pos int64, unit uint32) *Error {
	return &Error{
		Phase:    PhaseDecode,
		Kind:     KindInvalidCharacter,
		Encoding: encoding,
		Unit:     unit,
		Position: pos,
		Detail:   fmt.Sprintf("character %q is not in the %s alphabet", rune(unit), encoding),
	}
}

// InvalidLength creates an error for input not aligned to the group size
func InvalidLength(encoding string, pos int64, detail string) *Error {
	return &Error{
		Phase:    PhaseDecode,
		Kind:     KindInvalidLength,
		Encoding: encoding,
		Position: pos,
		Detail:   detail,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(index, length int) *Error {
	return &Error{
		Phase:    PhaseDecode,
		Kind:     KindOutOfBounds,
		Position: -1,
		Detail:   fmt.Sprintf("index %d out of bounds (length %d)", index, length),
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindUnsupported,
		Position: -1,
		Detail:   what,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindInvalidInput,
		Position: -1,
		Detail:   detail,
	}
}

// Wrap wraps an existing error with phase, kind, and the position
// accumulated so far
func Wrap(phase Phase, kind Kind, pos int64, cause error) *Error {
	return &Error{
		Phase:    phase,
		Kind:     kind,
		Position: pos,
		Cause:    cause,
	}
}
