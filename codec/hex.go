package codec

import (
	"strings"

	"github.com/wippyai/textcodec/errors"
)

const (
	hexName  = "hex"
	hexLower = "0123456789abcdef"
	hexUpper = "0123456789ABCDEF"
)

// hexSpace reports whether c is whitespace hex decode skips anywhere.
func hexSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// hexVal returns the nibble value of c, or -1. Case-insensitive.
func hexVal(c byte) int8 {
	switch {
	case c >= '0' && c <= '9':
		return int8(c - '0')
	case c >= 'a' && c <= 'f':
		return int8(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int8(c-'A') + 10
	}
	return -1
}

// hexEncoder is the streaming bytes-to-hex stage. It cannot fault.
type hexEncoder struct {
	digits  string
	sep     bool
	started bool
	pos     int64
}

func newHexEncoder(o Options) *hexEncoder {
	digits := hexLower
	if o.Upper || o.Pretty {
		digits = hexUpper
	}
	return &hexEncoder{digits: digits, sep: o.Pretty}
}

func (e *hexEncoder) Transform(unit uint32, emit Emit) (bool, error) {
	b := byte(unit)
	e.pos++
	if e.sep && e.started {
		emit(' ')
	}
	e.started = true
	emit(uint32(e.digits[b>>4]))
	emit(uint32(e.digits[b&0x0F]))
	return true, nil
}

func (e *hexEncoder) Flush(Emit) error {
	return nil
}

func (e *hexEncoder) Catch(err error) error {
	pos := e.pos
	e.Reset()
	return rewrap(errors.PhaseEncode, pos, err)
}

func (e *hexEncoder) Reset() {
	*e = hexEncoder{digits: e.digits, sep: e.sep}
}

// hexDecoder is the streaming hex-to-bytes stage. Whitespace is skipped
// anywhere; digits are paired into bytes.
type hexDecoder struct {
	fatal    bool
	fallback Fallback
	silent   bool

	have  bool
	hi    byte
	hiRaw byte
	hiPos int64
	pos   int64
}

func newHexDecoder(o Options) *hexDecoder {
	return &hexDecoder{fatal: o.Fatal, fallback: o.Fallback, silent: o.silent}
}

func (d *hexDecoder) Transform(unit uint32, emit Emit) (bool, error) {
	c := byte(unit)
	at := d.pos
	d.pos++
	if hexSpace(c) {
		return true, nil
	}
	v := hexVal(c)
	if v < 0 {
		if ferr := d.fault(errors.InvalidCharacter(hexName, at, unit), unit, emit); ferr != nil {
			return false, ferr
		}
		return true, nil
	}
	if !d.have {
		d.have = true
		d.hi = byte(v)
		d.hiRaw = c
		d.hiPos = at
		return true, nil
	}
	d.have = false
	emit(uint32(d.hi)<<4 | uint32(v))
	return true, nil
}

func (d *hexDecoder) fault(err *errors.Error, unit uint32, emit Emit) error {
	if d.fatal {
		return err
	}
	emitBytes(substitution(d.fallback, unit, false), emit)
	if !d.silent {
		logFallback(err)
	}
	return nil
}

func (d *hexDecoder) Flush(emit Emit) error {
	if !d.have {
		return nil
	}
	unit := uint32(d.hiRaw)
	pos := d.hiPos
	d.have = false
	return d.fault(errors.InvalidLength(hexName, pos, "odd number of hex digits"), unit, emit)
}

func (d *hexDecoder) Catch(err error) error {
	pos := d.pos
	d.Reset()
	return rewrap(errors.PhaseDecode, pos, err)
}

func (d *hexDecoder) Reset() {
	*d = hexDecoder{fatal: d.fatal, fallback: d.fallback, silent: d.silent}
}

// EncodeHex converts bytes to hex text: lowercase by default, uppercase
// with o.Upper, space-separated uppercase with o.Pretty.
func EncodeHex(data []byte, o Options) string {
	st := newHexEncoder(o)
	var b strings.Builder
	b.Grow(MeasureHexSize(len(data), o))
	// the hex encoder never faults
	_ = drainBytes(st, data, func(u uint32) { b.WriteByte(byte(u)) })
	return b.String()
}

// DecodeHex converts hex text to bytes. Whitespace is skipped anywhere and
// digits match case-insensitively.
func DecodeHex(s string, o Options) ([]byte, error) {
	st := newHexDecoder(o)
	size := 0
	if o.Fallback == nil {
		if n, err := MeasureLength(Hex, []byte(s), o); err == nil {
			size = n
		}
	}
	buf := make([]byte, 0, size)
	if err := drainText(st, s, func(u uint32) { buf = append(buf, byte(u)) }); err != nil {
		return nil, err
	}
	return buf, nil
}

// VerifyHex reports whether s is well-formed hex, ignoring whitespace and
// letter case.
func VerifyHex(s string, o Options) bool {
	v, err := NewVerifyPipe(Hex, o)
	if err != nil {
		return false
	}
	_ = drainText(v, s, discard)
	return v.Valid()
}
