package codec

import (
	"github.com/wippyai/textcodec/codec/internal/scalar"
	"github.com/wippyai/textcodec/errors"
)

const (
	utf16LEName = "utf-16le"
	utf16BEName = "utf-16be"

	surrHighMin = 0xD800
	surrHighMax = 0xDBFF
	surrLowMin  = 0xDC00
	surrLowMax  = 0xDFFF
	surrSelf    = 0x10000
)

// utf16Decoder is the streaming UTF-16 bytes-to-text stage. It enters a
// two-byte BOM sub-state once per stream: FE FF selects big endian, FF FE
// little endian, anything else replays both bytes as data under the
// configured order.
type utf16Decoder struct {
	fatal      bool
	fallback   Fallback
	configured Endian
	silent     bool

	endian   Endian
	sought   bool
	head     [2]byte
	headN    int
	half     byte // first byte of an incomplete code unit
	haveHalf bool
	hi       uint32 // pending high surrogate
	haveHi   bool
	hiStart  int64
	pos      int64 // input bytes consumed
}

func newUTF16Decoder(o Options) *utf16Decoder {
	e := o.Endian.resolve()
	return &utf16Decoder{fatal: o.Fatal, fallback: o.Fallback, configured: e, endian: e, silent: o.silent}
}

func (d *utf16Decoder) name() string {
	if d.endian == BigEndian {
		return utf16BEName
	}
	return utf16LEName
}

func (d *utf16Decoder) Transform(unit uint32, emit Emit) (bool, error) {
	b := byte(unit)
	d.pos++
	if !d.sought {
		d.head[d.headN] = b
		d.headN++
		if d.headN < 2 {
			return true, nil
		}
		d.sought = true
		switch {
		case d.head[0] == 0xFE && d.head[1] == 0xFF:
			d.endian = BigEndian
			return true, nil
		case d.head[0] == 0xFF && d.head[1] == 0xFE:
			d.endian = LittleEndian
			return true, nil
		}
		// not a BOM: both bytes are data under the configured order
		d.endian = d.configured
		if err := d.byteIn(d.head[0], emit); err != nil {
			return false, err
		}
		if err := d.byteIn(d.head[1], emit); err != nil {
			return false, err
		}
		return true, nil
	}
	if err := d.byteIn(b, emit); err != nil {
		return false, err
	}
	return true, nil
}

// byteIn pairs raw bytes into 16-bit code units.
func (d *utf16Decoder) byteIn(b byte, emit Emit) error {
	if !d.haveHalf {
		d.half = b
		d.haveHalf = true
		return nil
	}
	var u uint32
	if d.endian == LittleEndian {
		u = uint32(d.half) | uint32(b)<<8
	} else {
		u = uint32(d.half)<<8 | uint32(b)
	}
	d.haveHalf = false
	return d.unitIn(u, emit)
}

// unitIn runs the surrogate pairing machine on one code unit. Call it only
// right after the unit's second byte was consumed, so its starting offset
// is pos-2.
func (d *utf16Decoder) unitIn(u uint32, emit Emit) error {
	start := d.pos - 2
	if d.haveHi {
		if u >= surrLowMin && u <= surrLowMax {
			cp := surrSelf + (d.hi-surrHighMin)<<10 + (u - surrLowMin)
			d.haveHi = false
			emit(cp)
			return nil
		}
		// lone high surrogate: substitute it, then reprocess u on its own
		hi := d.hi
		hiStart := d.hiStart
		d.haveHi = false
		if err := d.fault(errors.InvalidSurrogate(errors.PhaseDecode, d.name(), hiStart, hi), hi, emit); err != nil {
			return err
		}
		return d.unitIn(u, emit)
	}
	switch {
	case u >= surrHighMin && u <= surrHighMax:
		d.hi = u
		d.haveHi = true
		d.hiStart = start
	case u >= surrLowMin && u <= surrLowMax:
		return d.fault(errors.InvalidSurrogate(errors.PhaseDecode, d.name(), start, u), u, emit)
	default:
		emit(u)
	}
	return nil
}

func (d *utf16Decoder) fault(err *errors.Error, unit uint32, emit Emit) error {
	if d.fatal {
		return err
	}
	emitRunes(substitution(d.fallback, unit, true), emit)
	if !d.silent {
		logFallback(err)
	}
	return nil
}

func (d *utf16Decoder) Flush(emit Emit) error {
	if !d.sought && d.headN > 0 {
		b := d.head[0]
		d.headN = 0
		d.sought = true
		return d.fault(errors.UnexpectedEnd(d.name(), 0), uint32(b), emit)
	}
	if d.haveHi {
		hi := d.hi
		hiStart := d.hiStart
		d.haveHi = false
		if err := d.fault(errors.UnexpectedEnd(d.name(), hiStart), hi, emit); err != nil {
			return err
		}
	}
	if d.haveHalf {
		b := d.half
		d.haveHalf = false
		return d.fault(errors.UnexpectedEnd(d.name(), d.pos-1), uint32(b), emit)
	}
	return nil
}

func (d *utf16Decoder) Catch(err error) error {
	pos := d.pos
	d.Reset()
	return rewrap(errors.PhaseDecode, pos, err)
}

func (d *utf16Decoder) Reset() {
	*d = utf16Decoder{
		fatal:      d.fatal,
		fallback:   d.fallback,
		configured: d.configured,
		endian:     d.configured,
		silent:     d.silent,
	}
}

// utf16Encoder is the streaming text-to-UTF-16 stage.
type utf16Encoder struct {
	fatal    bool
	fallback Fallback
	bom      bool
	endian   Endian
	silent   bool

	started bool
	pos     int64 // code points consumed
}

func newUTF16Encoder(o Options) *utf16Encoder {
	return &utf16Encoder{fatal: o.Fatal, fallback: o.Fallback, bom: o.BOM, endian: o.Endian.resolve(), silent: o.silent}
}

func (e *utf16Encoder) name() string {
	if e.endian == BigEndian {
		return utf16BEName
	}
	return utf16LEName
}

func (e *utf16Encoder) Transform(unit uint32, emit Emit) (bool, error) {
	if !e.started {
		e.started = true
		if e.bom {
			e.unitOut(scalar.BOM, emit)
		}
	}
	at := e.pos
	e.pos++
	if !scalar.Valid(unit) {
		var err *errors.Error
		switch {
		case unit&illFormed != 0:
			unit &^= illFormed
			err = errors.New(errors.PhaseEncode, errors.KindInvalidInput).
				Encoding(e.name()).Position(at).Unit(unit).
				Detail("ill-formed byte 0x%02X in input text", unit).Build()
		case scalar.IsSurrogate(unit):
			err = errors.InvalidSurrogate(errors.PhaseEncode, e.name(), at, unit)
		default:
			err = errors.New(errors.PhaseEncode, errors.KindInvalidInput).
				Encoding(e.name()).Position(at).Unit(unit).
				Detail("code point 0x%X out of range", unit).Build()
		}
		if e.fatal {
			return false, err
		}
		for _, r := range substitution(e.fallback, unit, true) {
			e.runeOut(uint32(r), emit)
		}
		if !e.silent {
			logFallback(err)
		}
		return true, nil
	}
	e.runeOut(unit, emit)
	return true, nil
}

// runeOut emits a validated scalar as one code unit or a surrogate pair.
func (e *utf16Encoder) runeOut(cp uint32, emit Emit) {
	if cp < surrSelf {
		e.unitOut(cp, emit)
		return
	}
	v := cp - surrSelf
	e.unitOut(surrHighMin|v>>10, emit)
	e.unitOut(surrLowMin|v&0x3FF, emit)
}

func (e *utf16Encoder) unitOut(u uint32, emit Emit) {
	if e.endian == LittleEndian {
		emit(u & 0xFF)
		emit(u >> 8)
	} else {
		emit(u >> 8)
		emit(u & 0xFF)
	}
}

func (e *utf16Encoder) Flush(emit Emit) error {
	if !e.started {
		e.started = true
		if e.bom {
			e.unitOut(scalar.BOM, emit)
		}
	}
	return nil
}

func (e *utf16Encoder) Catch(err error) error {
	pos := e.pos
	e.Reset()
	return rewrap(errors.PhaseEncode, pos, err)
}

func (e *utf16Encoder) Reset() {
	*e = utf16Encoder{fatal: e.fatal, fallback: e.fallback, bom: e.bom, endian: e.endian, silent: e.silent}
}

// utf16EncodingFor maps the resolved byte order to its Encoding value.
func utf16EncodingFor(o Options) Encoding {
	if o.Endian.resolve() == BigEndian {
		return UTF16BE
	}
	return UTF16LE
}

// EncodeUTF16 converts text to UTF-16 bytes in the byte order named by
// o.Endian (little-endian by default).
func EncodeUTF16(text string, o Options) ([]byte, error) {
	return Encode(utf16EncodingFor(o), text, o)
}

// DecodeUTF16 converts UTF-16 bytes to text. A leading BOM selects the byte
// order and is consumed; otherwise o.Endian applies.
func DecodeUTF16(data []byte, o Options) (string, error) {
	return Decode(utf16EncodingFor(o), data, o)
}

// VerifyUTF16 reports whether data is well-formed UTF-16.
func VerifyUTF16(data []byte, o Options) bool {
	return Verify(utf16EncodingFor(o), data, o)
}
