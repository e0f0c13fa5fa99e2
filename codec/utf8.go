package codec

import (
	"github.com/wippyai/textcodec/codec/internal/scalar"
	"github.com/wippyai/textcodec/errors"
)

const utf8Name = "utf-8"

// utf8Decoder is the streaming UTF-8 bytes-to-text stage.
type utf8Decoder struct {
	fatal    bool
	fallback Fallback
	bom      bool
	silent   bool

	carry    [4]byte // bytes of the incomplete sequence
	n        int     // bytes buffered
	need     int     // total bytes the sequence requires
	cp       uint32  // accumulated code point bits
	min      uint32  // smallest value the sequence may legally encode
	seqStart int64   // offset of the lead byte
	pos      int64   // input bytes consumed
}

func newUTF8Decoder(o Options) *utf8Decoder {
	return &utf8Decoder{fatal: o.Fatal, fallback: o.Fallback, bom: o.BOM, silent: o.silent}
}

func (d *utf8Decoder) Transform(unit uint32, emit Emit) (bool, error) {
	b := byte(unit)
	d.pos++
	if d.need == 0 {
		return d.lead(b, emit)
	}
	if b&0xC0 != 0x80 {
		// Malformed at the lead's position; the offending byte is then
		// reprocessed as a fresh lead.
		lead := d.carry[0]
		start := d.seqStart
		d.need, d.n = 0, 0
		err := errors.InvalidContinuation(utf8Name, start, uint32(b))
		if ferr := d.fault(err, uint32(lead), emit); ferr != nil {
			return false, ferr
		}
		return d.lead(b, emit)
	}
	d.carry[d.n] = b
	d.n++
	d.cp = d.cp<<6 | uint32(b&0x3F)
	if d.n < d.need {
		return true, nil
	}

	cp := d.cp
	min := d.min
	lead := d.carry[0]
	start := d.seqStart
	need := d.need
	d.need, d.n = 0, 0

	var verr *errors.Error
	var bad uint32
	switch {
	case cp < min:
		verr = errors.New(errors.PhaseDecode, errors.KindInvalidLeadByte).
			Encoding(utf8Name).Position(start).Unit(uint32(lead)).
			Detail("overlong %d-byte encoding of U+%04X", need, cp).Build()
		bad = uint32(lead)
	case scalar.IsSurrogate(cp):
		verr = errors.InvalidSurrogate(errors.PhaseDecode, utf8Name, start, cp)
		bad = cp
	case cp > scalar.Max:
		verr = errors.New(errors.PhaseDecode, errors.KindInvalidLeadByte).
			Encoding(utf8Name).Position(start).Unit(uint32(lead)).
			Detail("value 0x%X exceeds U+10FFFF", cp).Build()
		bad = uint32(lead)
	}
	if verr != nil {
		if err := d.fault(verr, bad, emit); err != nil {
			return false, err
		}
		return true, nil
	}
	if cp == scalar.BOM && d.bom && start == 0 {
		// leading EF BB BF consumed, not emitted
		return true, nil
	}
	emit(cp)
	return true, nil
}

// lead classifies b as a sequence start. The caller has already advanced pos.
func (d *utf8Decoder) lead(b byte, emit Emit) (bool, error) {
	d.seqStart = d.pos - 1
	switch {
	case b < 0x80:
		emit(uint32(b))
	case b&0xE0 == 0xC0:
		d.begin(b, 2, b&0x1F)
	case b&0xF0 == 0xE0:
		d.begin(b, 3, b&0x0F)
	case b&0xF8 == 0xF0:
		d.begin(b, 4, b&0x07)
	default:
		if err := d.fault(errors.InvalidLeadByte(utf8Name, d.seqStart, uint32(b)), uint32(b), emit); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (d *utf8Decoder) begin(b byte, need int, bits byte) {
	d.carry[0] = b
	d.n = 1
	d.need = need
	d.cp = uint32(bits)
	d.min = scalar.MinForUTF8Len(need)
}

// fault resolves one invalid decision: under Fatal it returns err, else the
// fallback text replaces the malformed unit and the stream continues.
func (d *utf8Decoder) fault(err *errors.Error, unit uint32, emit Emit) error {
	if d.fatal {
		return err
	}
	emitRunes(substitution(d.fallback, unit, true), emit)
	if !d.silent {
		logFallback(err)
	}
	return nil
}

func (d *utf8Decoder) Flush(emit Emit) error {
	if d.need == 0 {
		return nil
	}
	lead := d.carry[0]
	start := d.seqStart
	d.need, d.n = 0, 0
	return d.fault(errors.UnexpectedEnd(utf8Name, start), uint32(lead), emit)
}

func (d *utf8Decoder) Catch(err error) error {
	pos := d.pos
	d.Reset()
	return rewrap(errors.PhaseDecode, pos, err)
}

func (d *utf8Decoder) Reset() {
	*d = utf8Decoder{fatal: d.fatal, fallback: d.fallback, bom: d.bom, silent: d.silent}
}

// utf8Encoder is the streaming text-to-UTF-8 stage.
type utf8Encoder struct {
	fatal    bool
	fallback Fallback
	bom      bool
	silent   bool

	started bool
	pos     int64 // code points consumed
}

func newUTF8Encoder(o Options) *utf8Encoder {
	return &utf8Encoder{fatal: o.Fatal, fallback: o.Fallback, bom: o.BOM, silent: o.silent}
}

func (e *utf8Encoder) Transform(unit uint32, emit Emit) (bool, error) {
	if !e.started {
		e.started = true
		if e.bom {
			emitBytes("\xEF\xBB\xBF", emit)
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
				Encoding(utf8Name).Position(at).Unit(unit).
				Detail("ill-formed byte 0x%02X in input text", unit).Build()
		case scalar.IsSurrogate(unit):
			err = errors.InvalidSurrogate(errors.PhaseEncode, utf8Name, at, unit)
		default:
			err = errors.New(errors.PhaseEncode, errors.KindInvalidInput).
				Encoding(utf8Name).Position(at).Unit(unit).
				Detail("code point 0x%X out of range", unit).Build()
		}
		if e.fatal {
			return false, err
		}
		for _, r := range substitution(e.fallback, unit, true) {
			putUTF8(uint32(r), emit)
		}
		if !e.silent {
			logFallback(err)
		}
		return true, nil
	}
	putUTF8(unit, emit)
	return true, nil
}

func (e *utf8Encoder) Flush(emit Emit) error {
	// an empty stream still gets its BOM
	if !e.started {
		e.started = true
		if e.bom {
			emitBytes("\xEF\xBB\xBF", emit)
		}
	}
	return nil
}

func (e *utf8Encoder) Catch(err error) error {
	pos := e.pos
	e.Reset()
	return rewrap(errors.PhaseEncode, pos, err)
}

func (e *utf8Encoder) Reset() {
	*e = utf8Encoder{fatal: e.fatal, fallback: e.fallback, bom: e.bom, silent: e.silent}
}

// putUTF8 emits the 1-4 byte UTF-8 form of a validated scalar.
func putUTF8(cp uint32, emit Emit) {
	switch {
	case cp < 0x80:
		emit(cp)
	case cp < 0x800:
		emit(0xC0 | cp>>6)
		emit(0x80 | cp&0x3F)
	case cp < 0x10000:
		emit(0xE0 | cp>>12)
		emit(0x80 | cp>>6&0x3F)
		emit(0x80 | cp&0x3F)
	default:
		emit(0xF0 | cp>>18)
		emit(0x80 | cp>>12&0x3F)
		emit(0x80 | cp>>6&0x3F)
		emit(0x80 | cp&0x3F)
	}
}

// EncodeUTF8 converts text to its UTF-8 byte representation.
func EncodeUTF8(text string, o Options) ([]byte, error) {
	return Encode(UTF8, text, o)
}

// DecodeUTF8 converts UTF-8 bytes to text.
func DecodeUTF8(data []byte, o Options) (string, error) {
	return Decode(UTF8, data, o)
}

// VerifyUTF8 reports whether data is well-formed UTF-8.
func VerifyUTF8(data []byte, o Options) bool {
	return Verify(UTF8, data, o)
}
