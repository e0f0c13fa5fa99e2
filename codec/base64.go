package codec

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/wippyai/textcodec/errors"
)

const (
	base64Name    = "base64"
	base64URLName = "base64url"

	alphabetStd = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	alphabetURL = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

	base64Pad = '='
)

// 6-bit reverse lookup tables, -1 for characters outside the alphabet.
var (
	lookupStd   [256]int8
	lookupURL   [256]int8
	lookupLoose [256]int8
)

func init() {
	for i := range lookupStd {
		lookupStd[i] = -1
		lookupURL[i] = -1
		lookupLoose[i] = -1
	}
	for i := 0; i < 64; i++ {
		lookupStd[alphabetStd[i]] = int8(i)
		lookupURL[alphabetURL[i]] = int8(i)
		lookupLoose[alphabetStd[i]] = int8(i)
		lookupLoose[alphabetURL[i]] = int8(i)
	}
}

// Precompiled verify patterns, indexed by [alphabet][padding policy]. The
// loose alphabet tolerates both +/ and -_ in one input.
var base64Patterns [3][3]*regexp.Regexp

func init() {
	classes := [3]string{`[A-Za-z0-9+/]`, `[A-Za-z0-9_-]`, `[A-Za-z0-9+/_-]`}
	shapes := [3]string{
		PadEither:    `^(?:%[1]s{4})*(?:%[1]s{2}(?:==)?|%[1]s{3}=?)?$`,
		PadRequired:  `^(?:%[1]s{4})*(?:%[1]s{2}==|%[1]s{3}=)?$`,
		PadForbidden: `^(?:%[1]s{4})*(?:%[1]s{2,3})?$`,
	}
	for a, class := range classes {
		for p, shape := range shapes {
			base64Patterns[a][p] = regexp.MustCompile(fmt.Sprintf(shape, class))
		}
	}
}

func base64Alphabet(o Options, url bool) int {
	if o.Loose {
		return 2
	}
	if url {
		return 1
	}
	return 0
}

// base64Encoder is the streaming bytes-to-Base64 stage. It cannot fault:
// every input byte is representable.
type base64Encoder struct {
	alphabet string
	pad      bool

	carry [2]byte
	n     int
	pos   int64
}

func newBase64Encoder(o Options, url bool) *base64Encoder {
	alphabet := alphabetStd
	if url {
		alphabet = alphabetURL
	}
	return &base64Encoder{alphabet: alphabet, pad: o.Padding != PadForbidden}
}

func (e *base64Encoder) Transform(unit uint32, emit Emit) (bool, error) {
	b := byte(unit)
	e.pos++
	if e.n < 2 {
		e.carry[e.n] = b
		e.n++
		return true, nil
	}
	b0, b1, b2 := e.carry[0], e.carry[1], b
	e.n = 0
	emit(uint32(e.alphabet[b0>>2]))
	emit(uint32(e.alphabet[b0&0x03<<4|b1>>4]))
	emit(uint32(e.alphabet[b1&0x0F<<2|b2>>6]))
	emit(uint32(e.alphabet[b2&0x3F]))
	return true, nil
}

func (e *base64Encoder) Flush(emit Emit) error {
	switch e.n {
	case 1:
		b0 := e.carry[0]
		emit(uint32(e.alphabet[b0>>2]))
		emit(uint32(e.alphabet[b0&0x03<<4]))
		if e.pad {
			emit(base64Pad)
			emit(base64Pad)
		}
	case 2:
		b0, b1 := e.carry[0], e.carry[1]
		emit(uint32(e.alphabet[b0>>2]))
		emit(uint32(e.alphabet[b0&0x03<<4|b1>>4]))
		emit(uint32(e.alphabet[b1&0x0F<<2]))
		if e.pad {
			emit(base64Pad)
		}
	}
	e.n = 0
	return nil
}

func (e *base64Encoder) Catch(err error) error {
	pos := e.pos
	e.Reset()
	return rewrap(errors.PhaseEncode, pos, err)
}

func (e *base64Encoder) Reset() {
	*e = base64Encoder{alphabet: e.alphabet, pad: e.pad}
}

// base64Decoder is the streaming Base64-to-bytes stage.
type base64Decoder struct {
	fatal    bool
	fallback Fallback
	lookup   *[256]int8
	name     string
	padding  Padding
	silent   bool

	quad [4]byte // accumulated 6-bit values
	raw  [4]byte // raw characters, for error reporting
	qn   int
	pads int
	done bool // a padded final group completed; nothing may follow
	pos  int64
}

func newBase64Decoder(o Options, url bool) *base64Decoder {
	lookup := &lookupStd
	name := base64Name
	if url {
		lookup = &lookupURL
		name = base64URLName
	}
	if o.Loose {
		lookup = &lookupLoose
	}
	return &base64Decoder{fatal: o.Fatal, fallback: o.Fallback, lookup: lookup, name: name, padding: o.Padding, silent: o.silent}
}

func (d *base64Decoder) Transform(unit uint32, emit Emit) (bool, error) {
	c := byte(unit)
	at := d.pos
	d.pos++

	if d.done {
		err := errors.New(errors.PhaseDecode, errors.KindInvalidCharacter).
			Encoding(d.name).Position(at).Unit(unit).
			Detail("data after final padded group").Build()
		if ferr := d.fault(err, unit, emit); ferr != nil {
			return false, ferr
		}
		return true, nil
	}

	if c == base64Pad {
		var err *errors.Error
		switch {
		case d.padding == PadForbidden:
			err = errors.New(errors.PhaseDecode, errors.KindInvalidCharacter).
				Encoding(d.name).Position(at).Unit(unit).
				Detail("padding is forbidden").Build()
		case d.qn < 2:
			err = errors.New(errors.PhaseDecode, errors.KindInvalidCharacter).
				Encoding(d.name).Position(at).Unit(unit).
				Detail("unexpected padding character").Build()
		}
		if err != nil {
			if ferr := d.fault(err, unit, emit); ferr != nil {
				return false, ferr
			}
			return true, nil
		}
		d.pads++
		if d.qn+d.pads == 4 {
			d.finish(emit)
			d.done = true
		}
		return true, nil
	}

	if d.pads > 0 {
		err := errors.New(errors.PhaseDecode, errors.KindInvalidCharacter).
			Encoding(d.name).Position(at).Unit(unit).
			Detail("data after padding").Build()
		if ferr := d.fault(err, unit, emit); ferr != nil {
			return false, ferr
		}
		return true, nil
	}

	v := d.lookup[c]
	if v < 0 {
		if ferr := d.fault(errors.InvalidCharacter(d.name, at, unit), unit, emit); ferr != nil {
			return false, ferr
		}
		return true, nil
	}
	d.quad[d.qn] = byte(v)
	d.raw[d.qn] = c
	d.qn++
	if d.qn == 4 {
		q := d.quad
		d.qn = 0
		emit(uint32(q[0])<<2 | uint32(q[1])>>4)
		emit(uint32(q[1])&0x0F<<4 | uint32(q[2])>>2)
		emit(uint32(q[2])&0x03<<6 | uint32(q[3]))
	}
	return true, nil
}

// finish drains a final group of 2 or 3 characters into 1 or 2 bytes.
func (d *base64Decoder) finish(emit Emit) {
	q := d.quad
	switch d.qn {
	case 2:
		emit(uint32(q[0])<<2 | uint32(q[1])>>4)
	case 3:
		emit(uint32(q[0])<<2 | uint32(q[1])>>4)
		emit(uint32(q[1])&0x0F<<4 | uint32(q[2])>>2)
	}
	d.qn = 0
	d.pads = 0
}

func (d *base64Decoder) fault(err *errors.Error, unit uint32, emit Emit) error {
	if d.fatal {
		return err
	}
	emitBytes(substitution(d.fallback, unit, false), emit)
	if !d.silent {
		logFallback(err)
	}
	return nil
}

func (d *base64Decoder) Flush(emit Emit) error {
	if d.qn == 0 || d.done {
		d.done = false
		return nil
	}
	start := d.pos - int64(d.qn)
	switch {
	case d.qn == 1:
		unit := uint32(d.raw[0])
		d.qn = 0
		return d.fault(errors.InvalidLength(d.name, start, "a final group needs at least 2 characters"), unit, emit)
	case d.padding == PadRequired:
		unit := uint32(d.raw[0])
		d.qn = 0
		return d.fault(errors.InvalidLength(d.name, start, "missing padding on final group"), unit, emit)
	}
	d.finish(emit)
	return nil
}

func (d *base64Decoder) Catch(err error) error {
	pos := d.pos
	d.Reset()
	return rewrap(errors.PhaseDecode, pos, err)
}

func (d *base64Decoder) Reset() {
	*d = base64Decoder{fatal: d.fatal, fallback: d.fallback, lookup: d.lookup, name: d.name, padding: d.padding, silent: d.silent}
}

// EncodeBase64 converts bytes to standard-alphabet Base64 text.
func EncodeBase64(data []byte, o Options) string {
	return encodeBase64(data, o, false)
}

// EncodeBase64URL converts bytes to URL-safe Base64 text.
func EncodeBase64URL(data []byte, o Options) string {
	return encodeBase64(data, o, true)
}

func encodeBase64(data []byte, o Options, url bool) string {
	st := newBase64Encoder(o, url)
	var b strings.Builder
	b.Grow(MeasureBase64Size(len(data), o))
	// the base64 encoder never faults
	_ = drainBytes(st, data, func(u uint32) { b.WriteByte(byte(u)) })
	return b.String()
}

// DecodeBase64 converts standard-alphabet Base64 text to bytes.
func DecodeBase64(s string, o Options) ([]byte, error) {
	return decodeBase64(s, o, false)
}

// DecodeBase64URL converts URL-safe Base64 text to bytes.
func DecodeBase64URL(s string, o Options) ([]byte, error) {
	return decodeBase64(s, o, true)
}

func decodeBase64(s string, o Options, url bool) ([]byte, error) {
	st := newBase64Decoder(o, url)
	size := 0
	if o.Fallback == nil {
		if n, err := MeasureBase64Length(s, o); err == nil {
			size = n
		}
	}
	buf := make([]byte, 0, size)
	if err := drainText(st, s, func(u uint32) { buf = append(buf, byte(u)) }); err != nil {
		return nil, err
	}
	return buf, nil
}

// VerifyBase64 reports whether s matches the standard-alphabet pattern for
// the padding policy in o.
func VerifyBase64(s string, o Options) bool {
	return base64Patterns[base64Alphabet(o, false)][o.Padding].MatchString(s)
}

// VerifyBase64URL reports whether s matches the URL-safe pattern for the
// padding policy in o.
func VerifyBase64URL(s string, o Options) bool {
	return base64Patterns[base64Alphabet(o, true)][o.Padding].MatchString(s)
}
