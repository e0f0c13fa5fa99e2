package byteview

import (
	"encoding/binary"

	"github.com/wippyai/textcodec/codec"
	"github.com/wippyai/textcodec/errors"
)

// View is read-only indexed access to a sequence of bytes, independent of
// how those bytes are stored.
type View interface {
	// Len returns the byte length of the view.
	Len() int

	// Byte returns the byte at index i.
	Byte(i int) (byte, error)

	// Bytes materializes the whole view as a byte slice.
	Bytes() []byte

	// Slice returns the sub-view [lo, hi). It shares the backing data.
	Slice(lo, hi int) (View, error)
}

// OfBytes returns a view over b. The view aliases b; the caller must not
// mutate it while the view is in use.
func OfBytes(b []byte) View {
	return bytesView(b)
}

// OfString returns a view over the raw UTF-8 bytes of s.
func OfString(s string) View {
	return stringView(s)
}

// OfText serializes text under enc and returns a view over the result.
func OfText(text string, enc codec.Encoding, o codec.Options) (View, error) {
	b, err := codec.Encode(enc, text, o)
	if err != nil {
		return nil, err
	}
	return bytesView(b), nil
}

// OfUint16 returns a view over the words of v serialized in the given byte
// order, two bytes per word. Bytes are produced lazily per index.
func OfUint16(v []uint16, e codec.Endian) View {
	return u16View{words: v, order: byteOrder(e)}
}

// OfUint32 returns a view over the words of v serialized in the given byte
// order, four bytes per word.
func OfUint32(v []uint32, e codec.Endian) View {
	return u32View{words: v, order: byteOrder(e)}
}

// OfUint64 returns a view over the words of v serialized in the given byte
// order, eight bytes per word.
func OfUint64(v []uint64, e codec.Endian) View {
	return u64View{words: v, order: byteOrder(e)}
}

func byteOrder(e codec.Endian) binary.ByteOrder {
	switch e {
	case codec.BigEndian:
		return binary.BigEndian
	case codec.PlatformEndian:
		return binary.NativeEndian
	default:
		return binary.LittleEndian
	}
}

func checkIndex(i, n int) error {
	if i < 0 || i >= n {
		return errors.OutOfBounds(i, n)
	}
	return nil
}

func checkRange(lo, hi, n int) error {
	if lo < 0 || hi < lo || hi > n {
		return errors.OutOfBounds(hi, n)
	}
	return nil
}

type bytesView []byte

func (v bytesView) Len() int { return len(v) }

func (v bytesView) Byte(i int) (byte, error) {
	if err := checkIndex(i, len(v)); err != nil {
		return 0, err
	}
	return v[i], nil
}

func (v bytesView) Bytes() []byte { return v }

func (v bytesView) Slice(lo, hi int) (View, error) {
	if err := checkRange(lo, hi, len(v)); err != nil {
		return nil, err
	}
	return v[lo:hi], nil
}

type stringView string

func (v stringView) Len() int { return len(v) }

func (v stringView) Byte(i int) (byte, error) {
	if err := checkIndex(i, len(v)); err != nil {
		return 0, err
	}
	return v[i], nil
}

func (v stringView) Bytes() []byte { return []byte(v) }

func (v stringView) Slice(lo, hi int) (View, error) {
	if err := checkRange(lo, hi, len(v)); err != nil {
		return nil, err
	}
	return v[lo:hi], nil
}

type u16View struct {
	words []uint16
	order binary.ByteOrder
}

func (v u16View) Len() int { return len(v.words) * 2 }

func (v u16View) Byte(i int) (byte, error) {
	if err := checkIndex(i, v.Len()); err != nil {
		return 0, err
	}
	var b [2]byte
	v.order.PutUint16(b[:], v.words[i/2])
	return b[i%2], nil
}

func (v u16View) Bytes() []byte {
	out := make([]byte, v.Len())
	for i, w := range v.words {
		v.order.PutUint16(out[i*2:], w)
	}
	return out
}

func (v u16View) Slice(lo, hi int) (View, error) {
	return sliceView(v, lo, hi)
}

type u32View struct {
	words []uint32
	order binary.ByteOrder
}

func (v u32View) Len() int { return len(v.words) * 4 }

func (v u32View) Byte(i int) (byte, error) {
	if err := checkIndex(i, v.Len()); err != nil {
		return 0, err
	}
	var b [4]byte
	v.order.PutUint32(b[:], v.words[i/4])
	return b[i%4], nil
}

func (v u32View) Bytes() []byte {
	out := make([]byte, v.Len())
	for i, w := range v.words {
		v.order.PutUint32(out[i*4:], w)
	}
	return out
}

func (v u32View) Slice(lo, hi int) (View, error) {
	return sliceView(v, lo, hi)
}

type u64View struct {
	words []uint64
	order binary.ByteOrder
}

func (v u64View) Len() int { return len(v.words) * 8 }

func (v u64View) Byte(i int) (byte, error) {
	if err := checkIndex(i, v.Len()); err != nil {
		return 0, err
	}
	var b [8]byte
	v.order.PutUint64(b[:], v.words[i/8])
	return b[i%8], nil
}

func (v u64View) Bytes() []byte {
	out := make([]byte, v.Len())
	for i, w := range v.words {
		v.order.PutUint64(out[i*8:], w)
	}
	return out
}

func (v u64View) Slice(lo, hi int) (View, error) {
	return sliceView(v, lo, hi)
}

// window is a byte-granular sub-view over any parent, used where the
// parent's own storage cannot be cut directly (numeric words).
type window struct {
	parent View
	off    int
	n      int
}

func sliceView(parent View, lo, hi int) (View, error) {
	if err := checkRange(lo, hi, parent.Len()); err != nil {
		return nil, err
	}
	return window{parent: parent, off: lo, n: hi - lo}, nil
}

func (v window) Len() int { return v.n }

func (v window) Byte(i int) (byte, error) {
	if err := checkIndex(i, v.n); err != nil {
		return 0, err
	}
	return v.parent.Byte(v.off + i)
}

func (v window) Bytes() []byte {
	out := make([]byte, v.n)
	for i := range out {
		// in-range by construction
		out[i], _ = v.parent.Byte(v.off + i)
	}
	return out
}

func (v window) Slice(lo, hi int) (View, error) {
	if err := checkRange(lo, hi, v.n); err != nil {
		return nil, err
	}
	return window{parent: v.parent, off: v.off + lo, n: hi - lo}, nil
}
