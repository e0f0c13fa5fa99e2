package byteview

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/wippyai/textcodec/codec"
	"github.com/wippyai/textcodec/errors"
)

func TestOfBytes(t *testing.T) {
	v := OfBytes([]byte{1, 2, 3})
	if v.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", v.Len())
	}
	b, err := v.Byte(1)
	if err != nil {
		t.Fatal(err)
	}
	if b != 2 {
		t.Errorf("Byte(1) = %d, want 2", b)
	}
	if _, err := v.Byte(3); err == nil {
		t.Error("Byte(3) expected bounds error")
	}
	if _, err := v.Byte(-1); err == nil {
		t.Error("Byte(-1) expected bounds error")
	}
}

func TestOfString(t *testing.T) {
	v := OfString("héllo")
	if v.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", v.Len())
	}
	if !bytes.Equal(v.Bytes(), []byte("héllo")) {
		t.Errorf("Bytes() = % X", v.Bytes())
	}
	sub, err := v.Slice(1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(sub.Bytes(), []byte("é")) {
		t.Errorf("Slice(1, 3).Bytes() = % X", sub.Bytes())
	}
}

func TestOfText(t *testing.T) {
	v, err := OfText("A€", codec.UTF8, codec.Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x41, 0xE2, 0x82, 0xAC}
	if !bytes.Equal(v.Bytes(), want) {
		t.Errorf("Bytes() = % X, want % X", v.Bytes(), want)
	}

	v, err = OfText("A", codec.UTF16BE, codec.Options{Endian: codec.BigEndian})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(v.Bytes(), []byte{0x00, 0x41}) {
		t.Errorf("utf-16be Bytes() = % X", v.Bytes())
	}

	if _, err := OfText("x", codec.Base64, codec.Options{}); err == nil {
		t.Error("OfText accepted a transfer codec")
	}
}

func TestOfUint16(t *testing.T) {
	words := []uint16{0x1234, 0xABCD}

	le := OfUint16(words, codec.LittleEndian)
	if le.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", le.Len())
	}
	wantLE := []byte{0x34, 0x12, 0xCD, 0xAB}
	if !bytes.Equal(le.Bytes(), wantLE) {
		t.Errorf("le Bytes() = % X, want % X", le.Bytes(), wantLE)
	}
	for i, want := range wantLE {
		got, err := le.Byte(i)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("le Byte(%d) = %#x, want %#x", i, got, want)
		}
	}

	be := OfUint16(words, codec.BigEndian)
	wantBE := []byte{0x12, 0x34, 0xAB, 0xCD}
	if !bytes.Equal(be.Bytes(), wantBE) {
		t.Errorf("be Bytes() = % X, want % X", be.Bytes(), wantBE)
	}
}

func TestOfUint32(t *testing.T) {
	v := OfUint32([]uint32{0xDEADBEEF}, codec.BigEndian)
	want := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	if !bytes.Equal(v.Bytes(), want) {
		t.Errorf("Bytes() = % X, want % X", v.Bytes(), want)
	}
	b, err := v.Byte(2)
	if err != nil {
		t.Fatal(err)
	}
	if b != 0xBE {
		t.Errorf("Byte(2) = %#x, want 0xBE", b)
	}
}

func TestOfUint64(t *testing.T) {
	v := OfUint64([]uint64{0x0102030405060708}, codec.LittleEndian)
	want := []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}
	if !bytes.Equal(v.Bytes(), want) {
		t.Errorf("Bytes() = % X, want % X", v.Bytes(), want)
	}
}

func TestNumericSlice(t *testing.T) {
	v := OfUint16([]uint16{0x1234, 0xABCD}, codec.BigEndian)

	// a cut across a word boundary
	sub, err := v.Slice(1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if sub.Len() != 2 {
		t.Fatalf("sub Len() = %d, want 2", sub.Len())
	}
	if !bytes.Equal(sub.Bytes(), []byte{0x34, 0xAB}) {
		t.Errorf("sub Bytes() = % X, want 34 AB", sub.Bytes())
	}

	// slicing the window again re-anchors into the parent
	inner, err := sub.Slice(1, 2)
	if err != nil {
		t.Fatal(err)
	}
	b, err := inner.Byte(0)
	if err != nil {
		t.Fatal(err)
	}
	if b != 0xAB {
		t.Errorf("inner Byte(0) = %#x, want 0xAB", b)
	}

	if _, err := v.Slice(2, 8); err == nil {
		t.Error("Slice past the end expected bounds error")
	}
	if _, err := sub.Slice(0, 3); err == nil {
		t.Error("Slice past the window expected bounds error")
	}
}

func TestBoundsErrorKind(t *testing.T) {
	_, err := OfBytes([]byte{1}).Byte(5)
	var ce *errors.Error
	if !stderrors.As(err, &ce) {
		t.Fatalf("error type = %T, want *errors.Error", err)
	}
	if ce.Kind != errors.KindOutOfBounds {
		t.Errorf("Kind = %q, want %q", ce.Kind, errors.KindOutOfBounds)
	}
}

func TestRoundTripThroughCodec(t *testing.T) {
	text := "héllo €𐍈"
	v, err := OfText(text, codec.UTF16LE, codec.Options{})
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := codec.DecodeUTF16(v.Bytes(), codec.Options{Fatal: true})
	if err != nil {
		t.Fatal(err)
	}
	if decoded != text {
		t.Errorf("round trip = %q, want %q", decoded, text)
	}
}
