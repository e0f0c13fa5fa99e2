package codec

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/wippyai/textcodec/errors"
)

// driveDecode feeds data to a fresh decode stage one byte per Transform
// call and collects the emitted code points.
func driveDecode(t *testing.T, enc Encoding, data []byte, opts Options) string {
	t.Helper()
	st, err := NewDecodePipe(enc, opts)
	if err != nil {
		t.Fatalf("NewDecodePipe(%s): %v", enc, err)
	}
	var b strings.Builder
	if err := drainBytes(st, data, func(u uint32) { b.WriteRune(rune(u)) }); err != nil {
		t.Fatalf("drain (%s): %v", enc, err)
	}
	return b.String()
}

func TestStreamingMatchesWholeBuffer(t *testing.T) {
	tests := []struct {
		name string
		enc  Encoding
		data []byte
		opts Options
	}{
		{"utf8 clean", UTF8, []byte("héllo €𐍈"), Options{}},
		{"utf8 invalid", UTF8, []byte{0x41, 0xFF, 0xE2, 0x82}, Options{}},
		{"utf8 bom", UTF8, []byte{0xEF, 0xBB, 0xBF, 0x41}, Options{BOM: true}},
		{"utf16 bom", UTF16LE, []byte{0xFF, 0xFE, 0x48, 0x00, 0x00, 0xD8, 0x48, 0xDF}, Options{}},
		{"utf16 lone surrogate", UTF16LE, []byte{0x00, 0xD8, 0x41, 0x00}, Options{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			streamed := driveDecode(t, tt.enc, tt.data, tt.opts)
			whole, err := Decode(tt.enc, tt.data, tt.opts)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if streamed != whole {
				t.Errorf("streamed %q, whole-buffer %q", streamed, whole)
			}
		})
	}
}

func TestStreamingTransferCodecs(t *testing.T) {
	data := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00}
	for _, enc := range []Encoding{Base64, Base64URL, Hex} {
		st, err := NewEncodePipe(enc, Options{})
		if err != nil {
			t.Fatalf("NewEncodePipe(%s): %v", enc, err)
		}
		var streamed []byte
		if err := drainBytes(st, data, func(u uint32) { streamed = append(streamed, byte(u)) }); err != nil {
			t.Fatalf("drain (%s): %v", enc, err)
		}

		var whole string
		switch enc {
		case Base64:
			whole = EncodeBase64(data, Options{})
		case Base64URL:
			whole = EncodeBase64URL(data, Options{})
		case Hex:
			whole = EncodeHex(data, Options{})
		}
		if string(streamed) != whole {
			t.Errorf("%s: streamed %q, whole-buffer %q", enc, streamed, whole)
		}
	}
}

func TestStageReuseAfterCatch(t *testing.T) {
	st, err := NewDecodePipe(UTF8, Options{Fatal: true})
	if err != nil {
		t.Fatal(err)
	}

	if derr := drainBytes(st, []byte{0xFF}, discard); derr == nil {
		t.Fatal("expected error on invalid input")
	}

	// Catch inside the drive reset the stage; the next stream starts clean
	var b strings.Builder
	if derr := drainBytes(st, []byte("ok"), func(u uint32) { b.WriteRune(rune(u)) }); derr != nil {
		t.Fatalf("reuse after error: %v", derr)
	}
	if b.String() != "ok" {
		t.Errorf("got %q, want ok", b.String())
	}
}

func TestStageResetBetweenStreams(t *testing.T) {
	st, err := NewDecodePipe(UTF16LE, Options{})
	if err != nil {
		t.Fatal(err)
	}

	// first stream selects big endian via BOM
	var first strings.Builder
	if derr := drainBytes(st, []byte{0xFE, 0xFF, 0x00, 0x41}, func(u uint32) { first.WriteRune(rune(u)) }); derr != nil {
		t.Fatal(derr)
	}
	if first.String() != "A" {
		t.Fatalf("first stream = %q", first.String())
	}

	// after Reset the configured order applies again and the BOM state rearms
	st.Reset()
	var second strings.Builder
	if derr := drainBytes(st, []byte{0x41, 0x00}, func(u uint32) { second.WriteRune(rune(u)) }); derr != nil {
		t.Fatal(derr)
	}
	if second.String() != "A" {
		t.Errorf("second stream = %q", second.String())
	}
}

func TestVerifierReuse(t *testing.T) {
	v, err := NewVerifyPipe(UTF8, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if derr := drainBytes(v, []byte{0xFF}, discard); derr != nil {
		t.Fatalf("verifier must swallow faults: %v", derr)
	}
	if v.Valid() {
		t.Error("invalid input reported valid")
	}

	v.Reset()
	if derr := drainBytes(v, []byte("ok"), discard); derr != nil {
		t.Fatal(derr)
	}
	if !v.Valid() {
		t.Error("valid input reported invalid")
	}
}

func TestVerifierShortCircuits(t *testing.T) {
	v, err := NewVerifyPipe(UTF8, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := v.Transform(0xFF, discard); err != nil {
		t.Fatal(err)
	}
	cont, err := v.Transform('A', discard)
	if err != nil {
		t.Fatal(err)
	}
	if cont {
		t.Error("verifier kept asking for input after the stream went invalid")
	}
}

func TestNewPipeUnsupported(t *testing.T) {
	for _, enc := range []Encoding{ShiftJIS, GB18030, Windows1252, Encoding(200)} {
		if _, err := NewEncodePipe(enc, Options{}); err == nil {
			t.Errorf("NewEncodePipe(%s) accepted a reserved encoding", enc)
		}
		if _, err := NewDecodePipe(enc, Options{}); err == nil {
			t.Errorf("NewDecodePipe(%s) accepted a reserved encoding", enc)
		}
	}
}

func TestEncodeInto(t *testing.T) {
	tests := []struct {
		name        string
		enc         Encoding
		text        string
		dst         int
		opts        Options
		wantRead    int
		wantWritten int
		want        []byte
	}{
		{"exact fit", UTF8, "A€", 4, Options{}, 4, 4, []byte{0x41, 0xE2, 0x82, 0xAC}},
		{"roomy", UTF8, "A", 8, Options{}, 1, 1, []byte{0x41}},
		{"partial stop", UTF8, "A€", 2, Options{}, 1, 1, []byte{0x41}},
		{"zero destination", UTF8, "A", 0, Options{}, 0, 0, nil},
		{"bom must fit with first unit", UTF8, "A", 2, Options{BOM: true}, 0, 0, nil},
		{"utf16 pair boundary", UTF16LE, "A𐍈", 4, Options{}, 1, 2, []byte{0x41, 0x00}},
		{"empty text", UTF8, "", 4, Options{}, 0, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]byte, tt.dst)
			read, written, err := EncodeInto(tt.enc, tt.text, dst, tt.opts)
			if err != nil {
				t.Fatalf("EncodeInto: %v", err)
			}
			if read != tt.wantRead || written != tt.wantWritten {
				t.Errorf("read/written = %d/%d, want %d/%d", read, written, tt.wantRead, tt.wantWritten)
			}
			if !bytes.Equal(dst[:written], tt.want) {
				t.Errorf("output = % X, want % X", dst[:written], tt.want)
			}
		})
	}
}

func TestEncodeIntoMatchesEncode(t *testing.T) {
	for _, text := range measureTexts {
		want, err := EncodeUTF8(text, Options{})
		if err != nil {
			t.Fatal(err)
		}
		dst := make([]byte, len(want))
		read, written, err := EncodeInto(UTF8, text, dst, Options{})
		if err != nil {
			t.Fatal(err)
		}
		if read != len(text) || written != len(want) {
			t.Errorf("EncodeInto(%q): read/written = %d/%d, want %d/%d", text, read, written, len(text), len(want))
		}
		if !bytes.Equal(dst, want) {
			t.Errorf("EncodeInto(%q) = % X, want % X", text, dst, want)
		}
	}
}

func TestEncodeIntoIllFormedText(t *testing.T) {
	dst := make([]byte, 8)
	read, written, err := EncodeInto(UTF8, "\xFF", dst, Options{Fatal: true})
	if err == nil {
		t.Fatal("EncodeInto expected error for ill-formed text under Fatal")
	}
	if read != 0 || written != 0 {
		t.Errorf("read/written = %d/%d, want 0/0", read, written)
	}
	var ce *errors.Error
	if !stderrors.As(err, &ce) {
		t.Fatalf("error type = %T, want *errors.Error", err)
	}
	if ce.Kind != errors.KindInvalidInput {
		t.Errorf("Kind = %q, want %q", ce.Kind, errors.KindInvalidInput)
	}

	read, written, err = EncodeInto(UTF8, "\xFF", dst, Options{})
	if err != nil {
		t.Fatalf("EncodeInto: %v", err)
	}
	if read != 1 || written != 3 {
		t.Errorf("read/written = %d/%d, want 1/3", read, written)
	}
	if !bytes.Equal(dst[:written], []byte{0xEF, 0xBF, 0xBD}) {
		t.Errorf("output = % X, want EF BF BD", dst[:written])
	}
}

func TestEncodeIntoBOMOnly(t *testing.T) {
	dst := make([]byte, 3)
	read, written, err := EncodeInto(UTF8, "", dst, Options{BOM: true})
	if err != nil {
		t.Fatalf("EncodeInto: %v", err)
	}
	if read != 0 || written != 3 {
		t.Errorf("read/written = %d/%d, want 0/3", read, written)
	}
	if !bytes.Equal(dst, []byte{0xEF, 0xBB, 0xBF}) {
		t.Errorf("output = % X, want EF BB BF", dst)
	}

	small := make([]byte, 2)
	_, written, err = EncodeInto(UTF8, "", small, Options{BOM: true})
	if err == nil {
		t.Fatal("EncodeInto expected error when the byte order mark cannot fit")
	}
	if written != 0 {
		t.Errorf("written = %d, want 0", written)
	}
	var ce *errors.Error
	if !stderrors.As(err, &ce) {
		t.Fatalf("error type = %T, want *errors.Error", err)
	}
	if ce.Kind != errors.KindOutOfBounds {
		t.Errorf("Kind = %q, want %q", ce.Kind, errors.KindOutOfBounds)
	}
}

func TestEncodeIntoUnsupported(t *testing.T) {
	if _, _, err := EncodeInto(Base64, "x", make([]byte, 4), Options{}); err == nil {
		t.Error("EncodeInto accepted a transfer codec")
	}
}
