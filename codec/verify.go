package codec

// Verify reports whether data is a valid enc serialization under o. The
// Base64 forms are matched against a precompiled whole-buffer pattern; the
// other encodings run the decode machine with recovery disabled and report
// whether it completed without a fault.
func Verify(enc Encoding, data []byte, o Options) bool {
	switch enc {
	case Base64:
		return VerifyBase64(string(data), o)
	case Base64URL:
		return VerifyBase64URL(string(data), o)
	}
	v, err := NewVerifyPipe(enc, o)
	if err != nil {
		return false
	}
	if err := drainBytes(v, data, discard); err != nil {
		return false
	}
	return v.Valid()
}
