// Package byteview provides uniform, bounds-checked byte access over
// heterogeneous backing data: byte slices, strings, transcoded text, and
// endianness-aware numeric slices.
//
// A View hides how its bytes are stored. Callers index, slice and
// materialize through one interface whether the source is a []byte, the
// raw UTF-8 bytes of a string, text serialized through the codec engine,
// or a []uint16/[]uint32/[]uint64 whose words are serialized per index in
// a chosen byte order without materializing the whole buffer first.
//
// Views are immutable windows: Slice shares the backing data, and Bytes
// returns a fresh copy for the numeric and windowed sources but the
// backing slice itself for OfBytes (callers must not mutate it while the
// view is live).
package byteview
