// Package scalar provides Unicode scalar value arithmetic for the codec
// package.
//
// It holds the scalar range and surrogate boundaries, encoded-width
// calculations for UTF-8 and UTF-16, and overflow-checked integer math used
// by size measurement.
//
// This package is internal to the codec.
package scalar
