// Package kotodict compiles human-authored lexicon CSV into the compact
// binary dictionary block a morphological analyzer memory-maps at run
// time.
//
// The root package holds the error taxonomy and structured logging shared
// by the subpackages. The compiler itself lives in build, the binary
// reader and the id/POS primitives in dictionary, and the seekable output
// sink in output.
package kotodict
