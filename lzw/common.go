// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package lzw implements the LZW compressed data format: a dictionary-based
// codec emitting variable-width codes that grow as the dictionary grows and
// reset once the dictionary reaches its configured maximum size.
//
// Unlike compress/lzw in the standard library, whose codes never exceed 12
// bits, this package lets callers choose a dictionary size bound (in bits)
// at construction; literals are always 8 bits wide. Both the Compressor and
// Decompressor derive their code width solely from the current dictionary
// size, so no width information is transmitted in the stream.
package lzw

import (
	"math/bits"

	"github.com/dsnet/golib/errs"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "lzw: " + string(e) }

var (
	// ErrCorrupt reports a decoded code index beyond the current dictionary.
	ErrCorrupt error = Error("stream is corrupted")

	// ErrClosed reports use of a Compressor after Finish has already run.
	ErrClosed error = Error("codec already finished")
)

const (
	// minDictBits and maxDictBits bound the max_bits construction parameter.
	minDictBits = 9
	maxDictBits = 32

	// literalCount is the number of single-byte entries the dictionary is
	// seeded with: one for every possible byte value.
	literalCount = 1 << 8

	// initCodeWidth is the code width immediately following a dictionary
	// reset (bits needed to address literalCount entries).
	initCodeWidth = 8
)

// errRecover turns a panicked error into a returned one, the same
// defer-at-the-top-of-the-call discipline xflate/meta.Reader.decodeBlock
// uses around errs.Panic/errs.Assert. A non-error panic (including a
// runtime.Error, which indicates a genuine bug rather than a data- or
// I/O-driven failure) propagates normally.
func errRecover(err *error) {
	errs.Recover(err)
}

// checkDictBits panics (a programmer error, not a data error) if bits falls
// outside the range the format allows.
func checkDictBits(bits int) {
	errs.Assert(bits >= minDictBits && bits <= maxDictBits, Error("max_bits out of range [9, 32]"))
}

// bitWidth reports the number of bits needed to represent n without leading
// zeros, i.e. the position of the highest set bit plus one. bitWidth(0) == 0.
func bitWidth(n uint32) uint {
	return uint(bits.Len32(n))
}
