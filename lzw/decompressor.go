// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"bufio"
	"io"

	"github.com/dsnet/golib/errs"
)

// Decompressor is the LZW decoding state machine, the mirror image of
// Compressor. It owns a decompress-side dictionary, the most recently
// emitted word (used to extend the dictionary one byte at a time, lagging
// the compressor's own growth by one step), and a bitBuffer holding input
// bits not yet consumed as a code.
type Decompressor struct {
	maxBits int
	dict    decompressDict
	word    []byte
	width   uint
	bits    bitBuffer
	done    bool
}

// NewDecompressor creates a Decompressor whose dictionary never exceeds
// 1<<maxBits entries. maxBits must be in [9, 32]; an out-of-range value is a
// programmer error and panics.
func NewDecompressor(maxBits int) *Decompressor {
	checkDictBits(maxBits)
	d := &Decompressor{maxBits: maxBits}
	d.resetDict()
	return d
}

// resetDict restores the dictionary to its initial 256-entry state and the
// read width to the 8 bits needed to address it (computed as
// bitWidth(len-1), since immediately after a reset the next code read is
// always one of the 256 literals, never the not-yet-existing 257th entry).
func (d *Decompressor) resetDict() {
	d.dict.reset()
	d.width = bitWidth(uint32(d.dict.len() - 1))
}

// Decompress reads the LZW code stream from r and writes the decoded bytes
// to w until r is exhausted. A reader that runs dry before a whole code can
// be assembled from buffered bits ends the stream successfully: those
// leftover bits are the encoder's final zero padding, not an error.
func (d *Decompressor) Decompress(r io.Reader, w io.Writer) (err error) {
	defer errRecover(&err)
	errs.Assert(!d.done, ErrClosed)

	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	for {
		for d.bits.len() < int(d.width) {
			b, rerr := br.ReadByte()
			if rerr == io.EOF {
				d.done = true
				return nil
			}
			errs.Panic(rerr)
			d.bits.pushBits(uint32(b), 8)
		}
		idx, _ := d.bits.popBits(d.width)
		d.step(idx, w)
	}
}

// step resolves one code index to a codeword, writes it out, and grows the
// dictionary by one entry (the previous word extended by one byte).
//
// The decoder trails the encoder's dictionary growth by exactly one code:
// the entry this step adds is "previous word + first byte of this word",
// which is the same entry the encoder installed one emission earlier. So a
// fresh word must be pushed (when there is one) before resolving idx via
// dict.get, since in the K-w-K case idx names the entry this step is in the
// middle of creating. The code-width recomputation below then runs every
// step, not only on a step that pushes: dict.len() already sits at 256 at
// the very start (before any entry has been learned), and that alone is
// enough to require a 9-bit next code, the same way the compressor's width
// advances off its dictionary size regardless of what the zeroth entry was.
func (d *Decompressor) step(idx uint32, w io.Writer) {
	errs.Assert(idx <= uint32(d.dict.len()), ErrCorrupt)
	switch {
	case idx == uint32(d.dict.len()):
		// K-w-K-w-K case: the encoder just assigned this index to a pattern
		// that repeats its own first byte.
		d.word = append(d.word, d.word[0])
	case len(d.word) > 0:
		d.word = append(d.word, d.dict.get(idx)[0])
	}
	if len(d.word) > 0 {
		d.dict.push(d.word)
	}

	code := d.dict.get(idx)
	_, werr := w.Write(code)
	errs.Panic(werr)
	d.word = append([]byte(nil), code...)

	if d.dict.len()+1 == 1<<uint(d.maxBits) {
		d.resetDict()
	} else {
		d.width = bitWidth(uint32(d.dict.len()))
	}
}
