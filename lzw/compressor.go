// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"bufio"
	"io"

	"github.com/dsnet/golib/errs"
)

// Compressor is the LZW encoding state machine. It owns a compress-side
// dictionary, the longest still-matching previously-seen byte sequence, and
// a bitBuffer holding code bits not yet aligned to a whole byte.
//
// A Compressor is used for exactly one stream: construct it, call Compress
// zero or more times to feed input, and call Finish exactly once to emit the
// final codeword and flush any trailing bits.
type Compressor struct {
	maxBits int
	dict    compressDict
	prev    []byte
	width   uint
	bits    bitBuffer
	done    bool
}

// NewCompressor creates a Compressor whose dictionary never exceeds
// 1<<maxBits entries. maxBits must be in [9, 32]; an out-of-range value is a
// programmer error and panics.
func NewCompressor(maxBits int) *Compressor {
	checkDictBits(maxBits)
	c := &Compressor{maxBits: maxBits}
	c.resetDict()
	return c
}

// resetDict restores the dictionary to its initial 256-entry state and the
// code width to 8 bits, the state both reachable from construction and from
// a dictionary-overflow reset mid-stream.
func (c *Compressor) resetDict() {
	c.dict.reset()
	c.width = initCodeWidth
}

// Compress reads bytes from r until it reaches end-of-input, emitting
// complete bytes of the LZW code stream to w as they become available.
// Finish must be called afterward to emit the final codeword and flush any
// bits still buffered.
func (c *Compressor) Compress(r io.Reader, w io.Writer) (err error) {
	defer errRecover(&err)
	errs.Assert(!c.done, ErrClosed)

	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	for {
		cur, rerr := br.ReadByte()
		if rerr == io.EOF {
			return nil
		}
		errs.Panic(rerr)
		c.step(cur, w)
	}
}

// step processes a single input byte, extending prev while it still matches
// a dictionary entry, or else emitting the code for prev, inserting the
// mismatching candidate as a new entry, and restarting prev at cur.
func (c *Compressor) step(cur byte, w io.Writer) {
	candidate := append(append([]byte(nil), c.prev...), cur)
	if c.dict.contains(candidate) {
		c.prev = candidate
		return
	}

	c.emit(c.prev)
	c.growDict(candidate)
	c.prev = []byte{cur}
	c.drainBytes(w)
}

// emit writes the code for seq into the bit buffer at the current width.
// seq must already be a dictionary key.
func (c *Compressor) emit(seq []byte) {
	c.bits.pushBits(c.dict.indexOf(seq), c.width)
}

// growDict advances the code width to use for the code that will be emitted
// next, resetting the dictionary first if the entry about to be added would
// overflow it, then inserts candidate into the (possibly just-reset)
// dictionary.
//
// The width/reset decision is made from the dictionary's size *before*
// candidate is added: the overflow check and width advancement account for
// the insertion about to occur, not the one that already happened.
func (c *Compressor) growDict(candidate []byte) {
	if c.dict.len()+1 == 1<<uint(c.maxBits) {
		c.resetDict()
	} else {
		c.width = bitWidth(uint32(c.dict.len()))
	}
	c.dict.insert(candidate)
}

// drainBytes writes out every whole byte currently buffered.
func (c *Compressor) drainBytes(w io.Writer) {
	for {
		b, ok := c.bits.popByte()
		if !ok {
			return
		}
		_, werr := w.Write([]byte{b})
		errs.Panic(werr)
	}
}

// Finish emits the code for the final pending prefix (always a valid
// dictionary key, including on an empty stream where prev stays empty and
// nothing is emitted), then drains the bit buffer to w with zero padding in
// the final byte's low bits. It must be called exactly once per stream,
// after the last Compress call.
func (c *Compressor) Finish(w io.Writer) (err error) {
	defer errRecover(&err)
	errs.Assert(!c.done, ErrClosed)
	c.done = true

	if len(c.prev) > 0 {
		c.emit(c.prev)
	}
	if tail := c.bits.drainRemainingAsBytes(); len(tail) > 0 {
		_, werr := w.Write(tail)
		errs.Panic(werr)
	}
	return nil
}
