// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

// newSeedEntries returns the 256 single-byte sequences every dictionary is
// initialized (and reset) to, in byte-value order, so entry b always gets
// index b. Sharing this one routine between both dictionary flavors is what
// keeps the compressor and decompressor's otherwise entirely separate
// dictionaries from drifting apart after a reset.
func newSeedEntries() [][]byte {
	entries := make([][]byte, literalCount)
	for i := range entries {
		entries[i] = []byte{byte(i)}
	}
	return entries
}

// compressDict is the append-only byte-sequence -> index mapping used while
// encoding. Lookups are keyed by the string conversion of a byte sequence,
// the standard Go idiom for using a []byte as a map key without an
// allocating wrapper type.
type compressDict struct {
	index map[string]uint32
	count uint32
}

// reset restores the dictionary to its initial 256-entry state.
func (d *compressDict) reset() {
	if d.index == nil {
		d.index = make(map[string]uint32, literalCount*2)
	} else {
		for k := range d.index {
			delete(d.index, k)
		}
	}
	for _, e := range newSeedEntries() {
		d.index[string(e)] = uint32(len(d.index))
	}
	d.count = uint32(len(d.index))
}

// contains reports whether seq is already a dictionary key.
func (d *compressDict) contains(seq []byte) bool {
	_, ok := d.index[string(seq)]
	return ok
}

// indexOf returns the index assigned to seq. The caller must have already
// verified seq is present via contains.
func (d *compressDict) indexOf(seq []byte) uint32 {
	return d.index[string(seq)]
}

// insert adds seq as the next entry and returns its assigned index.
func (d *compressDict) insert(seq []byte) uint32 {
	idx := d.count
	d.index[string(seq)] = idx
	d.count++
	return idx
}

// len reports the number of entries currently in the dictionary.
func (d *compressDict) len() int { return int(d.count) }

// decompressDict is the append-only index -> byte-sequence mapping used
// while decoding.
type decompressDict struct {
	entries [][]byte
}

// reset restores the dictionary to its initial 256-entry state.
func (d *decompressDict) reset() {
	d.entries = newSeedEntries()
}

// get returns the byte sequence stored at index i. The caller must have
// already verified i < d.len().
func (d *decompressDict) get(i uint32) []byte { return d.entries[i] }

// push appends seq as the next entry.
func (d *decompressDict) push(seq []byte) { d.entries = append(d.entries, seq) }

// len reports the number of entries currently in the dictionary.
func (d *decompressDict) len() int { return len(d.entries) }
