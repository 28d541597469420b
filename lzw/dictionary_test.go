// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// compressDictSnapshot copies a compressDict's string-keyed index into a
// fresh map[string]uint32, the same shape seedSnapshot builds, so the two
// can be compared with cmp.Diff.
func compressDictSnapshot(cd *compressDict) map[string]uint32 {
	out := make(map[string]uint32, len(cd.index))
	for k, v := range cd.index {
		out[k] = v
	}
	return out
}

func seedSnapshot() map[string]uint32 {
	out := make(map[string]uint32, literalCount)
	for i, e := range newSeedEntries() {
		out[string(e)] = uint32(i)
	}
	return out
}

func TestDictionarySeedParity(t *testing.T) {
	var cd compressDict
	cd.reset()
	var dd decompressDict
	dd.reset()

	if cd.len() != literalCount || dd.len() != literalCount {
		t.Fatalf("seeded lengths = (%d, %d), want (%d, %d)", cd.len(), dd.len(), literalCount, literalCount)
	}
	if diff := cmp.Diff(seedSnapshot(), compressDictSnapshot(&cd)); diff != "" {
		t.Errorf("compressDict seed mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(newSeedEntries(), dd.entries); diff != "" {
		t.Errorf("decompressDict seed mismatch (-want +got):\n%s", diff)
	}
}

func TestCompressDictInsertAndReset(t *testing.T) {
	var cd compressDict
	cd.reset()
	idx := cd.insert([]byte("ab"))
	if idx != literalCount {
		t.Errorf("insert() = %d, want %d", idx, literalCount)
	}
	if !cd.contains([]byte("ab")) {
		t.Errorf("contains() = false after insert")
	}
	cd.reset()
	if cd.contains([]byte("ab")) {
		t.Errorf("contains() = true after reset, want false")
	}
	if diff := cmp.Diff(seedSnapshot(), compressDictSnapshot(&cd)); diff != "" {
		t.Errorf("compressDict after reset is not indistinguishable from fresh (-want +got):\n%s", diff)
	}
}

func TestDecompressDictPushAndReset(t *testing.T) {
	var dd decompressDict
	dd.reset()
	dd.push([]byte("xy"))
	if dd.len() != literalCount+1 {
		t.Errorf("len() after push = %d, want %d", dd.len(), literalCount+1)
	}
	if got := dd.get(literalCount); string(got) != "xy" {
		t.Errorf("get(%d) = %q, want %q", literalCount, got, "xy")
	}
	dd.reset()
	if diff := cmp.Diff(newSeedEntries(), dd.entries); diff != "" {
		t.Errorf("decompressDict after reset is not indistinguishable from fresh (-want +got):\n%s", diff)
	}
}
