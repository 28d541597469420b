// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package crypt

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestDeriveKeyDeterministic(t *testing.T) {
	k1 := DeriveKey([]byte("hunter2"))
	k2 := DeriveKey([]byte("hunter2"))
	if k1 != k2 {
		t.Errorf("DeriveKey() is not deterministic for the same password")
	}
	k3 := DeriveKey([]byte("hunter3"))
	if k1 == k3 {
		t.Errorf("DeriveKey() produced identical keys for different passwords")
	}
}

var roundTripData = [][]byte{
	nil,
	{0x01},
	bytes.Repeat([]byte("x"), 15),
	bytes.Repeat([]byte("x"), 16),
	bytes.Repeat([]byte("x"), 17),
	bytes.Repeat([]byte("x"), 1000),
}

func TestRoundTrip(t *testing.T) {
	key := DeriveKey([]byte("correct horse battery staple"))
	for _, data := range roundTripData {
		var buf bytes.Buffer
		ew, err := NewEncryptWriter(&buf, key)
		if err != nil {
			t.Fatalf("NewEncryptWriter() = %v, want nil", err)
		}
		if _, err := ew.Write(data); err != nil {
			t.Fatalf("Write() = %v, want nil", err)
		}
		if err := ew.Close(); err != nil {
			t.Fatalf("Close() = %v, want nil", err)
		}

		dr, err := NewDecryptReader(bytes.NewReader(buf.Bytes()), key)
		if err != nil {
			t.Fatalf("NewDecryptReader() = %v, want nil", err)
		}
		var got bytes.Buffer
		if _, err := got.ReadFrom(dr); err != nil {
			t.Fatalf("ReadFrom() = %v, want nil", err)
		}
		if !bytes.Equal(got.Bytes(), data) {
			t.Errorf("round-trip mismatch: got %d bytes, want %d bytes", got.Len(), len(data))
		}
	}
}

// TestEncryptNondeterministic verifies that encrypting the same plaintext
// twice produces different ciphertext, since each call generates a fresh
// random IV.
func TestEncryptNondeterministic(t *testing.T) {
	key := DeriveKey([]byte("password"))
	data := bytes.Repeat([]byte("repeat me"), 50)

	encryptOnce := func() []byte {
		var buf bytes.Buffer
		ew, err := NewEncryptWriter(&buf, key)
		if err != nil {
			t.Fatalf("NewEncryptWriter() = %v, want nil", err)
		}
		ew.Write(data)
		ew.Close()
		return buf.Bytes()
	}

	c1, c2 := encryptOnce(), encryptOnce()
	if bytes.Equal(c1, c2) {
		t.Errorf("two encryptions of the same plaintext produced identical ciphertext")
	}
}

func TestDecryptRejectsShortCiphertext(t *testing.T) {
	key := DeriveKey([]byte("password"))
	// 16 bytes of IV and nothing else: zero ciphertext blocks.
	iv := make([]byte, blockSize)
	rand.New(rand.NewSource(1)).Read(iv)
	if _, err := NewDecryptReader(bytes.NewReader(iv), key); err != ErrCorrupt {
		t.Errorf("NewDecryptReader() = %v, want %v", err, ErrCorrupt)
	}
}

func TestDecryptRejectsPartialBlock(t *testing.T) {
	key := DeriveKey([]byte("password"))
	var buf bytes.Buffer
	ew, _ := NewEncryptWriter(&buf, key)
	ew.Write([]byte("hello"))
	ew.Close()
	truncated := buf.Bytes()[:len(buf.Bytes())-1]

	dr, err := NewDecryptReader(bytes.NewReader(truncated), key)
	if err != nil {
		// A short read of the first block after the IV can also surface here.
		if err != ErrCorrupt {
			t.Errorf("NewDecryptReader() = %v, want %v", err, ErrCorrupt)
		}
		return
	}
	var out bytes.Buffer
	_, err = out.ReadFrom(dr)
	if err != ErrCorrupt {
		t.Errorf("ReadFrom() = %v, want %v", err, ErrCorrupt)
	}
}
