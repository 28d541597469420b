// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package crypt

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

// keyLen is the length in bytes of the derived AES key (AES-128).
const keyLen = 16

// iterations is the PBKDF2 iteration count. It is part of the on-disk
// format contract alongside derivationSalt: two files produced by different
// builds must decrypt interchangeably, so neither constant may change
// without breaking compatibility.
const iterations = 100000

// derivationSalt is a fixed salt compiled into the binary. Unlike the
// typical PBKDF2 usage of a random, stored-alongside-the-ciphertext salt,
// this format has no header to carry one, so the salt is a format constant
// instead.
var derivationSalt = [16]byte{
	0x6c, 0x7a, 0x77, 0x2d, 0x61, 0x72, 0x63, 0x00,
	0x73, 0x61, 0x6c, 0x74, 0x2d, 0x76, 0x31, 0x00,
}

// DeriveKey turns a password into a fixed-length AES key using PBKDF2 over
// SHA-256, via the standard golang.org/x/crypto/pbkdf2 implementation
// rather than a hand-rolled HMAC iteration loop.
func DeriveKey(password []byte) [keyLen]byte {
	derived := pbkdf2.Key(password, derivationSalt[:], iterations, keyLen, sha256.New)
	var key [keyLen]byte
	copy(key[:], derived)
	return key
}
