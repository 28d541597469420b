// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"io"
)

// EncryptWriter wraps an io.Writer with AES-CBC encryption. It writes a
// fresh random IV as the first 16 bytes of the stream, then accumulates
// plaintext and encrypts it 16 bytes at a time. Close must be called to
// flush and zero-pad the final partial block; without it, up to 15 bytes of
// plaintext and the final ciphertext block are lost.
//
// The AES block cipher and CBC block mode come from the standard library
// (crypto/aes, crypto/cipher); no third-party package in the ecosystem is
// preferred over it for AES-CBC.
type EncryptWriter struct {
	w    io.Writer
	mode cipher.BlockMode
	buf  []byte // Plaintext not yet encrypted, always < blockSize bytes
	err  error
}

// NewEncryptWriter creates an EncryptWriter under the given key, writing a
// freshly generated IV to w immediately.
func NewEncryptWriter(w io.Writer, key [16]byte) (*EncryptWriter, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, Error(err.Error())
	}
	iv := make([]byte, blockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, Error(err.Error())
	}
	if _, err := w.Write(iv); err != nil {
		return nil, err
	}
	return &EncryptWriter{w: w, mode: cipher.NewCBCEncrypter(block, iv)}, nil
}

// Write buffers p and encrypts and writes out every whole 16-byte block it
// completes.
func (e *EncryptWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n := len(p)
	e.buf = append(e.buf, p...)
	for len(e.buf) >= blockSize {
		block := e.buf[:blockSize]
		out := make([]byte, blockSize)
		e.mode.CryptBlocks(out, block)
		if _, err := e.w.Write(out); err != nil {
			e.err = err
			return 0, err
		}
		e.buf = e.buf[blockSize:]
	}
	return n, nil
}

// Close zero-pads any remaining buffered plaintext (0 to 15 bytes,
// including none at all) to a full 16-byte block, encrypts it, and writes
// it out. This is not PKCS#7 padding: the padding bytes carry no length
// information, which is why the reader strips trailing zero bytes from the
// final decrypted block instead of reading a padding length.
func (e *EncryptWriter) Close() error {
	if e.err != nil {
		return e.err
	}
	final := make([]byte, blockSize)
	copy(final, e.buf)
	e.buf = nil
	out := make([]byte, blockSize)
	e.mode.CryptBlocks(out, final)
	if _, err := e.w.Write(out); err != nil {
		e.err = err
		return err
	}
	return nil
}

// DecryptReader wraps an io.Reader of an AES-CBC stream produced by
// EncryptWriter: it consumes the leading 16-byte IV, then decrypts
// ciphertext 16 bytes at a time, stripping trailing zero bytes from the
// final block.
//
// Determining which block is last requires reading one block ahead: the
// reader only decrypts a block once it has confirmed whether another block
// follows it.
type DecryptReader struct {
	r       io.Reader
	mode    cipher.BlockMode
	cur     []byte // Ciphertext block read but not yet decrypted
	pending []byte // Decrypted plaintext not yet returned by Read
	eof     bool
	err     error
}

// NewDecryptReader creates a DecryptReader under the given key, reading the
// leading IV from r.
func NewDecryptReader(r io.Reader, key [16]byte) (*DecryptReader, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, Error(err.Error())
	}
	iv := make([]byte, blockSize)
	if _, err := io.ReadFull(r, iv); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ErrCorrupt
		}
		return nil, err
	}
	d := &DecryptReader{r: r, mode: cipher.NewCBCDecrypter(block, iv)}
	if err := d.readNextBlock(); err != nil {
		return nil, err
	}
	if d.cur == nil {
		// Zero blocks of ciphertext after the IV: not a positive multiple
		// of the block size.
		return nil, ErrCorrupt
	}
	return d, nil
}

// readNextBlock reads one ciphertext block into d.cur, or sets d.cur to nil
// on a clean EOF. A short, non-empty read is corrupt ciphertext.
func (d *DecryptReader) readNextBlock() error {
	buf := make([]byte, blockSize)
	n, err := io.ReadFull(d.r, buf)
	switch {
	case err == io.EOF:
		d.cur = nil
		return nil
	case err == io.ErrUnexpectedEOF:
		return ErrCorrupt
	case err != nil:
		return err
	default:
		_ = n
		d.cur = buf
		return nil
	}
}

// fetch decrypts and buffers the next span of plaintext, using one block of
// lookahead to detect the final block.
func (d *DecryptReader) fetch() error {
	if len(d.pending) > 0 || d.eof {
		return nil
	}
	block := d.cur
	if err := d.readNextBlock(); err != nil {
		return err
	}
	out := make([]byte, blockSize)
	d.mode.CryptBlocks(out, block)
	if d.cur == nil {
		d.eof = true
		d.pending = stripTrailingZeros(out)
	} else {
		d.pending = out
	}
	return nil
}

// stripTrailingZeros removes trailing zero bytes from the final decrypted
// block. This is the documented, lossy side effect of zero-padding instead
// of PKCS#7: a plaintext whose compressed form happens to end in real zero
// bytes loses them here indistinguishably from padding.
func stripTrailingZeros(b []byte) []byte {
	i := len(b)
	for i > 0 && b[i-1] == 0 {
		i--
	}
	return b[:i]
}

// Read implements io.Reader.
func (d *DecryptReader) Read(p []byte) (int, error) {
	if d.err != nil {
		return 0, d.err
	}
	if err := d.fetch(); err != nil {
		d.err = err
		return 0, err
	}
	n := copy(p, d.pending)
	d.pending = d.pending[n:]
	if n == 0 && d.eof {
		return 0, io.EOF
	}
	return n, nil
}
