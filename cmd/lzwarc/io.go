// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import "io"

// writeFlusher is satisfied by both a plain countWriter and a
// crypt.EncryptWriter. The EncryptWriter needs a final Close call to flush
// buffered bytes; countWriter's Close does nothing.
type writeFlusher interface {
	io.Writer
	Close() error
}

// readCloser is satisfied by both the raw input file and a
// crypt.DecryptReader wrapped in nopReadCloser.
type readCloser interface {
	io.Reader
	Close() error
}

// countWriter tallies the bytes written through it, used to report the
// destination file's size regardless of which path wrote to it.
type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Close is a no-op: the underlying *os.File is closed by its own defer in
// run. It exists so countWriter satisfies writeFlusher when no encryption
// layer is present to own the flush.
func (c *countWriter) Close() error { return nil }

// countReader tallies the bytes read through it, used to report the source
// byte count consumed by the compressor.
type countReader struct {
	r io.Reader
	n int64
}

func (c *countReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// nopReadCloser adapts an io.Reader with no Close method (crypt.DecryptReader)
// or one already owned elsewhere (the input *os.File, closed by run's defer)
// to readCloser.
type nopReadCloser struct {
	io.Reader
}

func (nopReadCloser) Close() error { return nil }
