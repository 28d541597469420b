// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command lzwarc is a file archiver built on variable-width LZW, optionally
// wrapped in password-derived AES-CBC encryption.
//
// Usage:
//	lzwarc a|e input output [-b bits] [-p password]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/AlukardBF/lzw-arc/crypt"
	"github.com/AlukardBF/lzw-arc/lzw"
	"github.com/dsnet/golib/strconv"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "lzwarc: %v\n", err)
		os.Exit(1)
	}
}

// run resolves CLI arguments and dispatches to one of the four operations:
// compress plain, decompress plain, compress with CBC, decompress with CBC.
func run(args []string) error {
	fs := flag.NewFlagSet("lzwarc", flag.ContinueOnError)
	bits := fs.Int("b", 16, "max_bits for the LZW dictionary, in [9, 32]")
	fs.IntVar(bits, "bits", 16, "alias of -b")
	pass := fs.String("p", "", "password; enables AES-CBC encryption")
	fs.StringVar(pass, "pass", "", "alias of -p")
	// Flags may follow the positional arguments, as in the usage line: the
	// flag package stops at the first positional, so collect it and resume.
	var rest []string
	for {
		if err := fs.Parse(args); err != nil {
			return err
		}
		if args = fs.Args(); len(args) == 0 {
			break
		}
		rest, args = append(rest, args[0]), args[1:]
	}
	if len(rest) != 3 {
		return fmt.Errorf("usage: lzwarc a|e input output [-b bits] [-p password]")
	}
	mode, inPath, outPath := rest[0], rest[1], rest[2]
	if mode != "a" && mode != "e" {
		return fmt.Errorf("mode must be %q or %q, got %q", "a", "e", mode)
	}
	if *bits < 9 || *bits > 32 {
		return fmt.Errorf("bits must be in [9, 32], got %d", *bits)
	}

	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	var n int64
	if mode == "a" {
		n, err = compress(in, out, *bits, *pass)
	} else {
		n, err = decompress(in, out, *bits, *pass)
	}
	if err != nil {
		return err
	}

	fi, statErr := out.Stat()
	if statErr == nil {
		fmt.Printf("%s -> %s\n", strconv.FormatPrefix(float64(n), strconv.Base1024, 2),
			strconv.FormatPrefix(float64(fi.Size()), strconv.Base1024, 2))
	}
	return nil
}

// compress runs the archive operation, optionally wrapping the LZW code
// stream in AES-CBC encryption, and returns the number of input bytes read.
func compress(in *os.File, out *os.File, bits int, pass string) (int64, error) {
	cw := countWriter{w: out}
	var dst writeFlusher = &cw
	if pass != "" {
		key := crypt.DeriveKey([]byte(pass))
		ew, err := crypt.NewEncryptWriter(&cw, key)
		if err != nil {
			return 0, err
		}
		dst = ew
	}

	cr := countReader{r: in}
	enc := lzw.NewCompressor(bits)
	if err := enc.Compress(&cr, dst); err != nil {
		return 0, err
	}
	if err := enc.Finish(dst); err != nil {
		return 0, err
	}
	if err := dst.Close(); err != nil {
		return 0, err
	}
	return cr.n, nil
}

// decompress runs the extract operation, optionally unwrapping AES-CBC
// encryption before handing the plaintext bitstream to the decompressor, and
// returns the number of bytes written to out.
func decompress(in *os.File, out *os.File, bits int, pass string) (int64, error) {
	cw := countWriter{w: out}
	var src readCloser = nopReadCloser{in}
	if pass != "" {
		key := crypt.DeriveKey([]byte(pass))
		dr, err := crypt.NewDecryptReader(in, key)
		if err != nil {
			return 0, err
		}
		src = nopReadCloser{dr}
	}

	dec := lzw.NewDecompressor(bits)
	if err := dec.Decompress(src, &cw); err != nil {
		return 0, err
	}
	return cw.n, nil
}
