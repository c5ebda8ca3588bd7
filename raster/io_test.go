// Copyright 2017, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package raster

import (
	"bytes"
	"errors"
	"io"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"
)

// flakyReader fails every other Read call with EINTR, serving one byte on
// the calls that succeed.
type flakyReader struct {
	data []byte
	tick int
}

func (fr *flakyReader) Read(p []byte) (int, error) {
	fr.tick++
	if fr.tick%2 == 1 {
		return 0, syscall.EINTR
	}
	if len(fr.data) == 0 {
		return 0, io.EOF
	}
	n := copy(p[:1], fr.data)
	fr.data = fr.data[n:]
	return n, nil
}

// flakyWriter mirrors flakyReader for the write side.
type flakyWriter struct {
	buf  bytes.Buffer
	tick int
}

func (fw *flakyWriter) Write(p []byte) (int, error) {
	fw.tick++
	if fw.tick%2 == 1 {
		return 0, syscall.EINTR
	}
	return fw.buf.Write(p[:1])
}

func TestReadFullRetriesInterrupts(t *testing.T) {
	fr := &flakyReader{data: []byte{1, 2, 3, 4}}
	buf := make([]byte, 4)
	n, err := readFull(fr, buf)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, []byte{1, 2, 3, 4}, buf)
}

func TestReadFullCleanEOF(t *testing.T) {
	n, err := readFull(bytes.NewReader(nil), make([]byte, 8))
	require.Equal(t, 0, n)
	require.Equal(t, io.EOF, err)
}

func TestReadFullPartialEOF(t *testing.T) {
	// Progress followed by EOF is a failure; a half-word is unusable.
	n, err := readFull(bytes.NewReader([]byte{1, 2}), make([]byte, 8))
	require.Equal(t, 0, n)
	require.Equal(t, io.ErrUnexpectedEOF, err)
}

func TestReadFullPermanentError(t *testing.T) {
	werr := errors.New("device gone")
	r := io.MultiReader(bytes.NewReader([]byte{1}), &errReader{werr})
	n, err := readFull(r, make([]byte, 8))
	require.Equal(t, 0, n)
	require.Equal(t, werr, err)
}

type errReader struct{ err error }

func (er *errReader) Read(p []byte) (int, error) { return 0, er.err }

func TestReadSomeTakesWhatIsThere(t *testing.T) {
	n, err := readSome(bytes.NewReader([]byte{1, 2, 3}), make([]byte, 16))
	require.NoError(t, err)
	require.Equal(t, 3, n)

	n, err = readSome(bytes.NewReader(nil), make([]byte, 16))
	require.Equal(t, 0, n)
	require.Equal(t, io.EOF, err)
}

func TestReadSomeRetriesInterrupts(t *testing.T) {
	fr := &flakyReader{data: []byte{7}}
	buf := make([]byte, 4)
	n, err := readSome(fr, buf)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, byte(7), buf[0])
}

func TestWriteFullRetriesInterrupts(t *testing.T) {
	fw := &flakyWriter{}
	n, err := writeFull(fw, []byte{1, 2, 3, 4})
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, []byte{1, 2, 3, 4}, fw.buf.Bytes())
}

func TestWriteFullPermanentError(t *testing.T) {
	werr := errors.New("pipe closed")
	n, err := writeFull(&errWriter{werr}, []byte{1})
	require.Equal(t, 0, n)
	require.Equal(t, werr, err)
}

type errWriter struct{ err error }

func (ew *errWriter) Write(p []byte) (int, error) { return 0, ew.err }
