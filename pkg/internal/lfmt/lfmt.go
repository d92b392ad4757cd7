// Package lfmt contains helpers for writing textual representations of
// values.
package lfmt

import (
	"fmt"
	"io"
)

// Writer wraps an io.Writer, counting bytes written and remembering the
// first error encountered.  Once an error occurs every later write is a
// no-op, so formatting code can issue a sequence of writes and check the
// result once.
type Writer struct {
	w   io.Writer
	sw  io.StringWriter
	n   int
	err error
}

// NewWriter wraps w.  If w implements io.StringWriter strings are written
// without conversion to []byte.
func NewWriter(w io.Writer) *Writer {
	sw, _ := w.(io.StringWriter)
	return &Writer{w: w, sw: sw}
}

// Write implements io.Writer.
func (w *Writer) Write(b []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.w.Write(b)
	return w.count(n, err)
}

// WriteString implements io.StringWriter.
func (w *Writer) WriteString(s string) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	if w.sw != nil {
		return w.count(w.sw.WriteString(s))
	}
	return w.count(w.w.Write([]byte(s)))
}

// Printf formats according to format and writes the result.
func (w *Writer) Printf(format string, v ...interface{}) {
	if w.err != nil {
		return
	}
	w.count(fmt.Fprintf(w.w, format, v...))
}

func (w *Writer) count(n int, err error) (int, error) {
	w.n += n
	if err != nil && w.err == nil {
		w.err = err
	}
	return n, err
}

// N returns the total number of bytes written.
func (w *Writer) N() int {
	return w.n
}

// Err returns the first error encountered, if any.
func (w *Writer) Err() error {
	return w.err
}

// Result returns N() and Err() for use as a function's return values.
func (w *Writer) Result() (int, error) {
	return w.n, w.err
}
