package tsv

import (
	"bufio"
	"io"
	"strings"
)

// Writer emits a tab-separated table. Cell values are written verbatim.
type Writer struct {
	w *bufio.Writer
}

// NewWriter creates a buffered TSV writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteHeader writes the header line.
func (w *Writer) WriteHeader(columns []string) error {
	_, err := w.w.WriteString(strings.Join(columns, "\t") + "\n")
	return err
}

// WriteRow writes a data row, optionally with extra trailing cells.
func (w *Writer) WriteRow(rec Record, extra ...string) error {
	fields := rec.Fields
	if len(extra) > 0 {
		fields = append(append([]string{}, rec.Fields...), extra...)
	}
	_, err := w.w.WriteString(strings.Join(fields, "\t") + "\n")
	return err
}

// Flush flushes buffered output to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
