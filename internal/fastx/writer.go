package fastx

import (
	"bufio"
	"fmt"
	"io"
)

// Writer emits FASTA records with single-line sequences, the layout
// downstream import steps expect.
type Writer struct {
	w *bufio.Writer
}

// NewWriter wraps w in a buffered FASTA writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write emits one record under the given header.
func (fw *Writer) Write(header string, seq []byte) error {
	if _, err := fmt.Fprintf(fw.w, ">%s\n", header); err != nil {
		return fmt.Errorf("writing fasta header: %w", err)
	}
	if _, err := fw.w.Write(seq); err != nil {
		return fmt.Errorf("writing fasta sequence: %w", err)
	}
	if err := fw.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("writing fasta sequence: %w", err)
	}
	return nil
}

// Flush drains buffered output to the underlying writer.
func (fw *Writer) Flush() error {
	return fw.w.Flush()
}
