// Package fastx reads and writes FASTA-formatted sequence files.
//
// The reader streams records through a callback so multi-gigabyte
// references (Silva) never need to be resident in memory at once.
package fastx

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/bioref-labs/taxref-cli/internal/core/domain"
)

// maxLine allows very long single-line sequences. PhytoRef ships
// whole plastid genes on one line.
const maxLine = 64 * 1024 * 1024

// EachRecord parses FASTA from r and calls emit once per record.
// Header lines start with '>'; subsequent lines concatenate into the
// sequence until the next header or EOF. Returning an error from emit
// stops the scan and propagates the error.
func EachRecord(r io.Reader, emit func(domain.SequenceRecord) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		desc    string
		seq     bytes.Buffer
		started bool
	)

	flush := func() error {
		if !started {
			return nil
		}
		rec := domain.SequenceRecord{
			Description: desc,
			Seq:         append([]byte(nil), seq.Bytes()...),
		}
		seq.Reset()
		return emit(rec)
	}

	for sc.Scan() {
		line := sc.Bytes()
		if len(line) > 0 && line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			desc = string(bytes.TrimRight(line[1:], "\r"))
			started = true
			continue
		}
		// Sequence lines before any header desynchronise the
		// description-to-sequence association; report instead of
		// corrupting silently.
		if !started {
			if len(bytes.TrimSpace(line)) == 0 {
				continue
			}
			return fmt.Errorf("%w: sequence line before first FASTA header", domain.ErrInvalidInput)
		}
		seq.Write(bytes.TrimSpace(line))
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("scanning fasta: %w", err)
	}
	return flush()
}

// EachRecordInFile opens path and streams its records through emit.
// A missing file surfaces immediately as the open error.
func EachRecordInFile(path string, emit func(domain.SequenceRecord) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening fasta: %w", err)
	}
	defer f.Close()
	return EachRecord(f, emit)
}
