// Package taxmap writes feature-to-taxonomy mapping files.
//
// The output is the two-column tab-separated layout downstream taxonomy
// import steps consume: a `Feature ID\tTaxon` header row followed by one
// row per feature.
package taxmap

import (
	"bufio"
	"fmt"
	"io"

	"github.com/bioref-labs/taxref-cli/internal/core/domain"
)

// header is the fixed first row of every mapping file.
const header = "Feature ID\tTaxon"

// Writer emits taxonomy mapping rows for one naming convention.
type Writer struct {
	w       *bufio.Writer
	started bool
}

// NewWriter wraps w in a buffered mapping writer. The header row is
// written lazily before the first data row, so an empty mapping still
// carries the header.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write emits one mapping row. The taxon field is sanitised so
// free-text species names cannot break the two-column contract.
func (tw *Writer) Write(featureID, taxon string) error {
	if err := tw.ensureHeader(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(tw.w, "%s\t%s\n", featureID, domain.SanitiseTaxonField(taxon))
	if err != nil {
		return fmt.Errorf("writing taxonomy row: %w", err)
	}
	return nil
}

// Flush writes the header if no rows were emitted and drains the buffer.
func (tw *Writer) Flush() error {
	if err := tw.ensureHeader(); err != nil {
		return err
	}
	return tw.w.Flush()
}

func (tw *Writer) ensureHeader() error {
	if tw.started {
		return nil
	}
	tw.started = true
	if _, err := fmt.Fprintln(tw.w, header); err != nil {
		return fmt.Errorf("writing taxonomy header: %w", err)
	}
	return nil
}
