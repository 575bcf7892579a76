package domain

import "strings"

// SequenceRecord represents a single FASTA record before relabelling.
// It is the parser's output and the supplementer's input.
type SequenceRecord struct {
	// Description is the full header text after '>', untrimmed fields intact.
	Description string

	// Seq is the nucleotide sequence with line breaks removed.
	Seq []byte
}

// LastField splits the description on sep and returns the final segment
// verbatim, including any whitespace present in the source. Species
// extraction for both organelle categories reduces to this.
func (r SequenceRecord) LastField(sep string) string {
	parts := strings.Split(r.Description, sep)
	return parts[len(parts)-1]
}

// DescriptionContains reports whether the description contains any of the
// given literals. Matching is case-sensitive.
func (r SequenceRecord) DescriptionContains(literals ...string) bool {
	for _, lit := range literals {
		if strings.Contains(r.Description, lit) {
			return true
		}
	}
	return false
}

// SeqContains reports whether the sequence contains the given literal.
func (r SequenceRecord) SeqContains(literal string) bool {
	return strings.Contains(string(r.Seq), literal)
}
