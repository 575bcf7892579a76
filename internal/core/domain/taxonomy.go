package domain

import "strings"

// Convention identifies a taxonomy naming convention. Each convention
// writes rank prefixes differently (Greengenes "k__...; s__" versus
// Silva "D_0__...;D_6__"), so the supplementer emits one taxonomy
// mapping per convention.
type Convention string

const (
	// ConventionGreengenes uses k__/p__/.../s__ rank prefixes.
	ConventionGreengenes Convention = "greengenes"

	// ConventionSilva uses D_0__/D_1__/.../D_6__ rank prefixes.
	ConventionSilva Convention = "silva"
)

// PrefixPair holds the fixed taxonomy-label prefixes for one convention.
// Each prefix runs from the top rank down to, and ending just before,
// the species field; the supplementer appends the species text extracted
// from each record's description.
type PrefixPair struct {
	Mitochondria string
	Chloroplast  string
}

// Default organelle lineage prefixes. Mitochondria are placed under
// Rickettsiales (their closest bacterial relatives); chloroplasts under
// Cyanobacteria/Chloroplast, matching how the base references label
// organelle contaminants.
var defaultPrefixes = map[Convention]PrefixPair{
	ConventionGreengenes: {
		Mitochondria: "k__Bacteria; p__Proteobacteria; c__Alphaproteobacteria; o__Rickettsiales; f__mitochondria; g__mitochondria; s__",
		Chloroplast:  "k__Bacteria; p__Cyanobacteria; c__Chloroplast; o__chloroplast; f__chloroplast; g__chloroplast; s__",
	},
	ConventionSilva: {
		Mitochondria: "D_0__Bacteria;D_1__Proteobacteria;D_2__Alphaproteobacteria;D_3__Rickettsiales;D_4__Mitochondria;D_5__Mitochondria;D_6__",
		Chloroplast:  "D_0__Bacteria;D_1__Cyanobacteria;D_2__Oxyphotobacteria;D_3__Chloroplast;D_4__Chloroplast;D_5__Chloroplast;D_6__",
	},
}

// DefaultPrefixes returns the built-in prefix pair for a convention.
func DefaultPrefixes(c Convention) (PrefixPair, error) {
	pair, ok := defaultPrefixes[c]
	if !ok {
		return PrefixPair{}, ErrUnknownConvention
	}
	return pair, nil
}

// Conventions lists the supported conventions in emission order.
func Conventions() []Convention {
	return []Convention{ConventionGreengenes, ConventionSilva}
}

// SanitiseTaxonField makes a free-text species field safe for a
// two-column TSV row: tabs and newlines are replaced with a single
// space. All other bytes pass through verbatim.
func SanitiseTaxonField(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\r':
			return ' '
		}
		return r
	}, s)
}
