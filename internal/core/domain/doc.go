// Package domain defines the core business entities for taxref.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SequenceRecord: A single FASTA record (description + nucleotides)
//   - ReferenceSource: A configured public reference database
//   - Artifact: A file produced or downloaded by the pipeline
//   - Run: A recorded pipeline invocation
//   - Convention: A taxonomy naming convention with its organelle prefixes
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
