// Package archive unpacks downloaded reference bundles.
//
// The Silva and Metaxa2 releases ship as gzip-compressed tars; pgzip
// decompresses them on all cores, which matters for the multi-gigabyte
// Silva archives.
package archive

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/pgzip"

	"github.com/bioref-labs/taxref-cli/internal/core/domain"
	"github.com/bioref-labs/taxref-cli/internal/core/ports/driven"
	"github.com/bioref-labs/taxref-cli/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor unpacks gzip and tar.gz reference bundles.
type Extractor struct{}

// New creates a new extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract unpacks the bundle at path into destDir and returns the
// extracted file paths. Plain FASTA bundles pass through unchanged.
func (e *Extractor) Extract(path string, format domain.SourceFormat, destDir string) ([]string, error) {
	switch format {
	case domain.FormatFasta:
		return []string{path}, nil
	case domain.FormatFastaGz:
		out, err := gunzipFile(path, destDir)
		if err != nil {
			return nil, err
		}
		return []string{out}, nil
	case domain.FormatTarGz:
		return untarGz(path, destDir)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, format)
	}
}

// gunzipFile decompresses a single-file gzip into destDir.
func gunzipFile(path, destDir string) (string, error) {
	in, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer in.Close()

	gz, err := pgzip.NewReader(in)
	if err != nil {
		return "", fmt.Errorf("reading gzip %s: %w", path, err)
	}
	defer gz.Close()

	dest := filepath.Join(destDir, strings.TrimSuffix(filepath.Base(path), ".gz"))
	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", dest, err)
	}
	if _, err := io.Copy(out, gz); err != nil {
		out.Close()
		return "", fmt.Errorf("decompressing %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", dest, err)
	}
	logger.Debug("gunzipped %s", dest)
	return dest, nil
}

// untarGz unpacks a tar.gz into destDir and returns the regular files
// extracted. Entries escaping destDir are rejected.
func untarGz(path, destDir string) ([]string, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer in.Close()

	gz, err := pgzip.NewReader(in)
	if err != nil {
		return nil, fmt.Errorf("reading gzip %s: %w", path, err)
	}
	defer gz.Close()

	var files []string
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading tar %s: %w", path, err)
		}

		dest, err := safeJoin(destDir, hdr.Name)
		if err != nil {
			return nil, err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return nil, fmt.Errorf("creating dir %s: %w", dest, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return nil, fmt.Errorf("creating dir for %s: %w", dest, err)
			}
			out, err := os.Create(dest)
			if err != nil {
				return nil, fmt.Errorf("creating %s: %w", dest, err)
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return nil, fmt.Errorf("extracting %s: %w", hdr.Name, err)
			}
			if err := out.Close(); err != nil {
				return nil, fmt.Errorf("closing %s: %w", dest, err)
			}
			files = append(files, dest)
		default:
			logger.Warn("skipping tar entry %s (type %d)", hdr.Name, hdr.Typeflag)
		}
	}
	logger.Debug("extracted %d files from %s", len(files), path)
	return files, nil
}

// safeJoin joins name under dir, rejecting path traversal.
func safeJoin(dir, name string) (string, error) {
	dest := filepath.Join(dir, filepath.Clean(name))
	if !strings.HasPrefix(dest, filepath.Clean(dir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: tar entry %q escapes destination", domain.ErrInvalidInput, name)
	}
	return dest, nil
}
