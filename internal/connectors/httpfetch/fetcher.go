// Package httpfetch downloads reference database bundles over HTTP(S).
//
// Public taxonomy mirrors are shared infrastructure, so downloads go
// through a token-bucket throttle. Downloads are single-shot: a failure
// surfaces immediately with no retry.
package httpfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"github.com/bioref-labs/taxref-cli/internal/core/domain"
	"github.com/bioref-labs/taxref-cli/internal/core/ports/driven"
	"github.com/bioref-labs/taxref-cli/internal/logger"
)

// Ensure Fetcher implements the interface.
var _ driven.Fetcher = (*Fetcher)(nil)

const (
	// defaultTimeout bounds a whole download. The Silva archives run to
	// gigabytes, so this is generous.
	defaultTimeout = 4 * time.Hour

	// progressChunk is how many bytes pass between progress callbacks.
	progressChunk = 1 << 20
)

// Fetcher downloads source bundles with proactive throttling.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

// New creates a fetcher. requestsPerSecond throttles request starts;
// zero or negative disables throttling.
func New(requestsPerSecond float64) *Fetcher {
	var limiter *rate.Limiter
	if requestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}
	return &Fetcher{
		client:  &http.Client{Timeout: defaultTimeout},
		limiter: limiter,
	}
}

// Fetch downloads source.URL into destDir and returns the local path.
func (f *Fetcher) Fetch(ctx context.Context, source domain.ReferenceSource, destDir string, progress func(driven.FetchProgress)) (string, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.URL, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}

	logger.Debug("GET %s", source.URL)
	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", source.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("downloading %s: unexpected status %s", source.URL, resp.Status)
	}

	dest := filepath.Join(destDir, downloadName(source))
	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", dest, err)
	}

	if err := copyWithProgress(out, resp.Body, source.ID, resp.ContentLength, progress); err != nil {
		out.Close()
		os.Remove(dest)
		return "", fmt.Errorf("writing %s: %w", dest, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", dest, err)
	}
	return dest, nil
}

// copyWithProgress streams body to out, reporting roughly once per
// progressChunk bytes.
func copyWithProgress(out io.Writer, body io.Reader, sourceID string, total int64, progress func(driven.FetchProgress)) error {
	if progress == nil {
		_, err := io.Copy(out, body)
		return err
	}

	var read, lastReport int64
	buf := make([]byte, 128*1024)
	for {
		n, err := body.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				return werr
			}
			read += int64(n)
			if read-lastReport >= progressChunk {
				lastReport = read
				progress(driven.FetchProgress{SourceID: sourceID, BytesRead: read, TotalBytes: total})
			}
		}
		if err == io.EOF {
			progress(driven.FetchProgress{SourceID: sourceID, BytesRead: read, TotalBytes: total})
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// downloadName derives the local file name from the URL path, falling
// back to the source ID for opaque URLs.
func downloadName(source domain.ReferenceSource) string {
	u, err := url.Parse(source.URL)
	if err == nil {
		if base := path.Base(u.Path); base != "" && base != "/" && base != "." {
			return base
		}
	}
	switch source.Format {
	case domain.FormatTarGz:
		return source.ID + ".tar.gz"
	case domain.FormatFastaGz:
		return source.ID + ".fasta.gz"
	default:
		return source.ID + ".fasta"
	}
}
