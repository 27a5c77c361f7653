package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// ChunkSize is the fixed buffer size used while streaming a download to disk.
const ChunkSize = 32 * 1024

const userAgent = "droidenv/1.0"

// ErrTransport marks failures where the remote resource was not fully received.
var ErrTransport = errors.New("transport failure")

// ProgressFunc receives the number of bytes written so far and the expected
// total, or -1 when the server did not send a Content-Length.
type ProgressFunc func(url string, done, total int64)

// Fetcher downloads remote archives into local files.
type Fetcher struct {
	Client   *http.Client
	Progress ProgressFunc
}

// New returns a Fetcher backed by http.DefaultClient.
func New() *Fetcher {
	return &Fetcher{Client: http.DefaultClient}
}

// Fetch streams url into dest. On failure nothing is left at dest.
func (f *Fetcher) Fetch(ctx context.Context, url, dest string) (retErr error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("prepare download destination: %w", err)
	}

	defer func() {
		if retErr != nil {
			_ = os.Remove(dest)
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: download %s: %v", ErrTransport, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: download %s: unexpected status %s", ErrTransport, url, resp.Status)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(dest), ".download-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	total := resp.ContentLength
	if total < 0 {
		total = -1
	}
	written, err := f.stream(tmpFile, resp.Body, url, total)
	if err != nil {
		tmpFile.Close()
		return fmt.Errorf("%w: download %s: %v", ErrTransport, url, err)
	}
	if total >= 0 && written != total {
		tmpFile.Close()
		return fmt.Errorf("%w: download %s: received %d of %d bytes", ErrTransport, url, written, total)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("finalize download: %w", err)
	}
	return nil
}

func (f *Fetcher) stream(dst io.Writer, src io.Reader, url string, total int64) (int64, error) {
	buf := make([]byte, ChunkSize)
	var written int64
	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			if _, err := dst.Write(buf[:n]); err != nil {
				return written, err
			}
			written += int64(n)
			if f.Progress != nil {
				f.Progress(url, written, total)
			}
		}
		if errors.Is(readErr, io.EOF) {
			return written, nil
		}
		if readErr != nil {
			return written, readErr
		}
	}
}
