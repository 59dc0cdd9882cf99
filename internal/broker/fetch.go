package broker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"artemisctl/internal/provision"
	"artemisctl/pkg/logging"

	"github.com/hashicorp/go-cleanhttp"
)

const fetcherSubsystem = "Fetcher"

// DefaultDownloadTimeout bounds each wait of a download, from dialing the
// origin to every gap between body reads. A transfer that keeps making
// progress is never cut off.
const DefaultDownloadTimeout = 5 * time.Second

// errStalled is the cancel cause when the body stops arriving.
var errStalled = errors.New("download stalled")

// Fetcher downloads release archives into a local cache.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// NewFetcher creates a Fetcher whose individual waits time out after timeout.
// A non-positive timeout uses DefaultDownloadTimeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultDownloadTimeout
	}
	transport := cleanhttp.DefaultTransport()
	transport.DialContext = (&net.Dialer{
		Timeout:   timeout,
		KeepAlive: 30 * time.Second,
	}).DialContext
	transport.TLSHandshakeTimeout = timeout
	transport.ResponseHeaderTimeout = timeout

	return &Fetcher{
		client:  &http.Client{Transport: transport},
		timeout: timeout,
	}
}

// Fetch downloads url to targetPath unless targetPath already exists, and
// returns targetPath. The body is written to a ".part" sibling first and only
// renamed into place once complete.
func (f *Fetcher) Fetch(ctx context.Context, url, targetPath string) (string, error) {
	if provision.Exists(targetPath) {
		logging.Info(fetcherSubsystem, "Artemis already downloaded: %s", targetPath)
		return targetPath, nil
	}

	if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
		return "", provision.Wrap(provision.KindFilesystem, filepath.Dir(targetPath), err)
	}

	logging.Info(fetcherSubsystem, "Downloading artemis: %s", url)

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", provision.Wrap(provision.KindDownload, url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", provision.Wrap(provision.KindDownload, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", provision.Errorf(provision.KindDownload, url, "unexpected status %s", resp.Status)
	}

	body := newIdleReader(resp.Body, f.timeout, func() { cancel(errStalled) })
	defer body.stop()

	partPath := targetPath + ".part"
	if err := writeBody(partPath, body); err != nil {
		_ = os.Remove(partPath)
		if errors.Is(context.Cause(ctx), errStalled) {
			err = fmt.Errorf("%w: no data for %s", errStalled, f.timeout)
		}
		return "", provision.Wrap(provision.KindDownload, url, err)
	}
	if err := os.Rename(partPath, targetPath); err != nil {
		_ = os.Remove(partPath)
		return "", provision.Wrap(provision.KindFilesystem, targetPath, err)
	}

	logging.Debug(fetcherSubsystem, "Saved %s", targetPath)
	return targetPath, nil
}

func writeBody(path string, body io.Reader) error {
	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, body); err != nil {
		out.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return out.Close()
}

// idleReader calls onIdle when no bytes have been read for timeout.
type idleReader struct {
	r       io.Reader
	timeout time.Duration
	timer   *time.Timer
}

func newIdleReader(r io.Reader, timeout time.Duration, onIdle func()) *idleReader {
	return &idleReader{r: r, timeout: timeout, timer: time.AfterFunc(timeout, onIdle)}
}

func (ir *idleReader) Read(p []byte) (int, error) {
	n, err := ir.r.Read(p)
	if n > 0 {
		ir.timer.Reset(ir.timeout)
	}
	return n, err
}

func (ir *idleReader) stop() {
	ir.timer.Stop()
}
