// Package transport moves bytes over HTTP. It is deliberately a mechanical
// layer: no retries, no caching, no resolution logic.
package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/talon-mods/talon/internal/core/domain"
	"github.com/talon-mods/talon/internal/core/ports"
	"go.trai.ch/zerr"
)

const copyChunkSize = 32 * 1024

// HTTP implements ports.Transport over net/http. Cancellation rides on the
// request context; there is no overall timeout because archive downloads can
// legitimately take minutes on slow links.
type HTTP struct {
	client *http.Client
}

func NewHTTP() *HTTP {
	return &HTTP{
		client: &http.Client{
			Transport: &http.Transport{
				ResponseHeaderTimeout: 30 * time.Second,
			},
		},
	}
}

// Fetch streams the body of url into sink. onProgress, when non-nil, fires
// once per copied chunk and once more at completion. total is -1 when the
// remote does not announce a content length.
func (h *HTTP) Fetch(ctx context.Context, url string, sink io.Writer, onProgress ports.ProgressFunc) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return zerr.Wrap(err, domain.ErrDownloadFailed.Error())
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return zerr.Wrap(err, domain.ErrDownloadFailed.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		err := zerr.With(domain.ErrDownloadFailed, "status", resp.Status)
		return zerr.With(err, "url", url)
	}

	total := resp.ContentLength
	var read int64
	buf := make([]byte, copyChunkSize)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := sink.Write(buf[:n]); writeErr != nil {
				return zerr.Wrap(writeErr, domain.ErrDownloadFailed.Error())
			}
			read += int64(n)
			if onProgress != nil {
				onProgress(read, total)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return zerr.Wrap(readErr, domain.ErrDownloadFailed.Error())
		}
	}

	if onProgress != nil {
		onProgress(read, total)
	}
	return nil
}

// FetchBytes downloads a small payload into memory.
func (h *HTTP) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	var buf bytes.Buffer
	if err := h.Fetch(ctx, url, &buf, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var _ ports.Transport = (*HTTP)(nil)
