package batcherimpl

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/mediarelay/twitter-media-telegram-bot/internal/batcher"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/domain"
	"github.com/mediarelay/twitter-media-telegram-bot/pkg/retry"
)

// download opens a streamed byte transfer for one chosen representation.
// The body is handed to the channel unbuffered so large videos never sit in
// memory. Retries cover connect errors and transient upstream statuses.
func (b *BatcherImpl) download(ctx context.Context, item domain.ResolvedItem) (io.ReadCloser, int64, error) {
	var (
		body io.ReadCloser
		size int64
	)

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, item.Chosen.URL, nil)
		if err != nil {
			return retry.Permanent(err)
		}

		resp, err := b.httpClient.Do(req)
		if err != nil {
			return err
		}

		if resp.StatusCode != http.StatusOK {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			err := fmt.Errorf("unexpected status %d", resp.StatusCode)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return retry.Permanent(err)
			}
			return err
		}

		body = resp.Body
		size = resp.ContentLength
		return nil
	}

	if err := retry.Do(ctx, b.logger, "DownloadMedia", operation, b.retryCfg); err != nil {
		return nil, 0, &batcher.DownloadError{Index: item.Index, Err: err}
	}
	return body, size, nil
}
