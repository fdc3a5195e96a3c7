// Package selector reduces a media item to its single best representation.
package selector

import (
	"errors"
	"net/url"

	"github.com/mediarelay/twitter-media-telegram-bot/internal/domain"
)

// ErrNoRepresentation guards the empty-item case. The fetcher never emits
// such items, but callers must not rely on that.
var ErrNoRepresentation = errors.New("media item has no representation")

// Pick chooses the representation with the strictly highest quality metric.
// On an exact tie the earliest-listed representation wins, so the result is
// stable across calls. Image items that list only their default rendition
// are rewritten to request the unscaled original asset.
func Pick(item domain.MediaItem) (domain.MediaRepresentation, error) {
	if len(item.Representations) == 0 {
		return domain.MediaRepresentation{}, ErrNoRepresentation
	}

	if item.Kind == domain.KindImage && len(item.Representations) == 1 {
		rep := item.Representations[0]
		rep.URL = OrigQualityURL(rep.URL)
		return rep, nil
	}

	best := item.Representations[0]
	for _, rep := range item.Representations[1:] {
		if rep.Quality > best.Quality {
			best = rep
		}
	}
	return best, nil
}

// OrigQualityURL rewrites an image locator to request the unscaled asset,
// the way the media CDN expects it. The transform is pure; on an unparsable
// locator the input is returned unchanged.
func OrigQualityURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.RawQuery = "format=jpg&name=orig"
	return u.String()
}
