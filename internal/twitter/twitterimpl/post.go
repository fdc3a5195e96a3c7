package twitterimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mediarelay/twitter-media-telegram-bot/internal/domain"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/twitter"
	"github.com/mediarelay/twitter-media-telegram-bot/pkg/retry"
)

// tweetPayload is the subset of the syndication API response we consume.
type tweetPayload struct {
	TypeName string `json:"__typename"`
	Text     string `json:"text"`
	User     struct {
		ScreenName string `json:"screen_name"`
	} `json:"user"`
	MediaDetails []mediaDetail `json:"mediaDetails"`
}

type mediaDetail struct {
	Type          string `json:"type"`
	MediaURLHTTPS string `json:"media_url_https"`
	Sizes         struct {
		Large struct {
			W int `json:"w"`
			H int `json:"h"`
		} `json:"large"`
	} `json:"sizes"`
	VideoInfo *videoInfo `json:"video_info"`
}

type videoInfo struct {
	Variants []videoVariant `json:"variants"`
}

type videoVariant struct {
	Bitrate     int64  `json:"bitrate"`
	ContentType string `json:"content_type"`
	URL         string `json:"url"`
}

func (i *TwitterImpl) GetPost(ctx context.Context, ref domain.PostRef) (*domain.RawPost, error) {
	endpoint := fmt.Sprintf("%s/tweet-result?id=%s&lang=en&token=%s",
		i.baseURL, url.QueryEscape(ref.String()), syndicationToken(ref.String()))

	var payload tweetPayload
	operation := func() error {
		return i.fetchPayload(ctx, endpoint, &payload)
	}

	if err := retry.Do(ctx, i.logger, "GetPost", operation, i.retryCfg); err != nil {
		return nil, err
	}

	if payload.TypeName == "TweetTombstone" {
		return nil, twitter.ErrNotFound
	}

	post := &domain.RawPost{
		Ref:    ref,
		Author: payload.User.ScreenName,
		Text:   payload.Text,
	}

	for idx, detail := range payload.MediaDetails {
		item, err := mapAttachment(idx, detail)
		if err != nil {
			return nil, err
		}
		post.Items = append(post.Items, item)
	}

	if len(post.Items) == 0 {
		return nil, twitter.ErrNoMedia
	}

	i.logger.Info("Fetched post", "ref", ref, "author", post.Author, "items", len(post.Items))
	return post, nil
}

// fetchPayload performs one HTTP attempt. Client errors are marked permanent
// so the retry loop stops immediately; timeouts and 5xx stay retryable.
func (i *TwitterImpl) fetchPayload(ctx context.Context, endpoint string, payload *tweetPayload) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return retry.Permanent(fmt.Errorf("%w: building request: %v", twitter.ErrUpstreamUnavailable, err))
	}

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", twitter.ErrUpstreamUnavailable, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return retry.Permanent(twitter.ErrNotFound)
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized:
		return retry.Permanent(twitter.ErrForbidden)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: upstream returned %d", twitter.ErrUpstreamUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return retry.Permanent(fmt.Errorf("%w: upstream returned %d", twitter.ErrUpstreamUnavailable, resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(payload); err != nil {
		return retry.Permanent(fmt.Errorf("%w: decoding payload: %v", twitter.ErrUpstreamUnavailable, err))
	}
	return nil
}

// mapAttachment validates one upstream attachment and normalizes it into a
// media item. Unknown kinds fail fetch rather than passing through.
func mapAttachment(index int, detail mediaDetail) (domain.MediaItem, error) {
	switch detail.Type {
	case "photo":
		return domain.MediaItem{
			Index: index,
			Kind:  domain.KindImage,
			Representations: []domain.MediaRepresentation{
				{
					Kind:    domain.KindImage,
					Quality: int64(detail.Sizes.Large.W) * int64(detail.Sizes.Large.H),
					URL:     detail.MediaURLHTTPS,
				},
			},
		}, nil
	case "video":
		return videoItem(index, domain.KindVideo, detail)
	case "animated_gif":
		return videoItem(index, domain.KindLoopedVideo, detail)
	default:
		return domain.MediaItem{}, fmt.Errorf("%w: unknown attachment kind %q at index %d",
			twitter.ErrUpstreamUnavailable, detail.Type, index)
	}
}

func videoItem(index int, kind domain.MediaKind, detail mediaDetail) (domain.MediaItem, error) {
	if detail.VideoInfo == nil {
		return domain.MediaItem{}, fmt.Errorf("%w: attachment %d has no video variants",
			twitter.ErrUpstreamUnavailable, index)
	}

	item := domain.MediaItem{Index: index, Kind: kind}
	for _, v := range detail.VideoInfo.Variants {
		// HLS playlists and the like are not downloadable renditions.
		if v.ContentType != "video/mp4" {
			continue
		}
		item.Representations = append(item.Representations, domain.MediaRepresentation{
			Kind:    kind,
			Quality: v.Bitrate,
			URL:     v.URL,
		})
	}

	if len(item.Representations) == 0 {
		return domain.MediaItem{}, fmt.Errorf("%w: attachment %d has no mp4 variant",
			twitter.ErrUpstreamUnavailable, index)
	}
	return item, nil
}

// syndicationToken derives the undocumented token query parameter the
// syndication endpoint expects: ((id / 1e15) * pi) in base 36 with zeros and
// the radix point stripped.
func syndicationToken(id string) string {
	n, err := strconv.ParseFloat(id, 64)
	if err != nil {
		return ""
	}

	const digits = "0123456789abcdefghijklmnopqrstuvwxyz"
	x := n / 1e15 * math.Pi

	var sb strings.Builder
	ip := int64(x)
	for ip > 0 {
		sb.WriteByte(digits[ip%36])
		ip /= 36
	}
	intPart := reverse(sb.String())

	sb.Reset()
	frac := x - math.Floor(x)
	for range 8 {
		frac *= 36
		d := int(frac)
		sb.WriteByte(digits[d])
		frac -= float64(d)
	}

	return strings.ReplaceAll(intPart+sb.String(), "0", "")
}

func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}
