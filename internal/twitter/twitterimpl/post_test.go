package twitterimpl

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mediarelay/twitter-media-telegram-bot/internal/domain"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/twitter"
	"github.com/mediarelay/twitter-media-telegram-bot/pkg/logger"
	"github.com/mediarelay/twitter-media-telegram-bot/pkg/retry"
)

const fullPayload = `{
	"__typename": "Tweet",
	"text": "three kinds of media",
	"user": {"screen_name": "someone"},
	"mediaDetails": [
		{
			"type": "photo",
			"media_url_https": "https://pbs.twimg.com/media/abc.jpg",
			"sizes": {"large": {"w": 2048, "h": 1536}}
		},
		{
			"type": "video",
			"video_info": {"variants": [
				{"content_type": "application/x-mpegURL", "url": "https://video.twimg.com/pl.m3u8"},
				{"bitrate": 832000, "content_type": "video/mp4", "url": "https://video.twimg.com/mid.mp4"},
				{"bitrate": 2176000, "content_type": "video/mp4", "url": "https://video.twimg.com/high.mp4"}
			]}
		},
		{
			"type": "animated_gif",
			"video_info": {"variants": [
				{"bitrate": 0, "content_type": "video/mp4", "url": "https://video.twimg.com/gif.mp4"}
			]}
		}
	]
}`

func newTestClient(baseURL string) *TwitterImpl {
	return &TwitterImpl{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		retryCfg: retry.Config{
			MaxRetries:      1,
			InitialInterval: 5 * time.Millisecond,
			MaxInterval:     10 * time.Millisecond,
			Multiplier:      2,
		},
		logger: logger.New(logger.Opts{}).WithComponent("TwitterClient"),
	}
}

func payloadServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestGetPost_MapsAllAttachmentKinds(t *testing.T) {
	srv := payloadServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tweet-result" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("id") != "1234567890" {
			t.Errorf("unexpected id %q", r.URL.Query().Get("id"))
		}
		if r.URL.Query().Get("token") == "" {
			t.Error("expected a token query parameter")
		}
		_, _ = w.Write([]byte(fullPayload))
	})

	post, err := newTestClient(srv.URL).GetPost(context.Background(), domain.PostRef("1234567890"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if post.Author != "someone" || post.Text != "three kinds of media" {
		t.Errorf("unexpected post metadata: %+v", post)
	}
	if len(post.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(post.Items))
	}

	photo := post.Items[0]
	if photo.Kind != domain.KindImage || len(photo.Representations) != 1 {
		t.Fatalf("unexpected photo item: %+v", photo)
	}
	if got := photo.Representations[0].Quality; got != 2048*1536 {
		t.Errorf("expected pixel-area quality, got %d", got)
	}
	if photo.Representations[0].URL != "https://pbs.twimg.com/media/abc.jpg" {
		t.Errorf("unexpected photo URL %q", photo.Representations[0].URL)
	}

	video := post.Items[1]
	if video.Kind != domain.KindVideo {
		t.Fatalf("unexpected video item: %+v", video)
	}
	if len(video.Representations) != 2 {
		t.Fatalf("expected the playlist variant to be filtered, got %d representations", len(video.Representations))
	}
	for _, rep := range video.Representations {
		if rep.URL == "https://video.twimg.com/pl.m3u8" {
			t.Error("playlist variant leaked through the mp4 filter")
		}
	}

	gif := post.Items[2]
	if gif.Kind != domain.KindLoopedVideo || len(gif.Representations) != 1 {
		t.Fatalf("unexpected gif item: %+v", gif)
	}
	if gif.Representations[0].URL != "https://video.twimg.com/gif.mp4" {
		t.Errorf("unexpected gif URL %q", gif.Representations[0].URL)
	}
}

func TestGetPost_NotFound(t *testing.T) {
	calls := 0
	srv := payloadServer(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := newTestClient(srv.URL).GetPost(context.Background(), domain.PostRef("1"))
	if !errors.Is(err, twitter.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if calls != 1 {
		t.Errorf("client errors must not be retried, got %d calls", calls)
	}
}

func TestGetPost_Forbidden(t *testing.T) {
	srv := payloadServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := newTestClient(srv.URL).GetPost(context.Background(), domain.PostRef("1"))
	if !errors.Is(err, twitter.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestGetPost_TombstoneIsNotFound(t *testing.T) {
	srv := payloadServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"__typename": "TweetTombstone"}`))
	})

	_, err := newTestClient(srv.URL).GetPost(context.Background(), domain.PostRef("1"))
	if !errors.Is(err, twitter.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetPost_NoAttachmentsIsNoMedia(t *testing.T) {
	srv := payloadServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"__typename": "Tweet", "text": "just words", "user": {"screen_name": "someone"}}`))
	})

	_, err := newTestClient(srv.URL).GetPost(context.Background(), domain.PostRef("1"))
	if !errors.Is(err, twitter.ErrNoMedia) {
		t.Fatalf("expected ErrNoMedia, got %v", err)
	}
}

func TestGetPost_RetriesTransientUpstreamFailure(t *testing.T) {
	calls := 0
	srv := payloadServer(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(fullPayload))
	})

	post, err := newTestClient(srv.URL).GetPost(context.Background(), domain.PostRef("1234567890"))
	if err != nil {
		t.Fatalf("expected the retry to recover, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 attempts, got %d", calls)
	}
	if len(post.Items) != 3 {
		t.Errorf("expected 3 items, got %d", len(post.Items))
	}
}

func TestGetPost_PersistentUpstreamFailure(t *testing.T) {
	calls := 0
	srv := payloadServer(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := newTestClient(srv.URL).GetPost(context.Background(), domain.PostRef("1"))
	if !errors.Is(err, twitter.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 attempts, got %d", calls)
	}
}

func TestGetPost_UnknownAttachmentKind(t *testing.T) {
	srv := payloadServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"__typename": "Tweet",
			"user": {"screen_name": "someone"},
			"mediaDetails": [{"type": "hologram"}]
		}`))
	})

	_, err := newTestClient(srv.URL).GetPost(context.Background(), domain.PostRef("1"))
	if !errors.Is(err, twitter.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestSyndicationToken_MatchesKnownValue(t *testing.T) {
	// Token for a given id is stable across runs.
	a := syndicationToken("1674865731136020505")
	b := syndicationToken("1674865731136020505")
	if a == "" || a != b {
		t.Errorf("token derivation is unstable: %q vs %q", a, b)
	}
	if syndicationToken("not-a-number") != "" {
		t.Error("expected empty token for a malformed id")
	}
}
