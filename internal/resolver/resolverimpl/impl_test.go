package resolverimpl

import (
	"context"
	"errors"
	"testing"

	"github.com/mediarelay/twitter-media-telegram-bot/internal/domain"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/resolver"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/twitter"
	"github.com/mediarelay/twitter-media-telegram-bot/pkg/logger"
)

type fakeTwitter struct {
	post *domain.RawPost
	err  error
}

func (f *fakeTwitter) GetPost(_ context.Context, _ domain.PostRef) (*domain.RawPost, error) {
	return f.post, f.err
}

type recordedOutcome struct {
	outcome  domain.Outcome
	identity string
}

type fakeStats struct {
	recorded  []recordedOutcome
	delivered int
}

func (f *fakeStats) Record(_ context.Context, outcome domain.Outcome, identity string) {
	f.recorded = append(f.recorded, recordedOutcome{outcome, identity})
}

func (f *fakeStats) RecordDelivered(_ context.Context, count int) { f.delivered += count }

func (f *fakeStats) Snapshot() domain.UsageCounters { return domain.NewUsageCounters() }

func (f *fakeStats) Reset(_ context.Context, _ string) error { return nil }

func newTestResolver(tw *fakeTwitter, st *fakeStats) *ResolverImpl {
	return New(Opts{
		Twitter: tw,
		Stats:   st,
		Logger:  logger.New(logger.Opts{}),
	})
}

func TestResolve_PicksBestRepresentationPerItem(t *testing.T) {
	tw := &fakeTwitter{
		post: &domain.RawPost{
			Ref: "1",
			Items: []domain.MediaItem{
				{
					Index: 0,
					Kind:  domain.KindVideo,
					Representations: []domain.MediaRepresentation{
						{Kind: domain.KindVideo, Quality: 360, URL: "u1"},
						{Kind: domain.KindVideo, Quality: 1080, URL: "u2"},
					},
				},
			},
		},
	}
	st := &fakeStats{}

	post, err := newTestResolver(tw, st).Resolve(context.Background(), "1", "user-9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(post.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(post.Items))
	}
	if post.Items[0].Chosen.URL != "u2" {
		t.Errorf("expected chosen u2, got %s", post.Items[0].Chosen.URL)
	}

	if len(st.recorded) != 1 {
		t.Fatalf("expected exactly one recorded outcome, got %d", len(st.recorded))
	}
	if !st.recorded[0].outcome.Success || st.recorded[0].identity != "user-9" {
		t.Errorf("expected success recorded for user-9, got %+v", st.recorded[0])
	}
}

func TestResolve_PreservesItemOrder(t *testing.T) {
	var items []domain.MediaItem
	for i := 0; i < 6; i++ {
		items = append(items, domain.MediaItem{
			Index: i,
			Kind:  domain.KindImage,
			Representations: []domain.MediaRepresentation{
				{Kind: domain.KindImage, Quality: 100, URL: "u"},
			},
		})
	}
	tw := &fakeTwitter{post: &domain.RawPost{Ref: "1", Items: items}}

	post, err := newTestResolver(tw, &fakeStats{}).Resolve(context.Background(), "1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, item := range post.Items {
		if item.Index != i {
			t.Errorf("position %d holds item index %d", i, item.Index)
		}
	}
}

func TestResolve_PropagatesNotFoundAndCountsCause(t *testing.T) {
	tw := &fakeTwitter{err: twitter.ErrNotFound}
	st := &fakeStats{}

	_, err := newTestResolver(tw, st).Resolve(context.Background(), "404", "user-1")
	if !errors.Is(err, twitter.ErrNotFound) {
		t.Fatalf("expected ErrNotFound to propagate unchanged, got %v", err)
	}

	if len(st.recorded) != 1 {
		t.Fatalf("expected exactly one recorded outcome, got %d", len(st.recorded))
	}
	rec := st.recorded[0]
	if rec.outcome.Success {
		t.Error("expected a failure outcome")
	}
	if rec.outcome.Cause != domain.CauseNotFound {
		t.Errorf("expected not_found cause, got %s", rec.outcome.Cause)
	}
}

func TestResolve_PropagatesOtherFetchFailures(t *testing.T) {
	cases := []struct {
		err   error
		cause domain.Cause
	}{
		{twitter.ErrForbidden, domain.CauseForbidden},
		{twitter.ErrNoMedia, domain.CauseNoMedia},
		{twitter.ErrUpstreamUnavailable, domain.CauseUpstreamUnavailable},
	}

	for _, tc := range cases {
		st := &fakeStats{}
		_, err := newTestResolver(&fakeTwitter{err: tc.err}, st).Resolve(context.Background(), "1", "")
		if !errors.Is(err, tc.err) {
			t.Errorf("%v: expected propagation, got %v", tc.err, err)
		}
		if st.recorded[0].outcome.Cause != tc.cause {
			t.Errorf("%v: expected cause %s, got %s", tc.err, tc.cause, st.recorded[0].outcome.Cause)
		}
	}
}

func TestResolve_SelectorFailureNamesItemIndex(t *testing.T) {
	tw := &fakeTwitter{
		post: &domain.RawPost{
			Ref: "1",
			Items: []domain.MediaItem{
				{
					Index: 0,
					Kind:  domain.KindImage,
					Representations: []domain.MediaRepresentation{
						{Kind: domain.KindImage, Quality: 100, URL: "u"},
					},
				},
				{Index: 1, Kind: domain.KindImage}, // no representations
			},
		},
	}
	st := &fakeStats{}

	_, err := newTestResolver(tw, st).Resolve(context.Background(), "1", "")

	var partial *resolver.PartialMediaError
	if !errors.As(err, &partial) {
		t.Fatalf("expected PartialMediaError, got %v", err)
	}
	if partial.Index != 1 {
		t.Errorf("expected failing index 1, got %d", partial.Index)
	}
	if st.recorded[0].outcome.Cause != domain.CausePartialMediaFailure {
		t.Errorf("expected partial_media_failure cause, got %s", st.recorded[0].outcome.Cause)
	}
}
