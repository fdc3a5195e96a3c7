package linkparser

import (
	"testing"

	"github.com/mediarelay/twitter-media-telegram-bot/internal/domain"
)

func TestExtractRefs_FindsStatusLinks(t *testing.T) {
	text := "look at this https://twitter.com/someone/status/1234567890 wow"
	refs := ExtractRefs(text)

	if len(refs) != 1 {
		t.Fatalf("expected 1 ref, got %d", len(refs))
	}
	if refs[0] != domain.PostRef("1234567890") {
		t.Errorf("expected ref 1234567890, got %s", refs[0])
	}
}

func TestExtractRefs_SupportsXDotCom(t *testing.T) {
	refs := ExtractRefs("https://x.com/user/status/42")
	if len(refs) != 1 || refs[0] != domain.PostRef("42") {
		t.Fatalf("expected [42], got %v", refs)
	}
}

func TestExtractRefs_SupportsWebStatusLinks(t *testing.T) {
	refs := ExtractRefs("https://twitter.com/i/web/status/555")
	if len(refs) != 1 || refs[0] != domain.PostRef("555") {
		t.Fatalf("expected [555], got %v", refs)
	}
}

func TestExtractRefs_DeduplicatesPreservingOrder(t *testing.T) {
	text := "https://twitter.com/a/status/111 then https://twitter.com/b/status/222 " +
		"and again https://twitter.com/a/status/111"
	refs := ExtractRefs(text)

	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %d: %v", len(refs), refs)
	}
	if refs[0] != "111" || refs[1] != "222" {
		t.Errorf("expected order [111 222], got %v", refs)
	}
}

func TestExtractRefs_NoLink(t *testing.T) {
	if refs := ExtractRefs("just some text, no links here"); refs != nil {
		t.Errorf("expected nil, got %v", refs)
	}
}

func TestExtractRefs_IgnoresOtherHosts(t *testing.T) {
	if refs := ExtractRefs("https://instagram.com/p/status/123"); refs != nil {
		t.Errorf("expected nil for non-twitter host, got %v", refs)
	}
}
