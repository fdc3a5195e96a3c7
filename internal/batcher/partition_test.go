package batcher

import (
	"testing"

	"github.com/mediarelay/twitter-media-telegram-bot/internal/domain"
)

func imageItems(n int) []domain.ResolvedItem {
	items := make([]domain.ResolvedItem, n)
	for i := range items {
		items[i] = domain.ResolvedItem{Index: i, Kind: domain.KindImage}
	}
	return items
}

func flatten(groups []domain.DeliveryGroup) []int {
	var out []int
	for _, g := range groups {
		for _, it := range g.Items {
			out = append(out, it.Index)
		}
	}
	return out
}

func TestPartition_TwelveImagesMaxTen(t *testing.T) {
	groups := Partition(imageItems(12), 10, true)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if len(groups[0].Items) != 10 || len(groups[1].Items) != 2 {
		t.Errorf("expected sizes [10 2], got [%d %d]", len(groups[0].Items), len(groups[1].Items))
	}
	if groups[0].Kind != domain.GroupAllImage {
		t.Errorf("expected all-image group, got %s", groups[0].Kind)
	}
}

func TestPartition_NeverExceedsMaxGroupSize(t *testing.T) {
	for _, n := range []int{1, 5, 10, 11, 25, 100} {
		for _, maxSize := range []int{1, 3, 10} {
			groups := Partition(imageItems(n), maxSize, true)
			for gi, g := range groups {
				if len(g.Items) > maxSize {
					t.Errorf("n=%d max=%d: group %d has %d items", n, maxSize, gi, len(g.Items))
				}
			}
		}
	}
}

func TestPartition_ConcatenationPreservesOrder(t *testing.T) {
	items := []domain.ResolvedItem{
		{Index: 0, Kind: domain.KindImage},
		{Index: 1, Kind: domain.KindVideo},
		{Index: 2, Kind: domain.KindLoopedVideo},
		{Index: 3, Kind: domain.KindImage},
		{Index: 4, Kind: domain.KindImage},
	}

	for _, mixed := range []bool{true, false} {
		got := flatten(Partition(items, 10, mixed))
		if len(got) != 5 {
			t.Fatalf("mixed=%v: expected 5 items, got %d", mixed, len(got))
		}
		for i, idx := range got {
			if idx != i {
				t.Errorf("mixed=%v: position %d holds index %d", mixed, i, idx)
			}
		}
	}
}

func TestPartition_LoopedVideoStandsAlone(t *testing.T) {
	items := []domain.ResolvedItem{
		{Index: 0, Kind: domain.KindImage},
		{Index: 1, Kind: domain.KindLoopedVideo},
		{Index: 2, Kind: domain.KindImage},
	}

	groups := Partition(items, 10, true)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	if groups[1].Kind != domain.GroupSingle || len(groups[1].Items) != 1 {
		t.Errorf("expected single-item group for looped video, got %+v", groups[1])
	}
	if groups[1].Items[0].Index != 1 {
		t.Errorf("expected item 1 in the single group, got %d", groups[1].Items[0].Index)
	}
}

func TestPartition_KindChangeSplitsWhenMixingUnsupported(t *testing.T) {
	items := []domain.ResolvedItem{
		{Index: 0, Kind: domain.KindImage},
		{Index: 1, Kind: domain.KindImage},
		{Index: 2, Kind: domain.KindVideo},
		{Index: 3, Kind: domain.KindImage},
	}

	groups := Partition(items, 10, false)
	if len(groups) != 3 {
		t.Fatalf("expected 3 kind-homogeneous groups, got %d", len(groups))
	}
	for gi, g := range groups {
		kind := g.Items[0].Kind
		for _, it := range g.Items {
			if it.Kind != kind {
				t.Errorf("group %d mixes kinds", gi)
			}
		}
	}
}

func TestPartition_MixedGroupWhenSupported(t *testing.T) {
	items := []domain.ResolvedItem{
		{Index: 0, Kind: domain.KindImage},
		{Index: 1, Kind: domain.KindVideo},
	}

	groups := Partition(items, 10, true)
	if len(groups) != 1 {
		t.Fatalf("expected 1 mixed group, got %d", len(groups))
	}
	if groups[0].Kind != domain.GroupMixed {
		t.Errorf("expected mixed group kind, got %s", groups[0].Kind)
	}
}

func TestPartition_SingleItem(t *testing.T) {
	groups := Partition(imageItems(1), 10, true)
	if len(groups) != 1 || groups[0].Kind != domain.GroupSingle {
		t.Fatalf("expected one single-item group, got %+v", groups)
	}
}

func TestPartition_Empty(t *testing.T) {
	if groups := Partition(nil, 10, true); len(groups) != 0 {
		t.Errorf("expected no groups for no items, got %d", len(groups))
	}
}
