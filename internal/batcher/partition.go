package batcher

import "github.com/mediarelay/twitter-media-telegram-bot/internal/domain"

// Partition splits resolved items into delivery groups such that no group
// exceeds maxSize, kinds only mix when the channel allows it, and kinds that
// require single delivery always stand alone. Concatenating the groups in
// order reproduces the input order exactly.
func Partition(items []domain.ResolvedItem, maxSize int, mixedOK bool) []domain.DeliveryGroup {
	if maxSize < 1 {
		maxSize = 1
	}

	var groups []domain.DeliveryGroup
	var current []domain.ResolvedItem

	flush := func() {
		if len(current) == 0 {
			return
		}
		groups = append(groups, domain.DeliveryGroup{
			Kind:  groupKind(current),
			Items: current,
		})
		current = nil
	}

	for _, item := range items {
		if item.Kind.RequiresSingleDelivery() {
			flush()
			groups = append(groups, domain.DeliveryGroup{
				Kind:  domain.GroupSingle,
				Items: []domain.ResolvedItem{item},
			})
			continue
		}

		if len(current) > 0 {
			if len(current) == maxSize {
				flush()
			} else if !mixedOK && current[len(current)-1].Kind != item.Kind {
				// A kind change starts a new group on homogeneous channels.
				flush()
			}
		}
		current = append(current, item)
	}
	flush()

	return groups
}

func groupKind(items []domain.ResolvedItem) domain.GroupKind {
	if len(items) == 1 {
		return domain.GroupSingle
	}

	allImage, allVideo := true, true
	for _, it := range items {
		if it.Kind != domain.KindImage {
			allImage = false
		}
		if it.Kind != domain.KindVideo {
			allVideo = false
		}
	}
	switch {
	case allImage:
		return domain.GroupAllImage
	case allVideo:
		return domain.GroupAllVideo
	default:
		return domain.GroupMixed
	}
}
