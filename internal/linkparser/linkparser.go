// Package linkparser extracts tweet references from free-form message text.
package linkparser

import (
	"regexp"

	"github.com/mediarelay/twitter-media-telegram-bot/internal/domain"
)

var (
	statusRe = regexp.MustCompile(`(?:twitter|x)\.com/[^/\s]+/status(?:es)?/([0-9]{1,20})`)
	webRe    = regexp.MustCompile(`(?:twitter|x)\.com/i/web/status/([0-9]{1,20})`)
)

// ExtractRefs returns the tweet IDs found in text, in order of first
// appearance, duplicates removed. Returns nil when no link is found.
func ExtractRefs(text string) []domain.PostRef {
	var refs []domain.PostRef
	seen := make(map[string]struct{})

	for _, re := range []*regexp.Regexp{statusRe, webRe} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			id := m[1]
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			refs = append(refs, domain.PostRef(id))
		}
	}

	return refs
}
