package domain

// PostRef identifies a single tweet. It is extracted from a link by the link
// parser and consumed by the post fetcher.
type PostRef string

func (r PostRef) String() string { return string(r) }

// RawPost is a normalized upstream post before quality selection: every item
// still carries all of its representations.
type RawPost struct {
	Ref    PostRef
	Author string
	Text   string
	Items  []MediaItem
}

// ResolvedPost is a post whose items have each been reduced to one chosen
// representation. Item order matches the original attachment order. Built
// once per request and discarded after delivery.
type ResolvedPost struct {
	Ref    PostRef
	Author string
	Text   string
	Items  []ResolvedItem
}
