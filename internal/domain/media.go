package domain

// MediaKind is the closed set of attachment kinds the upstream can carry.
// Anything else is rejected at the fetch boundary.
type MediaKind string

const (
	KindImage       MediaKind = "image"
	KindLoopedVideo MediaKind = "looped-video"
	KindVideo       MediaKind = "video"
)

// RequiresSingleDelivery reports whether an item of this kind must be sent
// in a group of its own. Telegram cannot put animations into albums.
func (k MediaKind) RequiresSingleDelivery() bool {
	return k == KindLoopedVideo
}

// MediaRepresentation is one downloadable variant of a media item. Quality is
// a numeric metric (pixel area for images, bitrate for videos) where higher
// is better. SizeEstimate is in bytes and may be zero when unknown.
type MediaRepresentation struct {
	Kind         MediaKind
	Quality      int64
	SizeEstimate int64
	URL          string
}

// MediaItem is one attachment on a post, carrying every representation the
// upstream advertises. Index is the attachment's position within the post.
type MediaItem struct {
	Index           int
	Kind            MediaKind
	Representations []MediaRepresentation
}

// ResolvedItem is a MediaItem reduced to exactly one chosen representation.
type ResolvedItem struct {
	Index  int
	Kind   MediaKind
	Chosen MediaRepresentation
}
