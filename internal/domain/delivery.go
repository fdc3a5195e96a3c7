package domain

// GroupKind tags a delivery group with the shape the outbound channel sees.
type GroupKind string

const (
	GroupAllImage GroupKind = "all-image"
	GroupAllVideo GroupKind = "all-video"
	GroupSingle   GroupKind = "single-item"
	GroupMixed    GroupKind = "mixed"
)

// DeliveryGroup is an ordered slice of resolved items submitted to the
// outbound channel in one call.
type DeliveryGroup struct {
	Kind  GroupKind
	Items []ResolvedItem
}

// DroppedItem records one item that was left out of delivery and why.
type DroppedItem struct {
	Index int
	Cause Cause
}

// DeliveryReport summarizes what a delivery attempt actually sent.
type DeliveryReport struct {
	Delivered int
	Dropped   []DroppedItem
}
