package court

// DefaultFeedCapacity is the number of feed items kept per session.
const DefaultFeedCapacity = 200

// Feed is a bounded, newest-first message log. It is not safe for concurrent
// use; Session serializes access.
type Feed struct {
	items    []FeedItem
	capacity int
}

// NewFeed creates an empty feed that keeps at most capacity items.
func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = DefaultFeedCapacity
	}
	return &Feed{
		items:    make([]FeedItem, 0, capacity),
		capacity: capacity,
	}
}

// Push inserts item at the front and evicts the oldest items past capacity.
func (f *Feed) Push(item FeedItem) {
	if len(f.items) < f.capacity {
		f.items = append(f.items, FeedItem{})
	}
	copy(f.items[1:], f.items)
	f.items[0] = item
}

// Items returns a copy of the feed, newest first.
func (f *Feed) Items() []FeedItem {
	out := make([]FeedItem, len(f.items))
	copy(out, f.items)
	return out
}

// Len returns the number of items currently held.
func (f *Feed) Len() int {
	return len(f.items)
}

// Capacity returns the maximum number of items kept.
func (f *Feed) Capacity() int {
	return f.capacity
}
