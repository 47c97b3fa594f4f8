package court

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFeed_NewestFirst(t *testing.T) {
	f := NewFeed(10)
	f.Push(FeedItem{Source: SourceBoss, Text: "one"})
	f.Push(FeedItem{Source: SourceFamily, Text: "two"})

	items := f.Items()
	require.Len(t, items, 2)
	require.Equal(t, "two", items[0].Text)
	require.Equal(t, "one", items[1].Text)
}

func TestFeed_EvictsOldest(t *testing.T) {
	f := NewFeed(3)
	for i := 1; i <= 5; i++ {
		f.Push(FeedItem{Text: fmt.Sprintf("m%d", i)})
	}

	require.Equal(t, 3, f.Len())
	var texts []string
	for _, item := range f.Items() {
		texts = append(texts, item.Text)
	}
	require.Equal(t, []string{"m5", "m4", "m3"}, texts)
}

func TestFeed_ItemsIsACopy(t *testing.T) {
	f := NewFeed(2)
	f.Push(FeedItem{Text: "a"})

	items := f.Items()
	items[0].Text = "changed"
	require.Equal(t, "a", f.Items()[0].Text)
}

func TestFeed_DefaultCapacity(t *testing.T) {
	require.Equal(t, DefaultFeedCapacity, NewFeed(0).Capacity())
}
