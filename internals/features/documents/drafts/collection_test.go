package drafts

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feeItems(n int) Collection[FeeItem, *FeeItem] {
	var c Collection[FeeItem, *FeeItem]
	for i := 0; i < n; i++ {
		c.Add(FeeItem{Description: fmt.Sprintf("item-%d", i), Amount: "100"})
	}
	return c
}

func TestCollectionAddAssignsUniqueIDs(t *testing.T) {
	c := feeItems(5)
	ids := c.IDs()
	seen := map[string]bool{}
	for _, id := range ids {
		assert.NotEmpty(t, id)
		assert.False(t, seen[id])
		seen[id] = true
	}

	// a caller-chosen id that collides is replaced
	dupID := c.Add(FeeItem{Key: Key{ID: ids[0]}, Description: "dup"})
	assert.NotEqual(t, ids[0], dupID)
}

func TestCollectionRemovePreservesOrder(t *testing.T) {
	for n := 2; n <= 8; n++ {
		for i := 0; i < n; i++ {
			c := feeItems(n)
			before := c.IDs()

			require.True(t, c.RemoveAt(i))
			after := c.IDs()

			require.Len(t, after, n-1)
			want := append(append([]string{}, before[:i]...), before[i+1:]...)
			assert.Equal(t, want, after, "n=%d i=%d", n, i)

			uniq := map[string]struct{}{}
			for _, id := range after {
				uniq[id] = struct{}{}
			}
			assert.Len(t, uniq, n-1)
		}
	}
}

func TestCollectionRemoveByID(t *testing.T) {
	c := feeItems(3)
	ids := c.IDs()
	assert.True(t, c.Remove(ids[1]))
	assert.False(t, c.Remove(ids[1]))
	assert.Equal(t, []string{ids[0], ids[2]}, c.IDs())
	assert.False(t, c.RemoveAt(-1))
	assert.False(t, c.RemoveAt(2))
}

func TestCollectionUpdateKeepsID(t *testing.T) {
	c := feeItems(2)
	id := c.IDs()[0]
	ok := c.Update(id, func(it *FeeItem) {
		it.Amount = "250"
		it.ID = "hijacked"
	})
	require.True(t, ok)
	assert.Equal(t, "250", c.Get(id).Amount)
	assert.Nil(t, c.Get("hijacked"))
	assert.False(t, c.Update("missing", func(*FeeItem) {}))
}

func TestCollectionEnsureIDs(t *testing.T) {
	c := Collection[FeeItem, *FeeItem]{
		{Description: "a"},
		{Key: Key{ID: "x"}, Description: "b"},
		{Key: Key{ID: "x"}, Description: "c"},
	}
	c.EnsureIDs()
	ids := c.IDs()
	assert.NotEmpty(t, ids[0])
	assert.Equal(t, "x", ids[1])
	assert.NotEqual(t, "x", ids[2])
}
