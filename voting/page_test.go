package voting

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	t.Run("Happy path - middle page", func(t *testing.T) {
		p := paginate(items, 1, 2)
		assert.Equal(t, []int{3, 4}, p.Items)
		assert.Equal(t, 3, p.TotalPages)
		assert.Equal(t, 5, p.TotalElements)
		assert.False(t, p.First())
		assert.False(t, p.Last())
	})

	t.Run("Happy path - last partial page", func(t *testing.T) {
		p := paginate(items, 2, 2)
		assert.Equal(t, []int{5}, p.Items)
		assert.True(t, p.Last())
	})

	t.Run("Happy path - past the end is empty", func(t *testing.T) {
		p := paginate(items, 7, 2)
		assert.True(t, p.Empty())
		assert.Equal(t, 7, p.Number)
	})

	t.Run("Happy path - huge page number is empty", func(t *testing.T) {
		for _, number := range []int{100000000000000000, math.MaxInt} {
			p := paginate([]int{1, 2, 3}, number, 100)
			assert.True(t, p.Empty())
			assert.Equal(t, number, p.Number)
			assert.Equal(t, 3, p.TotalElements)
			assert.True(t, p.Last())
		}
	})

	t.Run("Happy path - size is clamped", func(t *testing.T) {
		assert.Equal(t, DefaultPageSize, paginate(items, 0, 0).Size)
		assert.Equal(t, MaxPageSize, paginate(items, 0, 1000).Size)
		assert.Equal(t, 0, paginate(items, -3, 2).Number)
	})

	t.Run("Happy path - no items", func(t *testing.T) {
		p := paginate([]int{}, 0, 10)
		assert.True(t, p.Empty())
		assert.True(t, p.First())
		assert.True(t, p.Last())
		assert.Zero(t, p.TotalPages)
	})
}
