package collection

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConcurrentSetWithShards_RoundsUpToPowerOfTwo(t *testing.T) {
	tests := []struct {
		name     string
		shards   int
		expected int
	}{
		{name: "zero", shards: 0, expected: 1},
		{name: "negative", shards: -3, expected: 1},
		{name: "one", shards: 1, expected: 1},
		{name: "power of two", shards: 16, expected: 16},
		{name: "not power of two", shards: 17, expected: 32},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewConcurrentSetWithShards(tc.shards)

			assert.Equal(t, tc.expected, s.ShardCount())
			assert.Equal(t, 0, s.Len())
		})
	}
}

func TestConcurrentSet_AddContains(t *testing.T) {
	s := NewConcurrentSet()

	assert.True(t, s.Add(7))
	assert.False(t, s.Add(7), "duplicate insert must report false")
	assert.True(t, s.Add(-7))
	assert.True(t, s.Add(0))

	assert.True(t, s.Contains(7))
	assert.True(t, s.Contains(-7))
	assert.True(t, s.Contains(0))
	assert.False(t, s.Contains(8))
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []int{-7, 0, 7}, s.Sorted())
}

func TestConcurrentSet_ConcurrentAddsLoseNothing(t *testing.T) {
	s := NewConcurrentSetWithShards(8)
	const writers = 16
	const perWriter = 2000

	var wg sync.WaitGroup
	wg.Add(writers)
	for w := 0; w < writers; w++ {
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				s.Add(w*perWriter + i)
				// Every writer also hammers a shared value.
				s.Add(-1)
			}
		}(w)
	}
	wg.Wait()

	require.Equal(t, writers*perWriter+1, s.Len())
	sorted := s.Sorted()
	assert.Equal(t, -1, sorted[0])
	for i := 1; i < len(sorted); i++ {
		assert.Equal(t, i-1, sorted[i])
	}
}

func TestConcurrentSet_ValuesMatchesLen(t *testing.T) {
	s := NewConcurrentSetWithShards(4)
	for i := 0; i < 100; i += 3 {
		s.Add(i)
	}

	assert.Len(t, s.Values(), s.Len())
	assert.ElementsMatch(t, s.Sorted(), s.Values())
}

func TestConcurrentSet_SpreadsAcrossShards(t *testing.T) {
	s := NewConcurrentSetWithShards(16)
	used := make(map[*shard]bool)

	for _, v := range []int{math.MinInt64, -1, 0, 2, math.MaxInt32, math.MaxInt64} {
		assert.True(t, s.Add(v))
		assert.True(t, s.Contains(v))
	}
	for v := 0; v < 1000; v++ {
		used[s.shardFor(v)] = true
	}

	assert.Len(t, used, s.ShardCount())
	assert.Same(t, s.shardFor(12345), s.shardFor(12345))
}
