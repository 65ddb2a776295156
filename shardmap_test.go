package shardmap_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/shardmap"
	"github.com/dreamware/shardmap/internal/router"
)

func TestNewDefaults(t *testing.T) {
	m, err := shardmap.New[string, int]()
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.GreaterOrEqual(t, m.Shards(), 1)
	// Default shard count is a power of two.
	assert.Equal(t, 0, m.Shards()&(m.Shards()-1))
	assert.True(t, m.IsEmpty())
	assert.Equal(t, 0, m.Len())
}

func TestNewInvalidShardCount(t *testing.T) {
	for _, n := range []int{0, -1, -64} {
		t.Run(fmt.Sprintf("shards=%d", n), func(t *testing.T) {
			m, err := shardmap.New[string, int](shardmap.WithShards[string](n))
			require.ErrorIs(t, err, shardmap.ErrInvalidShardCount)
			assert.Nil(t, m)
		})
	}
}

func TestSetGetDelete(t *testing.T) {
	for _, n := range []int{1, 2, 4, 7, 64} {
		t.Run(fmt.Sprintf("shards=%d", n), func(t *testing.T) {
			m, err := shardmap.New[string, string](shardmap.WithShards[string](n))
			require.NoError(t, err)

			// Insert then get returns the inserted value.
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("key-%d", i)
				_, existed := m.Set(key, fmt.Sprintf("value-%d", i))
				assert.False(t, existed)
			}
			for i := 0; i < 200; i++ {
				v, ok := m.Get(fmt.Sprintf("key-%d", i))
				require.True(t, ok)
				assert.Equal(t, fmt.Sprintf("value-%d", i), v)
			}
			assert.Equal(t, 200, m.Len())

			// Overwrite reports the previous value.
			prev, existed := m.Set("key-0", "replaced")
			require.True(t, existed)
			assert.Equal(t, "value-0", prev)

			// Remove returns the value and leaves the key absent.
			removed, existed := m.Delete("key-0")
			require.True(t, existed)
			assert.Equal(t, "replaced", removed)
			_, ok := m.Get("key-0")
			assert.False(t, ok)

			// Absent keys are a normal result on both paths.
			_, ok = m.Get("never-inserted")
			assert.False(t, ok)
			_, existed = m.Delete("never-inserted")
			assert.False(t, existed)
		})
	}
}

func TestContainsClearIsEmpty(t *testing.T) {
	m, err := shardmap.New[int, int](shardmap.WithShards[int](8))
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		m.Set(i, i)
	}
	assert.True(t, m.Contains(42))
	assert.False(t, m.Contains(1000))
	assert.False(t, m.IsEmpty())

	m.Clear()
	assert.True(t, m.IsEmpty())
	assert.Equal(t, 0, m.Len())
	assert.False(t, m.Contains(42))
}

// TestConcurrentDisjointRanges fills the map from two goroutines writing
// disjoint key ranges into a single shard and verifies no update is lost.
func TestConcurrentDisjointRanges(t *testing.T) {
	m, err := shardmap.New[int, int](shardmap.WithShards[int](1))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for _, bounds := range [][2]int{{0, 500}, {500, 1000}} {
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for k := lo; k < hi; k++ {
				m.Set(k, k*3)
			}
		}(bounds[0], bounds[1])
	}
	wg.Wait()

	require.Equal(t, 1000, m.Len())
	for k := 0; k < 1000; k++ {
		v, ok := m.Get(k)
		require.True(t, ok, "key %d missing", k)
		require.Equal(t, k*3, v, "key %d", k)
	}
}

func TestWithHasher(t *testing.T) {
	m, err := shardmap.New[string, int](
		shardmap.WithShards[string](4),
		shardmap.WithHasher[string](router.StringHasher),
	)
	require.NoError(t, err)

	m.Set("a", 1)
	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestWithCapacity(t *testing.T) {
	m, err := shardmap.New[int, int](
		shardmap.WithShards[int](4),
		shardmap.WithCapacity[int](10000),
	)
	require.NoError(t, err)

	for i := 0; i < 10000; i++ {
		m.Set(i, i)
	}
	assert.Equal(t, 10000, m.Len())
}

func TestStatsAndInfo(t *testing.T) {
	m, err := shardmap.New[string, int](shardmap.WithShards[string](4))
	require.NoError(t, err)

	m.Set("a", 1)
	m.Set("b", 2)
	m.Get("a")
	m.Delete("b")
	m.ExportSnapshot()

	stats := m.Stats()
	assert.Equal(t, uint64(2), stats.Puts)
	assert.Equal(t, uint64(1), stats.Gets)
	assert.Equal(t, uint64(1), stats.Deletes)
	assert.Equal(t, uint64(4), stats.Snapshots, "export touches every shard once")

	infos := m.Info()
	require.Len(t, infos, 4)
	keys := 0
	for i, info := range infos {
		assert.Equal(t, i, info.ID)
		keys += info.Keys
	}
	assert.Equal(t, 1, keys)
}

// TestShardDistribution verifies keys actually land on more than one
// shard, i.e. the map is not accidentally funneling everything through
// one lock.
func TestShardDistribution(t *testing.T) {
	m, err := shardmap.New[string, int](shardmap.WithShards[string](8))
	require.NoError(t, err)

	for i := 0; i < 4000; i++ {
		m.Set(fmt.Sprintf("key-%d", i), i)
	}

	populated := 0
	for _, info := range m.Info() {
		if info.Keys > 0 {
			populated++
		}
	}
	assert.Equal(t, 8, populated, "expected keys on every shard")
}
