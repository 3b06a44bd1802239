package wpool_test

import (
	"sort"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/hocevar-remez/goremez/wpool"
	"github.com/stretchr/testify/require"
)

func TestRunPhaseCompletesAllTags(t *testing.T) {
	var calls int32
	p := wpool.New(4, func(tag int) int {
		atomic.AddInt32(&calls, 1)
		return tag
	})
	defer p.Shutdown()

	tags := []int{0, 1, 2, 3, 4, 5, 6, 7}
	got := p.RunPhase(tags)
	require.Len(t, got, len(tags))
	sort.Ints(got)
	require.Equal(t, tags, got)
	require.EqualValues(t, len(tags), calls)
}

func TestPerIndexSerialization(t *testing.T) {
	// Even with many more jobs than workers, handle is never invoked
	// concurrently for the same tag, since each tag appears once per
	// phase and a worker fully completes handle before posting its
	// answer.
	var mu sync.Mutex
	seen := map[int]int{}

	p := wpool.New(3, func(tag int) int {
		mu.Lock()
		seen[tag]++
		mu.Unlock()
		return tag
	})
	defer p.Shutdown()

	tags := make([]int, 50)
	for i := range tags {
		tags[i] = i
	}
	p.RunPhase(tags)

	for _, tag := range tags {
		require.Equal(t, 1, seen[tag])
	}
}

func TestDefaultSizePositive(t *testing.T) {
	require.Greater(t, wpool.DefaultSize(), 0)
}
