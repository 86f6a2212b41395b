package sink_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synthgl/genengine/sink"
)

func TestMemorySinkWriteAndWriteBatch(t *testing.T) {
	s := sink.NewMemorySink()
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, "a"))
	require.NoError(t, s.WriteBatch(ctx, []sink.Item{"b", "c"}))
	require.NoError(t, s.Flush(ctx))

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []sink.Item{"a", "b", "c"}, s.Items())
}

func TestMemorySinkConcurrentWrites(t *testing.T) {
	s := sink.NewMemorySink()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = s.Write(ctx, n)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len())
}
