package concurrent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForEachVisitsEveryItem(t *testing.T) {
	var sum atomic.Int64
	err := ForEach(context.Background(), []int{1, 2, 3, 4}, 2, func(_ context.Context, v int) error {
		sum.Add(int64(v))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), sum.Load())
}

func TestForEachReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	err := ForEach(context.Background(), []int{1, 2, 3}, 1, func(_ context.Context, v int) error {
		if v == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestMapPreservesOrder(t *testing.T) {
	out, err := Map(context.Background(), []int{3, 1, 2}, 3, func(_ context.Context, v int) (int, error) {
		return v * v, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{9, 1, 4}, out)
}
