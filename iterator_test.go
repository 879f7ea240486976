package comm

import (
	"slices"
	"testing"
	"time"

	"github.com/fortytw2/leaktest"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIterRestart(t *testing.T) {
	sx, rx := New[uint32, struct{}]()

	require.NoError(t, sx.Send(5))
	require.NoError(t, sx.Send(7))
	require.NoError(t, sx.Send(9))

	it := rx.Iter()
	xs := slices.Collect(it.Seq())
	if diff := cmp.Diff([]uint32{5, 7, 9}, xs); diff != "" {
		t.Errorf("first pass mismatch (-want +got):\n%s", diff)
	}
	assert.False(t, rx.IsClosed(), "an exhausted pass must not close an open channel")

	// New values arriving after a pass ended are picked up by the
	// same iterator on its next pass.
	require.NoError(t, sx.Send(1))
	require.NoError(t, sx.Send(2))
	require.NoError(t, sx.Send(3))

	ys := slices.Collect(it.Seq())
	if diff := cmp.Diff([]uint32{1, 2, 3}, ys); diff != "" {
		t.Errorf("second pass mismatch (-want +got):\n%s", diff)
	}

	sx.Close()
}

func TestIterNextNonBlocking(t *testing.T) {
	sx, rx := New[int, struct{}]()

	it := rx.Iter()
	_, ok := it.Next()
	assert.False(t, ok)
	assert.False(t, rx.IsClosed())

	sx.Close()
}

func TestBlockingIterGracefulClose(t *testing.T) {
	sx, rx := New[uint32, struct{}]()

	require.NoError(t, sx.Send(5))
	require.NoError(t, sx.Send(7))
	require.NoError(t, sx.Send(9))
	sx.Close() // without this the iterator would wait forever

	xs := slices.Collect(rx.BlockingIter().Seq())
	assert.Equal(t, []uint32{5, 7, 9}, xs)
	assert.True(t, rx.IsClosed())
}

func TestBlockingIterErrorClose(t *testing.T) {
	sx, rx := New[uint32, struct{}]()

	require.NoError(t, sx.Send(5))
	require.NoError(t, sx.Send(7))
	require.NoError(t, sx.Send(9))
	require.NoError(t, sx.Fail(struct{}{}))

	xs := slices.Collect(rx.BlockingIter().Seq())
	assert.Equal(t, []uint32{5, 7, 9}, xs)
	assert.True(t, rx.Errored())
}

func TestBlockingIterTerminatesOnLateClose(t *testing.T) {
	defer leaktest.Check(t)()

	sx, rx := New[int, struct{}]()
	go func() {
		for i := 1; i <= 3; i++ {
			sx.Send(i)
			time.Sleep(time.Millisecond)
		}
		sx.Close()
	}()

	got := slices.Collect(rx.BlockingIter().Seq())
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.True(t, rx.IsClosed())
}

func TestIteratorsShareReceiverState(t *testing.T) {
	sx, rx := New[int, struct{}]()
	require.NoError(t, sx.Send(1))

	first := rx.Iter()
	second := rx.BlockingIter()
	sx.Close()

	v, ok := first.Next()
	require.True(t, ok)
	assert.Equal(t, 1, v)

	// The blocking iterator drains the disconnect and latches the
	// receiver; every iterator is exhausted from then on.
	_, ok = second.Next()
	assert.False(t, ok)
	assert.True(t, rx.IsClosed())

	_, ok = first.Next()
	assert.False(t, ok)
}
