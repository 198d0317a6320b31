package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBufferExtendOrGrowReallocatesPastCapacity(t *testing.T) {
	bb := NewByteBuffer(4)
	require.Len(t, bb.Bytes(), 0)
	require.Equal(t, 4, cap(bb.Bytes()))

	bb.ExtendOrGrow(2)
	require.Len(t, bb.Bytes(), 2)
	require.GreaterOrEqual(t, cap(bb.Bytes()), 2)

	// Force a real Grow: request more than remaining capacity.
	bb.ExtendOrGrow(ScratchBufferDefaultSize * 2)
	require.Len(t, bb.Bytes(), 2+ScratchBufferDefaultSize*2)
}

func TestByteBufferExtendFailsWithoutEnoughCapacity(t *testing.T) {
	bb := NewByteBuffer(4)
	require.False(t, bb.Extend(8))
	require.True(t, bb.Extend(4))
	require.Len(t, bb.Bytes(), 4)
}

func TestByteBufferResetKeepsCapacity(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.ExtendOrGrow(5)
	copy(bb.Bytes(), []byte("hello"))
	require.Len(t, bb.Bytes(), 5)

	cap0 := cap(bb.Bytes())
	bb.Reset()
	require.Len(t, bb.Bytes(), 0)
	require.Equal(t, cap0, cap(bb.Bytes()))
}

func TestByteBufferPoolPutDiscardsOversizedBuffers(t *testing.T) {
	p := NewByteBufferPool(8, 16)

	bb := p.Get()
	bb.ExtendOrGrow(64) // now well past maxThreshold

	p.Put(bb)

	// The oversized buffer must have been discarded, not recycled: a
	// fresh Get() should not come back pre-grown to 64+ bytes.
	fresh := p.Get()
	require.Less(t, cap(fresh.Bytes()), 64)
}

func TestByteBufferPoolReusesBufferBelowThreshold(t *testing.T) {
	p := NewByteBufferPool(8, 1024)

	bb := p.Get()
	bb.ExtendOrGrow(3)
	p.Put(bb)

	reused := p.Get()
	require.Len(t, reused.Bytes(), 0) // Put() resets before returning to the pool
}

func TestScratchBufferHelpersRoundTrip(t *testing.T) {
	bb := GetScratchBuffer()
	bb.ExtendOrGrow(len("decompressed row"))
	copy(bb.Bytes(), []byte("decompressed row"))
	require.Equal(t, []byte("decompressed row"), bb.Bytes())

	PutScratchBuffer(bb)
}
