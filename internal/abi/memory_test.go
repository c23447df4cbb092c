//go:build wasip1

package abi

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateDeallocate(t *testing.T) {
	FreeAllTracked()

	size := uint32(1024)
	ptr := allocate(size)
	require.NotZero(t, ptr)

	allocCount, totalBytes := Stats()
	assert.Equal(t, 1, allocCount)
	assert.Equal(t, int(size), totalBytes)

	data := []byte("hello world")
	copyToMemory(ptr, data)
	assert.Equal(t, data, readFromMemory(ptr, uint32(len(data))))

	deallocate(ptr, size)

	allocCount, totalBytes = Stats()
	assert.Equal(t, 0, allocCount)
	assert.Equal(t, 0, totalBytes)
}

func TestAllocate_ZeroSize(t *testing.T) {
	assert.Zero(t, allocate(0))
}

func TestDeallocate_Idempotent(t *testing.T) {
	FreeAllTracked()

	ptr := allocate(100)
	deallocate(ptr, 100)
	deallocate(ptr, 100)

	_, totalBytes := Stats()
	assert.GreaterOrEqual(t, totalBytes, 0)
}

func TestPtrFromBytes_RoundTrip(t *testing.T) {
	FreeAllTracked()

	data := []byte("player connected")
	packed := PtrFromBytes(data)

	ptr, length := UnpackPtrLen(packed)
	assert.NotZero(t, ptr)
	assert.Equal(t, uint32(len(data)), length)
	assert.Equal(t, data, BytesFromPtr(packed))

	DeallocatePacked(packed)

	allocCount, _ := Stats()
	assert.Equal(t, 0, allocCount)
}

func TestPtrFromBytes_Empty(t *testing.T) {
	assert.Zero(t, PtrFromBytes(nil))
	assert.Zero(t, PtrFromBytes([]byte{}))
}

func TestBytesFromPtr_ZeroValues(t *testing.T) {
	assert.Nil(t, BytesFromPtr(0))
}

func TestFreeAllTracked(t *testing.T) {
	FreeAllTracked()

	allocate(100)
	allocate(200)

	allocCount, _ := Stats()
	require.Equal(t, 2, allocCount)

	FreeAllTracked()

	allocCount, totalBytes := Stats()
	assert.Equal(t, 0, allocCount)
	assert.Equal(t, 0, totalBytes)
}

func TestConcurrency(t *testing.T) {
	FreeAllTracked()

	var wg sync.WaitGroup
	iterations := 100

	wg.Add(iterations)
	for i := 0; i < iterations; i++ {
		go func() {
			defer wg.Done()
			packed := PtrFromBytes([]byte("concurrent test data"))
			_ = BytesFromPtr(packed)
			DeallocatePacked(packed)
		}()
	}
	wg.Wait()

	allocCount, _ := Stats()
	assert.Equal(t, 0, allocCount)
}

func TestConfigure_WithMaxTotalAllocations(t *testing.T) {
	FreeAllTracked()

	Configure(WithMaxTotalAllocations(1024))

	ptr := allocate(512)
	require.NotZero(t, ptr)
	deallocate(ptr, 512)

	assert.Panics(t, func() {
		allocate(2048)
	})

	Configure(WithMaxTotalAllocations(DefaultMaxTotalAllocations))
	FreeAllTracked()
}

func TestConfigure_InvalidLimit(t *testing.T) {
	FreeAllTracked()

	Configure(WithMaxTotalAllocations(0))
	Configure(WithMaxTotalAllocations(-100))

	ptr := allocate(1024)
	require.NotZero(t, ptr)
	deallocate(ptr, 1024)
}
