//go:build wasip1

package abi

import (
	"fmt"
	"sync"
	"unsafe"
)

// DefaultMaxTotalAllocations caps the total memory the SDK will allocate in
// WASM linear memory. Tick handlers that leak allocations hit this ceiling
// instead of growing the module without bound.
const DefaultMaxTotalAllocations = 100 * 1024 * 1024 // 100 MB

// memoryManager tracks every allocation the SDK hands to the host. Keeping
// the slice reference pins the memory so the Go GC cannot move or collect it
// until it is explicitly freed.
var memoryManager = struct {
	sync.Mutex
	ptrs           map[uint32][]byte
	totalAllocated int
	limit          int
}{
	ptrs:  make(map[uint32][]byte),
	limit: DefaultMaxTotalAllocations,
}

// Option configures the memory manager.
type Option func()

// WithMaxTotalAllocations overrides the allocation ceiling. Zero or negative
// values are ignored.
func WithMaxTotalAllocations(limit int) Option {
	return func() {
		if limit <= 0 {
			return
		}
		memoryManager.limit = limit
	}
}

// Configure applies options to the memory manager.
func Configure(opts ...Option) {
	memoryManager.Lock()
	defer memoryManager.Unlock()
	for _, opt := range opts {
		opt()
	}
}

// allocate reserves guest memory the host can write into. The allocation is
// tracked so the GC does not reclaim it while the host holds the pointer.
//
//go:wasmexport allocate
func allocate(size uint32) uint32 {
	if size == 0 {
		return 0
	}

	memoryManager.Lock()
	defer memoryManager.Unlock()

	if memoryManager.totalAllocated+int(size) > memoryManager.limit {
		panic(fmt.Sprintf("abi: memory allocation limit exceeded (requested: %d bytes, current: %d bytes, limit: %d bytes)",
			size, memoryManager.totalAllocated, memoryManager.limit))
	}

	buf := make([]byte, size)
	ptr := uint32(uintptr(unsafe.Pointer(&buf[0])))

	memoryManager.ptrs[ptr] = buf
	memoryManager.totalAllocated += int(size)

	return ptr
}

// deallocate releases a tracked allocation. Accounting uses the stored slice
// length, not the caller's size, so a wrong size cannot corrupt the counter.
// Untracked pointers are ignored.
//
//go:wasmexport deallocate
func deallocate(ptr uint32, size uint32) {
	memoryManager.Lock()
	defer memoryManager.Unlock()

	storedSlice, exists := memoryManager.ptrs[ptr]
	if !exists {
		return
	}

	actualSize := len(storedSlice)
	delete(memoryManager.ptrs, ptr)
	memoryManager.totalAllocated -= actualSize

	if memoryManager.totalAllocated < 0 {
		memoryManager.totalAllocated = 0
	}
}

// FreeAllTracked drops every tracked allocation. Called during panic recovery
// and module shutdown.
func FreeAllTracked() {
	memoryManager.Lock()
	defer memoryManager.Unlock()

	for ptr := range memoryManager.ptrs {
		delete(memoryManager.ptrs, ptr)
	}
	memoryManager.totalAllocated = 0
}

// Stats reports the number of tracked allocations and their total size.
func Stats() (count, totalBytes int) {
	memoryManager.Lock()
	defer memoryManager.Unlock()
	return len(memoryManager.ptrs), memoryManager.totalAllocated
}

// PtrFromBytes allocates guest memory, copies data into it, and returns the
// packed pointer/length. Used when the plugin sends data to the server.
func PtrFromBytes(data []byte) uint64 {
	if len(data) == 0 {
		return 0
	}
	size := uint32(len(data))
	ptr := allocate(size)
	copyToMemory(ptr, data)
	return PackPtrLen(ptr, size)
}

// BytesFromPtr reads the data behind a packed pointer/length out of linear
// memory. Used when the plugin receives data from the server.
func BytesFromPtr(packed uint64) []byte {
	ptr, length := UnpackPtrLen(packed)
	if ptr == 0 || length == 0 {
		return nil
	}
	return readFromMemory(ptr, length)
}

// DeallocatePacked frees the allocation behind a packed pointer/length after
// the host is done with it.
func DeallocatePacked(packed uint64) {
	ptr, length := UnpackPtrLen(packed)
	if ptr != 0 && length > 0 {
		deallocate(ptr, length)
	}
}

func copyToMemory(ptr uint32, data []byte) {
	//nolint:gosec // G103: WASM linear memory access requires unsafe.Pointer
	dest := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ptr))), len(data))
	copy(dest, data)
}

func readFromMemory(ptr uint32, length uint32) []byte {
	//nolint:gosec // G103: WASM linear memory access requires unsafe.Pointer
	src := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ptr))), length)
	data := make([]byte, length)
	copy(data, src)
	return data
}
