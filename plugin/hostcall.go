package plugin

import (
	"unsafe"
)

// PackBytes packs a byte slice into a uint64 (ptr << 32 | len) for the host
// function ABI. The slice must stay alive for the duration of the host call.
func PackBytes(data []byte) uint64 {
	if len(data) == 0 {
		return 0
	}
	ptr := uint32(uintptr(unsafe.Pointer(&data[0])))
	return (uint64(ptr) << 32) | uint64(len(data))
}

// UnpackBytes unpacks a uint64 into a byte slice view over linear memory.
// The view is only valid until the backing allocation is freed.
func UnpackBytes(packed uint64) []byte {
	ptr := uint32(packed >> 32)
	length := uint32(packed)
	if ptr == 0 || length == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ptr))), length)
}
