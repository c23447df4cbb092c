// Package abi implements the pointer/length packing and guest-side memory
// management used on the WASM boundary between a plugin and the server.
package abi

import "fmt"

// PtrHighBits is the bit offset of the pointer within a packed uint64.
const PtrHighBits = 32

// PackPtrLen packs a pointer and length into a single uint64. The pointer
// occupies the high 32 bits, the length the low 32 bits. Panics on a null
// pointer with a non-zero length.
func PackPtrLen(ptr, length uint32) uint64 {
	if ptr == 0 && length > 0 {
		panic(fmt.Sprintf("abi: invalid pack - null pointer (0x0) with non-zero length (%d)", length))
	}
	return (uint64(ptr) << PtrHighBits) | uint64(length)
}

// UnpackPtrLen unpacks a uint64 into its original pointer and length. Panics
// on a null pointer with a non-zero length.
func UnpackPtrLen(packed uint64) (ptr, length uint32) {
	ptr = uint32(packed >> PtrHighBits)
	length = uint32(packed)
	if ptr == 0 && length > 0 {
		panic(fmt.Sprintf("abi: invalid unpack - null pointer (0x0) with non-zero length (%d)", length))
	}
	return ptr, length
}
