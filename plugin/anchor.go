package plugin

import (
	"unsafe"

	"github.com/tickgate-dev/tickgate-sdk/domain/entities"
)

// anchor is the well-known symbol whose in-module address identifies this
// plugin to the host's address-to-handle map. Any address inside the mapped
// module would do; a dedicated symbol keeps the lookup stable.
var anchor byte

// AnchorAddress returns the address of the module's anchor symbol.
func AnchorAddress() entities.Address {
	return entities.Address(uintptr(unsafe.Pointer(&anchor)))
}
