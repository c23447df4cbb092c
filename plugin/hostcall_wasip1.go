//go:build wasip1

package plugin

import (
	"encoding/json"
	"fmt"

	"github.com/tickgate-dev/tickgate-sdk/internal/abi"
)

// CallHost invokes a host function that uses the packed uint64 ABI. The
// request is marshalled to JSON in guest memory; the response the host
// allocated in guest memory is copied out and freed before returning.
func CallHost[Req any, Resp any](hostFunc func(uint64) uint64, req Req) (Resp, error) {
	var resp Resp
	reqBytes, err := json.Marshal(req)
	if err != nil {
		return resp, fmt.Errorf("failed to marshal request: %w", err)
	}

	packedResp := hostFunc(PackBytes(reqBytes))
	if packedResp == 0 {
		return resp, fmt.Errorf("host returned no data")
	}

	respBytes := abi.BytesFromPtr(packedResp)
	abi.DeallocatePacked(packedResp)

	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return resp, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return resp, nil
}
