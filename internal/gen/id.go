package gen

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// RequestID generates a synthetic request_id for demos and manual API
// testing, grounded on original_source/utils.go:getid() (int(uuid4())):
// a random UUID collapsed to an int64 rather than Python's unbounded int,
// since request_id is a fixed-width field here (spec §3). The request
// handler of POST /api/v1/requests uses it when the body omits request_id
// or sends 0; otherwise the id is caller-supplied.
func RequestID() int64 {
	id := uuid.New()
	v := int64(binary.BigEndian.Uint64(id[:8]))
	if v < 0 {
		v = -v
	}
	return v
}
