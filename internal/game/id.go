package game

import (
	"crypto/rand"
	"encoding/json"
	"hash/fnv"
)

// maxSessionID keeps ids inside the range JavaScript clients can hold
// exactly (2^53 - 1). Ids are opaque; clients must not parse them.
const maxSessionID = 9007199254740991

// newSessionID derives an unpredictable session id from the request
// parameters and a random salt. Two concurrent requests with identical
// parameters get independent salts, so collisions are limited to the
// birthday bound on 53 bits.
func newSessionID(p Params) int64 {
	var salt [16]byte
	rand.Read(salt[:])

	h := fnv.New64a()
	enc, _ := json.Marshal(p)
	h.Write(enc)
	h.Write(salt[:])
	return int64(h.Sum64() % maxSessionID)
}
