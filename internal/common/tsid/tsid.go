// Package tsid generates time-sorted identifiers for execution and
// correlation tracking. Entity identifiers use UUIDs; TSIDs are reserved
// for tracing where chronological sortability matters.
package tsid

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

const (
	// Epoch: 2020-01-01T00:00:00Z
	epochMillis = 1577836800000

	randomBits = 22

	// Crockford Base32 alphabet
	alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

	// 13 Base32 characters cover 64 bits
	encodedLen = 13
)

var (
	mu       sync.Mutex
	lastTime int64
	counter  uint32
)

// Generate returns a new TSID as a 13-character Crockford Base32 string.
// IDs generated within the same process are strictly unique; IDs sort
// lexicographically in generation order across milliseconds.
func Generate() string {
	mu.Lock()
	defer mu.Unlock()

	now := time.Now().UnixMilli() - epochMillis

	var buf [4]byte
	rand.Read(buf[:])
	random := binary.BigEndian.Uint32(buf[:]) & ((1 << randomBits) - 1)

	if now == lastTime {
		counter++
		// Fold the counter into the low random bits so same-millisecond
		// IDs stay unique.
		random = (random &^ 0xFFFF) | (counter & 0xFFFF)
	} else {
		lastTime = now
		counter = 0
	}

	id := (uint64(now) << randomBits) | uint64(random)
	return encode(id)
}

func encode(value uint64) string {
	out := make([]byte, encodedLen)
	for i := encodedLen - 1; i >= 0; i-- {
		out[i] = alphabet[value&0x1F]
		value >>= 5
	}
	return string(out)
}
