package pipeline

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// ULIDs are 26-character Crockford Base32 strings with a millisecond
// timestamp prefix, so trip and item IDs sort by creation time.

var (
	ulidMu  sync.Mutex
	lastTS  uint64
	lastSeq uint16
)

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// NewULID returns a new ULID. IDs from one process never repeat.
func NewULID() string {
	ulidMu.Lock()
	defer ulidMu.Unlock()

	ts := uint64(time.Now().UnixMilli())
	if ts > lastTS {
		lastTS, lastSeq = ts, 0
	} else {
		// Same millisecond or a clock step back: stay on the last timestamp
		// so IDs keep sorting in creation order.
		ts = lastTS
		lastSeq++
	}

	// 48-bit millisecond timestamp, 16-bit sequence, 64 random bits.
	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], ts<<16|uint64(lastSeq))
	rand.Read(b[8:])

	return encode(b)
}

// encode writes the 128 bits of b as 26 Crockford Base32 digits, most
// significant first. The leading digit carries only the top 3 bits.
func encode(b [16]byte) string {
	hi := binary.BigEndian.Uint64(b[:8])
	lo := binary.BigEndian.Uint64(b[8:])

	var out [26]byte
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = crockford[lo&31]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out[:])
}
