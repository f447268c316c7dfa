package storage

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// Frame key schema for the archive:
//
//	f:<type>:<symbol>:<timestamp>:<digest> → raw frame bytes
//
// The timestamp is the sign-flipped value, zero-padded to 20 digits, so
// negative and positive timestamps both sort in time order. The digest is
// the first 8 bytes of the Keccak-256 of the frame, so storing the same
// frame twice writes the same key.

const (
	prefixFrame = "f:"
	digestLen   = 8
)

// frameKey returns the key for one archived frame
func frameKey(msgType, symbol string, timestamp int64, digest string) []byte {
	return []byte(fmt.Sprintf("%s%s:%s:%020d:%s", prefixFrame, msgType, symbol, sortableTimestamp(timestamp), digest))
}

// framePrefix narrows a scan to a type, or a type and symbol. Empty
// arguments widen it.
func framePrefix(msgType, symbol string) []byte {
	switch {
	case msgType == "":
		return []byte(prefixFrame)
	case symbol == "":
		return []byte(fmt.Sprintf("%s%s:", prefixFrame, msgType))
	default:
		return []byte(fmt.Sprintf("%s%s:%s:", prefixFrame, msgType, symbol))
	}
}

// keyUpperBound returns the exclusive upper bound for a prefix scan
func keyUpperBound(prefix []byte) []byte {
	bound := make([]byte, len(prefix))
	copy(bound, prefix)
	bound[len(bound)-1]++
	return bound
}

func sortableTimestamp(ts int64) uint64 {
	return uint64(ts) ^ (1 << 63)
}

// Digest is the short Keccak-256 fingerprint used in archive keys.
func Digest(frame []byte) string {
	h := sha3.NewLegacyKeccak256()
	h.Write(frame)
	return hex.EncodeToString(h.Sum(nil)[:digestLen])
}
