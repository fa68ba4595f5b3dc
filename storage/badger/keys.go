package badger

import (
	"encoding/binary"
)

// Key prefixes for different data types
const (
	grantPrefix = "grant:"
	grantSeq    = "grantseq"
)

// makeGrantKey generates a key for a grant by insertion sequence.
// Format: prefix + 8-byte big-endian sequence, so keys iterate in
// insertion order.
func makeGrantKey(seq uint64) []byte {
	buf := make([]byte, len(grantPrefix)+8)
	offset := copy(buf, grantPrefix)
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}

// grantKeySeq extracts the sequence from a grant key.
func grantKeySeq(key []byte) (uint64, bool) {
	if len(key) != len(grantPrefix)+8 || string(key[:len(grantPrefix)]) != grantPrefix {
		return 0, false
	}
	return binary.BigEndian.Uint64(key[len(grantPrefix):]), true
}
