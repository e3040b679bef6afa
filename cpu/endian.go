package cpu

import (
	"encoding/binary"
)

// WordsToBytes converts 32-bit words to a big-endian byte slice.
func WordsToBytes(words []uint32) []byte {
	out := make([]byte, len(words)*4)
	for i, w := range words {
		binary.BigEndian.PutUint32(out[i*4:], w)
	}
	return out
}

// BytesToWords interprets bytes as big-endian 32-bit words.
// A trailing partial word is padded with zero bytes.
func BytesToWords(b []byte) []uint32 {
	if rem := len(b) % 4; rem != 0 {
		padded := make([]byte, len(b)+4-rem)
		copy(padded, b)
		b = padded
	}
	out := make([]uint32, len(b)/4)
	for i := range out {
		out[i] = binary.BigEndian.Uint32(b[i*4:])
	}
	return out
}
