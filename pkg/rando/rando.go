package rando

import (
	"crypto/rand"
	"encoding/hex"
)

func StrongRandomBytes(nbytes int) []byte {
	buf := make([]byte, nbytes)
	if n, _ := rand.Read(buf[:]); n != nbytes {
		panic("Unable to read from crypto/rand")
	}
	return buf
}

// StrongRandomHex returns nbytes of random data, hex encoded (2*nbytes chars).
func StrongRandomHex(nbytes int) string {
	return hex.EncodeToString(StrongRandomBytes(nbytes))
}
