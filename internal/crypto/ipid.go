package crypto

import (
	"encoding/hex"
	"net"

	"golang.org/x/crypto/blake2b"
)

// IPIDLength is the number of hex characters of an IPID.
const IPIDLength = 8

// IPID derives the origin identifier moderators see instead of the client
// address. The port is ignored so reconnects keep the same identifier.
// salt is keyed into the hash; an empty salt is allowed.
func IPID(addr, salt string) string {
	host := addr
	if h, _, err := net.SplitHostPort(addr); err == nil {
		host = h
	}

	key := []byte(salt)
	if len(key) > blake2b.Size {
		key = key[:blake2b.Size]
	}
	h, err := blake2b.New256(key)
	if err != nil {
		// Only reachable with an oversized key, which is truncated above.
		panic(err)
	}
	h.Write([]byte(host))
	return hex.EncodeToString(h.Sum(nil))[:IPIDLength]
}
