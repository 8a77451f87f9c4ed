package message

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// requestHashes derives identity hashes from the path.
// The first hash is always of the empty string; each following hash covers
// the segments from index start up to and including segment k.
func requestHashes(segments []string, start int) []string {
	hashes := make([]string, 0, len(segments)+1)
	hashes = append(hashes, sha1Hex(""))

	for k := range segments {
		var b strings.Builder
		for i := max(start, 0); i <= k; i++ {
			b.WriteString(segments[i])
		}
		hashes = append(hashes, sha1Hex(b.String()))
	}
	return hashes
}

func sha1Hex(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
