package mask

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	// TOKEN_HASH_LENGTH defines the number of hex characters kept from the
	// value digest when forming a token.
	TOKEN_HASH_LENGTH = 8

	DEFAULT_TOKEN_PREFIX = "MASKED"
)

// Tokenize returns the deterministic replacement for an original value:
// "{prefix}_{FRAGMENT}" where FRAGMENT is the first TOKEN_HASH_LENGTH hex
// characters of the SHA-256 digest of the value, upper-cased. Stable across
// runs and platforms for the same input bytes; side-effect free.
func Tokenize(original string, prefix string) string {
	h := sha256.New()
	h.Write([]byte(original))
	sum := h.Sum(nil)
	fragment := strings.ToUpper(hex.EncodeToString(sum)[:TOKEN_HASH_LENGTH])

	/*
		Note: For a truncated hash, collision probability is roughly (N^2)/(2M)
		where N is the number of distinct values in one column and M the size
		of the hash space (16^8 = ~4.3 * 10^9 here). Collisions are therefore
		rare but not impossible, which is why the store refuses to commit a
		colliding entry instead of silently overwriting it.
	*/
	return fmt.Sprintf("%s_%s", prefix, fragment)
}
