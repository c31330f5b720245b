// Package identity derives stable content-addressed document ids.
package identity

import (
	"crypto/sha1" //nolint:gosec // not used for security, only as a stable content hash
	"math/big"
)

// modulus bounds ids to 16 decimal digits so they fit a 64-bit numeric field.
var modulus = big.NewInt(1e16)

// DocumentID hashes the UTF-8 bytes of text and reduces modulo 10^16.
// Pure function: identical text always yields the identical id, which makes
// re-ingestion of the same chunk an overwrite rather than a duplicate.
// Distinct texts may collide after truncation; last write wins.
func DocumentID(text string) int64 {
	h := sha1.Sum([]byte(text)) //nolint:gosec // content addressing, not crypto
	n := new(big.Int).SetBytes(h[:])
	return n.Mod(n, modulus).Int64()
}
