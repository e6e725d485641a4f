package wfc

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// DeriveSeed turns an arbitrary operator-supplied phrase (a level name, a
// build tag, anything memorable) into a Config.Seed. The variable-length
// input is folded into a fixed-width BLAKE2b digest, truncated to an
// int64, since seeds need only be well-distributed, not secret.
func DeriveSeed(phrase string) int64 {
	sum := blake2b.Sum256([]byte(phrase))
	return int64(binary.LittleEndian.Uint64(sum[:8]))
}
