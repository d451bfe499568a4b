package merkle

import (
	"encoding/binary"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func digestsFromSeed(seed int64, n int) []common.Hash {
	digests := make([]common.Hash, n)
	var buf [12]byte
	binary.BigEndian.PutUint64(buf[:8], uint64(seed))
	for i := range digests {
		binary.BigEndian.PutUint32(buf[8:], uint32(i))
		digests[i] = crypto.Keccak256Hash(buf[:])
	}
	return digests
}

func TestTreeProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("rebuilding yields the identical root", prop.ForAll(
		func(seed int64, n int) bool {
			digests := digestsFromSeed(seed, n)
			first, err := NewTree(digests)
			if err != nil {
				return false
			}
			second, err := NewTree(digests)
			if err != nil {
				return false
			}
			return first.Root() == second.Root()
		},
		gen.Int64(), gen.IntRange(1, 64),
	))

	properties.Property("every leaf proof folds to the root", prop.ForAll(
		func(seed int64, n int) bool {
			digests := digestsFromSeed(seed, n)
			tree, err := NewTree(digests)
			if err != nil {
				return false
			}
			for _, digest := range digests {
				proof, err := tree.Prove(digest)
				if err != nil {
					return false
				}
				if !VerifyProof(digest, proof, tree.Root()) {
					return false
				}
			}
			return true
		},
		gen.Int64(), gen.IntRange(1, 64),
	))

	properties.TestingRun(t)
}
