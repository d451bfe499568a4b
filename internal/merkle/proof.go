package merkle

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/samuel0642/MerkleVault/internal/types"
)

// Prove returns the sibling hashes proving that digest is a leaf of the
// tree, ordered bottom-up with one entry per layer below the root.
//
// At each layer the current hash is located by scanning; an even position
// pairs with the next entry, an odd position with the previous one. The
// last entry of an odd-length layer is its own sibling (duplicate-last
// policy, matching NewTree). The current hash then advances to
// hashPair(current, sibling).
func (t *Tree) Prove(digest common.Hash) ([]common.Hash, error) {
	proof := make([]common.Hash, 0, len(t.layers)-1)
	current := digest

	for _, layer := range t.layers[:len(t.layers)-1] {
		index := -1
		for i, h := range layer {
			if h == current {
				index = i
				break
			}
		}
		if index < 0 {
			return nil, fmt.Errorf("%w: digest %s", types.ErrLeafNotFound, current.Hex())
		}

		var sibling common.Hash
		switch {
		case index%2 == 0 && index+1 < len(layer):
			sibling = layer[index+1]
		case index%2 == 0:
			sibling = layer[index]
		default:
			sibling = layer[index-1]
		}

		proof = append(proof, sibling)
		current = hashPair(current, sibling)
	}

	if current != t.Root() {
		return nil, fmt.Errorf("%w: digest %s does not fold to root", types.ErrLeafNotFound, digest.Hex())
	}
	return proof, nil
}

// VerifyProof folds a proof against a leaf digest using the same pair
// ordering rule as tree construction and reports whether it reproduces
// the root.
func VerifyProof(digest common.Hash, proof []common.Hash, root common.Hash) bool {
	current := digest
	for _, sibling := range proof {
		current = hashPair(current, sibling)
	}
	return current == root
}
