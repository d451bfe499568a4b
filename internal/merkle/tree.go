package merkle

import (
	"bytes"
	"fmt"
	"runtime"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/sync/errgroup"

	"github.com/samuel0642/MerkleVault/internal/types"
)

// Tree represents a Merkle tree over an ordered list of leaf digests.
// layers[0] is the leaf digest layer, the last layer holds the root.
type Tree struct {
	layers [][]common.Hash
}

// NewTree builds a tree over the given digests. The digest order is the
// leaf append order and must not contain placeholder slots.
//
// Each layer is folded iteratively: adjacent entries are paired left to
// right; an odd-length layer duplicates its last entry, hashing it with
// itself (duplicate-last policy). Folding stops when a layer has exactly
// one entry.
func NewTree(digests []common.Hash) (*Tree, error) {
	if len(digests) == 0 {
		return nil, fmt.Errorf("%w: empty digest list", types.ErrInvalidInput)
	}

	layer := make([]common.Hash, len(digests))
	copy(layer, digests)

	layers := [][]common.Hash{layer}
	for len(layer) > 1 {
		next := make([]common.Hash, 0, (len(layer)+1)/2)
		for i := 0; i < len(layer); i += 2 {
			if i+1 < len(layer) {
				next = append(next, hashPair(layer[i], layer[i+1]))
			} else {
				next = append(next, hashPair(layer[i], layer[i]))
			}
		}
		layers = append(layers, next)
		layer = next
	}

	return &Tree{layers: layers}, nil
}

// Root returns the single entry of the top layer
func (t *Tree) Root() common.Hash {
	top := t.layers[len(t.layers)-1]
	return top[0]
}

// Layers returns all tree layers, leaf layer first
func (t *Tree) Layers() [][]common.Hash {
	return t.layers
}

// LeafCount returns the number of leaf digests the tree was built over
func (t *Tree) LeafCount() int {
	return len(t.layers[0])
}

// hashPair combines two sibling hashes. The lexicographically smaller
// hash is hashed first so that verification never needs to track
// left/right position per layer.
func hashPair(a, b common.Hash) common.Hash {
	if bytes.Compare(a[:], b[:]) <= 0 {
		return crypto.Keccak256Hash(a[:], b[:])
	}
	return crypto.Keccak256Hash(b[:], a[:])
}

// HashLeaves computes the digest of every leaf. Digesting is independent
// per leaf, so it runs in parallel; the result slice keeps leaf order.
func HashLeaves(leaves []types.Leaf) []common.Hash {
	digests := make([]common.Hash, len(leaves))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i := range leaves {
		i := i
		g.Go(func() error {
			digests[i] = leaves[i].Digest()
			return nil
		})
	}
	// digesting never fails
	_ = g.Wait()

	return digests
}
