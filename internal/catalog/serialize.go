package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/samuel0642/MerkleVault/internal/merkle"
	"github.com/samuel0642/MerkleVault/internal/types"
)

// DigestLayout documents the leaf digest field layout for external
// verifiers. The runtime verifier must recompute exactly this packing.
const DigestLayout = "keccak256(abi.encodePacked(authorizer,target,canSendValue,selector,argumentAddresses...))"

// Metadata represents the catalog-level fields of a serialized artifact
type Metadata struct {
	Capacity      int    `json:"capacity"`
	UsedLeafCount int    `json:"usedLeafCount"`
	DigestLayout  string `json:"digestLayout"`
	Vault         string `json:"vault"`
	Authorizer    string `json:"authorizer"`
	Root          string `json:"root"`
}

// LeafRecord represents one used leaf in a serialized artifact
type LeafRecord struct {
	Index             int      `json:"index"`
	Target            string   `json:"target"`
	Authorizer        string   `json:"authorizer"`
	CanSendValue      bool     `json:"canSendValue"`
	Signature         string   `json:"signature"`
	Selector          string   `json:"selector"`
	ArgumentAddresses []string `json:"argumentAddresses"`
	PackedArguments   string   `json:"packedArguments"`
	Digest            string   `json:"digest"`
	Description       string   `json:"description"`
	Proof             []string `json:"proof,omitempty"`
}

// Artifact represents the durable output of a catalog build: metadata,
// the used leaf records in append order, and the full tree serialized
// layer by layer from the leaf layer up to the root layer (layer 0 is
// the leaf digest layer; downstream tooling indexes by layer number).
type Artifact struct {
	Metadata Metadata     `json:"metadata"`
	Leaves   []LeafRecord `json:"leaves"`
	Tree     [][]string   `json:"tree"`
}

// BuildArtifact hashes the context's leaves, builds the tree, and
// assembles the serialized artifact. When withProofs is set each leaf
// record carries its proof against the current tree, for test and debug
// tooling.
func BuildArtifact(ctx *BuilderContext, withProofs bool) (*Artifact, error) {
	used := types.UsedLeaves(ctx.Leaves())
	digests := merkle.HashLeaves(used)

	tree, err := merkle.NewTree(digests)
	if err != nil {
		return nil, fmt.Errorf("failed to build tree: %w", err)
	}

	records := make([]LeafRecord, len(used))
	for i, leaf := range used {
		args := make([]string, len(leaf.ArgumentAddresses))
		for j, arg := range leaf.ArgumentAddresses {
			args[j] = arg.Hex()
		}
		sel := leaf.Selector()
		records[i] = LeafRecord{
			Index:             i,
			Target:            leaf.Target.Hex(),
			Authorizer:        leaf.Authorizer.Hex(),
			CanSendValue:      leaf.CanSendValue,
			Signature:         leaf.Signature,
			Selector:          hexutil.Encode(sel[:]),
			ArgumentAddresses: args,
			PackedArguments:   hexutil.Encode(leaf.PackedArguments()),
			Digest:            digests[i].Hex(),
			Description:       leaf.Description,
		}
		if withProofs {
			proof, err := tree.Prove(digests[i])
			if err != nil {
				return nil, fmt.Errorf("failed to prove leaf %d: %w", i, err)
			}
			records[i].Proof = hashesToHex(proof)
		}
	}

	layers := tree.Layers()
	treeHex := make([][]string, len(layers))
	for i, layer := range layers {
		treeHex[i] = hashesToHex(layer)
	}

	return &Artifact{
		Metadata: Metadata{
			Capacity:      ctx.Capacity(),
			UsedLeafCount: len(used),
			DigestLayout:  DigestLayout,
			Vault:         ctx.Vault().Hex(),
			Authorizer:    ctx.Authorizer().Hex(),
			Root:          tree.Root().Hex(),
		},
		Leaves: records,
		Tree:   treeHex,
	}, nil
}

// Encode serializes the artifact as indented JSON. Field order is fixed
// by the struct layout, so an unchanged leaf set reproduces the same
// bytes on every run.
func (a *Artifact) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode artifact: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeArtifact parses a serialized artifact
func DecodeArtifact(data []byte) (*Artifact, error) {
	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to decode artifact: %w", err)
	}
	return &artifact, nil
}

// ReplayRoot reconstructs every leaf from the artifact's records, hashes
// them, rebuilds the tree and returns its root. Used to check that an
// artifact is self-consistent with the root recorded in its metadata.
func (a *Artifact) ReplayRoot() (common.Hash, error) {
	leaves := make([]types.Leaf, len(a.Leaves))
	for i, record := range a.Leaves {
		args := make([]common.Address, len(record.ArgumentAddresses))
		for j, arg := range record.ArgumentAddresses {
			if !common.IsHexAddress(arg) {
				return common.Hash{}, fmt.Errorf("%w: leaf %d argument %q is not an address", types.ErrInvalidInput, i, arg)
			}
			args[j] = common.HexToAddress(arg)
		}
		leaves[i] = types.Leaf{
			Target:            common.HexToAddress(record.Target),
			CanSendValue:      record.CanSendValue,
			Signature:         record.Signature,
			ArgumentAddresses: args,
			Description:       record.Description,
			Authorizer:        common.HexToAddress(record.Authorizer),
		}
	}

	tree, err := merkle.NewTree(merkle.HashLeaves(leaves))
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to replay tree: %w", err)
	}
	return tree.Root(), nil
}

func hashesToHex(hashes []common.Hash) []string {
	out := make([]string, len(hashes))
	for i, h := range hashes {
		out[i] = h.Hex()
	}
	return out
}
