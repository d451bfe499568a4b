package catalog

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/samuel0642/MerkleVault/internal/logger"
	"github.com/samuel0642/MerkleVault/internal/types"
)

// approvalKey identifies an (asset, spender) approval pair for
// deduplication across builders sharing a spender
type approvalKey struct {
	asset   common.Address
	spender common.Address
}

// BuilderContext holds the state of one catalog-building run: the leaf
// collection, its declared capacity, and the approval dedup set. It is
// owned by the caller and threaded through every builder call; a single
// run has exactly one writer and strict append order.
type BuilderContext struct {
	vault      common.Address
	authorizer common.Address
	capacity   int
	leaves     []types.Leaf
	approvals  map[approvalKey]struct{}
	seen       map[string]struct{}
}

// NewBuilderContext creates a builder context for a catalog of at most
// capacity leaves authorized by the given decoder/sanitizer
func NewBuilderContext(vault, authorizer common.Address, capacity int) (*BuilderContext, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive, got %d", types.ErrInvalidInput, capacity)
	}
	if authorizer == (common.Address{}) {
		return nil, fmt.Errorf("%w: authorizer address is zero", types.ErrInvalidInput)
	}
	return &BuilderContext{
		vault:      vault,
		authorizer: authorizer,
		capacity:   capacity,
		leaves:     make([]types.Leaf, 0, capacity),
		approvals:  make(map[approvalKey]struct{}),
		seen:       make(map[string]struct{}),
	}, nil
}

// Vault returns the vault address the catalog is built for
func (c *BuilderContext) Vault() common.Address {
	return c.vault
}

// Authorizer returns the decoder/sanitizer address stamped on every leaf
func (c *BuilderContext) Authorizer() common.Address {
	return c.authorizer
}

// Capacity returns the declared leaf capacity
func (c *BuilderContext) Capacity() int {
	return c.capacity
}

// Used returns the number of leaves appended so far
func (c *BuilderContext) Used() int {
	return len(c.leaves)
}

// Leaves returns the appended leaves in append order
func (c *BuilderContext) Leaves() []types.Leaf {
	return c.leaves
}

// AppendLeaf appends a leaf at the next free index. The authorizer field
// is stamped from the context. A leaf whose identity tuple was already
// appended in this run is skipped, keeping catalog construction
// idempotent. Fails with ErrCapacityExceeded when the declared capacity
// is full: the catalog must be resized and rebuilt, not retried.
func (c *BuilderContext) AppendLeaf(leaf types.Leaf) error {
	if leaf.Target == (common.Address{}) {
		return fmt.Errorf("%w: leaf target is zero", types.ErrInvalidInput)
	}
	if leaf.Signature == "" {
		return fmt.Errorf("%w: leaf signature is empty", types.ErrInvalidInput)
	}

	leaf.Authorizer = c.authorizer
	key := leaf.IdentityKey()
	if _, ok := c.seen[key]; ok {
		logger.Logger().Debug().
			Str("target", leaf.Target.Hex()).
			Str("signature", leaf.Signature).
			Msg("duplicate leaf, skipping")
		return nil
	}

	if len(c.leaves) >= c.capacity {
		return fmt.Errorf("%w: capacity %d", types.ErrCapacityExceeded, c.capacity)
	}

	c.seen[key] = struct{}{}
	c.leaves = append(c.leaves, leaf)

	logger.Logger().Debug().
		Int("index", len(c.leaves)-1).
		Str("target", leaf.Target.Hex()).
		Str("signature", leaf.Signature).
		Msg("leaf appended")
	return nil
}

// appendApproval appends an ERC-20 approval leaf for (asset, spender)
// unless one was already emitted in this run. Approval leaves must stay
// unique even when requested by unrelated builders sharing a spender.
func (c *BuilderContext) appendApproval(asset, spender common.Address, description string) error {
	key := approvalKey{asset: asset, spender: spender}
	if _, ok := c.approvals[key]; ok {
		logger.Logger().Debug().
			Str("asset", asset.Hex()).
			Str("spender", spender.Hex()).
			Msg("approval already emitted, skipping")
		return nil
	}

	leaf := types.Leaf{
		Target:            asset,
		CanSendValue:      false,
		Signature:         "approve(address,uint256)",
		ArgumentAddresses: []common.Address{spender},
		Description:       description,
	}
	if err := c.AppendLeaf(leaf); err != nil {
		return err
	}

	c.approvals[key] = struct{}{}
	return nil
}
