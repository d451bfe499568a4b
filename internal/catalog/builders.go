package catalog

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/samuel0642/MerkleVault/internal/types"
)

// Protocol builders expand a declarative integration description into
// concrete leaves, appended in a fixed order. Every builder follows the
// same pattern: emit deduplicated approvals first, then the action
// leaves. Builders are configuration-driven; the engine does not know
// which integrations exist.

// ApprovalConfig describes a standalone ERC-20 approval
type ApprovalConfig struct {
	Asset       common.Address
	Spender     common.Address
	AssetSymbol string
	SpenderName string
}

// AddApprovalLeaves appends one approval leaf per config entry,
// skipping (asset, spender) pairs already approved in this run
func AddApprovalLeaves(ctx *BuilderContext, configs []ApprovalConfig) error {
	for _, cfg := range configs {
		desc := fmt.Sprintf("Approve %s to spend %s", cfg.SpenderName, cfg.AssetSymbol)
		if err := ctx.appendApproval(cfg.Asset, cfg.Spender, desc); err != nil {
			return err
		}
	}
	return nil
}

// LendingConfig describes a lending market integration. Assets and
// AssetSymbols are parallel arrays.
type LendingConfig struct {
	Market       common.Address
	MarketName   string
	Assets       []common.Address
	AssetSymbols []string
}

// AddLendingLeaves appends approval, deposit and withdraw leaves for
// every asset of a lending market
func AddLendingLeaves(ctx *BuilderContext, cfg LendingConfig) error {
	if len(cfg.Assets) != len(cfg.AssetSymbols) {
		return fmt.Errorf("%w: %d assets but %d symbols", types.ErrInvalidInput, len(cfg.Assets), len(cfg.AssetSymbols))
	}

	for i, asset := range cfg.Assets {
		symbol := cfg.AssetSymbols[i]
		desc := fmt.Sprintf("Approve %s to spend %s", cfg.MarketName, symbol)
		if err := ctx.appendApproval(asset, cfg.Market, desc); err != nil {
			return err
		}

		deposit := types.Leaf{
			Target:            cfg.Market,
			CanSendValue:      false,
			Signature:         "deposit(address,uint256)",
			ArgumentAddresses: []common.Address{asset},
			Description:       fmt.Sprintf("Deposit %s into %s", symbol, cfg.MarketName),
		}
		if err := ctx.AppendLeaf(deposit); err != nil {
			return err
		}

		withdraw := types.Leaf{
			Target:            cfg.Market,
			CanSendValue:      false,
			Signature:         "withdraw(address,uint256)",
			ArgumentAddresses: []common.Address{asset},
			Description:       fmt.Sprintf("Withdraw %s from %s", symbol, cfg.MarketName),
		}
		if err := ctx.AppendLeaf(withdraw); err != nil {
			return err
		}
	}
	return nil
}

// SwapPairConfig describes a swap router integration for one asset pair
type SwapPairConfig struct {
	Router     common.Address
	RouterName string
	TokenA     common.Address
	TokenB     common.Address
}

// AddSwapPairLeaves appends approval, liquidity and swap leaves for an
// asset pair. The pair is unordered: tokens are sorted by raw address
// value first, so (a, b) and (b, a) yield byte-identical leaves.
func AddSwapPairLeaves(ctx *BuilderContext, cfg SwapPairConfig) error {
	if cfg.TokenA == cfg.TokenB {
		return fmt.Errorf("%w: swap pair tokens are identical", types.ErrInvalidInput)
	}

	token0, token1 := cfg.TokenA, cfg.TokenB
	if bytes.Compare(token1.Bytes(), token0.Bytes()) < 0 {
		token0, token1 = token1, token0
	}

	for _, token := range []common.Address{token0, token1} {
		desc := fmt.Sprintf("Approve %s to spend %s", cfg.RouterName, token.Hex())
		if err := ctx.appendApproval(token, cfg.Router, desc); err != nil {
			return err
		}
	}

	addLiquidity := types.Leaf{
		Target:            cfg.Router,
		CanSendValue:      false,
		Signature:         "addLiquidity(address,address,uint256,uint256)",
		ArgumentAddresses: []common.Address{token0, token1},
		Description:       fmt.Sprintf("Add liquidity to %s/%s on %s", token0.Hex(), token1.Hex(), cfg.RouterName),
	}
	if err := ctx.AppendLeaf(addLiquidity); err != nil {
		return err
	}

	removeLiquidity := types.Leaf{
		Target:            cfg.Router,
		CanSendValue:      false,
		Signature:         "removeLiquidity(address,address,uint256)",
		ArgumentAddresses: []common.Address{token0, token1},
		Description:       fmt.Sprintf("Remove liquidity from %s/%s on %s", token0.Hex(), token1.Hex(), cfg.RouterName),
	}
	if err := ctx.AppendLeaf(removeLiquidity); err != nil {
		return err
	}

	// swaps are directional, one leaf per direction of the canonical pair
	for _, dir := range [][2]common.Address{{token0, token1}, {token1, token0}} {
		swap := types.Leaf{
			Target:            cfg.Router,
			CanSendValue:      false,
			Signature:         "swapExactTokensForTokens(address,address,uint256,uint256)",
			ArgumentAddresses: []common.Address{dir[0], dir[1]},
			Description:       fmt.Sprintf("Swap %s for %s on %s", dir[0].Hex(), dir[1].Hex(), cfg.RouterName),
		}
		if err := ctx.AppendLeaf(swap); err != nil {
			return err
		}
	}
	return nil
}

// StakingConfig describes a staking contract integration
type StakingConfig struct {
	StakingContract common.Address
	Name            string
	Asset           common.Address
	AssetSymbol     string
}

// AddStakingLeaves appends approval, stake, unstake and claim leaves
func AddStakingLeaves(ctx *BuilderContext, cfg StakingConfig) error {
	desc := fmt.Sprintf("Approve %s to spend %s", cfg.Name, cfg.AssetSymbol)
	if err := ctx.appendApproval(cfg.Asset, cfg.StakingContract, desc); err != nil {
		return err
	}

	actions := []struct {
		signature   string
		description string
	}{
		{"stake(uint256)", fmt.Sprintf("Stake %s in %s", cfg.AssetSymbol, cfg.Name)},
		{"unstake(uint256)", fmt.Sprintf("Unstake %s from %s", cfg.AssetSymbol, cfg.Name)},
		{"claimRewards()", fmt.Sprintf("Claim rewards from %s", cfg.Name)},
	}
	for _, action := range actions {
		leaf := types.Leaf{
			Target:      cfg.StakingContract,
			Signature:   action.signature,
			Description: action.description,
		}
		if err := ctx.AppendLeaf(leaf); err != nil {
			return err
		}
	}
	return nil
}

// NativeWrapperConfig describes the chain's wrapped native asset
type NativeWrapperConfig struct {
	Wrapper common.Address
	Symbol  string
}

// AddNativeWrapperLeaves appends wrap and unwrap leaves. Wrapping sends
// native value with the call, so its leaf sets CanSendValue.
func AddNativeWrapperLeaves(ctx *BuilderContext, cfg NativeWrapperConfig) error {
	wrap := types.Leaf{
		Target:       cfg.Wrapper,
		CanSendValue: true,
		Signature:    "deposit()",
		Description:  fmt.Sprintf("Wrap native asset into %s", cfg.Symbol),
	}
	if err := ctx.AppendLeaf(wrap); err != nil {
		return err
	}

	unwrap := types.Leaf{
		Target:       cfg.Wrapper,
		CanSendValue: false,
		Signature:    "withdraw(uint256)",
		Description:  fmt.Sprintf("Unwrap %s into native asset", cfg.Symbol),
	}
	return ctx.AppendLeaf(unwrap)
}
