package catalog

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/samuel0642/MerkleVault/internal/config"
	"github.com/samuel0642/MerkleVault/internal/logger"
)

// BuildFromConfig runs every builder named by the configuration against
// a fresh context. Builders run in a fixed order (approvals, lending,
// swap pairs, staking, native wrappers) so that an unchanged config
// always yields the same leaf collection.
func BuildFromConfig(cfg *config.Config) (*BuilderContext, error) {
	ctx, err := NewBuilderContext(
		common.HexToAddress(cfg.Vault),
		common.HexToAddress(cfg.Authorizer),
		cfg.Capacity,
	)
	if err != nil {
		return nil, err
	}

	approvals := make([]ApprovalConfig, len(cfg.Approvals))
	for i, entry := range cfg.Approvals {
		approvals[i] = ApprovalConfig{
			Asset:       common.HexToAddress(entry.Asset),
			Spender:     common.HexToAddress(entry.Spender),
			AssetSymbol: entry.AssetSymbol,
			SpenderName: entry.SpenderName,
		}
	}
	if err := AddApprovalLeaves(ctx, approvals); err != nil {
		return nil, fmt.Errorf("approvals: %w", err)
	}

	for _, entry := range cfg.Lending {
		assets := make([]common.Address, len(entry.Assets))
		for i, asset := range entry.Assets {
			assets[i] = common.HexToAddress(asset)
		}
		lending := LendingConfig{
			Market:       common.HexToAddress(entry.Market),
			MarketName:   entry.MarketName,
			Assets:       assets,
			AssetSymbols: entry.AssetSymbols,
		}
		if err := AddLendingLeaves(ctx, lending); err != nil {
			return nil, fmt.Errorf("lending %s: %w", entry.MarketName, err)
		}
	}

	for _, entry := range cfg.SwapPairs {
		pair := SwapPairConfig{
			Router:     common.HexToAddress(entry.Router),
			RouterName: entry.RouterName,
			TokenA:     common.HexToAddress(entry.TokenA),
			TokenB:     common.HexToAddress(entry.TokenB),
		}
		if err := AddSwapPairLeaves(ctx, pair); err != nil {
			return nil, fmt.Errorf("swap pair %s: %w", entry.RouterName, err)
		}
	}

	for _, entry := range cfg.Staking {
		staking := StakingConfig{
			StakingContract: common.HexToAddress(entry.Contract),
			Name:            entry.Name,
			Asset:           common.HexToAddress(entry.Asset),
			AssetSymbol:     entry.AssetSymbol,
		}
		if err := AddStakingLeaves(ctx, staking); err != nil {
			return nil, fmt.Errorf("staking %s: %w", entry.Name, err)
		}
	}

	for _, entry := range cfg.NativeWrappers {
		wrapper := NativeWrapperConfig{
			Wrapper: common.HexToAddress(entry.Wrapper),
			Symbol:  entry.Symbol,
		}
		if err := AddNativeWrapperLeaves(ctx, wrapper); err != nil {
			return nil, fmt.Errorf("native wrapper %s: %w", entry.Symbol, err)
		}
	}

	logger.Logger().Info().
		Int("used", ctx.Used()).
		Int("capacity", ctx.Capacity()).
		Msg("catalog built")
	return ctx, nil
}
