package catalog

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"github.com/samuel0642/MerkleVault/internal/types"
)

func TestSwapPairCanonicalOrder(t *testing.T) {
	router := common.HexToAddress("0x5000000000000000000000000000000000000005")
	tokenA := common.HexToAddress("0x6000000000000000000000000000000000000006")
	tokenB := common.HexToAddress("0x7000000000000000000000000000000000000007")

	forward := newTestContext(t, 16)
	err := AddSwapPairLeaves(forward, SwapPairConfig{
		Router: router, RouterName: "SwapCo", TokenA: tokenA, TokenB: tokenB,
	})
	assert.NoError(t, err)

	reversed := newTestContext(t, 16)
	err = AddSwapPairLeaves(reversed, SwapPairConfig{
		Router: router, RouterName: "SwapCo", TokenA: tokenB, TokenB: tokenA,
	})
	assert.NoError(t, err)

	// byte-identical leaves regardless of input order
	assert.Equal(t, forward.Leaves(), reversed.Leaves())
	for i := range forward.Leaves() {
		a, b := forward.Leaves()[i], reversed.Leaves()[i]
		assert.Equal(t, a.Digest(), b.Digest())
	}
}

func TestSwapPairIdenticalTokens(t *testing.T) {
	ctx := newTestContext(t, 16)
	err := AddSwapPairLeaves(ctx, SwapPairConfig{
		Router: testSpender, RouterName: "SwapCo", TokenA: testAsset, TokenB: testAsset,
	})
	assert.ErrorIs(t, err, types.ErrInvalidInput)
	assert.Equal(t, 0, ctx.Used())
}

func TestLendingParallelArrayMismatch(t *testing.T) {
	ctx := newTestContext(t, 16)
	err := AddLendingLeaves(ctx, LendingConfig{
		Market:       testSpender,
		MarketName:   "LendCo",
		Assets:       []common.Address{testAsset},
		AssetSymbols: []string{"TKN", "EXTRA"},
	})
	assert.ErrorIs(t, err, types.ErrInvalidInput)
	assert.Equal(t, 0, ctx.Used())
}

func TestLendingLeafShape(t *testing.T) {
	ctx := newTestContext(t, 16)
	err := AddLendingLeaves(ctx, LendingConfig{
		Market:       testSpender,
		MarketName:   "LendCo",
		Assets:       []common.Address{testAsset},
		AssetSymbols: []string{"TKN"},
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, ctx.Used())

	leaves := ctx.Leaves()
	assert.Equal(t, "approve(address,uint256)", leaves[0].Signature)
	assert.Equal(t, testAsset, leaves[0].Target)
	assert.Equal(t, []common.Address{testSpender}, leaves[0].ArgumentAddresses)

	assert.Equal(t, "deposit(address,uint256)", leaves[1].Signature)
	assert.Equal(t, testSpender, leaves[1].Target)
	assert.Equal(t, []common.Address{testAsset}, leaves[1].ArgumentAddresses)

	assert.Equal(t, "withdraw(address,uint256)", leaves[2].Signature)
	for _, leaf := range leaves {
		assert.False(t, leaf.CanSendValue)
		assert.Equal(t, testAuthorizer, leaf.Authorizer)
	}
}

func TestNativeWrapperLeaves(t *testing.T) {
	wrapper := common.HexToAddress("0x8000000000000000000000000000000000000008")

	ctx := newTestContext(t, 4)
	err := AddNativeWrapperLeaves(ctx, NativeWrapperConfig{Wrapper: wrapper, Symbol: "WNAT"})
	assert.NoError(t, err)
	assert.Equal(t, 2, ctx.Used())

	wrap := ctx.Leaves()[0]
	assert.Equal(t, "deposit()", wrap.Signature)
	assert.True(t, wrap.CanSendValue)
	assert.Empty(t, wrap.ArgumentAddresses)

	unwrap := ctx.Leaves()[1]
	assert.Equal(t, "withdraw(uint256)", unwrap.Signature)
	assert.False(t, unwrap.CanSendValue)
}
