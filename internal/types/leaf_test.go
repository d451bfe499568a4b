package types

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
)

func TestSelectorFromSignature(t *testing.T) {
	// well-known ERC-20 / WETH selectors
	assert.Equal(t, Selector{0x09, 0x5e, 0xa7, 0xb3}, SelectorFromSignature("approve(address,uint256)"))
	assert.Equal(t, Selector{0xa9, 0x05, 0x9c, 0xbb}, SelectorFromSignature("transfer(address,uint256)"))
	assert.Equal(t, Selector{0xd0, 0xe3, 0x0d, 0xb0}, SelectorFromSignature("deposit()"))
	assert.Equal(t, Selector{0x2e, 0x1a, 0x7d, 0x4d}, SelectorFromSignature("withdraw(uint256)"))
}

func TestDigestLayout(t *testing.T) {
	leaf := Leaf{
		Target:            common.HexToAddress("0x1111111111111111111111111111111111111111"),
		CanSendValue:      true,
		Signature:         "deposit()",
		ArgumentAddresses: []common.Address{common.HexToAddress("0x2222222222222222222222222222222222222222")},
		Description:       "wrap native asset",
		Authorizer:        common.HexToAddress("0x3333333333333333333333333333333333333333"),
	}

	// authorizer ‖ target ‖ canSendValue ‖ selector ‖ argumentAddresses
	var packed []byte
	packed = append(packed, leaf.Authorizer.Bytes()...)
	packed = append(packed, leaf.Target.Bytes()...)
	packed = append(packed, 1)
	packed = append(packed, 0xd0, 0xe3, 0x0d, 0xb0)
	packed = append(packed, leaf.ArgumentAddresses[0].Bytes()...)

	assert.Equal(t, crypto.Keccak256Hash(packed), leaf.Digest())
}

func TestDigestDeterminism(t *testing.T) {
	leaf := Leaf{
		Target:     common.HexToAddress("0x1111111111111111111111111111111111111111"),
		Signature:  "approve(address,uint256)",
		Authorizer: common.HexToAddress("0x3333333333333333333333333333333333333333"),
		ArgumentAddresses: []common.Address{
			common.HexToAddress("0x2222222222222222222222222222222222222222"),
		},
	}
	assert.Equal(t, leaf.Digest(), leaf.Digest())
}

func TestDigestFieldSensitivity(t *testing.T) {
	base := Leaf{
		Target:     common.HexToAddress("0x1111111111111111111111111111111111111111"),
		Signature:  "approve(address,uint256)",
		Authorizer: common.HexToAddress("0x3333333333333333333333333333333333333333"),
		ArgumentAddresses: []common.Address{
			common.HexToAddress("0x2222222222222222222222222222222222222222"),
		},
	}

	flagged := base
	flagged.CanSendValue = true
	assert.NotEqual(t, base.Digest(), flagged.Digest())

	otherSig := base
	otherSig.Signature = "transfer(address,uint256)"
	assert.NotEqual(t, base.Digest(), otherSig.Digest())

	otherArgs := base
	otherArgs.ArgumentAddresses = []common.Address{
		common.HexToAddress("0x4444444444444444444444444444444444444444"),
	}
	assert.NotEqual(t, base.Digest(), otherArgs.Digest())

	// description is not part of leaf identity
	described := base
	described.Description = "approve router"
	assert.Equal(t, base.Digest(), described.Digest())
	assert.Equal(t, base.IdentityKey(), described.IdentityKey())
}

func TestIdentityKeyDistinguishesFields(t *testing.T) {
	a := Leaf{
		Target:     common.HexToAddress("0x1111111111111111111111111111111111111111"),
		Signature:  "stake(uint256)",
		Authorizer: common.HexToAddress("0x3333333333333333333333333333333333333333"),
	}
	b := a
	b.CanSendValue = true
	assert.NotEqual(t, a.IdentityKey(), b.IdentityKey())
}

func TestIsPlaceholder(t *testing.T) {
	placeholder := Leaf{}
	assert.True(t, placeholder.IsPlaceholder())

	used := Leaf{Target: common.HexToAddress("0x1111111111111111111111111111111111111111")}
	assert.False(t, used.IsPlaceholder())
}

func TestUsedLeaves(t *testing.T) {
	target := common.HexToAddress("0x1111111111111111111111111111111111111111")
	slots := []Leaf{
		{Target: target, Signature: "deposit()"},
		{},
		{Target: target, Signature: "withdraw(uint256)"},
		{},
		{},
	}

	used := UsedLeaves(slots)
	assert.Len(t, used, 2)
	assert.Equal(t, "deposit()", used[0].Signature)
	assert.Equal(t, "withdraw(uint256)", used[1].Signature)
}
