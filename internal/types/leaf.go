package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// SelectorLength is the number of bytes of a function selector
const SelectorLength = 4

// Selector represents the 4-byte identifier of a function signature
type Selector [SelectorLength]byte

// Leaf represents one authorized vault action
type Leaf struct {
	Target            common.Address
	CanSendValue      bool
	Signature         string
	ArgumentAddresses []common.Address
	Description       string
	Authorizer        common.Address
}

// SelectorFromSignature returns the first 4 bytes of the keccak256 hash
// of the canonical UTF-8 signature string
func SelectorFromSignature(signature string) Selector {
	var sel Selector
	copy(sel[:], crypto.Keccak256([]byte(signature))[:SelectorLength])
	return sel
}

// Selector returns the 4-byte selector of the leaf's signature
func (l *Leaf) Selector() Selector {
	return SelectorFromSignature(l.Signature)
}

// PackedArguments returns the argument addresses concatenated as raw
// 20-byte values in declared order
func (l *Leaf) PackedArguments() []byte {
	packed := make([]byte, 0, common.AddressLength*len(l.ArgumentAddresses))
	for _, arg := range l.ArgumentAddresses {
		packed = append(packed, arg.Bytes()...)
	}
	return packed
}

// Digest returns the leaf digest:
// keccak256(authorizer ‖ target ‖ canSendValue ‖ selector ‖ argumentAddresses...)
// with every field packed at fixed width in declared order. The layout is
// a wire contract shared with the runtime verifier and must not change.
func (l *Leaf) Digest() common.Hash {
	buf := make([]byte, 0, 2*common.AddressLength+1+SelectorLength+common.AddressLength*len(l.ArgumentAddresses))
	buf = append(buf, l.Authorizer.Bytes()...)
	buf = append(buf, l.Target.Bytes()...)
	if l.CanSendValue {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	sel := l.Selector()
	buf = append(buf, sel[:]...)
	buf = append(buf, l.PackedArguments()...)
	return crypto.Keccak256Hash(buf)
}

// IsPlaceholder reports whether the leaf is an unused slot. A zero target
// marks unused capacity in a pre-sized collection and is excluded from
// hashing.
func (l *Leaf) IsPlaceholder() bool {
	return l.Target == (common.Address{})
}

// IdentityKey returns the deduplication key of the leaf. Description is
// deliberately excluded: two leaves differing only in description are
// duplicates.
func (l *Leaf) IdentityKey() string {
	key := make([]byte, 0, 2*common.AddressLength+1+len(l.Signature)+common.AddressLength*len(l.ArgumentAddresses))
	key = append(key, l.Target.Bytes()...)
	if l.CanSendValue {
		key = append(key, 1)
	} else {
		key = append(key, 0)
	}
	key = append(key, []byte(l.Signature)...)
	key = append(key, l.PackedArguments()...)
	key = append(key, l.Authorizer.Bytes()...)
	return string(key)
}

// UsedLeaves returns the non-placeholder leaves in their original order
func UsedLeaves(leaves []Leaf) []Leaf {
	used := make([]Leaf, 0, len(leaves))
	for _, leaf := range leaves {
		if !leaf.IsPlaceholder() {
			used = append(used, leaf)
		}
	}
	return used
}
