package config

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v2"

	"github.com/samuel0642/MerkleVault/internal/types"
)

// Config represents a catalog build configuration: the vault and its
// decoder/sanitizer, the declared leaf capacity, and the integrations
// whose leaves the catalog authorizes
type Config struct {
	Vault          string               `yaml:"vault"`
	Authorizer     string               `yaml:"authorizer"`
	Capacity       int                  `yaml:"capacity"`
	Approvals      []ApprovalEntry      `yaml:"approvals"`
	Lending        []LendingEntry       `yaml:"lending"`
	SwapPairs      []SwapPairEntry      `yaml:"swap_pairs"`
	Staking        []StakingEntry       `yaml:"staking"`
	NativeWrappers []NativeWrapperEntry `yaml:"native_wrappers"`
}

// ApprovalEntry represents a standalone ERC-20 approval integration
type ApprovalEntry struct {
	Asset       string `yaml:"asset"`
	Spender     string `yaml:"spender"`
	AssetSymbol string `yaml:"asset_symbol"`
	SpenderName string `yaml:"spender_name"`
}

// LendingEntry represents a lending market integration
type LendingEntry struct {
	Market       string   `yaml:"market"`
	MarketName   string   `yaml:"market_name"`
	Assets       []string `yaml:"assets"`
	AssetSymbols []string `yaml:"asset_symbols"`
}

// SwapPairEntry represents a swap router pair integration
type SwapPairEntry struct {
	Router     string `yaml:"router"`
	RouterName string `yaml:"router_name"`
	TokenA     string `yaml:"token_a"`
	TokenB     string `yaml:"token_b"`
}

// StakingEntry represents a staking contract integration
type StakingEntry struct {
	Contract    string `yaml:"contract"`
	Name        string `yaml:"name"`
	Asset       string `yaml:"asset"`
	AssetSymbol string `yaml:"asset_symbol"`
}

// NativeWrapperEntry represents the wrapped native asset integration
type NativeWrapperEntry struct {
	Wrapper string `yaml:"wrapper"`
	Symbol  string `yaml:"symbol"`
}

// LoadConfig loads the configuration from a file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %v", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the structural preconditions of the configuration
func (c *Config) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", types.ErrInvalidInput)
	}
	if !common.IsHexAddress(c.Vault) {
		return fmt.Errorf("%w: vault %q is not an address", types.ErrInvalidInput, c.Vault)
	}
	if !common.IsHexAddress(c.Authorizer) {
		return fmt.Errorf("%w: authorizer %q is not an address", types.ErrInvalidInput, c.Authorizer)
	}

	for _, entry := range c.Approvals {
		if err := checkAddresses(entry.Asset, entry.Spender); err != nil {
			return err
		}
	}
	for _, entry := range c.Lending {
		if err := checkAddresses(append([]string{entry.Market}, entry.Assets...)...); err != nil {
			return err
		}
		if len(entry.Assets) != len(entry.AssetSymbols) {
			return fmt.Errorf("%w: lending market %s has %d assets but %d symbols",
				types.ErrInvalidInput, entry.Market, len(entry.Assets), len(entry.AssetSymbols))
		}
	}
	for _, entry := range c.SwapPairs {
		if err := checkAddresses(entry.Router, entry.TokenA, entry.TokenB); err != nil {
			return err
		}
	}
	for _, entry := range c.Staking {
		if err := checkAddresses(entry.Contract, entry.Asset); err != nil {
			return err
		}
	}
	for _, entry := range c.NativeWrappers {
		if err := checkAddresses(entry.Wrapper); err != nil {
			return err
		}
	}
	return nil
}

func checkAddresses(addrs ...string) error {
	for _, addr := range addrs {
		if !common.IsHexAddress(addr) {
			return fmt.Errorf("%w: %q is not an address", types.ErrInvalidInput, addr)
		}
	}
	return nil
}
