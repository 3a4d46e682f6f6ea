package validation

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Address family of a blockchain network.
const (
	FamilyEVM     = "evm"
	FamilySolana  = "solana"
	FamilyUnknown = "unknown"
)

// Networks maps network names to their address family. Lookups are
// case-insensitive.
type Networks struct {
	families map[string]string
}

// DefaultNetworks returns the built-in network table.
func DefaultNetworks() *Networks {
	return &Networks{families: map[string]string{
		"ethereum":  FamilyEVM,
		"polygon":   FamilyEVM,
		"bsc":       FamilyEVM,
		"avalanche": FamilyEVM,
		"arbitrum":  FamilyEVM,
		"optimism":  FamilyEVM,
		"base":      FamilyEVM,
		"solana":    FamilySolana,
	}}
}

// FamilyOf returns the address family for a network name, or FamilyUnknown
// if the network is not in the table.
func (n *Networks) FamilyOf(network string) string {
	if f, ok := n.families[strings.ToLower(strings.TrimSpace(network))]; ok {
		return f
	}
	return FamilyUnknown
}

// networksFile is the YAML shape of an optional networks override file.
type networksFile struct {
	EVM    []string `yaml:"evm"`
	Solana []string `yaml:"solana"`
}

// LoadNetworks reads a YAML file listing network names per family and merges
// it over the defaults. A missing file is not an error; the defaults apply.
func LoadNetworks(path string) (*Networks, error) {
	n := DefaultNetworks()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return n, nil
		}
		return nil, err
	}

	var file networksFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	for _, name := range file.EVM {
		n.families[strings.ToLower(strings.TrimSpace(name))] = FamilyEVM
	}
	for _, name := range file.Solana {
		n.families[strings.ToLower(strings.TrimSpace(name))] = FamilySolana
	}
	return n, nil
}
