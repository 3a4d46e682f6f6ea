package validation

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFamilyOf(t *testing.T) {
	n := DefaultNetworks()

	tests := []struct {
		network string
		want    string
	}{
		{"Ethereum", FamilyEVM},
		{"polygon", FamilyEVM},
		{"  Base  ", FamilyEVM},
		{"Solana", FamilySolana},
		{"Tron", FamilyUnknown},
		{"", FamilyUnknown},
	}

	for _, tt := range tests {
		if got := n.FamilyOf(tt.network); got != tt.want {
			t.Errorf("FamilyOf(%q) = %q, want %q", tt.network, got, tt.want)
		}
	}
}

func TestLoadNetworks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "networks.yaml")
	content := "evm:\n  - Linea\n  - Scroll\nsolana:\n  - Eclipse\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	n, err := LoadNetworks(path)
	if err != nil {
		t.Fatalf("LoadNetworks() error = %v", err)
	}

	// File entries merge over defaults.
	if got := n.FamilyOf("Linea"); got != FamilyEVM {
		t.Errorf("FamilyOf(Linea) = %q, want evm", got)
	}
	if got := n.FamilyOf("Eclipse"); got != FamilySolana {
		t.Errorf("FamilyOf(Eclipse) = %q, want solana", got)
	}
	if got := n.FamilyOf("Polygon"); got != FamilyEVM {
		t.Errorf("FamilyOf(Polygon) = %q, default lost after merge", got)
	}
}

func TestLoadNetworks_MissingFile(t *testing.T) {
	n, err := LoadNetworks(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadNetworks() on missing file error = %v", err)
	}
	if got := n.FamilyOf("Solana"); got != FamilySolana {
		t.Errorf("defaults not applied when file missing, FamilyOf(Solana) = %q", got)
	}
}

func TestLoadNetworks_BadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "networks.yaml")
	if err := os.WriteFile(path, []byte("evm: {not: [valid"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadNetworks(path); err == nil {
		t.Error("LoadNetworks() with malformed YAML returned nil error")
	}
}
