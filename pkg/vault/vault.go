package vault

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Vault describes one entry in Obsidian's vault registry.
type Vault struct {
	// Path is the absolute filesystem path to the vault's root directory.
	Path string `json:"path"`
	// Timestamp is Obsidian's "last opened" marker for the vault, recorded
	// in milliseconds since the Unix epoch. It's informational only; the
	// supervisor doesn't use it to order or filter anything.
	Timestamp int64 `json:"ts"`
	// Open indicates whether the vault currently has an open Obsidian
	// window. Only open vaults participate in a sync pass.
	Open bool `json:"open"`
}

// PluginsPath returns the path to the vault's plugin directory, the
// subtree that the sync engine mirrors between vaults.
func (v Vault) PluginsPath() string {
	return filepath.Join(v.Path, ".obsidian", "plugins")
}

// VaultSet is the parsed form of Obsidian's vault registry file: a JSON
// object keyed by an opaque vault ID, each value a Vault.
type VaultSet struct {
	entries map[string]Vault
}

// Load reads and parses the vault registry file at path.
func Load(path string) (*VaultSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read vault registry file")
	}

	var entries map[string]Vault
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.Wrap(err, "unable to parse vault registry file")
	}

	return &VaultSet{entries: entries}, nil
}

// OpenVaults returns every vault in the set with Open set to true, in no
// particular order. This mirrors Vaults::get_open_vaults in the reference
// implementation this package is modeled on.
func (s *VaultSet) OpenVaults() []Vault {
	var open []Vault
	for _, v := range s.entries {
		if v.Open {
			open = append(open, v)
		}
	}
	return open
}

// All returns every vault in the set, open or not.
func (s *VaultSet) All() []Vault {
	all := make([]Vault, 0, len(s.entries))
	for _, v := range s.entries {
		all = append(all, v)
	}
	return all
}
