// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys from a directory of plain-text files. Each
// file holds one secret: the filename is the key name and the trimmed file
// contents are the value.
//
// Supported key files: scorer-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ScorerAPIKey is the key file holding the external scorer credential.
const ScorerAPIKey = "scorer-api-key"

// Secrets holds the credentials known to the engine plus any extra key
// files found alongside them.
type Secrets struct {
	values map[string]string
}

// Get returns the secret value for key, or fallback when the key is absent
// or empty.
func (s Secrets) Get(key, fallback string) string {
	if v, ok := s.values[key]; ok && v != "" {
		return v
	}
	return fallback
}

// Keys returns the names of the loaded secrets.
func (s Secrets) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	return keys
}

// Load reads all files in dir. A missing directory is not an error; Load
// returns an empty set. Unreadable files produce a warning on stderr but do
// not abort.
func Load(dir string) (Secrets, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Secrets{values: map[string]string{}}, nil
		}
		return Secrets{}, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	values := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", entry.Name(), err)
			continue
		}
		if v := strings.TrimSpace(string(data)); v != "" {
			values[entry.Name()] = v
		}
	}
	return Secrets{values: values}, nil
}
