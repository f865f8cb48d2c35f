// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"crypto/x509"
	"fmt"
	"os"
	"path/filepath"
)

// leafFileNames are the per-domain leaf candidates in an ACME client's
// certificate store, in lookup order.
var leafFileNames = []string{"cert.pem", "fullchain.pem"}

// Store reads leaf certificates from an ACME-style certificate store: one
// subdirectory per domain, each holding the domain's certificate files.
type Store struct {
	dir    string
	loader *Loader
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{
		dir:    dir,
		loader: NewLoader(),
	}
}

// LoadLeaf reads and decodes the stored leaf certificate for domain.
// It tries cert.pem first and fullchain.pem second.
func (s *Store) LoadLeaf(domain string) (*x509.Certificate, error) {
	var lastErr error

	for _, name := range leafFileNames {
		data, err := os.ReadFile(filepath.Join(s.dir, domain, name))
		if err != nil {
			lastErr = err
			continue
		}

		cert, err := s.loader.DecodeLeaf(data)
		if err != nil {
			lastErr = err
			continue
		}

		return cert, nil
	}

	return nil, fmt.Errorf("x509certs: no stored leaf for %q: %w", domain, lastErr)
}
