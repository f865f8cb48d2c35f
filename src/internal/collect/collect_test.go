// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package collect_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/tls-cert-inspector/src/internal/collect"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "failed to write fixture")
	return path
}

func TestConfigHasSource(t *testing.T) {
	assert.False(t, collect.Config{}.HasSource(), "zero config should have no source")
	assert.True(t, collect.Config{Domain: "example.com"}.HasSource())
	assert.True(t, collect.Config{File: "domains.txt"}.HasSource())
	assert.True(t, collect.Config{Server: collect.ServerCPanel}.HasSource())
	assert.True(t, collect.Config{Location: "/etc/letsencrypt/live"}.HasSource())
}

func TestDomains(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Literal Domain",
			testFunc: func(t *testing.T) {
				c := collect.New(collect.Config{Domain: "example.com"})

				domains, err := c.Domains(t.Context())
				require.NoError(t, err, "Domains() error")

				assert.Equal(t, []string{"example.com"}, domains)
			},
		},
		{
			name: "File Skips Blank Lines",
			testFunc: func(t *testing.T) {
				path := writeFile(t, t.TempDir(), "domains.txt",
					"example.com\n\nfoo.test\n   \nbar.test\n")

				c := collect.New(collect.Config{File: path})

				domains, err := c.Domains(t.Context())
				require.NoError(t, err, "Domains() error")

				assert.Equal(t, []string{"example.com", "foo.test", "bar.test"}, domains)
			},
		},
		{
			name: "File Keeps Duplicates",
			testFunc: func(t *testing.T) {
				path := writeFile(t, t.TempDir(), "domains.txt",
					"example.com\nexample.com\n")

				c := collect.New(collect.Config{File: path})

				domains, err := c.Domains(t.Context())
				require.NoError(t, err, "Domains() error")

				assert.Equal(t, []string{"example.com", "example.com"}, domains)
			},
		},
		{
			name: "Missing File Is Fatal",
			testFunc: func(t *testing.T) {
				c := collect.New(collect.Config{File: filepath.Join(t.TempDir(), "missing.txt")})

				_, err := c.Domains(t.Context())
				assert.Error(t, err, "expected an error for a missing domain file")
			},
		},
		{
			name: "CPanel Domain Table",
			testFunc: func(t *testing.T) {
				table := writeFile(t, t.TempDir(), "userdomains",
					"*: nobody\nexample.com: alice\nshop.example.com: alice\nfoo.test: bob\n")

				c := collect.New(collect.Config{
					Server:          collect.ServerCPanel,
					UserDomainsPath: table,
				})

				domains, err := c.Domains(t.Context())
				require.NoError(t, err, "Domains() error")

				assert.Equal(t, []string{"example.com", "shop.example.com", "foo.test"}, domains,
					"expected column 1 entries containing a dot, catch-all filtered")
			},
		},
		{
			name: "CPanel Missing Table Is Fatal",
			testFunc: func(t *testing.T) {
				c := collect.New(collect.Config{
					Server:          collect.ServerCPanel,
					UserDomainsPath: filepath.Join(t.TempDir(), "userdomains"),
				})

				_, err := c.Domains(t.Context())
				assert.Error(t, err, "expected an error for a missing domain table")
			},
		},
		{
			name: "ISPconfig VHost Dump",
			testFunc: func(t *testing.T) {
				dump := "VirtualHost configuration:\n" +
					"*:80   is a NameVirtualHost\n" +
					"         default server example.com (/etc/apache2/sites-enabled/example.com.vhost:7)\n" +
					"         port 80 namevhost example.com (/etc/apache2/sites-enabled/example.com.vhost:7)\n" +
					"         port 80 namevhost foo.test (/etc/apache2/sites-enabled/foo.test.vhost:7)\n" +
					"*:443  is a NameVirtualHost\n" +
					"         port 443 namevhost example.com (/etc/apache2/sites-enabled/example.com.vhost:40)\n"

				script := writeFile(t, t.TempDir(), "vhosts.sh",
					"#!/bin/sh\ncat <<'EOF'\n"+dump+"EOF\n")
				require.NoError(t, os.Chmod(script, 0755), "failed to mark fixture executable")

				c := collect.New(collect.Config{
					Server:       collect.ServerISPConfig,
					VHostCommand: []string{script},
				})

				domains, err := c.Domains(t.Context())
				require.NoError(t, err, "Domains() error")

				assert.Equal(t, []string{"example.com", "foo.test"}, domains,
					"expected namevhost tokens deduplicated in first-seen order")
			},
		},
		{
			name: "ISPconfig Missing Command Is Fatal",
			testFunc: func(t *testing.T) {
				c := collect.New(collect.Config{
					Server:       collect.ServerISPConfig,
					VHostCommand: []string{filepath.Join(t.TempDir(), "no-such-tool")},
				})

				_, err := c.Domains(t.Context())
				assert.Error(t, err, "expected an error for a missing vhost command")
			},
		},
		{
			name: "Unknown Server Type",
			testFunc: func(t *testing.T) {
				c := collect.New(collect.Config{Server: "nginx"})

				_, err := c.Domains(t.Context())
				require.Error(t, err, "expected unknown server type error")
				assert.ErrorIs(t, err, collect.ErrUnknownServerType)
			},
		},
		{
			name: "Location Subdirectories",
			testFunc: func(t *testing.T) {
				dir := t.TempDir()
				require.NoError(t, os.Mkdir(filepath.Join(dir, "example.com"), 0755))
				require.NoError(t, os.Mkdir(filepath.Join(dir, "foo.test"), 0755))
				writeFile(t, dir, "README", "not a domain")

				c := collect.New(collect.Config{Location: dir})

				domains, err := c.Domains(t.Context())
				require.NoError(t, err, "Domains() error")

				assert.ElementsMatch(t, []string{"example.com", "foo.test"}, domains,
					"expected one domain per subdirectory, plain files ignored")
			},
		},
		{
			name: "Source Order",
			testFunc: func(t *testing.T) {
				dir := t.TempDir()
				path := writeFile(t, dir, "domains.txt", "from-file.test\n")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "store"), 0755))
				require.NoError(t, os.Mkdir(filepath.Join(dir, "store", "from-store.test"), 0755))

				c := collect.New(collect.Config{
					Domain:   "literal.test",
					File:     path,
					Location: filepath.Join(dir, "store"),
				})

				domains, err := c.Domains(t.Context())
				require.NoError(t, err, "Domains() error")

				assert.Equal(t, []string{"literal.test", "from-file.test", "from-store.test"}, domains)
			},
		},
		{
			name: "No Source",
			testFunc: func(t *testing.T) {
				c := collect.New(collect.Config{})

				_, err := c.Domains(t.Context())
				assert.ErrorIs(t, err, collect.ErrNoSource)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.testFunc(t)
		})
	}
}
