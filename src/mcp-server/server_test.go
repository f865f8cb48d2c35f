// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"net"
	"testing"
	"time"

	"github.com/H0llyW00dzZ/tls-cert-inspector/src/internal/config"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newServerCert generates a self-signed certificate for commonName that a
// test TLS listener can present.
func newServerCert(t *testing.T, commonName string, notAfter time.Time) tls.Certificate {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: commonName},
		DNSNames:     []string{commonName},
		NotBefore:    notAfter.Add(-90 * 24 * time.Hour),
		NotAfter:     notAfter,
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)

	return tls.Certificate{Certificate: [][]byte{der}, PrivateKey: key}
}

// serveTLS starts a TLS listener presenting cert and returns its address.
// Every accepted connection is handshaken and closed.
func serveTLS(t *testing.T, cert tls.Certificate) string {
	t.Helper()

	ln, err := tls.Listen("tcp", "127.0.0.1:0", &tls.Config{Certificates: []tls.Certificate{cert}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(c net.Conn) {
				defer c.Close()
				if tlsConn, ok := c.(*tls.Conn); ok {
					_ = tlsConn.Handshake()
				}
			}(conn)
		}
	}()

	return ln.Addr().String()
}

// closedAddr returns an address nothing is listening on.
func closedAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

func newRequest(args map[string]any) mcp.CallToolRequest {
	request := mcp.CallToolRequest{}
	request.Params.Arguments = args
	return request
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

func TestCreateTools(t *testing.T) {
	tools := createTools()
	require.Len(t, tools, 3)

	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Tool.Name)
		require.NotNil(t, tool.Handler)
	}
	assert.Equal(t, []string{"inspect_domain", "inspect_domains", "list_renewals"}, names)
}

func TestSplitDomains(t *testing.T) {
	assert.Equal(t, []string{"a.test", "b.test"}, splitDomains("a.test, b.test"))
	assert.Equal(t, []string{"a.test"}, splitDomains(",a.test,,"))
	assert.Nil(t, splitDomains(" , "))
}

func TestHandleInspectDomainMissingParam(t *testing.T) {
	result, err := handleInspectDomain(t.Context(), newRequest(map[string]any{}), testConfig(t))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleInspectDomain(t *testing.T) {
	addr := serveTLS(t, newServerCert(t, "example.com", time.Now().Add(365*24*time.Hour)))

	result, err := handleInspectDomain(t.Context(), newRequest(map[string]any{
		"domain":     "example.com",
		"connect_to": addr,
	}), testConfig(t))
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, `"domain": "example.com"`)
	assert.Contains(t, text, `"issuedTo": "example.com"`)
	assert.Contains(t, text, `"nearRenewal": false`)
	assert.NotContains(t, text, "possible name mismatch")
}

func TestHandleInspectDomainUnreachable(t *testing.T) {
	result, err := handleInspectDomain(t.Context(), newRequest(map[string]any{
		"domain":     "example.com",
		"connect_to": closedAddr(t),
	}), testConfig(t))
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "no certificate found")
	assert.Contains(t, text, `"validUntil": "-"`)
}

func TestHandleInspectDomains(t *testing.T) {
	// Both domains connect to the same listener, so the certificate only
	// matches the first one.
	addr := serveTLS(t, newServerCert(t, "example.com", time.Now().Add(365*24*time.Hour)))

	result, err := handleInspectDomains(t.Context(), newRequest(map[string]any{
		"domains":    "example.com, other.test",
		"connect_to": addr,
	}), testConfig(t))
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "2 domain(s) inspected, 1 with possible issues")
	assert.Contains(t, text, "possible name mismatch")
}

func TestHandleInspectDomainsMissingParam(t *testing.T) {
	result, err := handleInspectDomains(t.Context(), newRequest(map[string]any{"domains": " , "}), testConfig(t))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleListRenewals(t *testing.T) {
	addr := serveTLS(t, newServerCert(t, "soon.test", time.Now().Add(5*24*time.Hour)))

	result, err := handleListRenewals(t.Context(), newRequest(map[string]any{
		"domains":    "soon.test",
		"connect_to": addr,
	}), testConfig(t))
	require.NoError(t, err)
	text := resultText(t, result)
	assert.Contains(t, text, "1 domain(s) near renewal:")
	assert.Contains(t, text, "soon.test")

	result, err = handleListRenewals(t.Context(), newRequest(map[string]any{
		"domains":    "soon.test",
		"connect_to": addr,
		"warn_days":  1,
	}), testConfig(t))
	require.NoError(t, err)
	assert.Equal(t, "No domains are near renewal.", resultText(t, result))
}

func TestServerBuilderBuild(t *testing.T) {
	s, err := NewServerBuilder().
		WithConfig(testConfig(t)).
		WithVersion("1.0.0-testing").
		WithDefaultTools().
		WithDefaultResources().
		Build()
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestServerBuilderBuildDefaultsConfig(t *testing.T) {
	s, err := NewServerBuilder().WithVersion("1.0.0-testing").Build()
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestVersionResource(t *testing.T) {
	contents, err := handleVersionResource("1.0.0-testing")
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "info://version", text.URI)
	assert.Contains(t, text.Text, "1.0.0-testing")
	assert.Contains(t, text.Text, "inspect_domain")
}

func TestDefaultsResource(t *testing.T) {
	contents, err := handleDefaultsResource(testConfig(t))
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "config://defaults", text.URI)
	assert.Contains(t, text.Text, `"expireDays": 30`)
}
