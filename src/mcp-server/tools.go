// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createTools creates and returns all MCP tool definitions with their handlers.
//
// The function defines the following tools:
//   - inspect_domain: Inspects the certificate a single domain presents
//   - inspect_domains: Inspects multiple domains in one call
//   - list_renewals: Lists the domains whose certificates are near renewal
//
// Each tool includes proper parameter definitions, descriptions, and default
// values as required by the MCP specification. Numeric defaults of 0 mean
// "use the server configuration value".
func createTools() []ToolDefinition {
	return []ToolDefinition{
		{
			Tool: mcp.NewTool("inspect_domain",
				mcp.WithDescription("Inspect the TLS certificate a domain presents and report its subject, issuer, expiry, and possible issues"),
				mcp.WithString("domain",
					mcp.Required(),
					mcp.Description("Domain name to inspect (e.g., example.com)"),
				),
				mcp.WithNumber("port",
					mcp.Description("TLS port to connect to (default: server config, normally 443)"),
					mcp.DefaultNumber(0),
				),
				mcp.WithNumber("warn_days",
					mcp.Description("Number of days before expiry to flag the certificate as near renewal (default: server config, normally 30)"),
					mcp.DefaultNumber(0),
				),
				mcp.WithString("connect_to",
					mcp.Description("Optional host:port to connect to instead of resolving the domain; the domain is still sent as the TLS server name"),
				),
			),
			Handler: handleInspectDomain,
		},
		{
			Tool: mcp.NewTool("inspect_domains",
				mcp.WithDescription("Inspect the TLS certificates of multiple domains and report each one's subject, issuer, expiry, and possible issues"),
				mcp.WithString("domains",
					mcp.Required(),
					mcp.Description("Comma-separated list of domain names to inspect"),
				),
				mcp.WithNumber("port",
					mcp.Description("TLS port to connect to (default: server config, normally 443)"),
					mcp.DefaultNumber(0),
				),
				mcp.WithNumber("warn_days",
					mcp.Description("Number of days before expiry to flag a certificate as near renewal (default: server config, normally 30)"),
					mcp.DefaultNumber(0),
				),
			),
			Handler: handleInspectDomains,
		},
		{
			Tool: mcp.NewTool("list_renewals",
				mcp.WithDescription("List the domains whose TLS certificates expire within the warning window"),
				mcp.WithString("domains",
					mcp.Required(),
					mcp.Description("Comma-separated list of domain names to check"),
				),
				mcp.WithNumber("warn_days",
					mcp.Description("Number of days before expiry that counts as near renewal (default: server config, normally 30)"),
					mcp.DefaultNumber(0),
				),
			),
			Handler: handleListRenewals,
		},
	}
}
