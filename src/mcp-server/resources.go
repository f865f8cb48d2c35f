// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/H0llyW00dzZ/tls-cert-inspector/src/internal/config"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// createResources creates the static resources the server exposes.
//
// Resources:
//   - info://version: Server name, version, and tool capabilities
//   - config://defaults: The inspection defaults currently in effect
func createResources(version string, cfg *config.Config) []server.ServerResource {
	return []server.ServerResource{
		{
			Resource: mcp.NewResource("info://version", "Server version",
				mcp.WithResourceDescription("Server name, version, and available tools"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
				return handleVersionResource(version)
			},
		},
		{
			Resource: mcp.NewResource("config://defaults", "Inspection defaults",
				mcp.WithResourceDescription("The warning window, timeout, and port currently in effect"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
				return handleDefaultsResource(cfg)
			},
		},
	}
}

// handleVersionResource provides server metadata including version and the
// available tool names.
func handleVersionResource(version string) ([]mcp.ResourceContents, error) {
	info := map[string]any{
		"name":    "TLS Certificate Inspector",
		"version": version,
		"type":    "MCP Server",
		"tools":   []string{"inspect_domain", "inspect_domains", "list_renewals"},
	}

	jsonData, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal version info: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "info://version",
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}

// handleDefaultsResource reports the inspection defaults the server applies
// when a tool call omits the corresponding argument.
func handleDefaultsResource(cfg *config.Config) ([]mcp.ResourceContents, error) {
	defaults := map[string]any{
		"defaults": map[string]any{
			"expireDays":     cfg.Defaults.ExpireDays,
			"timeoutSeconds": cfg.Defaults.Timeout,
			"port":           cfg.Defaults.Port,
		},
	}

	jsonData, err := json.MarshalIndent(defaults, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal defaults: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "config://defaults",
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
