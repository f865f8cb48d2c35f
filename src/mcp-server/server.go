// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/H0llyW00dzZ/tls-cert-inspector/src/internal/config"
	"github.com/H0llyW00dzZ/tls-cert-inspector/src/logger"
	"github.com/H0llyW00dzZ/tls-cert-inspector/src/version"
	"github.com/mark3labs/mcp-go/server"
)

// EnvConfigFile names the environment variable pointing at the server's
// configuration file. When unset, the shared CERT_INSPECTOR_CONFIG_FILE
// variable and then the built-in defaults apply.
const EnvConfigFile = "MCP_CERT_INSPECTOR_CONFIG_FILE"

var appVersion = version.Version // default version

// GetVersion returns the current version of the MCP server.
//
// The version is initially set to the default from the version package,
// but can be overridden when calling Run() with a specific version string.
func GetVersion() string {
	return appVersion
}

// Run starts the MCP server with TLS certificate inspection tools.
//
// Run initializes the server with the inspection tools and static resources,
// then serves the MCP protocol over stdio until the client disconnects or a
// shutdown signal arrives.
//
// Parameters:
//   - version: Version string to set for the server (e.g., "0.3.1")
//
// Returns:
//   - error: Server startup or runtime error, or graceful shutdown signal
//
// Configuration:
//   - Loads config from the MCP_CERT_INSPECTOR_CONFIG_FILE environment variable
//   - Falls back to CERT_INSPECTOR_CONFIG_FILE and then built-in defaults
//
// Server Lifecycle:
//  1. Load configuration from environment
//  2. Set up signal handling for graceful shutdown
//  3. Build MCP server using ServerBuilder pattern
//  4. Start stdio server with context cancellation support
//  5. Wait for either server error or shutdown signal
//
// Graceful Shutdown:
//   - Responds to SIGINT (Ctrl+C) and SIGTERM signals
//   - Returns a wrapped context.Canceled error on signal-based shutdown
func Run(version string) error {
	// Set the version for GetVersion
	appVersion = version

	// Lifecycle messages go to stderr as JSON lines; stdout carries the
	// protocol stream only.
	log := logger.NewMCPLogger(os.Stderr, false)

	cfg, err := config.Load(os.Getenv(EnvConfigFile))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log.Printf("starting TLS certificate inspector MCP server %s", version)

	// Create cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	s, err := NewServerBuilder().
		WithConfig(cfg).
		WithVersion(version).
		WithDefaultTools().
		WithDefaultResources().
		Build()
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	// Create stdio server to connect with our context
	stdioServer := server.NewStdioServer(s)

	// Start server with graceful shutdown support
	errChan := make(chan error, 1)
	go func() {
		errChan <- stdioServer.Listen(ctx, os.Stdin, os.Stdout)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		// Graceful shutdown triggered by signal
		log.Println("shutdown signal received")
		return fmt.Errorf("server shutdown: %w", ctx.Err())
	}
}
