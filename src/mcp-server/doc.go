// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package mcpserver provides the [MCP] server framework for [X509] certificate
// inspection. It implements the Model Context Protocol ([MCP]) server with
// tools for inspecting the certificates domains present over TLS, including
// single-domain inspection, batch inspection, and renewal listing.
// The package uses a builder pattern for server construction.
//
// [X509]: https://grokipedia.com/page/X.509
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
package mcpserver
