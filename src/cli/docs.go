// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for the TLS certificate
// inspector. It implements a Cobra-based CLI that gathers domains from a
// positional argument, a flat file, a server configuration, or a certificate
// store directory, inspects the certificate each domain presents, and renders
// the results as a table, a renewal list, a problems-only table, or a
// per-domain command invocation. The package handles context cancellation and
// integrates with the logger package for debug output.
package cli
