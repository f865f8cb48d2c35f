// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/H0llyW00dzZ/tls-cert-inspector/src/internal/config"
	"github.com/H0llyW00dzZ/tls-cert-inspector/src/internal/inspect"
	"github.com/H0llyW00dzZ/tls-cert-inspector/src/logger"
	"github.com/mark3labs/mcp-go/mcp"
)

// recordPayload is the JSON shape the inspection tools return for each domain.
type recordPayload struct {
	Domain      string   `json:"domain"`
	IssuedTo    string   `json:"issuedTo"`
	Issuer      string   `json:"issuer"`
	ValidUntil  string   `json:"validUntil"`
	Problems    []string `json:"problems,omitempty"`
	NearRenewal bool     `json:"nearRenewal"`
}

// toPayload converts an inspection record into its JSON representation.
func toPayload(r inspect.Record) recordPayload {
	return recordPayload{
		Domain:      r.Domain,
		IssuedTo:    r.IssuedTo,
		Issuer:      r.Issuer,
		ValidUntil:  r.ExpiryString(),
		Problems:    r.Problems,
		NearRenewal: r.NeedsRenewal(),
	}
}

// newInspector builds an inspector from the tool arguments, falling back to
// the server configuration for any numeric argument left at zero.
func newInspector(request mcp.CallToolRequest, cfg *config.Config) *inspect.Inspector {
	port := request.GetInt("port", 0)
	if port <= 0 {
		port = cfg.Defaults.Port
	}
	warnDays := request.GetInt("warn_days", 0)
	if warnDays <= 0 {
		warnDays = cfg.Defaults.ExpireDays
	}

	return inspect.New(inspect.Config{
		Port:           port,
		Timeout:        time.Duration(cfg.Defaults.Timeout) * time.Second,
		RenewAlertDays: warnDays,
		DialAddr:       request.GetString("connect_to", ""),
	}, logger.NewDiscardLogger())
}

// splitDomains parses a comma-separated domain list, dropping empty entries.
func splitDomains(raw string) []string {
	var domains []string
	for _, domain := range strings.Split(raw, ",") {
		domain = strings.TrimSpace(domain)
		if domain != "" {
			domains = append(domains, domain)
		}
	}
	return domains
}

// handleInspectDomain inspects the certificate a single domain presents.
// It performs one TLS handshake, classifies the result, and returns the
// record as indented JSON.
//
// Parameters:
//   - ctx: Context for cancellation and timeout handling
//   - request: MCP tool call request containing the domain and options
//   - cfg: Server configuration supplying defaults for omitted options
//
// Returns:
//   - The tool execution result containing the inspection record
//   - An error if JSON encoding fails
func handleInspectDomain(ctx context.Context, request mcp.CallToolRequest, cfg *config.Config) (*mcp.CallToolResult, error) {
	domain, err := request.RequireString("domain")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("domain parameter required: %v", err)), nil
	}
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return mcp.NewToolResultError("domain parameter must not be empty"), nil
	}

	record := newInspector(request, cfg).Inspect(ctx, domain)

	out, err := json.MarshalIndent(toPayload(record), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode inspection result: %w", err)
	}
	return mcp.NewToolResultText(fmt.Sprintf("Certificate inspection for %s:\n\n%s", domain, out)), nil
}

// handleInspectDomains inspects the certificates of multiple domains in one
// call. Domains are inspected sequentially in the order given; a domain that
// cannot be reached is reported with the "no certificate found" issue rather
// than aborting the batch.
//
// Parameters:
//   - ctx: Context for cancellation and timeout handling
//   - request: MCP tool call request containing the domain list and options
//   - cfg: Server configuration supplying defaults for omitted options
//
// Returns:
//   - The tool execution result containing a summary line and the records
//   - An error if the batch was cancelled or JSON encoding fails
func handleInspectDomains(ctx context.Context, request mcp.CallToolRequest, cfg *config.Config) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("domains")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("domains parameter required: %v", err)), nil
	}
	domains := splitDomains(raw)
	if len(domains) == 0 {
		return mcp.NewToolResultError("domains parameter must contain at least one domain"), nil
	}

	records, err := newInspector(request, cfg).InspectAll(ctx, domains)
	if err != nil {
		return nil, fmt.Errorf("inspection aborted: %w", err)
	}

	payloads := make([]recordPayload, 0, len(records))
	flagged := 0
	for _, record := range records {
		if record.HasProblems() {
			flagged++
		}
		payloads = append(payloads, toPayload(record))
	}

	out, err := json.MarshalIndent(payloads, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode inspection results: %w", err)
	}
	summary := fmt.Sprintf("%d domain(s) inspected, %d with possible issues\n\n%s", len(records), flagged, out)
	return mcp.NewToolResultText(summary), nil
}

// handleListRenewals inspects the given domains and returns only the ones
// whose certificates expire within the warning window, one per line, in the
// order they were given.
//
// Parameters:
//   - ctx: Context for cancellation and timeout handling
//   - request: MCP tool call request containing the domain list and options
//   - cfg: Server configuration supplying defaults for omitted options
//
// Returns:
//   - The tool execution result listing the near-renewal domains
//   - An error if the batch was cancelled
func handleListRenewals(ctx context.Context, request mcp.CallToolRequest, cfg *config.Config) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("domains")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("domains parameter required: %v", err)), nil
	}
	domains := splitDomains(raw)
	if len(domains) == 0 {
		return mcp.NewToolResultError("domains parameter must contain at least one domain"), nil
	}

	records, err := newInspector(request, cfg).InspectAll(ctx, domains)
	if err != nil {
		return nil, fmt.Errorf("inspection aborted: %w", err)
	}

	var due []string
	for _, record := range records {
		if record.NeedsRenewal() {
			due = append(due, record.Domain)
		}
	}
	if len(due) == 0 {
		return mcp.NewToolResultText("No domains are near renewal."), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%d domain(s) near renewal:\n%s", len(due), strings.Join(due, "\n"))), nil
}
