// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package collect

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Recognized server configuration sources.
const (
	ServerCPanel    = "cpanel"
	ServerISPConfig = "ISPconfig"
)

// DefaultUserDomainsPath is the cPanel domain-ownership table.
const DefaultUserDomainsPath = "/etc/userdomains"

// DefaultVHostCommand dumps the running web server's virtual-host list.
var DefaultVHostCommand = []string{"apachectl", "-S"}

var (
	// ErrUnknownServerType indicates a server source other than cpanel or ISPconfig.
	ErrUnknownServerType = errors.New("collect: unknown server type")

	// ErrNoSource indicates that none of the four domain sources was requested.
	ErrNoSource = errors.New("collect: no domain source requested")
)

// Config selects the domain sources for a single run. Any subset of the four
// sources may be set; their results are concatenated in field order.
// The zero value has no sources.
type Config struct {
	// Domain is a single domain given directly on the command line.
	Domain string

	// File is a flat file with one domain per line. Blank lines are skipped.
	File string

	// Server names a web-server configuration source: cpanel or ISPconfig.
	Server string

	// Location is a directory whose subdirectory names are domains,
	// mirroring the layout of an ACME client's certificate store.
	Location string

	// UserDomainsPath overrides the cPanel domain-ownership table path.
	// Empty means DefaultUserDomainsPath.
	UserDomainsPath string

	// VHostCommand overrides the ISPconfig virtual-host dump command.
	// Empty means DefaultVHostCommand.
	VHostCommand []string
}

// HasSource reports whether at least one domain source was requested.
func (c Config) HasSource() bool {
	return c.Domain != "" || c.File != "" || c.Server != "" || c.Location != ""
}

// Collector gathers an ordered list of raw domain tokens from the
// configured sources. Duplicates are permitted; blank lines are skipped.
type Collector struct {
	cfg Config
}

// New creates a Collector for the given configuration, applying defaults
// for the system collaborators.
func New(cfg Config) *Collector {
	if cfg.UserDomainsPath == "" {
		cfg.UserDomainsPath = DefaultUserDomainsPath
	}
	if len(cfg.VHostCommand) == 0 {
		cfg.VHostCommand = DefaultVHostCommand
	}
	return &Collector{cfg: cfg}
}

// Domains assembles the ordered domain list from all requested sources.
// Source order is fixed: literal argument, file, server configuration,
// store directory. A failing source aborts collection; ErrNoSource is
// returned when nothing was requested at all.
func (c *Collector) Domains(ctx context.Context) ([]string, error) {
	if !c.cfg.HasSource() {
		return nil, ErrNoSource
	}

	var domains []string

	if c.cfg.Domain != "" {
		domains = append(domains, c.cfg.Domain)
	}

	if c.cfg.File != "" {
		fromFile, err := c.fromFile()
		if err != nil {
			return nil, err
		}
		domains = append(domains, fromFile...)
	}

	if c.cfg.Server != "" {
		fromServer, err := c.fromServer(ctx)
		if err != nil {
			return nil, err
		}
		domains = append(domains, fromServer...)
	}

	if c.cfg.Location != "" {
		fromLocation, err := c.fromLocation()
		if err != nil {
			return nil, err
		}
		domains = append(domains, fromLocation...)
	}

	return domains, nil
}

// fromFile reads all non-blank lines of the configured domain list file.
func (c *Collector) fromFile() ([]string, error) {
	f, err := os.Open(c.cfg.File)
	if err != nil {
		return nil, fmt.Errorf("collect: failed to read domain file: %w", err)
	}
	defer f.Close()

	return scanLines(f)
}

// fromServer extracts domains from the named web-server configuration.
func (c *Collector) fromServer(ctx context.Context) ([]string, error) {
	switch c.cfg.Server {
	case ServerCPanel:
		f, err := os.Open(c.cfg.UserDomainsPath)
		if err != nil {
			return nil, fmt.Errorf("collect: failed to read cPanel domain table: %w", err)
		}
		defer f.Close()

		return parseUserDomains(f)
	case ServerISPConfig:
		cmd := exec.CommandContext(ctx, c.cfg.VHostCommand[0], c.cfg.VHostCommand[1:]...)
		out, err := cmd.Output()
		if err != nil {
			return nil, fmt.Errorf("collect: failed to run %q: %w", strings.Join(c.cfg.VHostCommand, " "), err)
		}

		return parseVHostDump(strings.NewReader(string(out)))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownServerType, c.cfg.Server)
	}
}

// fromLocation lists the subdirectories of the certificate store directory,
// one domain per subdirectory basename.
func (c *Collector) fromLocation() ([]string, error) {
	entries, err := os.ReadDir(c.cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("collect: failed to list certificate store: %w", err)
	}

	var domains []string
	for _, entry := range entries {
		if entry.IsDir() {
			domains = append(domains, entry.Name())
		}
	}

	return domains, nil
}

// scanLines collects all non-blank lines from r in order.
func scanLines(r io.Reader) ([]string, error) {
	var lines []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("collect: failed to scan input: %w", err)
	}

	return lines, nil
}

// parseUserDomains extracts domains from a cPanel domain-ownership table.
// Each line has the form "domain: user"; the first column is kept when it
// contains a dot, which filters out the catch-all "*" entry.
func parseUserDomains(r io.Reader) ([]string, error) {
	var domains []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		domain := strings.TrimSuffix(fields[0], ":")
		if strings.Contains(domain, ".") {
			domains = append(domains, domain)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("collect: failed to scan domain table: %w", err)
	}

	return domains, nil
}

// parseVHostDump extracts server names from an "apachectl -S" style
// virtual-host dump. The token following each "namevhost" keyword is a
// server name; repeated names (one per port) are deduplicated while
// preserving first-seen order.
func parseVHostDump(r io.Reader) ([]string, error) {
	var domains []string
	seen := make(map[string]struct{})

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		for i, field := range fields {
			if field != "namevhost" || i+1 >= len(fields) {
				continue
			}

			domain := fields[i+1]
			if _, ok := seen[domain]; ok {
				continue
			}
			seen[domain] = struct{}{}
			domains = append(domains, domain)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("collect: failed to scan vhost dump: %w", err)
	}

	return domains, nil
}
