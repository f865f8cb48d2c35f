// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package update

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/H0llyW00dzZ/tls-cert-inspector/src/internal/helper/gc"
)

// DefaultEndpoint serves the latest released version string as plain text.
const DefaultEndpoint = "https://raw.githubusercontent.com/H0llyW00dzZ/tls-cert-inspector/master/VERSION"

// HTTPConfig holds HTTP client configuration for the version check.
type HTTPConfig struct {
	Timeout   time.Duration // HTTP request timeout
	Version   string        // Application version for User-Agent
	UserAgent string        // Custom User-Agent string, if empty will be constructed from Version

	mu     sync.Mutex
	client *http.Client
}

// NewHTTPConfig creates a new HTTP configuration with a default timeout of
// 10 seconds and the provided application version.
func NewHTTPConfig(version string) *HTTPConfig {
	return &HTTPConfig{
		Timeout: 10 * time.Second,
		Version: version,
	}
}

// GetUserAgent returns the User-Agent string, constructing it if not set.
func (c *HTTPConfig) GetUserAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	return fmt.Sprintf("TLS-Certificate-Inspector/%s (+https://github.com/H0llyW00dzZ/tls-cert-inspector)", c.Version)
}

// Client returns an HTTP client configured with the current timeout.
//
// Thread Safety: Safe for concurrent use.
func (c *HTTPConfig) Client() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		c.client = &http.Client{Timeout: c.Timeout}
		return c.client
	}

	if c.client.Timeout != c.Timeout {
		c.client.Timeout = c.Timeout
	}

	return c.client
}

// Result is the outcome of a version check.
type Result struct {
	Current   string
	Latest    string
	Available bool
}

// Checker compares the embedded version against the published one. It never
// rewrites the local executable; upgrading stays a packaging concern.
type Checker struct {
	Endpoint   string
	HTTPConfig *HTTPConfig
}

// New creates a Checker for the given embedded version.
func New(version string) *Checker {
	return &Checker{
		Endpoint:   DefaultEndpoint,
		HTTPConfig: NewHTTPConfig(version),
	}
}

// Check fetches the published version string and compares it against the
// embedded one.
func (c *Checker) Check(ctx context.Context) (Result, error) {
	result := Result{Current: c.HTTPConfig.Version}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint, nil)
	if err != nil {
		return result, fmt.Errorf("update: failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.HTTPConfig.GetUserAgent())

	resp, err := c.HTTPConfig.Client().Do(req)
	if err != nil {
		return result, fmt.Errorf("update: version check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return result, fmt.Errorf("update: version endpoint returned status %d", resp.StatusCode)
	}

	// Get a buffer from the pool
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()         // Reset the buffer to prevent data leaks
		gc.Default.Put(buf) // Return the buffer to the pool for reuse
	}()

	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return result, fmt.Errorf("update: failed to read version response: %w", err)
	}

	result.Latest = strings.TrimSpace(buf.String())
	result.Available = IsNewer(result.Latest, result.Current)

	return result, nil
}

// IsNewer reports whether candidate is a strictly newer version than current.
// Versions are dotted numeric strings with an optional "v" prefix; a
// non-numeric component compares as zero.
func IsNewer(candidate, current string) bool {
	candidateParts := strings.Split(strings.TrimPrefix(candidate, "v"), ".")
	currentParts := strings.Split(strings.TrimPrefix(current, "v"), ".")

	for i := range max(len(candidateParts), len(currentParts)) {
		a, b := 0, 0
		if i < len(candidateParts) {
			a, _ = strconv.Atoi(candidateParts[i])
		}
		if i < len(currentParts) {
			b, _ = strconv.Atoi(currentParts[i])
		}

		if a != b {
			return a > b
		}
	}

	return false
}
