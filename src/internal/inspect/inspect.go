// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package inspect

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/H0llyW00dzZ/tls-cert-inspector/src/logger"
)

// ErrNoPeerCertificate indicates a handshake that produced no leaf certificate.
var ErrNoPeerCertificate = errors.New("inspect: no peer certificate presented")

// Config holds the inspection parameters for a run. It is built once from
// parsed arguments and passed by value; nothing mutates it afterwards.
type Config struct {
	// Port is the TLS port to connect to. Defaults to 443.
	Port int

	// Timeout bounds each domain's dial and handshake. Defaults to 10s.
	Timeout time.Duration

	// RenewAlertDays is the expiry warning threshold. A certificate that
	// will already have expired in RenewAlertDays days is flagged as near
	// its renewal date. Defaults to 30.
	RenewAlertDays int

	// DialAddr optionally overrides the dial target (host:port) while the
	// queried domain is still sent as the TLS server name. Used by tests
	// and for inspecting a domain served from a specific balancer address.
	DialAddr string
}

// withDefaults fills the zero fields of a Config.
func (c Config) withDefaults() Config {
	if c.Port == 0 {
		c.Port = 443
	}
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Second
	}
	if c.RenewAlertDays == 0 {
		c.RenewAlertDays = 30
	}
	return c
}

// Inspector performs one TLS handshake per domain and classifies the
// resulting leaf certificate. Inspections are sequential, independent and
// idempotent; one connection per domain, never reused.
type Inspector struct {
	cfg Config
	log logger.Logger

	// now is overridable for deterministic expiry tests.
	now func() time.Time
}

// New creates an Inspector. The logger receives per-domain diagnostics only;
// pass a discard logger to silence them.
func New(cfg Config, log logger.Logger) *Inspector {
	if log == nil {
		log = logger.NewDiscardLogger()
	}
	return &Inspector{
		cfg: cfg.withDefaults(),
		log: log,
		now: time.Now,
	}
}

// InspectAll inspects every domain in order. Domains are trimmed of
// surrounding whitespace and empties discarded; result ordering matches
// input ordering. Per-domain failures never abort the batch; only context
// cancellation does.
func (in *Inspector) InspectAll(ctx context.Context, domains []string) ([]Record, error) {
	var records []Record

	for _, domain := range domains {
		domain = strings.TrimSpace(domain)
		if domain == "" {
			continue
		}

		if err := ctx.Err(); err != nil {
			return records, err
		}

		records = append(records, in.Inspect(ctx, domain))
	}

	return records, nil
}

// Inspect fetches and classifies the leaf certificate for a single domain.
// A dial or handshake failure degrades to an absent certificate; it is
// reported in the record, never as an error.
func (in *Inspector) Inspect(ctx context.Context, domain string) Record {
	cert, err := in.fetchLeaf(ctx, domain)
	if err != nil {
		in.log.Printf("%s: %v", domain, err)
		return in.Classify(domain, nil)
	}

	return in.Classify(domain, cert)
}

// fetchLeaf opens one TLS connection to the domain with SNI set and returns
// the peer's leaf certificate. Verification is skipped deliberately: the
// inspector classifies certificates, it does not validate trust, and an
// expired or misissued leaf must still be retrievable.
func (in *Inspector) fetchLeaf(ctx context.Context, domain string) (*x509.Certificate, error) {
	addr := in.cfg.DialAddr
	if addr == "" {
		addr = net.JoinHostPort(domain, strconv.Itoa(in.cfg.Port))
	}

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: in.cfg.Timeout},
		Config: &tls.Config{
			ServerName:         domain,
			InsecureSkipVerify: true, //nolint:gosec // inspection must see invalid leaves
		},
	}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	state := conn.(*tls.Conn).ConnectionState()
	if len(state.PeerCertificates) == 0 {
		return nil, ErrNoPeerCertificate
	}

	return state.PeerCertificates[0], nil
}

// Classify builds the Record for a domain from its leaf certificate, or from
// nil when no certificate was retrievable. Matching is literal byte-for-byte:
// the subject CN first, then the SAN DNS entries verbatim. Wildcard names are
// not expanded, so a wildcard certificate matches only when the queried
// domain itself appears in the SAN list.
func (in *Inspector) Classify(domain string, cert *x509.Certificate) Record {
	record := Record{
		Domain:   domain,
		IssuedTo: Absent,
		Issuer:   Absent,
	}

	if cert == nil {
		record.Problems = append(record.Problems, ProblemNoCertificate)
		return record
	}

	record.HasCert = true
	record.Expiry = cert.NotAfter
	if cert.Subject.CommonName != "" {
		record.IssuedTo = cert.Subject.CommonName
	}
	if cert.Issuer.CommonName != "" {
		record.Issuer = cert.Issuer.CommonName
	}

	switch {
	case cert.Subject.CommonName == domain:
		// Exact match, nothing to flag.
	case slices.Contains(cert.DNSNames, domain):
		record.IssuedTo = domain + " (alt)"
	default:
		record.Problems = append(record.Problems, ProblemNameMismatch)
	}

	if in.now().Add(time.Duration(in.cfg.RenewAlertDays) * 24 * time.Hour).After(cert.NotAfter) {
		record.Problems = append(record.Problems, ProblemNearRenewal)
	}

	return record
}
