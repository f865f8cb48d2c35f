// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package inspect

import (
	"slices"
	"time"
)

// Problem tags accumulated during classification. These exact strings appear
// in the report's possible-issues column.
const (
	ProblemNoCertificate = "no certificate found"
	ProblemNameMismatch  = "possible name mismatch"
	ProblemNearRenewal   = "certificate near renewal date"
)

// Absent marks a field for which no certificate data was retrievable.
const Absent = "-"

// expiryFormat renders the certificate's notAfter instant in the report.
const expiryFormat = "2006-01-02 15:04:05 MST"

// Record is the inspection result for a single domain. One Record is created
// per domain per run; problems accumulate during its single classification
// pass and nothing mutates it afterwards.
type Record struct {
	// Domain is the queried (trimmed) domain name.
	Domain string

	// IssuedTo is the subject common name, or "<domain> (alt)" when the
	// domain matched via a Subject Alternative Name entry. Absent when no
	// certificate was retrievable or the subject carries no common name.
	IssuedTo string

	// Issuer is the CN component of the issuer distinguished name, Absent
	// when unknown.
	Issuer string

	// Expiry is the leaf certificate's notAfter instant. Only meaningful
	// when HasCert is set.
	Expiry time.Time

	// HasCert reports whether a leaf certificate was retrieved.
	HasCert bool

	// Problems is the ordered list of problem tags, possibly empty.
	Problems []string
}

// ExpiryString renders the expiry instant for the report, Absent when no
// certificate was retrieved.
func (r Record) ExpiryString() string {
	if !r.HasCert {
		return Absent
	}
	return r.Expiry.UTC().Format(expiryFormat)
}

// HasProblems reports whether any problem tag was recorded.
func (r Record) HasProblems() bool { return len(r.Problems) > 0 }

// NeedsRenewal reports whether the domain was flagged as near its renewal date.
func (r Record) NeedsRenewal() bool {
	return slices.Contains(r.Problems, ProblemNearRenewal)
}
