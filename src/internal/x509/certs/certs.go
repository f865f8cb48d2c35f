// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"crypto/x509"
	"encoding/pem"
	"errors"

	"github.com/cloudflare/cfssl/crypto/pkcs7"
)

var (
	// ErrInvalidBlockType indicates that a PEM block is not a certificate block.
	ErrInvalidBlockType = errors.New("x509certs: invalid block type")

	// ErrParseCertificate indicates a failure to parse the certificate from the provided data.
	ErrParseCertificate = errors.New("x509certs: failed to parse certificate")

	// ErrParsePKCS7 indicates a failure to parse PKCS7 formatted data.
	ErrParsePKCS7 = errors.New("x509certs: failed to parse PKCS7 data")

	// ErrNoCertificates indicates that the data contained no certificates at all.
	ErrNoCertificates = errors.New("x509certs: no certificates found")
)

// Loader decodes stored [X.509] certificate material in the formats an ACME
// client leaves on disk: PEM (single certificate or fullchain bundle), raw
// DER, and PKCS7.
//
// [X.509]: https://en.wikipedia.org/wiki/X.509
type Loader struct {
	certBlockType string
}

// NewLoader creates a Loader with default settings.
func NewLoader() *Loader {
	return &Loader{
		certBlockType: "CERTIFICATE",
	}
}

// IsPEM checks if the data is in PEM format.
func (l *Loader) IsPEM(data []byte) bool {
	block, _ := pem.Decode(data)
	return block != nil
}

// DecodeLeaf decodes the leaf certificate from data. For PEM bundles the
// first certificate block is the leaf (the fullchain layout); DER data is
// tried as a plain certificate first and as PKCS7 second.
func (l *Loader) DecodeLeaf(data []byte) (*x509.Certificate, error) {
	if l.IsPEM(data) {
		block, _ := pem.Decode(data)
		if block.Type != l.certBlockType {
			return nil, ErrInvalidBlockType
		}

		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, ErrParseCertificate
		}
		return cert, nil
	}

	if cert, err := x509.ParseCertificate(data); err == nil {
		return cert, nil
	}

	// Attempt to parse as PKCS7 using Cloudflare's library
	p, err := pkcs7.ParsePKCS7(data)
	if err != nil {
		return nil, ErrParsePKCS7
	}
	if len(p.Content.SignedData.Certificates) == 0 {
		return nil, ErrNoCertificates
	}

	return p.Content.SignedData.Certificates[0], nil
}

// DecodeAll decodes every certificate in data, in order.
func (l *Loader) DecodeAll(data []byte) ([]*x509.Certificate, error) {
	if !l.IsPEM(data) {
		certs, err := x509.ParseCertificates(data)
		if err != nil {
			return nil, ErrParseCertificate
		}
		if len(certs) == 0 {
			return nil, ErrNoCertificates
		}
		return certs, nil
	}

	var certs []*x509.Certificate
	for len(data) > 0 {
		block, rest := pem.Decode(data)
		if block == nil {
			break
		}
		if block.Type != l.certBlockType {
			return nil, ErrInvalidBlockType
		}

		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, ErrParseCertificate
		}

		certs = append(certs, cert)
		data = rest
	}

	if len(certs) == 0 {
		return nil, ErrNoCertificates
	}

	return certs, nil
}
