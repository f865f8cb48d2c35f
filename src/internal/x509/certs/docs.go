// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509certs provides decoding for stored [X.509] certificates.
// It supports multiple formats including [PEM], DER, and [PKCS7], and reads
// per-domain leaf certificates from an ACME-style store directory. This
// package backs the local-store inspection mode.
//
// [X.509]: https://grokipedia.com/page/X.509
// [PKCS7]: https://grokipedia.com/page/PKCS_7
// [PEM]: https://grokipedia.com/page/PEM#privacy-enhanced-mail
package x509certs
