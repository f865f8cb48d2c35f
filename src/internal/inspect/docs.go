// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package inspect performs the per-domain certificate inspection: one TLS
// handshake with SNI, leaf certificate extraction, literal hostname matching
// against subject CN and SAN entries, and expiry classification against a
// configurable renewal threshold.
package inspect
