// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
// Use of this source code is governed by a BSD 3-Clause
// license that can be found in the LICENSE file.

// tls-cert-inspector is a command-line tool for inspecting the TLS
// certificates a set of domains presents and spotting the ones that need
// attention.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/tls-cert-inspector/cmd/tls-cert-inspector@latest
//
// # Usage
//
//	tls-cert-inspector [DOMAIN] [FLAGS]
//
// # Flags
//
//	-f, --file      Read domains from a file, one per line
//	-s, --server    Read domains from the server config (cpanel or ISPconfig)
//	-l, --location  Read domains from the subdirectory names of a directory
//	-e, --expires   Flag certificates expiring within this many days (default: 30)
//	-r, --renew     Print only the domains that are near renewal
//	-p, --problems  Print only the domains with possible issues
//	-c, --command   Run a command with each near-renewal domain as its argument
//	-d, --debug     Print debug output to stderr
//	-u, --upgrade   Check whether a newer release is available
//	    --local     Read certificates from the --location directory instead of connecting out
//	    --port      TLS port to connect to (default: 443)
//	    --timeout   Per-domain connection timeout (default: 10s)
//	    --config    Path to a JSON or YAML defaults file
//
// # Examples
//
// Inspect a single domain:
//
//	tls-cert-inspector example.com
//
// Inspect every domain listed in a file and show only the problems:
//
//	tls-cert-inspector -f domains.txt -p
//
// List the domains on a cpanel server whose certificates expire within two weeks:
//
//	tls-cert-inspector -s cpanel -e 14 -r
//
// Renew every near-renewal certificate under an ACME live directory:
//
//	tls-cert-inspector -l /etc/letsencrypt/live -c ./renew.sh
package main
