// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package collect assembles the ordered list of domains to inspect from up to
// four sources: a literal argument, a flat file, a web-server configuration
// (cPanel or ISPconfig), and a directory of per-domain certificate stores.
package collect
