// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package report renders inspection results: the full aligned table, the
// problems-only table, the pipeable renewal list, and the per-domain
// renewal command mode.
package report
