// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package update checks the embedded version against the published release
// version. It only reports; replacing the executable is left to the
// package manager.
package update
