// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for the firmware certificate patcher.
// It implements a Cobra-based CLI that scans a binary for embedded PEM certificate
// bundles, reports them as a markdown table or JSON, and patches selected bundles
// with a replacement supplied in PEM, DER, or PKCS7 format. The package handles
// file I/O, context cancellation, and integrates with the logger package for
// progress output and error reporting.
package cli
