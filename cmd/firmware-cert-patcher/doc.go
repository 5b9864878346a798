// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
// Use of this source code is governed by a BSD 3-Clause
// license that can be found in the LICENSE file.

// firmware-cert-patcher is a command-line tool for locating PEM-encoded
// certificate bundles embedded in a binary blob (such as a firmware image)
// and replacing them with a user-supplied bundle.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/firmware-cert-patcher/cmd/firmware-cert-patcher@latest
//
// # Usage
//
//	firmware-cert-patcher -i INPUT_BINARY [FLAGS]
//
// # Flags
//
//	-i, --input   Path to original binary [required]
//	-c, --certs   Path to replacement bundle (PEM, DER, or PKCS7)
//	-o, --output  Path for patched binary
//	    --index   Comma-separated bundle numbers to patch (default: all,
//	              negatives count from the end)
//	    --strict  Abort if replacement is shorter than original (no NUL-padding)
//	-l, --list    Scan and report bundles without patching
//	-j, --json    Emit scan report and patch records as JSON
//
// # Examples
//
// Patch every bundle in a firmware image:
//
//	firmware-cert-patcher -i firmware.bin -c new_roots.pem -o patched.bin
//
// Patch only the first and third bundles:
//
//	firmware-cert-patcher -i firmware.bin -c new.pem -o out.bin --index 0,2
//
// Replace the last bundle, rejecting a shorter replacement:
//
//	firmware-cert-patcher -i firmware.bin -c new.pem -o out.bin --index -1 --strict
//
// List the bundles in an image as a markdown table:
//
//	firmware-cert-patcher -i firmware.bin --list
//
// Produce a JSON scan report:
//
//	firmware-cert-patcher -i firmware.bin --list --json > report.json
package main
