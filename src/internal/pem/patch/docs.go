// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package pempatch resolves bundle selections and splices replacement bytes
// into the ranges found by the pembundle scanner. Replacement is strictly
// length-preserving: oversized replacements are rejected and undersized ones
// are NUL-padded (or rejected in strict mode), so patched offsets never
// drift and no re-scan is needed between targets.
package pempatch
