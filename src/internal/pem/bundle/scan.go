// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pembundle

import (
	"bytes"
	"errors"
	"fmt"
)

const (
	// BeginMarker is the exact ASCII literal that opens a PEM certificate block.
	BeginMarker = "-----BEGIN CERTIFICATE-----"

	// EndMarker is the exact ASCII literal that closes a PEM certificate block.
	EndMarker = "-----END CERTIFICATE-----"
)

// ErrUnterminatedBundle indicates a BEGIN marker with no matching END marker
// anywhere after it in the blob. The scan aborts entirely; bundles discovered
// before the malformed region are not returned.
var ErrUnterminatedBundle = errors.New("pembundle: BEGIN marker without matching END marker")

// Bundle is a half-open byte range [Start, End) covering one logical
// certificate bundle: one or more back-to-back PEM certificate blocks
// merged across intervening ASCII whitespace.
type Bundle struct {
	Start int
	End   int
}

// Len returns the byte length of the bundle range.
func (b Bundle) Len() int { return b.End - b.Start }

// Scanner locates PEM certificate bundles embedded in a binary blob.
// It maintains internal configuration such as the marker literals.
type Scanner struct {
	begin []byte
	end   []byte
}

// New creates a new Scanner with the standard CERTIFICATE markers.
func New() *Scanner {
	return &Scanner{
		begin: []byte(BeginMarker),
		end:   []byte(EndMarker),
	}
}

// isWhitespace reports whether c is one of the four ASCII whitespace bytes
// recognized between chained certificate blocks. No other byte qualifies.
func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// Scan returns every Bundle in blob, in strictly increasing, non-overlapping
// offset order. Zero bundles is a valid empty result. The only failure mode
// is [ErrUnterminatedBundle].
func (s *Scanner) Scan(blob []byte) ([]Bundle, error) {
	var bundles []Bundle

	pos := 0
	for {
		b, ok, err := s.scanOne(blob, pos)
		if err != nil {
			return nil, err
		}
		if !ok {
			return bundles, nil
		}

		bundles = append(bundles, b)

		// Resuming at End keeps bundles non-overlapping by construction.
		pos = b.End
	}
}

// scanOne locates the bundle beginning at or after pos. Adjacent certificate
// blocks separated only by ASCII whitespace are merged into one bundle.
// The returned End includes the whitespace consumed while checking for a
// chained block. ok is false when no BEGIN marker remains.
func (s *Scanner) scanOne(blob []byte, pos int) (b Bundle, ok bool, err error) {
	start := bytes.Index(blob[pos:], s.begin)
	if start == -1 {
		return Bundle{}, false, nil
	}
	start += pos

	end := start
	for {
		next := bytes.Index(blob[end:], s.end)
		if next == -1 {
			return Bundle{}, false, fmt.Errorf("%w (BEGIN at offset %d)", ErrUnterminatedBundle, start)
		}
		end += next + len(s.end)

		// Eat trailing whitespace before looking for a chained block. The
		// order matters: checking for the next BEGIN first would change
		// merge boundaries.
		for end < len(blob) && isWhitespace(blob[end]) {
			end++
		}

		if bytes.HasPrefix(blob[end:], s.begin) {
			continue
		}
		return Bundle{Start: start, End: end}, true, nil
	}
}

// Blocks counts the certificate blocks physically contained in the bundle's
// range of blob. Used for scan reporting only.
func (s *Scanner) Blocks(blob []byte, b Bundle) int {
	return bytes.Count(blob[b.Start:b.End], s.begin)
}
