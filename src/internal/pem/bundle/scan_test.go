// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pembundle_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pembundle "github.com/H0llyW00dzZ/firmware-cert-patcher/src/internal/pem/bundle"
)

// certBlock is a syntactically complete PEM certificate block. The scanner
// never parses the base64 payload, so a short stand-in is enough.
const certBlock = "-----BEGIN CERTIFICATE-----\n" +
	"MIIBszCCAVmgAwIBAgIUQvMHfakefakefakefakefakefake\n" +
	"-----END CERTIFICATE-----"

func TestScan(t *testing.T) {
	tests := []struct {
		name     string
		blob     string
		testFunc func(t *testing.T, blob []byte, bundles []pembundle.Bundle, err error)
	}{
		{
			name: "Empty Blob",
			blob: "",
			testFunc: func(t *testing.T, _ []byte, bundles []pembundle.Bundle, err error) {
				require.NoError(t, err)
				assert.Empty(t, bundles, "expected no bundles in empty blob")
			},
		},
		{
			name: "No Markers",
			blob: "\x00\x01firmware image without certificates\xff\xfe",
			testFunc: func(t *testing.T, _ []byte, bundles []pembundle.Bundle, err error) {
				require.NoError(t, err)
				assert.Empty(t, bundles, "expected no bundles without BEGIN markers")
			},
		},
		{
			name: "Single Bundle Offsets",
			blob: "\x00\x01\x02" + certBlock + "\x03\x04",
			testFunc: func(t *testing.T, blob []byte, bundles []pembundle.Bundle, err error) {
				require.NoError(t, err)
				require.Len(t, bundles, 1)

				assert.Equal(t, 3, bundles[0].Start, "expected bundle to start at the BEGIN marker")
				assert.Equal(t, 3+len(certBlock), bundles[0].End, "expected bundle to end right after the END marker")
				assert.Equal(t, certBlock, string(blob[bundles[0].Start:bundles[0].End]))
			},
		},
		{
			name: "Trailing Whitespace Consumed At End Of Blob",
			blob: certBlock + "\r\n  \t",
			testFunc: func(t *testing.T, blob []byte, bundles []pembundle.Bundle, err error) {
				require.NoError(t, err)
				require.Len(t, bundles, 1)

				assert.Equal(t, len(blob), bundles[0].End, "expected trailing whitespace to be absorbed")
			},
		},
		{
			name: "Adjacent Blocks Merge Into One Bundle",
			blob: "junk" + certBlock + "\n\n" + certBlock + "junk",
			testFunc: func(t *testing.T, _ []byte, bundles []pembundle.Bundle, err error) {
				require.NoError(t, err)
				require.Len(t, bundles, 1, "whitespace-separated blocks should merge")

				assert.Equal(t, 4, bundles[0].Start)
				assert.Equal(t, 4+2*len(certBlock)+2, bundles[0].End)
			},
		},
		{
			name: "Three Chained Blocks Merge Into One Bundle",
			blob: certBlock + " \t\r\n" + certBlock + "\n" + certBlock,
			testFunc: func(t *testing.T, blob []byte, bundles []pembundle.Bundle, err error) {
				require.NoError(t, err)
				require.Len(t, bundles, 1)

				assert.Equal(t, 0, bundles[0].Start)
				assert.Equal(t, len(blob), bundles[0].End)
			},
		},
		{
			name: "Non-Whitespace Gap Splits Bundles",
			blob: certBlock + "\n\nX\n\n" + certBlock,
			testFunc: func(t *testing.T, _ []byte, bundles []pembundle.Bundle, err error) {
				require.NoError(t, err)
				assert.Len(t, bundles, 2, "a stray non-whitespace byte must terminate the bundle")
			},
		},
		{
			name: "NUL Gap Splits Bundles",
			blob: certBlock + "\x00" + certBlock,
			testFunc: func(t *testing.T, _ []byte, bundles []pembundle.Bundle, err error) {
				require.NoError(t, err)
				assert.Len(t, bundles, 2, "NUL is not merge whitespace")
			},
		},
		{
			name: "Unterminated Bundle",
			blob: certBlock + "\x00\x00-----BEGIN CERTIFICATE-----\ntruncated",
			testFunc: func(t *testing.T, _ []byte, bundles []pembundle.Bundle, err error) {
				assert.ErrorIs(t, err, pembundle.ErrUnterminatedBundle)
				assert.Nil(t, bundles, "no partial bundle list on malformed input")
			},
		},
		{
			name: "Multiple Bundles In Scan Order",
			blob: "\x7fELF" + certBlock + strings.Repeat("\x00", 64) + certBlock + "\xde\xad" + certBlock,
			testFunc: func(t *testing.T, blob []byte, bundles []pembundle.Bundle, err error) {
				require.NoError(t, err)
				require.Len(t, bundles, 3)

				for i, b := range bundles {
					assert.Less(t, b.Start, b.End, "bundle %d must be a non-empty range", i)
					if i > 0 {
						assert.GreaterOrEqual(t, b.Start, bundles[i-1].End,
							"bundle %d must not overlap its predecessor", i)
					}
					assert.True(t, bytes.HasPrefix(blob[b.Start:], []byte(pembundle.BeginMarker)),
						"bundle %d must start at a BEGIN marker", i)
				}
			},
		},
	}

	scanner := pembundle.New()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bundles, err := scanner.Scan([]byte(tt.blob))
			tt.testFunc(t, []byte(tt.blob), bundles, err)
		})
	}
}

func TestBundleLen(t *testing.T) {
	b := pembundle.Bundle{Start: 10, End: 110}
	assert.Equal(t, 100, b.Len())
}

func TestBlocks(t *testing.T) {
	blob := []byte(certBlock + "\n\n" + certBlock)

	scanner := pembundle.New()
	bundles, err := scanner.Scan(blob)
	require.NoError(t, err)
	require.Len(t, bundles, 1)

	assert.Equal(t, 2, scanner.Blocks(blob, bundles[0]), "merged bundle should report both blocks")
}
