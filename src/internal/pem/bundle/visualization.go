// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pembundle

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// RenderTable renders the scan result as a formatted markdown table.
//
// It displays each bundle's index, byte offsets, length, and the number of
// certificate blocks merged into it, in a tabular format using tablewriter.
//
// Parameters:
//   - blob: The scanned blob, used to count blocks per bundle
//   - bundles: Scan result in scan order
//
// Returns:
//   - string: Markdown table representation of the scan result
func (s *Scanner) RenderTable(blob []byte, bundles []Bundle) string {
	if len(bundles) == 0 {
		return "No certificate bundles found"
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)

	// Headers with emojis
	headers := []string{"🔢 #", "📍 Start", "📍 End", "📏 Length", "📜 Blocks"}
	table.Header(headers)

	// Prepare rows
	var rows [][]string
	for i, b := range bundles {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("0x%X", b.Start),
			fmt.Sprintf("0x%X", b.End),
			fmt.Sprintf("%d", b.Len()),
			fmt.Sprintf("%d", s.Blocks(blob, b)),
		})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}

// ToScanJSON converts the scan result to structured JSON for external tools.
//
// Parameters:
//   - blob: The scanned blob, used to count blocks per bundle
//   - bundles: Scan result in scan order
//
// Returns:
//   - []byte: JSON representation of the scan result
//   - error: Error if JSON marshaling fails
func (s *Scanner) ToScanJSON(blob []byte, bundles []Bundle) ([]byte, error) {
	type BundleVizData struct {
		Index  int `json:"index"`
		Start  int `json:"start"`
		End    int `json:"end"`
		Length int `json:"length"`
		Blocks int `json:"blocks"`
	}

	type ScanData struct {
		Timestamp   string          `json:"timestamp"`
		BlobLength  int             `json:"blobLength"`
		BundleCount int             `json:"bundleCount"`
		Bundles     []BundleVizData `json:"bundles"`
	}

	data := ScanData{
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		BlobLength:  len(blob),
		BundleCount: len(bundles),
		Bundles:     make([]BundleVizData, len(bundles)),
	}

	for i, b := range bundles {
		data.Bundles[i] = BundleVizData{
			Index:  i,
			Start:  b.Start,
			End:    b.End,
			Length: b.Len(),
			Blocks: s.Blocks(blob, b),
		}
	}

	return json.MarshalIndent(data, "", "  ")
}
