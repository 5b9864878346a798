// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pempatch

import (
	"errors"
	"fmt"

	pembundle "github.com/H0llyW00dzZ/firmware-cert-patcher/src/internal/pem/bundle"
)

var (
	// ErrEmptySelection indicates an explicit empty index list. Selecting
	// zero targets for a patch run is treated as a caller mistake, not a
	// no-op success.
	ErrEmptySelection = errors.New("pempatch: empty selection, no bundle indices given")

	// ErrIndexOutOfRange indicates a requested bundle index, after negative
	// normalization, outside the discovered bundle count.
	ErrIndexOutOfRange = errors.New("pempatch: bundle index out of range")

	// ErrOversizeReplacement indicates replacement bytes longer than the
	// target range. Always fatal; the replacement is never truncated.
	ErrOversizeReplacement = errors.New("pempatch: replacement larger than original bundle")

	// ErrUndersizeReplacement indicates replacement bytes shorter than the
	// target range while strict mode is active.
	ErrUndersizeReplacement = errors.New("pempatch: replacement smaller than original bundle")
)

// Record describes one applied patch target for observability.
type Record struct {
	PlanIndex      int  `json:"planIndex"`
	Start          int  `json:"start"`
	End            int  `json:"end"`
	OriginalLen    int  `json:"originalLen"`
	ReplacementLen int  `json:"replacementLen"`
	Padded         bool `json:"padded"`
}

// ResolveSelection normalizes requested bundle indices against count.
//
// A nil requested list selects every bundle in scan order. Negative indices
// count from the end (-1 is the last bundle). Duplicates collapse to their
// first occurrence, and the result preserves the order in which indices were
// first requested, not scan order: [2,0] resolves to [2,0]. An explicit
// empty list fails with [ErrEmptySelection].
func ResolveSelection(count int, requested []int) ([]int, error) {
	if requested == nil {
		all := make([]int, count)
		for i := range all {
			all[i] = i
		}
		return all, nil
	}

	if len(requested) == 0 {
		return nil, ErrEmptySelection
	}

	// First-seen order is the contract, so track it explicitly instead of
	// sorting.
	resolved := make([]int, 0, len(requested))
	seen := make(map[int]bool, len(requested))

	for _, i := range requested {
		idx := i
		if idx < 0 {
			idx = count + idx
		}
		if idx < 0 || idx >= count {
			return nil, fmt.Errorf("%w: index %d with only %d bundle(s) present", ErrIndexOutOfRange, i, count)
		}
		if !seen[idx] {
			resolved = append(resolved, idx)
			seen[idx] = true
		}
	}

	return resolved, nil
}

// Patcher replaces bundle ranges in a blob with a supplied replacement,
// reconciling length differences. In strict mode an undersized replacement
// is rejected instead of NUL-padded.
type Patcher struct {
	Strict bool
}

// New creates a new Patcher with padding enabled (non-strict).
func New() *Patcher { return &Patcher{} }

// Patch returns a copy of blob with every target range replaced, plus one
// [Record] per applied target in plan order.
//
// Replacement is length-preserving: an oversized replacement fails with
// [ErrOversizeReplacement], an undersized one is padded with zero bytes up
// to the original length (or fails with [ErrUndersizeReplacement] in strict
// mode). Because no target ever changes the blob's length, the original
// offsets stay valid for every target regardless of processing order. On any
// failure no output blob is returned.
func (p *Patcher) Patch(blob []byte, targets []pembundle.Bundle, replacement []byte) ([]byte, []Record, error) {
	out := make([]byte, len(blob))
	copy(out, blob)

	records := make([]Record, 0, len(targets))
	for i, t := range targets {
		origLen := t.Len()
		newLen := len(replacement)

		if newLen > origLen {
			return nil, nil, fmt.Errorf("%w (target #%d): %d > %d bytes", ErrOversizeReplacement, i, newLen, origLen)
		}
		if newLen < origLen && p.Strict {
			return nil, nil, fmt.Errorf("%w (target #%d): %d < %d bytes", ErrUndersizeReplacement, i, newLen, origLen)
		}

		n := copy(out[t.Start:t.End], replacement)
		for j := t.Start + n; j < t.End; j++ {
			out[j] = 0
		}

		records = append(records, Record{
			PlanIndex:      i,
			Start:          t.Start,
			End:            t.End,
			OriginalLen:    origLen,
			ReplacementLen: newLen,
			Padded:         newLen < origLen,
		})
	}

	return out, records, nil
}
