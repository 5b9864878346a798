// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/firmware-cert-patcher/src/internal/helper/gc"
	pembundle "github.com/H0llyW00dzZ/firmware-cert-patcher/src/internal/pem/bundle"
	pempatch "github.com/H0llyW00dzZ/firmware-cert-patcher/src/internal/pem/patch"
	x509certs "github.com/H0llyW00dzZ/firmware-cert-patcher/src/internal/x509/certs"
	"github.com/H0llyW00dzZ/firmware-cert-patcher/src/logger"
)

var (
	// ErrInputFileRequired indicates that no input binary was specified.
	ErrInputFileRequired = errors.New("cli: input file is required")

	// ErrCertFileRequired indicates that no replacement bundle was specified.
	ErrCertFileRequired = errors.New("cli: replacement certificate file is required")

	// ErrOutputFileRequired indicates that no output path was specified for a patch run.
	ErrOutputFileRequired = errors.New("cli: output file is required")

	// ErrInvalidIndexList indicates that --index could not be parsed as comma-separated integers.
	ErrInvalidIndexList = errors.New("cli: --index expects comma-separated integers")

	// ErrNoBundlesFound indicates that the input binary contains no certificate
	// bundles where patching was requested. Scanning an empty result is fine;
	// patching one is a caller precondition failure.
	ErrNoBundlesFound = errors.New("cli: no certificate bundles found in input binary")
)

var (
	inputFile  string
	certFile   string
	outputFile string
	indexList  string
	strictMode bool
	listOnly   bool
	jsonOutput bool
)

// OperationPerformed indicates whether a scan or patch operation ran.
// It is consumed by the cmd entrypoint for completion logging.
var OperationPerformed bool

// OperationPerformedSuccessfully indicates whether the operation finished
// without error. It is consumed by the cmd entrypoint for completion logging.
var OperationPerformedSuccessfully bool

// Execute runs the root command and returns any error that occurs during
// execution. The context cancels long patch runs when the caller receives a
// termination signal.
func Execute(ctx context.Context, version string, log logger.Logger) error {
	OperationPerformed = false
	OperationPerformedSuccessfully = false

	rootCmd := &cobra.Command{
		Use:           "firmware-cert-patcher",
		Short:         "Patch embedded PEM certificate bundle(s) in a binary",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execCli(cmd, log)
		},
	}

	rootCmd.Flags().StringVarP(&inputFile, "input", "i", "", "path to original binary")
	rootCmd.Flags().StringVarP(&certFile, "certs", "c", "", "path to replacement PEM bundle (PEM, DER, or PKCS7)")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "path for patched binary")
	rootCmd.Flags().StringVar(&indexList, "index", "", "comma-separated bundle numbers to patch (default: all)")
	rootCmd.Flags().BoolVar(&strictMode, "strict", false, "abort if replacement is shorter than original (no NUL-padding)")
	rootCmd.Flags().BoolVarP(&listOnly, "list", "l", false, "scan and report bundles without patching")
	rootCmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "emit scan report and patch records as JSON")

	return rootCmd.ExecuteContext(ctx)
}

// execCli reads the input binary, scans it for embedded certificate bundles,
// and either reports them (--list) or patches the selected bundles with the
// replacement and writes the result to the output file.
func execCli(cmd *cobra.Command, log logger.Logger) error {
	if inputFile == "" {
		return ErrInputFileRequired
	}

	blob, err := readFile(inputFile)
	if err != nil {
		return fmt.Errorf("error reading input file: %w", err)
	}

	scanner := pembundle.New()
	bundles, err := scanner.Scan(blob)
	if err != nil {
		return err
	}

	if listOnly {
		return reportScan(scanner, blob, bundles, log)
	}

	if certFile == "" {
		return ErrCertFileRequired
	}
	if outputFile == "" {
		return ErrOutputFileRequired
	}
	if len(bundles) == 0 {
		return ErrNoBundlesFound
	}

	replacement, err := readFile(certFile)
	if err != nil {
		return fmt.Errorf("error reading replacement bundle: %w", err)
	}

	// A replacement supplied as DER or PKCS7 is converted to PEM first;
	// PEM input passes through untouched.
	replacement, err = x509certs.New().NormalizePEM(replacement)
	if err != nil {
		return err
	}

	// nil means "all bundles"; an explicit empty --index is surfaced as an
	// error by ResolveSelection.
	var requested []int
	if cmd.Flags().Changed("index") {
		if requested, err = parseIndices(indexList); err != nil {
			return err
		}
		if requested == nil {
			requested = []int{}
		}
	}

	indices, err := pempatch.ResolveSelection(len(bundles), requested)
	if err != nil {
		return err
	}

	targets := make([]pembundle.Bundle, len(indices))
	for i, idx := range indices {
		targets[i] = bundles[idx]
	}

	select {
	case <-cmd.Context().Done():
		return cmd.Context().Err()
	default:
	}

	patcher := pempatch.New()
	patcher.Strict = strictMode

	OperationPerformed = true

	out, records, err := patcher.Patch(blob, targets, replacement)
	if err != nil {
		return err
	}

	// In --json mode stdout carries the patch records, so progress moves to
	// stderr as JSON lines to stay machine-readable end to end.
	progress := log
	if jsonOutput {
		progress = logger.NewJSONLogger(os.Stderr)
	}

	for _, r := range records {
		progress.Printf("Patched bundle #%d @0x%X-0x%X with %d bytes (kept %d, padded: %t)",
			r.PlanIndex, r.Start, r.End, r.ReplacementLen, r.OriginalLen, r.Padded)
	}

	if err = os.WriteFile(outputFile, out, 0644); err != nil {
		return fmt.Errorf("error writing to output file: %w", err)
	}

	if jsonOutput {
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	}

	progress.Printf("%s written: %d of %d bundle(s) patched", outputFile, len(records), len(bundles))

	OperationPerformedSuccessfully = true
	return nil
}

// reportScan prints the scan result without touching the blob.
// Zero bundles is a valid scan outcome here, unlike in a patch run.
func reportScan(scanner *pembundle.Scanner, blob []byte, bundles []pembundle.Bundle, log logger.Logger) error {
	OperationPerformed = true

	if jsonOutput {
		data, err := scanner.ToScanJSON(blob, bundles)
		if err != nil {
			return err
		}
		log.Println(string(data))
	} else {
		log.Println(scanner.RenderTable(blob, bundles))
	}

	OperationPerformedSuccessfully = true
	return nil
}

// readFile reads path into a freshly allocated slice, using the shared
// buffer pool for the read itself. The returned slice is owned by the
// caller and survives the buffer's return to the pool.
func readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	if _, err = buf.ReadFrom(file); err != nil {
		return nil, err
	}

	data := make([]byte, buf.Len())
	copy(data, buf.Bytes())
	return data, nil
}

// parseIndices parses a comma-separated index list. Empty tokens are
// skipped, so "0,,2" and "0, 2" both parse to [0 2]. An all-empty string
// yields a nil slice; the caller decides what an empty selection means.
func parseIndices(s string) ([]int, error) {
	var out []int
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidIndexList, tok)
		}
		out = append(out, n)
	}
	return out, nil
}
