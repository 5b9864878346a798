// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package pembundle locates [PEM] certificate bundles embedded in arbitrary
// binary blobs such as firmware images. Adjacent certificate blocks separated
// only by ASCII whitespace are merged into one logical bundle, so a chained
// root store scans as a single addressable byte range. The package also
// renders scan reports as markdown tables and structured JSON.
//
// [PEM]: https://grokipedia.com/page/PEM#privacy-enhanced-mail
package pembundle
