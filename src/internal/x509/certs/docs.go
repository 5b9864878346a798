// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509certs normalizes replacement certificate input for the bundle
// patcher. It accepts [PEM], DER, and [PKCS7] input and always hands the
// patcher a PEM-encoded byte sequence, since only PEM can be spliced into a
// firmware blob in place of an embedded PEM bundle.
//
// [PKCS7]: https://grokipedia.com/page/PKCS_7
// [PEM]: https://grokipedia.com/page/PEM#privacy-enhanced-mail
package x509certs
