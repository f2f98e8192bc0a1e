// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package compression detects and removes the compression wrappers
// Bencode documents commonly arrive in, and applies them on output.
//
// Three framed formats are supported: zstd, LZ4 frame, and gzip. Each
// starts with a magic number, so [Detect] identifies the format from
// the first bytes alone. A Bencode value always starts with 'i', 'l',
// 'd', or an ASCII digit, none of which begins any of the magic
// numbers, so detection never mistakes a plain document for a
// compressed one.
//
//	plain, format, err := compression.Decompress(data)
//	packed, err := compression.Compress(plain, compression.Zstd)
package compression
