// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package digest computes content digests of canonical Bencode
// encodings.
//
// BitTorrent v1 identifies a torrent by the SHA-1 of its bencoded
// "info" dictionary, so [SHA1] is always available even though it is
// no longer collision resistant. [SHA256] matches BitTorrent v2 and
// general tooling; [BLAKE3] and [BLAKE2b] are fast modern choices for
// content addressing.
//
// Digests are rendered and parsed as lowercase hex:
//
//	sum := digest.Sum(digest.SHA1, bencode.Encode(info))
//	fmt.Println(sum) // 2d4b7e...
package digest
