// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package metainfo extracts the fields of a BitTorrent v1 metainfo
// (.torrent) file from its decoded Bencode form.
//
// The info hash is the SHA-1 of the canonical encoding of the "info"
// dictionary. Because the bencode decoder rejects non-canonical
// integers and duplicate keys and re-sorts unsorted dictionaries,
// re-encoding the decoded dictionary reproduces the original bytes for
// every well-formed torrent.
//
// Extraction only: this package does not contact trackers or verify
// piece data.
package metainfo
