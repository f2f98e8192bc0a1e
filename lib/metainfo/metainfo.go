// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package metainfo

import (
	"errors"
	"fmt"
	"time"

	"github.com/bureau-foundation/bencode/lib/bencode"
	"github.com/bureau-foundation/bencode/lib/digest"
)

// PieceHashSize is the length of one SHA-1 piece hash inside the
// "pieces" string.
const PieceHashSize = 20

var (
	// ErrMissingField is returned when a required field is absent.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidField is returned when a field is present with the
	// right type but an unusable value.
	ErrInvalidField = errors.New("invalid field")
)

// MetaInfo is the decoded content of a .torrent file.
type MetaInfo struct {
	Announce     string     `json:"announce,omitempty"`
	AnnounceList [][]string `json:"announce_list,omitempty"`
	Comment      string     `json:"comment,omitempty"`
	CreatedBy    string     `json:"created_by,omitempty"`
	// CreationDate is the zero time when the field is absent.
	CreationDate time.Time     `json:"creation_date,omitzero"`
	Info         Info          `json:"info"`
	InfoHash     digest.Digest `json:"info_hash"`
}

// Info is the "info" dictionary: the part covered by the info hash.
type Info struct {
	Name        string `json:"name"`
	PieceLength int64  `json:"piece_length"`
	// Pieces holds one SHA-1 digest per piece.
	Pieces  []digest.Digest `json:"pieces"`
	Private bool            `json:"private,omitempty"`
	// Length is set for single-file torrents. Files is set for
	// multi-file torrents. Exactly one of the two is present.
	Length int64  `json:"length,omitempty"`
	Files  []File `json:"files,omitempty"`
}

// File is one entry of a multi-file torrent.
type File struct {
	Length int64    `json:"length"`
	Path   []string `json:"path"`
}

// IsMultiFile reports whether the torrent lists individual files.
func (info Info) IsMultiFile() bool {
	return info.Files != nil
}

// TotalLength returns the total content size in bytes.
func (info Info) TotalLength() int64 {
	if !info.IsMultiFile() {
		return info.Length
	}
	var total int64
	for _, file := range info.Files {
		total += file.Length
	}
	return total
}

// Parse decodes data and extracts its metainfo fields.
func Parse(data []byte) (*MetaInfo, error) {
	value, err := bencode.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("metainfo: %w", err)
	}
	return FromValue(value)
}

// FromValue extracts metainfo fields from an already decoded value.
func FromValue(value bencode.Value) (*MetaInfo, error) {
	root, err := value.Dict()
	if err != nil {
		return nil, fmt.Errorf("metainfo: top level: %w", err)
	}

	infoValue, ok := root.Get("info")
	if !ok {
		return nil, fmt.Errorf("metainfo: info: %w", ErrMissingField)
	}
	info, err := parseInfo(infoValue)
	if err != nil {
		return nil, err
	}

	result := &MetaInfo{
		Info:     info,
		InfoHash: digest.Sum(digest.SHA1, bencode.Encode(infoValue)),
	}
	if result.Announce, err = optionalString(root, "announce", "announce"); err != nil {
		return nil, err
	}
	if result.Comment, err = optionalString(root, "comment", "comment"); err != nil {
		return nil, err
	}
	if result.CreatedBy, err = optionalString(root, "created by", "created by"); err != nil {
		return nil, err
	}
	if result.AnnounceList, err = parseAnnounceList(root); err != nil {
		return nil, err
	}
	if created, ok := root.Get("creation date"); ok {
		seconds, err := created.Int()
		if err != nil {
			return nil, fmt.Errorf("metainfo: creation date: %w", err)
		}
		result.CreationDate = time.Unix(seconds, 0).UTC()
	}
	return result, nil
}

func parseInfo(value bencode.Value) (Info, error) {
	dict, err := value.Dict()
	if err != nil {
		return Info{}, fmt.Errorf("metainfo: info: %w", err)
	}

	var info Info
	if info.Name, err = requireString(dict, "name", "info.name"); err != nil {
		return Info{}, err
	}
	if info.PieceLength, err = requireInt(dict, "piece length", "info.piece length"); err != nil {
		return Info{}, err
	}
	if info.PieceLength <= 0 {
		return Info{}, fmt.Errorf("metainfo: info.piece length: %w: %d is not positive", ErrInvalidField, info.PieceLength)
	}

	pieces, err := requireString(dict, "pieces", "info.pieces")
	if err != nil {
		return Info{}, err
	}
	if len(pieces)%PieceHashSize != 0 {
		return Info{}, fmt.Errorf("metainfo: info.pieces: %w: length %d is not a multiple of %d",
			ErrInvalidField, len(pieces), PieceHashSize)
	}
	info.Pieces = make([]digest.Digest, 0, len(pieces)/PieceHashSize)
	for offset := 0; offset < len(pieces); offset += PieceHashSize {
		info.Pieces = append(info.Pieces, digest.Digest{
			Algorithm: digest.SHA1,
			Sum:       []byte(pieces[offset : offset+PieceHashSize]),
		})
	}

	if private, ok := dict.Get("private"); ok {
		flag, err := private.Int()
		if err != nil {
			return Info{}, fmt.Errorf("metainfo: info.private: %w", err)
		}
		info.Private = flag == 1
	}

	lengthValue, hasLength := dict.Get("length")
	filesValue, hasFiles := dict.Get("files")
	switch {
	case hasLength && hasFiles:
		return Info{}, fmt.Errorf("metainfo: info: %w: both length and files are present", ErrInvalidField)
	case hasLength:
		if info.Length, err = lengthValue.Int(); err != nil {
			return Info{}, fmt.Errorf("metainfo: info.length: %w", err)
		}
		if info.Length < 0 {
			return Info{}, fmt.Errorf("metainfo: info.length: %w: %d is negative", ErrInvalidField, info.Length)
		}
	case hasFiles:
		if info.Files, err = parseFiles(filesValue); err != nil {
			return Info{}, err
		}
	default:
		return Info{}, fmt.Errorf("metainfo: info.length: %w (and no info.files)", ErrMissingField)
	}
	return info, nil
}

func parseFiles(value bencode.Value) ([]File, error) {
	items, err := value.List()
	if err != nil {
		return nil, fmt.Errorf("metainfo: info.files: %w", err)
	}
	files := make([]File, 0, len(items))
	for index, item := range items {
		path := fmt.Sprintf("info.files[%d]", index)
		dict, err := item.Dict()
		if err != nil {
			return nil, fmt.Errorf("metainfo: %s: %w", path, err)
		}
		length, err := requireInt(dict, "length", path+".length")
		if err != nil {
			return nil, err
		}
		if length < 0 {
			return nil, fmt.Errorf("metainfo: %s.length: %w: %d is negative", path, ErrInvalidField, length)
		}
		segments, err := requireStringList(dict, "path", path+".path")
		if err != nil {
			return nil, err
		}
		if len(segments) == 0 {
			return nil, fmt.Errorf("metainfo: %s.path: %w: empty path", path, ErrInvalidField)
		}
		files = append(files, File{Length: length, Path: segments})
	}
	return files, nil
}

func parseAnnounceList(root bencode.Dict) ([][]string, error) {
	value, ok := root.Get("announce-list")
	if !ok {
		return nil, nil
	}
	tiers, err := value.List()
	if err != nil {
		return nil, fmt.Errorf("metainfo: announce-list: %w", err)
	}
	result := make([][]string, 0, len(tiers))
	for index, tier := range tiers {
		urls, err := stringList(tier, fmt.Sprintf("announce-list[%d]", index))
		if err != nil {
			return nil, err
		}
		result = append(result, urls)
	}
	return result, nil
}

func requireString(dict bencode.Dict, key, path string) (string, error) {
	value, ok := dict.Get(key)
	if !ok {
		return "", fmt.Errorf("metainfo: %s: %w", path, ErrMissingField)
	}
	s, err := value.Str()
	if err != nil {
		return "", fmt.Errorf("metainfo: %s: %w", path, err)
	}
	return s, nil
}

func optionalString(dict bencode.Dict, key, path string) (string, error) {
	if _, ok := dict.Get(key); !ok {
		return "", nil
	}
	return requireString(dict, key, path)
}

func requireInt(dict bencode.Dict, key, path string) (int64, error) {
	value, ok := dict.Get(key)
	if !ok {
		return 0, fmt.Errorf("metainfo: %s: %w", path, ErrMissingField)
	}
	n, err := value.Int()
	if err != nil {
		return 0, fmt.Errorf("metainfo: %s: %w", path, err)
	}
	return n, nil
}

func requireStringList(dict bencode.Dict, key, path string) ([]string, error) {
	value, ok := dict.Get(key)
	if !ok {
		return nil, fmt.Errorf("metainfo: %s: %w", path, ErrMissingField)
	}
	return stringList(value, path)
}

func stringList(value bencode.Value, path string) ([]string, error) {
	items, err := value.List()
	if err != nil {
		return nil, fmt.Errorf("metainfo: %s: %w", path, err)
	}
	result := make([]string, len(items))
	for index, item := range items {
		s, err := item.Str()
		if err != nil {
			return nil, fmt.Errorf("metainfo: %s[%d]: %w", path, index, err)
		}
		result[index] = s
	}
	return result, nil
}
