// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"fmt"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/granttag/core"
)

// grantFormatVersion prefixes every encoded grant.
const grantFormatVersion byte = 1

// MarshalGrant serializes a Grant to bytes.
func MarshalGrant(grant *core.Grant) []byte {
	size := 1 + ord.String.Size(grant.Name) + ord.String.Size(grant.Description) +
		stringsSize(grant.Tags) + stringsSize(grant.WebsiteURLs) + stringsSize(grant.DocumentURLs)

	buf := make([]byte, size)
	buf[0] = grantFormatVersion
	n := 1
	n += ord.String.Marshal(grant.Name, buf[n:])
	n += ord.String.Marshal(grant.Description, buf[n:])
	n += marshalStrings(grant.Tags, buf[n:])
	n += marshalStrings(grant.WebsiteURLs, buf[n:])
	marshalStrings(grant.DocumentURLs, buf[n:])
	return buf
}

// UnmarshalGrant deserializes a Grant from bytes.
func UnmarshalGrant(data []byte) (*core.Grant, error) {
	if len(data) == 0 {
		return nil, ErrTruncatedData
	}
	if data[0] != grantFormatVersion {
		return nil, fmt.Errorf("%w: unknown grant format version %d", ErrSerializationFailed, data[0])
	}

	var (
		grant core.Grant
		n     = 1
		m     int
		err   error
	)
	if grant.Name, m, err = ord.String.Unmarshal(data[n:]); err != nil {
		return nil, fmt.Errorf("%w: name: %w", ErrSerializationFailed, err)
	}
	n += m
	if grant.Description, m, err = ord.String.Unmarshal(data[n:]); err != nil {
		return nil, fmt.Errorf("%w: description: %w", ErrSerializationFailed, err)
	}
	n += m
	if grant.Tags, m, err = unmarshalStrings(data[n:]); err != nil {
		return nil, fmt.Errorf("%w: tags: %w", ErrSerializationFailed, err)
	}
	n += m
	if grant.WebsiteURLs, m, err = unmarshalStrings(data[n:]); err != nil {
		return nil, fmt.Errorf("%w: website urls: %w", ErrSerializationFailed, err)
	}
	n += m
	if grant.DocumentURLs, m, err = unmarshalStrings(data[n:]); err != nil {
		return nil, fmt.Errorf("%w: document urls: %w", ErrSerializationFailed, err)
	}
	n += m
	if n != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrSerializationFailed, len(data)-n)
	}

	grant.Normalize()
	return &grant, nil
}

func stringsSize(ss []string) int {
	size := varint.Uint64.Size(uint64(len(ss)))
	for _, s := range ss {
		size += ord.String.Size(s)
	}
	return size
}

func marshalStrings(ss []string, buf []byte) int {
	n := varint.Uint64.Marshal(uint64(len(ss)), buf)
	for _, s := range ss {
		n += ord.String.Marshal(s, buf[n:])
	}
	return n
}

func unmarshalStrings(data []byte) ([]string, int, error) {
	count, n, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return nil, n, err
	}
	// Every string needs at least one length byte.
	if count > uint64(len(data)-n) {
		return nil, n, ErrTruncatedData
	}

	ss := make([]string, 0, count)
	for range count {
		s, m, err := ord.String.Unmarshal(data[n:])
		if err != nil {
			return nil, n, err
		}
		n += m
		ss = append(ss, s)
	}
	return ss, n, nil
}
