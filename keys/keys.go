// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package keys lays out state keys as
//
//	[prefix] + [parts...] + [max chunks (uint16)]
//
// The trailing chunk count bounds the size of the value stored under the
// key, and views refuse writes that exceed it.
package keys

import (
	"encoding/binary"

	"github.com/ava-labs/curvevm/consts"
)

const chunkSize = 64 // bytes

// New builds a key under [prefix] from [parts] whose values may span at
// most [maxChunks] chunks.
func New(prefix byte, maxChunks uint16, parts ...[]byte) []byte {
	size := 1 + consts.Uint16Len
	for _, p := range parts {
		size += len(p)
	}
	k := make([]byte, 1, size)
	k[0] = prefix
	for _, p := range parts {
		k = append(k, p...)
	}
	return binary.BigEndian.AppendUint16(k, maxChunks)
}

// Prefix returns the record type of [key].
func Prefix(key []byte) (byte, bool) {
	if len(key) < 1+consts.Uint16Len {
		return 0, false
	}
	return key[0], true
}

// MaxChunks returns the number of chunks [key] reserves for its value.
func MaxChunks(key []byte) (uint16, bool) {
	l := len(key)
	if l < consts.Uint16Len {
		return 0, false
	}
	return binary.BigEndian.Uint16(key[l-consts.Uint16Len:]), true
}

// ChunksFor returns how many chunks a value of [size] bytes occupies.
func ChunksFor(size int) (uint16, bool) {
	if size == 0 {
		return 0, true
	}
	raw := size/chunkSize + 1
	if raw > int(consts.MaxUint16) {
		return 0, false
	}
	return uint16(raw), true
}

// VerifyValue reports whether [value] fits in the chunks reserved by [key].
func VerifyValue(key []byte, value []byte) bool {
	need, ok := ChunksFor(len(value))
	if !ok {
		return false
	}
	have, ok := MaxChunks(key)
	return ok && need <= have
}
