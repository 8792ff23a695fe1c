// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "github.com/ava-labs/avalanchego/utils/wrappers"

// Packer is a wrapper around [wrappers.Packer] that adds the types used by
// curvevm records and tracks required fields.
type Packer struct {
	p *wrappers.Packer
}

// NewReader returns a Packer that unpacks [src], failing if more than [limit]
// bytes would be read.
func NewReader(src []byte, limit int) *Packer {
	return &Packer{
		p: &wrappers.Packer{Bytes: src, MaxSize: limit},
	}
}

// NewWriter returns a Packer with [initial] capacity that fails if more than
// [limit] bytes are written.
func NewWriter(initial, limit int) *Packer {
	return &Packer{
		p: &wrappers.Packer{Bytes: make([]byte, 0, initial), MaxSize: limit},
	}
}

func (p *Packer) PackByte(b byte) {
	p.p.PackByte(b)
}

func (p *Packer) UnpackByte() byte {
	return p.p.UnpackByte()
}

func (p *Packer) PackAddress(a Address) {
	p.p.PackFixedBytes(a[:])
}

func (p *Packer) UnpackAddress(dest *Address) {
	copy((*dest)[:], p.p.UnpackFixedBytes(AddressLen))
	if *dest == EmptyAddress {
		p.addErr(ErrFieldNotPopulated)
	}
}

func (p *Packer) PackUint64(v uint64) {
	p.p.PackLong(v)
}

// UnpackUint64 reads a uint64. If [required] is set a zero value is treated
// as a missing field.
func (p *Packer) UnpackUint64(required bool) uint64 {
	v := p.p.UnpackLong()
	if required && v == 0 {
		p.addErr(ErrFieldNotPopulated)
	}
	return v
}

func (p *Packer) PackString(s string) {
	p.p.PackStr(s)
}

// UnpackString reads a length prefixed string of at most [limit] bytes.
func (p *Packer) UnpackString(limit int, required bool) string {
	s := p.p.UnpackStr()
	if len(s) > limit {
		p.addErr(ErrTooLarge)
		return ""
	}
	if required && len(s) == 0 {
		p.addErr(ErrFieldNotPopulated)
	}
	return s
}

func (p *Packer) Bytes() []byte {
	return p.p.Bytes
}

func (p *Packer) Offset() int {
	return p.p.Offset
}

// Empty returns true if all bytes have been consumed.
func (p *Packer) Empty() bool {
	return p.p.Offset == len(p.p.Bytes)
}

func (p *Packer) Err() error {
	return p.p.Err
}

func (p *Packer) addErr(err error) {
	p.p.Add(err)
}
