// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

const (
	Read     Permissions = 1
	Allocate             = 1<<1 | Read
	Write                = 1<<2 | Read

	None Permissions = 0
	All              = Read | Allocate | Write
)

// Keys maps every key an action touches to the permissions it needs. Use
// [Keys.Add] so that duplicate declarations widen rather than overwrite.
type Keys map[string]Permissions

// All acceptable permission options
type Permissions byte

// Add merges [permission] into the permissions already held for [name].
func (k Keys) Add(name string, permission Permissions) {
	k[name] |= permission
}

// Has returns true if [p] has all the permissions that are contained in require
func (p Permissions) Has(require Permissions) bool {
	return require&^p == 0
}

// Writes returns true if [p] allows mutation of the key (allocate or write).
func (p Permissions) Writes() bool {
	return p&^Read != 0
}

// Conflicts returns true if two holders of [p] and [o] on the same key must
// be serialized.
func (p Permissions) Conflicts(o Permissions) bool {
	return p.Writes() || o.Writes()
}
