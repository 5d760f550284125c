// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package handle

import (
	"strings"
	"sync"

	"github.com/bitmark-inc/presencecache/fault"
)

// Handle - interned contact identity, zero is never valid
type Handle uint32

// Repo - interface for the identity collaborator
type Repo interface {
	Lookup(address string) (Handle, error)
	Ref(Handle)
	Unref(Handle)
	Inspect(Handle) string
	IsValid(Handle) bool
}

type entry struct {
	jid  string
	refs int
}

// MemoryRepo - in-memory reference counted implementation of Repo,
// safe for use from several goroutines
type MemoryRepo struct {
	sync.RWMutex
	next    Handle
	entries map[Handle]*entry
	index   map[string]Handle
}

// NewRepo - create an empty repo
//
// a handle stays valid from its first Lookup until the last reference
// taken on it is released
func NewRepo() *MemoryRepo {
	return &MemoryRepo{
		next:    1,
		entries: make(map[Handle]*entry),
		index:   make(map[string]Handle),
	}
}

// Lookup - intern the bare jid of an address
func (r *MemoryRepo) Lookup(address string) (Handle, error) {
	bare, err := BareJID(address)
	if nil != err {
		return 0, err
	}

	r.Lock()
	defer r.Unlock()

	if h, ok := r.index[bare]; ok {
		return h, nil
	}

	h := r.next
	r.next += 1
	r.entries[h] = &entry{jid: bare}
	r.index[bare] = h
	return h, nil
}

// Ref - take a reference
func (r *MemoryRepo) Ref(h Handle) {
	r.Lock()
	defer r.Unlock()

	e, ok := r.entries[h]
	if !ok {
		fault.Criticalf("ref of invalid handle: %d", h)
		return
	}
	e.refs += 1
}

// Unref - release a reference, the handle is discarded with its last one
func (r *MemoryRepo) Unref(h Handle) {
	r.Lock()
	defer r.Unlock()

	e, ok := r.entries[h]
	if !ok || e.refs <= 0 {
		fault.Criticalf("unref of unreferenced handle: %d", h)
		return
	}
	e.refs -= 1
	if 0 == e.refs {
		delete(r.index, e.jid)
		delete(r.entries, h)
	}
}

// Inspect - the bare jid of a handle, empty if invalid
func (r *MemoryRepo) Inspect(h Handle) string {
	r.RLock()
	defer r.RUnlock()

	if e, ok := r.entries[h]; ok {
		return e.jid
	}
	return ""
}

// IsValid - true while the handle is interned
func (r *MemoryRepo) IsValid(h Handle) bool {
	r.RLock()
	defer r.RUnlock()

	_, ok := r.entries[h]
	return ok
}

// RefCount - number of references currently held on a handle
func (r *MemoryRepo) RefCount(h Handle) int {
	r.RLock()
	defer r.RUnlock()

	if e, ok := r.entries[h]; ok {
		return e.refs
	}
	return 0
}

// TotalRefs - sum of all references held
func (r *MemoryRepo) TotalRefs() int {
	r.RLock()
	defer r.RUnlock()

	n := 0
	for _, e := range r.entries {
		n += e.refs
	}
	return n
}

// BareJID - strip the resource from an address and normalise case
// of the node and domain parts
func BareJID(address string) (string, error) {
	bare, _ := SplitJID(address)
	at := strings.Index(bare, "@")
	if "" == bare || at <= 0 || at == len(bare)-1 {
		return "", fault.ErrInvalidAddress
	}
	return strings.ToLower(bare), nil
}

// SplitJID - split an address into bare jid and resource
func SplitJID(address string) (string, string) {
	n := strings.Index(address, "/")
	if n < 0 {
		return address, ""
	}
	return address[:n], address[n+1:]
}
