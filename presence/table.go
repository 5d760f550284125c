// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package presence

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/presencecache/handle"
)

// Table - presence records by contact
//
// a record holds a reference on its contact's handle until evicted
type Table struct {
	log     *logger.L
	handles handle.Repo
	records map[handle.Handle]*Presence
}

// NewTable - create an empty table
func NewTable(log *logger.L, handles handle.Repo) *Table {
	return &Table{
		log:     log,
		handles: handles,
		records: make(map[handle.Handle]*Presence),
	}
}

// Get - the record of a contact, nil if none
func (t *Table) Get(h handle.Handle) *Presence {
	return t.records[h]
}

// Insert - the record of a contact, created if absent
func (t *Table) Insert(h handle.Handle) *Presence {
	if p, ok := t.records[h]; ok {
		return p
	}
	t.handles.Ref(h)
	p := New()
	t.records[h] = p
	return p
}

// Upsert - apply a presence update for one resource of a contact
//
// returns true if the observable status or message changed, the
// record may have been evicted on return
func (t *Table) Upsert(h handle.Handle, resource string, status Status, message string, priority int8) bool {
	t.log.Debugf("%s (%d) resource: %q  prio: %d  presence: %s  message: %q",
		t.handles.Inspect(h), h, resource, priority, status, message)

	p := t.Insert(h)
	return p.Update(resource, status, message, priority)
}

// MaybeEvict - drop the record of a contact that is offline, has no
// status message and is not being kept for message tracking
func (t *Table) MaybeEvict(h handle.Handle) bool {
	p, ok := t.records[h]
	if !ok {
		return false
	}
	if Offline != p.Status || "" != p.StatusMessage || p.KeepUnavailable {
		return false
	}

	t.log.Debugf("discarding cached presence for unavailable jid: %s", t.handles.Inspect(h))
	delete(t.records, h)
	t.handles.Unref(h)
	return true
}

// SetNickname - returns true if the nickname changed
func (t *Table) SetNickname(h handle.Handle, nickname string) bool {
	p, ok := t.records[h]
	if !ok || p.Nickname == nickname {
		return false
	}
	p.Nickname = nickname
	return true
}

// Count - number of records
func (t *Table) Count() int {
	return len(t.records)
}

// Clear - drop every record
func (t *Table) Clear() {
	for h := range t.records {
		delete(t.records, h)
		t.handles.Unref(h)
	}
}
