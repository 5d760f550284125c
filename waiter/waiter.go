// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package waiter

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/presencecache/handle"
)

// Waiter - a contact resource waiting for the caps of a bundle id
type Waiter struct {
	Handle    handle.Handle
	Resource  string
	Serial    uint64
	Requested bool // a disco request was sent on behalf of this waiter
}

// Queue - waiters per bundle id, in arrival order
//
// every waiter holds a reference on its handle, released when the
// waiter leaves the queue by any path
type Queue struct {
	log     *logger.L
	handles handle.Repo
	pending map[string][]*Waiter
}

// New - create an empty queue
func New(log *logger.L, handles handle.Repo) *Queue {
	return &Queue{
		log:     log,
		handles: handles,
		pending: make(map[string][]*Waiter),
	}
}

// Enqueue - add a waiter for a bundle id
//
// first is true if no other waiter was pending for the id
func (q *Queue) Enqueue(id string, h handle.Handle, resource string, serial uint64) (w *Waiter, first bool) {
	q.handles.Ref(h)

	w = &Waiter{
		Handle:   h,
		Resource: resource,
		Serial:   serial,
	}
	list, ok := q.pending[id]
	q.pending[id] = append(list, w)

	q.log.Debugf("bundle: %q  new waiter: %d/%s  serial: %d", id, h, resource, serial)
	return w, !ok
}

// Waiters - snapshot of the waiters for a bundle id
func (q *Queue) Waiters(id string) []*Waiter {
	list := q.pending[id]
	out := make([]*Waiter, len(list))
	copy(out, list)
	return out
}

// Pending - true if any waiter is queued for a bundle id
func (q *Queue) Pending(id string) bool {
	_, ok := q.pending[id]
	return ok
}

// CountRequested - number of waiters for a bundle id that already
// have a disco request in flight
func (q *Queue) CountRequested(id string) int {
	n := 0
	for _, w := range q.pending[id] {
		if w.Requested {
			n += 1
		}
	}
	return n
}

// Drain - remove every waiter of a bundle id matching satisfied and
// pass it to apply before its handle is released
//
// remaining waiters keep their order
func (q *Queue) Drain(id string, satisfied func(*Waiter) bool, apply func(*Waiter)) int {
	list, ok := q.pending[id]
	if !ok {
		return 0
	}

	var removed []*Waiter
	kept := list[:0]
	for _, w := range list {
		if satisfied(w) {
			removed = append(removed, w)
		} else {
			kept = append(kept, w)
		}
	}
	for i := len(kept); i < len(list); i++ {
		list[i] = nil
	}

	if 0 == len(kept) {
		delete(q.pending, id)
	} else {
		q.pending[id] = kept
	}

	// the queue is consistent before apply runs, so apply may enqueue
	for _, w := range removed {
		apply(w)
		q.release(id, w)
	}
	return len(removed)
}

// NextUnrequested - first waiter of a bundle id without a disco
// request in flight
//
// if every waiter was already asked, the id is abandoned: all its
// waiters are dropped and nil is returned
func (q *Queue) NextUnrequested(id string) *Waiter {
	for _, w := range q.pending[id] {
		if !w.Requested {
			return w
		}
	}
	q.Abandon(id)
	return nil
}

// Abandon - drop all waiters of a bundle id
func (q *Queue) Abandon(id string) {
	list, ok := q.pending[id]
	if !ok {
		return
	}
	delete(q.pending, id)

	q.log.Debugf("bundle: %q  abandoning %d waiters", id, len(list))
	for _, w := range list {
		q.release(id, w)
	}
}

// Clear - drop every waiter of every bundle id
func (q *Queue) Clear() {
	for id := range q.pending {
		q.Abandon(id)
	}
}

// Count - number of bundle ids with waiters
func (q *Queue) Count() int {
	return len(q.pending)
}

func (q *Queue) release(id string, w *Waiter) {
	q.log.Debugf("bundle: %q  free waiter: %d/%s  serial: %d", id, w.Handle, w.Resource, w.Serial)
	q.handles.Unref(w.Handle)
}
