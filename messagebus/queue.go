// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"fmt"

	"github.com/bitmark-inc/presencecache/capability"
	"github.com/bitmark-inc/presencecache/handle"
)

// DefaultQueueSize - buffer used when no size is configured
const DefaultQueueSize = 1000

// Kind - type of notification
type Kind int

// notification kinds
const (
	PresenceUpdate Kind = iota
	NicknameUpdate
	CapabilitiesUpdate
)

func (k Kind) String() string {
	switch k {
	case PresenceUpdate:
		return "presence"
	case NicknameUpdate:
		return "nickname"
	case CapabilitiesUpdate:
		return "capabilities"
	default:
		return "unknown"
	}
}

// Notification - one change observed by the cache
//
// OldCaps and NewCaps are only set for CapabilitiesUpdate; JID is only
// set by a queue created with NewWithNames
type Notification struct {
	Kind    Kind
	Contact handle.Handle
	JID     string
	OldCaps capability.Set
	NewCaps capability.Set
}

func (n Notification) String() string {
	if CapabilitiesUpdate == n.Kind {
		return fmt.Sprintf("%s: %d  %s -> %s", n.Kind, n.Contact, n.OldCaps, n.NewCaps)
	}
	return fmt.Sprintf("%s: %d", n.Kind, n.Contact)
}

// Queue - a buffered queue of notifications
type Queue struct {
	c     chan Notification
	names handle.Repo
}

// New - create a queue, a size below one uses DefaultQueueSize
func New(size int) *Queue {
	if size < 1 {
		size = DefaultQueueSize
	}
	return &Queue{
		c: make(chan Notification, size),
	}
}

// NewWithNames - create a queue that also records the jid of each
// contact
//
// the jid is resolved when the cache sends, on the goroutine that owns
// the handles, so readers never touch the repo and still see the jid of
// a handle released before they got to it
func NewWithNames(size int, names handle.Repo) *Queue {
	q := New(size)
	q.names = names
	return q
}

func (q *Queue) jid(h handle.Handle) string {
	if nil == q.names {
		return ""
	}
	return q.names.Inspect(h)
}

// Send - queue a notification, blocks while the queue is full
func (q *Queue) Send(n Notification) {
	q.c <- n
}

// Chan - channel to read from
func (q *Queue) Chan() <-chan Notification {
	return q.c
}

// Release - discard everything queued, returns the number dropped
func (q *Queue) Release() int {
	n := 0
	for {
		select {
		case <-q.c:
			n += 1
		default:
			return n
		}
	}
}

// PresenceUpdated - queue a presence change of a contact
func (q *Queue) PresenceUpdated(h handle.Handle) {
	q.Send(Notification{Kind: PresenceUpdate, Contact: h, JID: q.jid(h)})
}

// NicknameUpdated - queue a nickname change of a contact
func (q *Queue) NicknameUpdated(h handle.Handle) {
	q.Send(Notification{Kind: NicknameUpdate, Contact: h, JID: q.jid(h)})
}

// CapabilitiesUpdated - queue a capability change of a contact
func (q *Queue) CapabilitiesUpdated(h handle.Handle, oldCaps capability.Set, newCaps capability.Set) {
	q.Send(Notification{
		Kind:    CapabilitiesUpdate,
		Contact: h,
		JID:     q.jid(h),
		OldCaps: oldCaps,
		NewCaps: newCaps,
	})
}
