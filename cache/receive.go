// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cache

import (
	"github.com/bitmark-inc/presencecache/bundle"
	"github.com/bitmark-inc/presencecache/capability"
	"github.com/bitmark-inc/presencecache/fault"
	"github.com/bitmark-inc/presencecache/handle"
	"github.com/bitmark-inc/presencecache/presence"
	"github.com/bitmark-inc/presencecache/stanza"
	"github.com/bitmark-inc/presencecache/trust"
)

// HandlePresence - take in a presence stanza
//
// stanzas that cannot be attributed to a contact are dropped and the
// reason returned; nothing is changed in that case
func (c *Cache) HandlePresence(p *stanza.Presence) error {
	h, resource, err := c.accept(p.From)
	if nil != err {
		return err
	}

	if record := c.table.Get(h); nil != record {
		record.KeepUnavailable = false
	}

	priority := stanza.ParsePriority(p.Priority)

	switch p.Type {
	case stanza.TypeNotSet, stanza.TypeAvailable:
		c.update(h, resource, presence.FromShow(p.Show), p.StatusMessage, priority)

	case stanza.TypeError:
		c.log.Debugf("setting %s offline due to error", p.From)
		fallthrough

	case stanza.TypeUnavailable:
		c.update(h, resource, presence.Offline, p.StatusMessage, priority)

	default:
		c.log.Debugf("from: %s  presence type carries no status", p.From)
	}

	c.grabNickname(h, p.From, p.Nick)
	c.processCaps(h, resource, p.Caps)
	return nil
}

// HandleMessage - take in the presence hints of a message stanza
//
// a contact seen only through messages is kept while offline
func (c *Cache) HandleMessage(m *stanza.Message) error {
	h, resource, err := c.accept(m.From)
	if nil != err {
		return err
	}

	if nil == c.table.Get(h) {
		record := c.table.Insert(h)
		record.KeepUnavailable = true
	}

	c.grabNickname(h, m.From, m.Nick)
	c.processCaps(h, resource, m.Caps)
	return nil
}

// Update - set the presence of a contact resource directly
func (c *Cache) Update(h handle.Handle, resource string, status presence.Status, message string, priority int8) error {
	if !c.handles.IsValid(h) {
		c.log.Criticalf("update of invalid handle: %d", h)
		return fault.ErrInvalidHandle
	}
	c.update(h, resource, status, message, priority)
	return nil
}

// MaybeEvict - drop the record of a contact if nothing worth keeping
// is known about it
func (c *Cache) MaybeEvict(h handle.Handle) bool {
	return c.table.MaybeEvict(h)
}

func (c *Cache) accept(from string) (handle.Handle, string, error) {
	if !c.accepting {
		return 0, "", fault.ErrNotAccepting
	}
	if "" == from {
		c.log.Debug("stanza without from attribute, ignoring")
		return 0, "", fault.ErrMissingFrom
	}

	h, err := c.handles.Lookup(from)
	if nil != err {
		c.log.Debugf("ignoring stanza from malformed jid: %q", from)
		return 0, "", err
	}
	if h == c.self {
		c.log.Debugf("ignoring stanza from ourselves on another resource: %s", from)
		return 0, "", fault.ErrSelfStanza
	}

	_, resource := handle.SplitJID(from)
	return h, resource, nil
}

func (c *Cache) update(h handle.Handle, resource string, status presence.Status, message string, priority int8) {
	if c.table.Upsert(h, resource, status, message, priority) {
		c.sink.PresenceUpdated(h)
	}
	c.table.MaybeEvict(h)
}

func (c *Cache) grabNickname(h handle.Handle, from string, nick *stanza.Nick) {
	if nil == nick {
		return
	}
	c.log.Debugf("got nickname %q for %s", nick.Value, from)
	if c.table.SetNickname(h, nick.Value) {
		c.sink.NicknameUpdated(h)
	}
}

// every capability bearing stanza takes a serial, even when nothing
// can be done with its bundles
func (c *Cache) processCaps(h handle.Handle, resource string, hint *capability.Hint) {
	if nil == hint {
		return
	}

	serial := c.serial
	c.serial += 1

	if "" == resource {
		c.log.Debugf("caps from bare jid: %s ignored", c.handles.Inspect(h))
		return
	}

	for _, id := range hint.BundleIDs() {
		c.processBundle(h, resource, id, serial)
	}
}

func (c *Cache) processBundle(h handle.Handle, resource string, id string, serial uint64) {
	level, caps, ok := c.registry.Trust(id, c.handles.Inspect(h))
	if ok {
		c.log.Debugf("enough trust for bundle: %q  setting caps for %d/%s to %s", id, h, resource, caps)
		c.apply(h, resource, caps, serial)
		return
	}

	w, first := c.queue.Enqueue(id, h, resource, serial)
	requested := c.queue.CountRequested(id)
	if !trust.ShouldQuery(level, requested, first) {
		c.log.Debugf("bundle: %q  trust: %d  in flight: %d  deferring", id, level, requested)
		return
	}

	c.log.Debugf("bundle: %q  only %d trust of %d possible, sending disco", id, level+requested, bundle.EnoughTrust)
	if err := c.disco.Request(h, resource, id); nil != err {
		c.log.Debugf("bundle: %q  request for %d/%s failed: %s  waiter left unrequested", id, h, resource, err)
		return
	}
	w.Requested = true
}

// apply caps to a contact resource already tracked by the table
func (c *Cache) apply(h handle.Handle, resource string, caps capability.Set, serial uint64) {
	record := c.table.Get(h)
	if nil == record {
		c.log.Debugf("no presence for %d, caps dropped", h)
		return
	}

	oldCaps := record.Caps
	record.SetCapabilities(resource, caps, serial)
	c.sink.CapabilitiesUpdated(h, oldCaps, record.Caps)
}
