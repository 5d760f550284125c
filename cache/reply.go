// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cache

import (
	"github.com/bitmark-inc/presencecache/disco"
	"github.com/bitmark-inc/presencecache/trust"
	"github.com/bitmark-inc/presencecache/waiter"
)

// DiscoReply - account for the reply to a disco request
//
// replies are accepted after disconnection, only stanza intake stops
func (c *Cache) DiscoReply(r disco.Reply) {
	if c.closed {
		c.log.Debugf("closed, dropping reply from: %s  node: %q", r.Target, r.Node)
		return
	}
	if "" == r.Node {
		c.log.Warnf("reply from: %s  without node, ignoring", r.Target)
		return
	}

	if nil != r.Err {
		c.discoFailed(r)
		return
	}

	h, err := c.handles.Lookup(r.Target)
	if nil != err {
		c.log.Warnf("reply from malformed jid: %q  node: %q  ignoring", r.Target, r.Node)
		return
	}

	id := r.Node
	caps := r.Caps()
	level := c.registry.Record(id, c.handles.Inspect(h), caps)

	decide := func(w *waiter.Waiter) trust.Action {
		return trust.OnReply(level, w.Handle == h, w.Requested)
	}

	c.queue.Drain(id,
		func(w *waiter.Waiter) bool {
			return trust.Satisfy == decide(w)
		},
		func(w *waiter.Waiter) {
			c.log.Debugf("setting caps for %d/%s to %s  from: %s", w.Handle, w.Resource, caps, r.Target)
			c.apply(w.Handle, w.Resource, caps, w.Serial)
		},
	)

	// poisoned: nobody's report counts for anyone else
	for _, w := range c.queue.Waiters(id) {
		if trust.Ask != decide(w) {
			continue
		}
		if err := c.disco.Request(w.Handle, w.Resource, id); nil == err {
			w.Requested = true
		}
	}

	if trust.Sufficient(level) {
		c.queue.Abandon(id)
	}
}

// ask the first waiter not yet asked, or give up on the bundle
func (c *Cache) discoFailed(r disco.Reply) {
	c.disco.Failed(r)

	id := r.Node
	if !c.queue.Pending(id) {
		return
	}

	w := c.queue.NextUnrequested(id)
	if nil == w {
		c.disco.Abandoned(id)
		return
	}

	if err := c.disco.Retry(w.Handle, w.Resource, id); nil != err {
		c.log.Debugf("bundle: %q  retry for %d/%s failed: %s", id, w.Handle, w.Resource, err)
		return
	}
	w.Requested = true
	c.log.Debugf("sent a retry disco request to %d/%s for bundle: %q", w.Handle, w.Resource, id)
}
