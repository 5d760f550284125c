// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cache

import (
	"github.com/bitmark-inc/presencecache/disco"
	"github.com/bitmark-inc/presencecache/fault"
	"github.com/bitmark-inc/presencecache/stanza"
)

// Submit - queue an input for the Run loop
//
// accepts *stanza.Presence, *stanza.Message, Connection and disco.Reply;
// a chan struct{} is closed once everything before it was handled
func (c *Cache) Submit(item interface{}) error {
	select {
	case <-c.done:
		return fault.ErrNotAccepting
	default:
	}
	select {
	case c.events <- item:
		return nil
	case <-c.done:
		return fault.ErrNotAccepting
	}
}

// Sync - wait until the Run loop has handled every input submitted
// before, together with the disco replies those produced
func (c *Cache) Sync() error {
	barrier := make(chan struct{})
	if err := c.Submit(barrier); nil != err {
		return err
	}
	select {
	case <-barrier:
		return nil
	case <-c.done:
		return fault.ErrNotAccepting
	}
}

// Run - background process owning the cache state
func (c *Cache) Run(args interface{}, shutdown <-chan struct{}) {
	c.log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case r := <-c.replies:
			c.DiscoReply(r)
		case <-c.wake:
			c.drainReplies()
		case item := <-c.events:
			c.drainReplies()
			c.dispatch(item)
		}
	}

	c.log.Info("shutting down…")
	c.log.Flush()
}

func (c *Cache) dispatch(item interface{}) {
	var err error
	switch v := item.(type) {
	case *stanza.Presence:
		err = c.HandlePresence(v)
	case *stanza.Message:
		err = c.HandleMessage(v)
	case Connection:
		c.SetStatus(v)
	case disco.Reply:
		c.DiscoReply(v)
	case chan struct{}:
		c.drainReplies()
		close(v)
	default:
		c.log.Warnf("unexpected input: %T", item)
	}
	if nil != err {
		c.log.Debugf("input dropped: %s", err)
	}
}

// handle replies already posted, including those posted while doing so
func (c *Cache) drainReplies() {
	for {
		select {
		case r := <-c.replies:
			c.DiscoReply(r)
			continue
		default:
		}

		backlog := c.takeBacklog()
		if 0 == len(backlog) {
			return
		}
		for _, r := range backlog {
			c.DiscoReply(r)
		}
	}
}

// replies may arrive on any goroutine, including the loop itself from
// inside a request; when the channel is full they wait in the backlog
// and the loop is woken to collect them
func (c *Cache) post(r disco.Reply) {
	select {
	case c.replies <- r:
		return
	default:
	}

	c.backlogLock.Lock()
	c.backlog = append(c.backlog, r)
	c.backlogLock.Unlock()

	select {
	case c.wake <- struct{}{}:
	default:
	}
}

func (c *Cache) takeBacklog() []disco.Reply {
	c.backlogLock.Lock()
	defer c.backlogLock.Unlock()

	b := c.backlog
	c.backlog = nil
	return b
}
