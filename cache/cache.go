// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cache

import (
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bitmark-inc/presencecache/bundle"
	"github.com/bitmark-inc/presencecache/capability"
	"github.com/bitmark-inc/presencecache/disco"
	"github.com/bitmark-inc/presencecache/fault"
	"github.com/bitmark-inc/presencecache/handle"
	"github.com/bitmark-inc/presencecache/messagebus"
	"github.com/bitmark-inc/presencecache/presence"
	"github.com/bitmark-inc/presencecache/waiter"
)

// Sink - receiver of the changes observed by the cache
type Sink interface {
	PresenceUpdated(h handle.Handle)
	NicknameUpdated(h handle.Handle)
	CapabilitiesUpdated(h handle.Handle, oldCaps capability.Set, newCaps capability.Set)
}

// Connection - state of the session the cache is attached to
type Connection int

// connection states
const (
	Connecting Connection = iota
	Connected
	Disconnected
)

func (c Connection) String() string {
	switch c {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Disconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Configuration - parameters of a cache
type Configuration struct {
	SelfJID   string
	QueueSize int
}

// Cache - the presence and capability cache
type Cache struct {
	log     *logger.L
	handles handle.Repo
	sink    Sink
	self    handle.Handle

	registry *bundle.Registry
	queue    *waiter.Queue
	table    *presence.Table
	disco    *disco.Orchestrator

	accepting bool
	closed    bool
	serial    uint64

	events  chan interface{}
	replies chan disco.Reply
	wake    chan struct{}
	done    chan struct{}

	backlogLock sync.Mutex
	backlog     []disco.Reply // replies that found the channel full
}

// New - create a cache for the session of conf.SelfJID
//
// a nil sink discards notifications
func New(conf Configuration, handles handle.Repo, requester disco.Requester, sink Sink) (*Cache, error) {
	self, err := handles.Lookup(conf.SelfJID)
	if nil != err {
		return nil, err
	}
	handles.Ref(self)

	size := conf.QueueSize
	if size < 1 {
		size = messagebus.DefaultQueueSize
	}
	if nil == sink {
		sink = discard{}
	}

	c := &Cache{
		log:      logger.New("cache"),
		handles:  handles,
		sink:     sink,
		self:     self,
		registry: bundle.New(logger.New("bundle")),
		queue:    waiter.New(logger.New("waiter"), handles),
		table:    presence.NewTable(logger.New("presence"), handles),
		serial:   1,
		events:   make(chan interface{}, size),
		replies:  make(chan disco.Reply, size),
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	c.disco = disco.New(logger.New("disco"), handles, requester, c.post)

	c.log.Infof("self: %s (%d)", handles.Inspect(self), self)
	return c, nil
}

// Self - handle of the local account
func (c *Cache) Self() handle.Handle {
	return c.self
}

// SetStatus - follow the connection state, stanzas are only taken
// from connecting until disconnected
func (c *Cache) SetStatus(status Connection) {
	c.log.Infof("connection: %s", status)
	switch status {
	case Connecting:
		c.accepting = !c.closed
	case Disconnected:
		c.accepting = false
	}
}

// Get - presence of a contact, nil if nothing is known
func (c *Cache) Get(h handle.Handle) *presence.Presence {
	if !c.handles.IsValid(h) {
		c.log.Criticalf("get of invalid handle: %d", h)
		return nil
	}
	return c.table.Get(h)
}

// Bundle - what is on file for a bundle id
func (c *Cache) Bundle(id string) (bundle.Info, bool) {
	return c.registry.Info(id)
}

// PendingBundles - number of bundle ids waiting on disco replies
func (c *Cache) PendingBundles() int {
	return c.queue.Count()
}

// Contacts - number of presence records
func (c *Cache) Contacts() int {
	return c.table.Count()
}

// Collectors - metrics exported by the cache
func (c *Cache) Collectors() []prometheus.Collector {
	return append(c.registry.Collectors(), c.disco.Collectors()...)
}

// Register - register the cache metrics
func (c *Cache) Register(r prometheus.Registerer) error {
	for _, collector := range c.Collectors() {
		if err := r.Register(collector); nil != err {
			return err
		}
	}
	return nil
}

// Close - drop all waiters and records, releasing every handle the
// cache holds
//
// must not be called while Run is active
func (c *Cache) Close() error {
	if c.closed {
		return fault.ErrNotInitialised
	}
	c.closed = true
	c.accepting = false
	close(c.done)

	c.queue.Clear()
	c.table.Clear()
	c.handles.Unref(c.self)

	c.log.Info("closed")
	return nil
}

type discard struct{}

func (discard) PresenceUpdated(handle.Handle) {}
func (discard) NicknameUpdated(handle.Handle) {}
func (discard) CapabilitiesUpdated(handle.Handle, capability.Set, capability.Set) {}
