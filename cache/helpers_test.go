// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cache_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/presencecache/cache"
	"github.com/bitmark-inc/presencecache/capability"
	"github.com/bitmark-inc/presencecache/disco"
	"github.com/bitmark-inc/presencecache/handle"
	"github.com/bitmark-inc/presencecache/messagebus"
	"github.com/bitmark-inc/presencecache/stanza"
)

const (
	selfJID  = "me@example.com/laptop"
	capsNode = "http://example.com/client"
)

type request struct {
	target string
	node   string
}

// records requests, never answers
type recorder struct {
	sync.Mutex
	requests []request
}

func (r *recorder) RequestInfo(target string, node string, reply disco.ReplyFunc) {
	r.Lock()
	defer r.Unlock()
	r.requests = append(r.requests, request{target: target, node: node})
}

func (r *recorder) count() int {
	r.Lock()
	defer r.Unlock()
	return len(r.requests)
}

func (r *recorder) last() request {
	r.Lock()
	defer r.Unlock()
	return r.requests[len(r.requests)-1]
}

type fixture struct {
	c    *cache.Cache
	repo *handle.MemoryRepo
	rec  *recorder
	bus  *messagebus.Queue
}

func newFixture(t *testing.T) *fixture {
	repo := handle.NewRepo()
	rec := &recorder{}
	bus := messagebus.New(1000)

	c, err := cache.New(cache.Configuration{SelfJID: selfJID}, repo, rec, bus)
	require.Nil(t, err, "cache.New error")

	c.SetStatus(cache.Connecting)
	return &fixture{c: c, repo: repo, rec: rec, bus: bus}
}

// contact n's full jid, resource phone
func contact(n int) string {
	return fmt.Sprintf("contact%d@example.com/phone", n)
}

func bundleID(ver string) string {
	return capability.BundleID(capsNode, ver)
}

func hint(ver string) *capability.Hint {
	return &capability.Hint{Node: capsNode, Ver: ver}
}

func available(from string, caps *capability.Hint) *stanza.Presence {
	return &stanza.Presence{
		From: from,
		Type: stanza.TypeAvailable,
		Caps: caps,
	}
}

func (f *fixture) handle(t *testing.T, jid string) handle.Handle {
	h, err := f.repo.Lookup(jid)
	require.Nil(t, err, "lookup: %s", jid)
	return h
}

func (f *fixture) present(t *testing.T, from string, caps *capability.Hint) handle.Handle {
	err := f.c.HandlePresence(available(from, caps))
	require.Nil(t, err, "presence from: %s", from)
	return f.handle(t, from)
}

func (f *fixture) reply(from string, ver string, caps capability.Set) {
	f.c.DiscoReply(disco.Reply{
		Target:   from,
		Node:     bundleID(ver),
		Features: caps.Features(),
	})
}

func (f *fixture) fail(from string, ver string) {
	f.c.DiscoReply(disco.Reply{
		Target: from,
		Node:   bundleID(ver),
		Err:    fmt.Errorf("item-not-found"),
	})
}

// everything queued on the bus so far
func (f *fixture) notifications() []messagebus.Notification {
	var n []messagebus.Notification
	for {
		select {
		case item := <-f.bus.Chan():
			n = append(n, item)
		default:
			return n
		}
	}
}

func (f *fixture) caps(t *testing.T, jid string) capability.Set {
	p := f.c.Get(f.handle(t, jid))
	require.NotNil(t, p, "no presence for: %s", jid)
	return p.Caps
}
