// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/presencecache/background"
	"github.com/bitmark-inc/presencecache/cache"
	"github.com/bitmark-inc/presencecache/capability"
	"github.com/bitmark-inc/presencecache/handle"
	"github.com/bitmark-inc/presencecache/messagebus"
)

// Summary - state left at the end of a replay
type Summary struct {
	Requests      int
	Answered      int
	Notifications int
	Pending       int
	Contacts      map[string]string
	LeakedRefs    int
}

// printer - writes every notification as it is queued
type printer struct {
	out     io.Writer
	bus     *messagebus.Queue
	printed int
}

func (p *printer) Run(args interface{}, shutdown <-chan struct{}) {
	for {
		select {
		case n := <-p.bus.Chan():
			p.print(n)
		case <-shutdown:
			// the cache is idle by now, flush what it queued
			for {
				select {
				case n := <-p.bus.Chan():
					p.print(n)
				default:
					return
				}
			}
		}
	}
}

func (p *printer) print(n messagebus.Notification) {
	p.printed += 1
	fmt.Fprintf(p.out, "%s  contact: %s\n", n, n.JID)
}

// replay - run a scenario through a fresh cache
func replay(conf *Configuration, scenario *Scenario, out io.Writer) (*Summary, error) {
	log := logger.New("replay")

	repo := handle.NewRepo()
	requester := newScripted(log, scenario.Answers)
	bus := messagebus.NewWithNames(conf.QueueSize, repo)

	c, err := cache.New(cache.Configuration{
		SelfJID:   conf.SelfJID,
		QueueSize: conf.QueueSize,
	}, repo, requester, bus)
	if nil != err {
		return nil, err
	}

	if err := seedLocalBundles(c, conf); nil != err {
		return nil, err
	}

	p := &printer{out: out, bus: bus}
	processes := background.Processes{c, p}
	bg := background.Start(processes, nil)

	for i, e := range scenario.Events {
		input, err := e.Input()
		if nil != err {
			bg.Stop()
			c.Close()
			return nil, fmt.Errorf("event[%d]: %s", i, err)
		}
		log.Debugf("event[%d]: %#v", i, input)
		if err := c.Submit(input); nil != err {
			bg.Stop()
			c.Close()
			return nil, err
		}
	}
	if err := c.Sync(); nil != err {
		bg.Stop()
		c.Close()
		return nil, err
	}
	bg.Stop()

	requests, answered := requester.counts()
	summary := &Summary{
		Requests:      requests,
		Answered:      answered,
		Notifications: p.printed,
		Pending:       c.PendingBundles(),
		Contacts:      make(map[string]string),
	}
	for _, jid := range contactsOf(scenario) {
		h, err := repo.Lookup(jid)
		if nil != err {
			continue
		}
		if record := c.Get(h); nil != record {
			summary.Contacts[jid] = fmt.Sprintf("%s  caps: %s", record.Status, record.Caps)
		}
	}

	if err := c.Close(); nil != err {
		return nil, err
	}
	summary.LeakedRefs = repo.TotalRefs()
	log.Infof("summary: %#v", summary)

	return summary, nil
}

// seed the bundles of the local client, all of them if none are listed
func seedLocalBundles(c *cache.Cache, conf *Configuration) error {
	if 0 == len(conf.LocalBundles) {
		return c.FillLocalBundles(conf.ClientNode, conf.ClientVersion)
	}

	wanted := map[string]bool{
		capability.BundleID(conf.ClientNode, conf.ClientVersion): true,
	}
	for _, token := range conf.LocalBundles {
		wanted[capability.BundleID(conf.ClientNode, token)] = true
	}
	for id, caps := range capability.LocalBundles(conf.ClientNode, conf.ClientVersion) {
		if !wanted[id] {
			continue
		}
		if err := c.AddBundleCaps(id, caps); nil != err {
			return err
		}
	}
	return nil
}

// bare jids of every contact appearing in stanzas, sorted
func contactsOf(scenario *Scenario) []string {
	seen := make(map[string]struct{})
	add := func(from string) {
		if bare, err := handle.BareJID(from); nil == err {
			seen[bare] = struct{}{}
		}
	}
	for _, e := range scenario.Events {
		if nil != e.Presence {
			add(e.Presence.From)
		}
		if nil != e.Message {
			add(e.Message.From)
		}
	}

	jids := make([]string, 0, len(seen))
	for jid := range seen {
		jids = append(jids, jid)
	}
	sort.Strings(jids)
	return jids
}

// print a summary
func (s *Summary) write(out io.Writer) {
	fmt.Fprintf(out, "disco requests: %d  answered by script: %d\n", s.Requests, s.Answered)
	fmt.Fprintf(out, "notifications: %d\n", s.Notifications)
	fmt.Fprintf(out, "bundles still pending: %d\n", s.Pending)

	jids := make([]string, 0, len(s.Contacts))
	for jid := range s.Contacts {
		jids = append(jids, jid)
	}
	sort.Strings(jids)
	for _, jid := range jids {
		fmt.Fprintf(out, "  %s: %s\n", jid, s.Contacts[jid])
	}

	if 0 != s.LeakedRefs {
		fmt.Fprintf(out, "leaked handle references: %d\n", s.LeakedRefs)
	}
}
