// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bitmark-inc/presencecache/cache"
	"github.com/bitmark-inc/presencecache/capability"
	"github.com/bitmark-inc/presencecache/disco"
	"github.com/bitmark-inc/presencecache/fault"
	"github.com/bitmark-inc/presencecache/stanza"
)

// Scenario - a scripted session
type Scenario struct {
	Answers map[string]Answer `yaml:"answers"`
	Events  []Event           `yaml:"events"`
}

// Answer - how the scripted disco peer answers a node
type Answer struct {
	Features []string `yaml:"features"`
	Error    string   `yaml:"error"`
}

// Event - exactly one of the fields is set
type Event struct {
	Status   string         `yaml:"status,omitempty"`
	Presence *PresenceEvent `yaml:"presence,omitempty"`
	Message  *MessageEvent  `yaml:"message,omitempty"`
	Reply    *ReplyEvent    `yaml:"reply,omitempty"`
}

// Caps - capability advertisement
type Caps struct {
	Node string `yaml:"node"`
	Ver  string `yaml:"ver"`
	Ext  string `yaml:"ext"`
}

// PresenceEvent - presence stanza
type PresenceEvent struct {
	From     string  `yaml:"from"`
	Type     string  `yaml:"type"`
	Show     string  `yaml:"show"`
	Status   string  `yaml:"status"`
	Priority string  `yaml:"priority"`
	Nick     *string `yaml:"nick"`
	Caps     *Caps   `yaml:"caps"`
}

// MessageEvent - message stanza
type MessageEvent struct {
	From string  `yaml:"from"`
	Nick *string `yaml:"nick"`
	Caps *Caps   `yaml:"caps"`
}

// ReplyEvent - unsolicited or late disco reply
type ReplyEvent struct {
	Target   string   `yaml:"target"`
	Node     string   `yaml:"node"`
	Features []string `yaml:"features"`
	Error    string   `yaml:"error"`
}

// readScenario - load a scenario file
func readScenario(fileName string) (*Scenario, error) {
	f, err := os.Open(fileName)
	if nil != err {
		return nil, err
	}
	defer f.Close()

	return decodeScenario(f)
}

func decodeScenario(r io.Reader) (*Scenario, error) {
	s := &Scenario{}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(s); nil != err {
		return nil, err
	}

	for i, e := range s.Events {
		if _, err := e.Input(); nil != err {
			return nil, fmt.Errorf("event[%d]: %s", i, err)
		}
	}
	return s, nil
}

// Input - the cache input for an event
func (e Event) Input() (interface{}, error) {
	var input interface{}
	n := 0

	if "" != e.Status {
		status, err := parseConnection(e.Status)
		if nil != err {
			return nil, err
		}
		input = status
		n += 1
	}
	if nil != e.Presence {
		input = e.Presence.stanza()
		n += 1
	}
	if nil != e.Message {
		input = e.Message.stanza()
		n += 1
	}
	if nil != e.Reply {
		input = e.Reply.reply()
		n += 1
	}

	if 1 != n {
		return nil, fault.ErrInvalidScenario
	}
	return input, nil
}

func parseConnection(s string) (cache.Connection, error) {
	switch s {
	case "connecting":
		return cache.Connecting, nil
	case "connected":
		return cache.Connected, nil
	case "disconnected":
		return cache.Disconnected, nil
	default:
		return 0, fault.ErrInvalidScenario
	}
}

func (c *Caps) hint() *capability.Hint {
	if nil == c {
		return nil
	}
	return &capability.Hint{Node: c.Node, Ver: c.Ver, Ext: c.Ext}
}

func nick(s *string) *stanza.Nick {
	if nil == s {
		return nil
	}
	return &stanza.Nick{Value: *s}
}

func (p *PresenceEvent) stanza() *stanza.Presence {
	return &stanza.Presence{
		From:          p.From,
		Type:          stanza.ParseType(p.Type),
		Show:          stanza.Show(p.Show),
		StatusMessage: p.Status,
		Priority:      p.Priority,
		Caps:          p.Caps.hint(),
		Nick:          nick(p.Nick),
	}
}

func (m *MessageEvent) stanza() *stanza.Message {
	return &stanza.Message{
		From: m.From,
		Caps: m.Caps.hint(),
		Nick: nick(m.Nick),
	}
}

func (r *ReplyEvent) reply() disco.Reply {
	return answer(r.Target, r.Node, r.Features, r.Error)
}

func answer(target string, node string, features []string, e string) disco.Reply {
	reply := disco.Reply{
		Target: target,
		Node:   node,
	}
	if "" != e {
		reply.Err = fmt.Errorf("%w: %s", fault.ErrDiscoFailed, e)
	} else {
		reply.Features = features
	}
	return reply
}
