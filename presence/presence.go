// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package presence

import (
	"github.com/bitmark-inc/presencecache/capability"
	"github.com/bitmark-inc/presencecache/stanza"
)

// Status - presence status, ordered from least to most available
type Status int

// status values
const (
	Offline Status = iota
	XA
	Away
	DND
	Available
	Chat
)

func (s Status) String() string {
	switch s {
	case Offline:
		return "offline"
	case XA:
		return "xa"
	case Away:
		return "away"
	case DND:
		return "dnd"
	case Available:
		return "available"
	case Chat:
		return "chat"
	default:
		return "unknown"
	}
}

// FromShow - status of an available presence, an absent or unknown
// show means available
func FromShow(show stanza.Show) Status {
	switch show {
	case stanza.ShowAway:
		return Away
	case stanza.ShowChat:
		return Chat
	case stanza.ShowDND:
		return DND
	case stanza.ShowXA:
		return XA
	default:
		return Available
	}
}

type resource struct {
	name          string
	caps          capability.Set
	capsSerial    uint64
	status        Status
	statusMessage string
	priority      int8
}

// Presence - everything known about one contact
//
// Status, StatusMessage and Caps are aggregated over the contact's
// resources and must not be changed directly
type Presence struct {
	Status          Status
	StatusMessage   string
	Nickname        string
	Caps            capability.Set
	KeepUnavailable bool

	resources []*resource
}

// New - an offline presence with no resources
func New() *Presence {
	return &Presence{Status: Offline}
}

func (p *Presence) find(name string) (int, *resource) {
	for i, r := range p.resources {
		if r.name == name {
			return i, r
		}
	}
	return -1, nil
}

// Update - apply a presence stanza from one resource
//
// returns true if the aggregate status or status message changed
func (p *Presence) Update(name string, status Status, message string, priority int8) bool {
	oldStatus := p.Status
	oldMessage := p.StatusMessage

	if Offline == status {
		if i, _ := p.find(name); i >= 0 {
			p.resources = append(p.resources[:i], p.resources[i+1:]...)
		}
	} else {
		_, r := p.find(name)
		if nil == r {
			r = &resource{name: name}
			p.resources = append(p.resources, r)
		}
		r.status = status
		r.statusMessage = message
		r.priority = priority
	}

	p.aggregate()

	// a contact going away entirely keeps its parting message
	if Offline == p.Status && Offline == status {
		p.StatusMessage = message
	}

	return oldStatus != p.Status || oldMessage != p.StatusMessage
}

// SetCapabilities - set the caps of a resource from an observation
// stamped with serial
//
// a newer serial replaces what the resource had, the same serial adds
// to it (one stanza may carry several bundles) and an older serial is
// stale and ignored
func (p *Presence) SetCapabilities(name string, caps capability.Set, serial uint64) {
	_, r := p.find(name)
	if nil == r {
		// caps seen before (or without) an available presence
		r = &resource{name: name, status: Offline}
		p.resources = append(p.resources, r)
	}

	if serial > r.capsSerial {
		r.caps = capability.None
		r.capsSerial = serial
	}
	if serial == r.capsSerial {
		r.caps |= caps
	}

	p.aggregate()
}

// PickResourceByCaps - first resource supporting any of caps
func (p *Presence) PickResourceByCaps(caps capability.Set) (string, bool) {
	for _, r := range p.resources {
		if r.caps&caps != 0 {
			return r.name, true
		}
	}
	return "", false
}

// Resources - names of all known resources
func (p *Presence) Resources() []string {
	names := make([]string, len(p.resources))
	for i, r := range p.resources {
		names[i] = r.name
	}
	return names
}

// best resource: highest priority, then most available
func (p *Presence) aggregate() {
	p.Status = Offline
	p.StatusMessage = ""
	p.Caps = capability.None

	var best *resource
	for _, r := range p.resources {
		p.Caps |= r.caps
		if Offline == r.status {
			continue
		}
		if nil == best || r.priority > best.priority ||
			(r.priority == best.priority && r.status > best.status) {
			best = r
		}
	}
	if nil != best {
		p.Status = best.status
		p.StatusMessage = best.statusMessage
	}
}
