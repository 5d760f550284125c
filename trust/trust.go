// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package trust - decisions taken on capability reports
//
// Nothing here holds state: callers supply the trust read from the
// bundle registry and the state of the waiter queue
package trust

import (
	"github.com/bitmark-inc/presencecache/bundle"
)

// Sufficient - true if a bundle's caps can be applied without asking
func Sufficient(trust int) bool {
	return trust >= bundle.EnoughTrust
}

// ShouldQuery - decide whether a newly queued waiter sends its own
// disco request
//
// the first waiter of a bundle always asks; later ones only while the
// trust plus the answers already in flight cannot reach the threshold
func ShouldQuery(trust int, requested int, first bool) bool {
	return first || trust+requested < bundle.EnoughTrust
}

// Action - what to do with a queued waiter once a disco reply for its
// bundle has been accounted for
type Action int

// reply actions
const (
	Keep    Action = iota // trust still uncertain, leave queued
	Satisfy               // apply the reply caps and dequeue
	Ask                   // bundle is poisoned, ask this waiter directly
)

func (a Action) String() string {
	switch a {
	case Keep:
		return "keep"
	case Satisfy:
		return "satisfy"
	case Ask:
		return "ask"
	default:
		return "unknown"
	}
}

// OnReply - decide the action for one waiter
//
// target is true when the waiter's contact is the one that answered;
// its own answer is always believed for itself
func OnReply(trust int, target bool, requested bool) Action {
	if Sufficient(trust) || target {
		return Satisfy
	}
	if 0 == trust && !requested {
		return Ask
	}
	return Keep
}
