// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package cache - presence and capability cache of a client session
//
//  ***** Data Structure *****
//
//  Cache
//  |___ registry     bundle id       -> caps, reporters, trust
//  |___ queue        bundle id       -> waiters (contact, resource, serial)
//  |___ table        contact handle  -> presence (per resource status and caps)
//
//  ***** Capability discovery *****
//
//  Contacts advertise capability bundle ids in presence and message
//  stanzas.  Ids reported by enough distinct contacts with identical
//  results of a disco query are trusted and applied to every contact
//  advertising them without asking again.  Contacts whose reports
//  disagree poison the id, after which every contact is asked for its
//  own features.
//
//  ***** Threading *****
//
//  All state is owned by one goroutine: either the caller, or the Run
//  loop when the cache is started as a background process.  Disco
//  replies are posted back to that loop.
package cache
