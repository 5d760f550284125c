// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stanza

import (
	"math"
	"strconv"
	"strings"

	"github.com/bitmark-inc/presencecache/capability"
)

// PresenceType - the type attribute of a presence stanza
type PresenceType int

// presence types
const (
	TypeNotSet PresenceType = iota
	TypeAvailable
	TypeUnavailable
	TypeError
	TypeOther // subscriptions, probes - not presence information
)

// Show - values of the show child
type Show string

// show values
const (
	ShowNone Show = ""
	ShowAway Show = "away"
	ShowChat Show = "chat"
	ShowDND  Show = "dnd"
	ShowXA   Show = "xa"
)

// Nick - nickname announcement; Value empty means the nickname was cleared
type Nick struct {
	Value string
}

// Presence - an already parsed presence stanza
type Presence struct {
	From          string
	Type          PresenceType
	Show          Show
	StatusMessage string
	Priority      string
	Caps          *capability.Hint
	Nick          *Nick
}

// Message - an already parsed message stanza, only the parts that can
// carry presence hints
type Message struct {
	From string
	Caps *capability.Hint
	Nick *Nick
}

// ParseType - convert a type attribute
func ParseType(s string) PresenceType {
	switch strings.ToLower(s) {
	case "":
		return TypeNotSet
	case "available":
		return TypeAvailable
	case "unavailable":
		return TypeUnavailable
	case "error":
		return TypeError
	default:
		return TypeOther
	}
}

// ParsePriority - priority clamped to int8
//
// values that do not parse as a 32 bit integer are zero
func ParsePriority(s string) int8 {
	s = strings.TrimSpace(s)
	if "" == s {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if nil != err {
		return 0
	}
	if n < math.MinInt8 {
		return math.MinInt8
	}
	if n > math.MaxInt8 {
		return math.MaxInt8
	}
	return int8(n)
}
