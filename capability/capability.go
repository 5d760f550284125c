// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package capability

import (
	"strings"
)

// Set - capability bitset of a contact or bundle
type Set uint32

// capability flags
const (
	None                   Set = 0
	GoogleTransportP2P     Set = 1 << 0
	GoogleVoice            Set = 1 << 1
	Jingle                 Set = 1 << 2
	JingleDescriptionAudio Set = 1 << 3
	JingleDescriptionVideo Set = 1 << 4
)

// JingleVoice - both flags needed for a jingle audio call
const JingleVoice = Jingle | JingleDescriptionAudio

// feature namespaces as advertised in disco#info replies
const (
	NSGoogleTransportP2P     = "http://www.google.com/transport/p2p"
	NSGoogleFeatureVoice     = "http://www.google.com/xmpp/protocol/voice/v1"
	NSJingle                 = "http://jabber.org/protocol/jingle"
	NSJingleDescriptionAudio = "http://jabber.org/protocol/jingle/description/audio"
	NSJingleDescriptionVideo = "http://jabber.org/protocol/jingle/description/video"
)

var featureTable = map[string]Set{
	NSGoogleTransportP2P:     GoogleTransportP2P,
	NSGoogleFeatureVoice:     GoogleVoice,
	NSJingle:                 Jingle,
	NSJingleDescriptionAudio: JingleDescriptionAudio,
	NSJingleDescriptionVideo: JingleDescriptionVideo,
}

var flagNames = []struct {
	flag Set
	name string
}{
	{GoogleTransportP2P, "google-p2p"},
	{GoogleVoice, "google-voice"},
	{Jingle, "jingle"},
	{JingleDescriptionAudio, "jingle-audio"},
	{JingleDescriptionVideo, "jingle-video"},
}

// FromFeatures - translate a list of disco feature URIs into a bitset
// unknown features contribute no bits
func FromFeatures(features []string) Set {
	caps := None
	for _, f := range features {
		caps |= featureTable[f]
	}
	return caps
}

// Features - the feature URIs corresponding to the bits of a set
func (s Set) Features() []string {
	features := make([]string, 0, len(featureTable))
	for ns, flag := range featureTable {
		if s&flag != 0 {
			features = append(features, ns)
		}
	}
	return features
}

// Has - true if all bits of flags are present
func (s Set) Has(flags Set) bool {
	return s&flags == flags
}

// String - conversion from fmt package
func (s Set) String() string {
	if None == s {
		return "none"
	}
	names := make([]string, 0, len(flagNames))
	for _, f := range flagNames {
		if s&f.flag != 0 {
			names = append(names, f.name)
		}
	}
	return strings.Join(names, "|")
}
