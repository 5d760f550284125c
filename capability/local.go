// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package capability

// LocalFeature - a feature this client advertises, with the bundle
// (ext token) it is announced under
type LocalFeature struct {
	Bundle    string
	Namespace string
	Caps      Set
}

// LocalFeatures - everything the local client supports
//
// features with an empty bundle belong to the version bundle
var LocalFeatures = []LocalFeature{
	{"", NSJingle, Jingle},
	{"", NSGoogleTransportP2P, GoogleTransportP2P},
	{"voice-v1", NSGoogleFeatureVoice, GoogleVoice},
	{"jingle-audio", NSJingleDescriptionAudio, JingleDescriptionAudio},
	{"jingle-video", NSJingleDescriptionVideo, JingleDescriptionVideo},
}

// LocalBundles - map of bundle id to the capabilities the local
// client announces under it
func LocalBundles(node string, version string) map[string]Set {
	bundles := make(map[string]Set, len(LocalFeatures))
	for _, f := range LocalFeatures {
		token := f.Bundle
		if "" == token {
			token = version
		}
		id := BundleID(node, token)
		bundles[id] |= f.Caps
	}
	return bundles
}

// LocalHint - the hint to attach to our own presence
func LocalHint(node string, version string) Hint {
	ext := ""
	for _, f := range LocalFeatures {
		if "" == f.Bundle {
			continue
		}
		if "" != ext {
			ext += " "
		}
		ext += f.Bundle
	}
	return Hint{Node: node, Ver: version, Ext: ext}
}
