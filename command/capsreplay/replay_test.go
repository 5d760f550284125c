// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/presencecache/capability"
)

func testConfiguration() *Configuration {
	return &Configuration{
		SelfJID:       "me@example.com/laptop",
		ClientNode:    "http://example.com/self",
		ClientVersion: "0.1",
		QueueSize:     100,
	}
}

// seven contacts share a bundle, the script answers the five asked
func trustScenario() string {
	var b strings.Builder
	b.WriteString(`
answers:
  "http://example.com/client#1.0":
    features:
      - http://jabber.org/protocol/jingle
      - http://jabber.org/protocol/jingle/description/audio
events:
  - status: connecting
`)
	for i := 0; i < 7; i += 1 {
		fmt.Fprintf(&b, `  - presence:
      from: contact%d@example.com/phone
      caps:
        node: http://example.com/client
        ver: "1.0"
`, i)
	}
	b.WriteString("  - status: disconnected\n")
	return b.String()
}

func TestReplay(t *testing.T) {
	s, err := decodeScenario(strings.NewReader(trustScenario()))
	require.Nil(t, err, "decode error")

	var out bytes.Buffer
	summary, err := replay(testConfiguration(), s, &out)
	require.Nil(t, err, "replay error")

	// the first answer settles only its sender, so the later contacts
	// still need asking until five agree
	assert.Equal(t, 5, summary.Requests, "wrong request count")
	assert.Equal(t, 5, summary.Answered, "wrong answered count")
	assert.Equal(t, 0, summary.Pending, "bundles left pending")
	assert.Equal(t, 0, summary.LeakedRefs, "references leaked")
	assert.Equal(t, 7, len(summary.Contacts), "wrong contact count")

	voice := capability.JingleVoice.String()
	for jid, state := range summary.Contacts {
		assert.Equal(t, "available  caps: "+voice, state, "contact: %s wrong state", jid)
	}

	// seven presence changes and seven caps changes
	assert.Equal(t, 14, summary.Notifications, "wrong notification count")
	assert.Equal(t, 14, strings.Count(out.String(), "\n"), "wrong printed lines")
	for i := 0; i < 7; i += 1 {
		jid := fmt.Sprintf("contact: contact%d@example.com\n", i)
		assert.Equal(t, 2, strings.Count(out.String(), jid), "%s not printed twice", jid)
	}

	var text bytes.Buffer
	summary.write(&text)
	assert.Contains(t, text.String(), "disco requests: 5", "summary missing counts")
	assert.NotContains(t, text.String(), "leaked", "summary reports leak")
}

func TestReplayWithScriptedFailures(t *testing.T) {
	text := `
answers:
  "http://example.com/client#broken":
    error: service-unavailable
events:
  - status: connecting
  - presence:
      from: x@example.com/phone
      caps:
        node: http://example.com/client
        ver: broken
  - presence:
      from: y@example.com/desktop
      caps:
        node: http://example.com/client
        ver: slow
  - presence:
      from: z@example.com/desktop
      type: unavailable
      status: away for a week
`
	s, err := decodeScenario(strings.NewReader(text))
	require.Nil(t, err, "decode error")

	var out bytes.Buffer
	summary, err := replay(testConfiguration(), s, &out)
	require.Nil(t, err, "replay error")

	assert.Equal(t, 2, summary.Requests, "wrong request count")
	assert.Equal(t, 1, summary.Answered, "wrong answered count")

	// the failed bundle had nobody else to ask; the slow one is waiting
	assert.Equal(t, 1, summary.Pending, "wrong pending count")
	assert.Equal(t, "available  caps: none", summary.Contacts["x@example.com"], "wrong state")
	assert.Equal(t, "offline  caps: none", summary.Contacts["z@example.com"], "offline contact with message evicted")
	assert.Equal(t, 0, summary.LeakedRefs, "references leaked")
}

func TestReplayLocalBundles(t *testing.T) {
	text := `
events:
  - status: connecting
  - presence:
      from: twin@example.com/phone
      caps:
        node: http://example.com/self
        ver: "0.1"
        ext: voice-v1 jingle-video
`
	s, err := decodeScenario(strings.NewReader(text))
	require.Nil(t, err, "decode error")

	conf := testConfiguration()
	conf.LocalBundles = []string{"voice-v1"}

	var out bytes.Buffer
	summary, err := replay(conf, s, &out)
	require.Nil(t, err, "replay error")

	// only the listed ext bundle is trusted, jingle-video must be asked
	assert.Equal(t, 1, summary.Requests, "wrong request count")
	expected := capability.Jingle | capability.GoogleTransportP2P | capability.GoogleVoice
	assert.Equal(t, "available  caps: "+expected.String(), summary.Contacts["twin@example.com"], "wrong state")
}
