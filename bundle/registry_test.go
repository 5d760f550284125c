// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bundle_test

import (
	"fmt"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/presencecache/bundle"
	"github.com/bitmark-inc/presencecache/capability"
)

const (
	bundleID = "http://example/client#v1"
	selfJID  = "me@example.com"
)

// bare jid of contact n
func jid(n int) string {
	return fmt.Sprintf("contact%d@example.com", n)
}

func TestRecordWhenNew(t *testing.T) {
	r := bundle.New(logger.New(category))

	trust := r.Record(bundleID, jid(1), capability.JingleVoice)
	assert.Equal(t, 1, trust, "wrong trust")

	info, ok := r.Info(bundleID)
	assert.True(t, ok, "record not created")
	assert.Equal(t, capability.JingleVoice, info.Caps, "wrong caps")
	assert.Equal(t, 1, info.Reporters, "wrong reporters")
	assert.False(t, info.Poisoned, "poisoned")
}

func TestRecordWhenNoReporter(t *testing.T) {
	r := bundle.New(logger.New(category))

	assert.Equal(t, 0, r.Record(bundleID, "", capability.Jingle), "wrong trust")
	assert.Equal(t, 0, r.Count(), "record created")

	r.Record(bundleID, jid(1), capability.Jingle)
	trust, _, ok := r.Trust(bundleID, "")
	assert.Equal(t, 1, trust, "missing reporter short-circuited")
	assert.False(t, ok, "caps available")
}

func TestRecordWhenEmptyID(t *testing.T) {
	r := bundle.New(logger.New(category))

	trust := r.Record("", jid(1), capability.Jingle)
	assert.Equal(t, 0, trust, "wrong trust")
	assert.Equal(t, 0, r.Count(), "record created")
}

func TestRecordTrustCountsDistinctReporters(t *testing.T) {
	r := bundle.New(logger.New(category))

	reports := []struct {
		reporter int
		expected int
	}{
		{1, 1},
		{2, 2},
		{1, 2},
		{2, 2},
		{3, 3},
		{4, 4},
		{4, 4},
		{5, 5},
		{6, 6},
	}

	previous := 0
	for i, report := range reports {
		trust := r.Record(bundleID, jid(report.reporter), capability.Jingle)
		assert.Equal(t, report.expected, trust, "%d: wrong trust", i)
		assert.True(t, trust >= previous, "%d: trust decreased", i)
		previous = trust
	}

	info, _ := r.Info(bundleID)
	assert.Equal(t, info.Reporters, info.Trust, "trust differs from reporter count")
}

func TestRecordWhenConflictPoisons(t *testing.T) {
	r := bundle.New(logger.New(category))

	// contacts A-E corroborate
	for i := 1; i <= 5; i++ {
		r.Record(bundleID, jid(i), capability.JingleVoice)
	}

	trust, caps, ok := r.Trust(bundleID, jid(6))
	assert.Equal(t, 5, trust, "wrong trust before conflict")
	assert.True(t, ok, "caps not available")
	assert.Equal(t, capability.JingleVoice, caps, "wrong caps")

	// F disagrees
	trust = r.Record(bundleID, jid(6), capability.Jingle)
	assert.Equal(t, 0, trust, "conflict did not reset trust")
	assert.Equal(t, float64(1), testutil.ToFloat64(r.Collectors()[0]), "poison not counted")

	info, _ := r.Info(bundleID)
	assert.True(t, info.Poisoned, "not poisoned")
	assert.Equal(t, 0, info.Reporters, "reporters not cleared")

	// G gets nothing
	trust, caps, ok = r.Trust(bundleID, jid(7))
	assert.Equal(t, 0, trust, "wrong trust after poison")
	assert.False(t, ok, "caps available after poison")
	assert.Equal(t, capability.None, caps, "wrong caps after poison")

	// an earlier reporter is no longer trusted either
	trust, _, ok = r.Trust(bundleID, jid(1))
	assert.Equal(t, 0, trust, "former reporter still trusted")
	assert.False(t, ok, "former reporter caps available")
}

func TestRecordWhenPoisonedIgnoresReports(t *testing.T) {
	r := bundle.New(logger.New(category))

	r.Record(bundleID, jid(1), capability.Jingle)
	r.Record(bundleID, jid(2), capability.GoogleVoice)

	// matching either side of the conflict does not restore anything
	for i := 3; i <= 10; i++ {
		assert.Equal(t, 0, r.Record(bundleID, jid(i), capability.Jingle), "%d: trust after poison", i)
		assert.Equal(t, 0, r.Record(bundleID, jid(i), capability.GoogleVoice), "%d: trust after poison", i)
	}

	info, _ := r.Info(bundleID)
	assert.True(t, info.Poisoned, "poison lifted")
	assert.Equal(t, capability.Jingle, info.Caps, "caps on file changed")
	assert.Equal(t, float64(1), testutil.ToFloat64(r.Collectors()[0]), "poison counted more than once")
}

func TestTrustWhenUnknown(t *testing.T) {
	r := bundle.New(logger.New(category))

	trust, caps, ok := r.Trust(bundleID, jid(1))
	assert.Equal(t, 0, trust, "wrong trust")
	assert.Equal(t, capability.None, caps, "wrong caps")
	assert.False(t, ok, "caps available")
}

func TestTrustWhenReporterAlreadyCounted(t *testing.T) {
	r := bundle.New(logger.New(category))

	r.Record(bundleID, jid(1), capability.GoogleVoice)
	r.Record(bundleID, jid(2), capability.GoogleVoice)

	trust, caps, ok := r.Trust(bundleID, jid(1))
	assert.Equal(t, bundle.EnoughTrust, trust, "reporter not short-circuited")
	assert.True(t, ok, "caps not available to reporter")
	assert.Equal(t, capability.GoogleVoice, caps, "wrong caps")

	trust, _, ok = r.Trust(bundleID, jid(3))
	assert.Equal(t, 2, trust, "wrong trust for other contact")
	assert.False(t, ok, "caps available to other contact")
}

func TestSeed(t *testing.T) {
	r := bundle.New(logger.New(category))
	r.Seed(bundleID, selfJID, capability.Jingle)
	r.Seed(bundleID, selfJID, capability.GoogleTransportP2P)

	trust, caps, ok := r.Trust(bundleID, jid(1))
	assert.Equal(t, bundle.EnoughTrust, trust, "seeded bundle not trusted")
	assert.True(t, ok, "caps not available")
	assert.Equal(t, capability.Jingle|capability.GoogleTransportP2P, caps, "caps not merged")
}

func TestSeedWhenAlreadyReported(t *testing.T) {
	r := bundle.New(logger.New(category))
	r.Record(bundleID, jid(1), capability.Jingle)
	r.Seed(bundleID, selfJID, capability.GoogleVoice)

	info, _ := r.Info(bundleID)
	assert.Equal(t, bundle.EnoughTrust, info.Trust, "wrong trust")
	assert.Equal(t, 2, info.Reporters, "self not added")
	assert.Equal(t, capability.Jingle|capability.GoogleVoice, info.Caps, "caps not merged")
}
