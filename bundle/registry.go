// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bundle

import (
	"github.com/bitmark-inc/logger"
	gocache "github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bitmark-inc/presencecache/capability"
)

// EnoughTrust - when five different contacts report the same
// capabilities for a bundle it is trusted
const EnoughTrust = 5

// accumulated reports for one bundle id
//
// reporters are bare jids, a contact keeps counting once however often
// its handle is discarded and interned again
//
// a nil reporters set marks a poisoned bundle: two reports disagreed
// and nothing said about this id will be believed again
type record struct {
	caps      capability.Set
	reporters map[string]struct{}
	trust     int
}

func (r *record) poisoned() bool {
	return nil == r.reporters
}

// Info - snapshot of a bundle record
type Info struct {
	Caps      capability.Set
	Trust     int
	Reporters int
	Poisoned  bool
}

// Registry - trust records of all bundle ids seen by the cache
type Registry struct {
	log      *logger.L
	records  *gocache.Cache
	poisoned prometheus.Counter
}

// New - create an empty registry
func New(log *logger.L) *Registry {
	return &Registry{
		log:     log,
		records: gocache.New(gocache.NoExpiration, 0),
		poisoned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "presencecache",
			Subsystem: "bundle",
			Name:      "poisoned_total",
			Help:      "Capability bundles invalidated by conflicting reports.",
		}),
	}
}

// Collectors - metrics exported by the registry
func (r *Registry) Collectors() []prometheus.Collector {
	return []prometheus.Collector{r.poisoned}
}

func (r *Registry) get(id string) *record {
	v, ok := r.records.Get(id)
	if !ok {
		return nil
	}
	return v.(*record)
}

// Record - account for a contact reporting caps for a bundle id
//
// returns the bundle's trust after the report; zero if the bundle is
// or has just become poisoned
func (r *Registry) Record(id string, reporter string, caps capability.Set) int {
	if "" == id {
		r.log.Debug("ignoring report for empty bundle id")
		return 0
	}
	if "" == reporter {
		r.log.Debugf("bundle: %q  ignoring report without reporter", id)
		return 0
	}

	info := r.get(id)
	if nil == info {
		info = &record{
			caps:      caps,
			reporters: make(map[string]struct{}),
		}
		r.records.Set(id, info, gocache.NoExpiration)
	} else if info.poisoned() {
		return 0
	}

	if info.caps != caps {
		r.log.Warnf("bundle: %q  caps: %s  conflicts with: %s  from: %s", id, caps, info.caps, reporter)
		info.reporters = nil
		info.trust = 0
		r.poisoned.Inc()
		return 0
	}

	if _, ok := info.reporters[reporter]; !ok {
		info.reporters[reporter] = struct{}{}
		info.trust += 1
	}

	r.log.Debugf("bundle: %q  caps: %s  trust: %d", id, caps, info.trust)
	return info.trust
}

// Trust - how far caps for a bundle id can be believed when reported
// by a contact, and the caps if that is enough
//
// a contact that already corroborated the bundle is trusted for it
func (r *Registry) Trust(id string, reporter string) (int, capability.Set, bool) {
	info := r.get(id)
	if nil == info {
		return 0, capability.None, false
	}

	trust := info.trust
	if _, ok := info.reporters[reporter]; ok && "" != reporter {
		trust = EnoughTrust
	}

	if trust >= EnoughTrust {
		return trust, info.caps, true
	}
	return trust, capability.None, false
}

// Seed - register a bundle announced by the local client, which is
// fully trusted; caps are merged with any already on file
func (r *Registry) Seed(id string, self string, caps capability.Set) {
	info := r.get(id)
	if nil == info {
		info = &record{}
		r.records.Set(id, info, gocache.NoExpiration)
	}
	if info.poisoned() {
		info.reporters = make(map[string]struct{})
	}

	info.reporters[self] = struct{}{}
	if info.trust < EnoughTrust {
		info.trust = EnoughTrust
	}
	info.caps |= caps

	r.log.Infof("local bundle: %q  caps: %s", id, info.caps)
}

// Info - snapshot of a bundle record
func (r *Registry) Info(id string) (Info, bool) {
	info := r.get(id)
	if nil == info {
		return Info{}, false
	}
	return Info{
		Caps:      info.caps,
		Trust:     info.trust,
		Reporters: len(info.reporters),
		Poisoned:  info.poisoned(),
	}, true
}

// Count - number of bundle ids on file
func (r *Registry) Count() int {
	return r.records.ItemCount()
}
