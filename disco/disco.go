// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package disco

import (
	"github.com/bitmark-inc/logger"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bitmark-inc/presencecache/capability"
	"github.com/bitmark-inc/presencecache/fault"
	"github.com/bitmark-inc/presencecache/handle"
)

// Reply - outcome of one disco info request
//
// exactly one of Features or Err is meaningful
type Reply struct {
	Target   string
	Node     string
	Features []string
	Err      error
}

// Caps - capability flags advertised by a successful reply
func (r Reply) Caps() capability.Set {
	return capability.FromFeatures(r.Features)
}

// ReplyFunc - receives the reply of a request, called exactly once
// and possibly from another goroutine
type ReplyFunc func(Reply)

// Requester - interface for the disco transport
type Requester interface {
	RequestInfo(target string, node string, reply ReplyFunc)
}

// Orchestrator - issues disco requests on behalf of waiting contacts
type Orchestrator struct {
	log       *logger.L
	handles   handle.Repo
	requester Requester
	deliver   ReplyFunc

	requests  prometheus.Counter
	retries   prometheus.Counter
	failures  prometheus.Counter
	abandoned prometheus.Counter
}

// New - create an orchestrator sending replies to deliver
func New(log *logger.L, handles handle.Repo, requester Requester, deliver ReplyFunc) *Orchestrator {
	counter := func(name string, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "presencecache",
			Subsystem: "disco",
			Name:      name,
			Help:      help,
		})
	}
	return &Orchestrator{
		log:       log,
		handles:   handles,
		requester: requester,
		deliver:   deliver,
		requests:  counter("requests_total", "Disco info requests issued."),
		retries:   counter("retries_total", "Disco info requests re-issued after a failure."),
		failures:  counter("failures_total", "Disco info requests that returned an error."),
		abandoned: counter("abandoned_total", "Bundle ids given up after every waiter failed."),
	}
}

// Collectors - metrics exported by the orchestrator
func (o *Orchestrator) Collectors() []prometheus.Collector {
	return []prometheus.Collector{o.requests, o.retries, o.failures, o.abandoned}
}

// Target - full jid of a contact resource
func Target(bare string, resource string) string {
	if "" == resource {
		return bare
	}
	return bare + "/" + resource
}

// Request - ask a contact resource for the features of a bundle id
func (o *Orchestrator) Request(h handle.Handle, resource string, id string) error {
	if !capability.ValidBundleID(id) {
		return fault.ErrInvalidBundleID
	}
	bare := o.handles.Inspect(h)
	if "" == bare {
		o.log.Criticalf("disco for invalid handle: %d  bundle: %q", h, id)
		return fault.ErrInvalidHandle
	}

	target := Target(bare, resource)
	o.log.Debugf("request: %s  node: %q", target, id)
	o.requests.Inc()
	o.requester.RequestInfo(target, id, o.deliver)
	return nil
}

// Retry - as Request, after an earlier request for id failed
func (o *Orchestrator) Retry(h handle.Handle, resource string, id string) error {
	err := o.Request(h, resource, id)
	if nil == err {
		o.retries.Inc()
	}
	return err
}

// Failed - count a failed reply
func (o *Orchestrator) Failed(r Reply) {
	o.log.Debugf("request: %s  node: %q  failed: %s", r.Target, r.Node, r.Err)
	o.failures.Inc()
}

// Abandoned - count a bundle id given up on
func (o *Orchestrator) Abandoned(id string) {
	o.log.Debugf("no candidate left to retry node: %q", id)
	o.abandoned.Inc()
}
